package charset

import (
	parserutils "github.com/servo/libparserutils"
)

// Registry resolves an encoding name or MIB to a ready-to-use Codec,
// canonicalizing through an AliasTable first (spec.md §4.2 "CodecRegistry").
// UTF-8 and UTF-16 are native; everything else falls back to
// golang.org/x/text (spec.md §4.2.3).
type Registry struct {
	aliases *AliasTable
}

// NewRegistry builds a Registry over an already-loaded AliasTable, letting
// a caller share one table across several registries or streams.
func NewRegistry(aliases *AliasTable) *Registry {
	return &Registry{aliases: aliases}
}

// NewDefaultRegistry builds a Registry over NewDefaultAliasTable.
func NewDefaultRegistry() (*Registry, error) {
	t, err := NewDefaultAliasTable()
	if err != nil {
		return nil, err
	}
	return NewRegistry(t), nil
}

// Aliases returns the table this registry canonicalizes names through.
func (r *Registry) Aliases() *AliasTable {
	return r.aliases
}

// NewCodec canonicalizes name and constructs the Codec that implements it.
func (r *Registry) NewCodec(name string, mode ErrorMode) (Codec, error) {
	cn, ok := r.aliases.Canonicalise(name)
	if !ok {
		return nil, parserutils.ErrBadEncoding
	}
	return r.NewCodecForMIB(cn.MIB, cn.Name, mode)
}

// NewCodecForMIB constructs a Codec for an already-resolved MIB. name is
// required only for the golang.org/x/text fallback path, which looks an
// encoding up by label rather than by MIB enum.
func (r *Registry) NewCodecForMIB(mib uint16, name string, mode ErrorMode) (Codec, error) {
	switch mib {
	case MIBUTF8:
		return newUTF8Codec(mode), nil

	case MIBUTF16, MIBUTF16BE, MIBUTF16LE:
		return newUTF16Codec(mib, mode), nil

	default:
		return newFallbackCodec(mib, name, mode)
	}
}
