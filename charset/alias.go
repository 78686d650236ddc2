package charset

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	parserutils "github.com/servo/libparserutils"
)

// defaultTableSize is the bucket count for both the canonical and alias
// hash chains, per spec.md §3 ("Two fixed-size (prime, e.g. 43) hash
// arrays of singly linked chains").
const defaultTableSize = 43

// CanonicalName is a long-lived immutable record owned by an AliasTable:
// every encoding known to the table has exactly one CanonicalName, and
// aliases reference it by shared pointer (spec.md §3).
type CanonicalName struct {
	Name string
	MIB  uint16
}

type aliasEntry struct {
	name  string
	canon *CanonicalName
}

// AliasTable canonicalizes the web's large, messy space of encoding names
// to a single MIB-enum identity (spec.md §4.1). It is read-only after
// construction; concurrent readers from multiple streams are safe without
// locking (spec.md §5).
//
// Go note: the spec's process-wide singleton + explicit init/finalize
// entry points are realized here as an ordinary constructed value with no
// Destroy method -- Go's garbage collector already reclaims an AliasTable
// once nothing references it, so the C-oriented allocator/finalize
// contract in spec.md §5 is adapted rather than carried literally.
type AliasTable struct {
	tableSize  int
	canonicals [][]*CanonicalName
	aliases    [][]*aliasEntry
}

// isSkip reports whether b is whitespace or ASCII punctuation skipped
// during name comparison, per spec.md §4.1's exact byte classes.
func isSkip(b byte) bool {
	return (b >= 0x09 && b <= 0x0D) ||
		(b >= 0x20 && b <= 0x2F) ||
		(b >= 0x3A && b <= 0x40) ||
		(b >= 0x5B && b <= 0x60) ||
		(b >= 0x7B && b <= 0x7E)
}

// upperFold performs the ASCII-only case fold spec.md §4.1 requires
// (clearing bit 0x20 maps 'a'..'z' onto 'A'..'Z' and leaves everything
// else, including punctuation above 0x7F, unchanged).
func upperFold(b byte) byte {
	return b &^ 0x20
}

// namesEqual compares two names skipping whitespace/punctuation bytes and
// folding ASCII case, per spec.md §4.1.
func namesEqual(a, b string) bool {
	i, j := 0, 0

	for {
		for i < len(a) && isSkip(a[i]) {
			i++
		}
		for j < len(b) && isSkip(b[j]) {
			j++
		}

		if i == len(a) && j == len(b) {
			return true
		}
		if i == len(a) || j == len(b) {
			return false
		}
		if upperFold(a[i]) != upperFold(b[j]) {
			return false
		}

		i++
		j++
	}
}

// normalizedHash is the djb2 variant required by spec.md §4.1: any two
// names that compare equal under namesEqual MUST hash equal, because the
// hash is defined over the identical filtered byte stream.
func normalizedHash(name string, tableSize int) int {
	h := uint32(5381)

	for i := 0; i < len(name); i++ {
		b := name[i]
		if isSkip(b) {
			continue
		}
		h = (h*33) ^ uint32(upperFold(b))
	}

	return int(h % uint32(tableSize))
}

// NewAliasTableFromReader parses an alias file from r: one record per
// line, whitespace-separated ("canonical mibenum alias..."), blank lines
// and lines beginning with '#' ignored (spec.md §4.1, §6). Duplicate
// canonicals replace in place (later entries win) so that any alias
// pointing at an earlier registration observes the update too.
func NewAliasTableFromReader(r io.Reader) (*AliasTable, error) {
	t := &AliasTable{
		tableSize:  defaultTableSize,
		canonicals: make([][]*CanonicalName, defaultTableSize),
		aliases:    make([][]*aliasEntry, defaultTableSize),
	}

	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			// Tolerated per spec.md §9: a record with a canonical name
			// but no parseable MIB (or trailing whitespace with nothing
			// else) is silently skipped rather than treated as an error.
			continue
		}

		mib, err := strconv.ParseUint(fields[1], 10, 16)
		if err != nil {
			continue
		}

		cn := t.addCanonical(fields[0], uint16(mib))

		for _, alias := range fields[2:] {
			t.addAlias(alias, cn)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return t, nil
}

// LoadAliasTable loads an alias table from a file on disk.
func LoadAliasTable(path string) (*AliasTable, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, parserutils.ErrFileNotFound
		}
		return nil, err
	}
	defer f.Close()

	return NewAliasTableFromReader(f)
}

// NewDefaultAliasTable loads the built-in alias data (alias_data.go),
// covering UTF-8/UTF-16/UTF-32 plus the common single-byte and CJK
// encodings the fallback codec (§4.2.3) knows how to convert.
func NewDefaultAliasTable() (*AliasTable, error) {
	return NewAliasTableFromReader(strings.NewReader(defaultAliasData))
}

func (t *AliasTable) addCanonical(name string, mib uint16) *CanonicalName {
	idx := normalizedHash(name, t.tableSize)

	for _, existing := range t.canonicals[idx] {
		if namesEqual(existing.Name, name) {
			existing.MIB = mib // later entry wins, same identity preserved
			return existing
		}
	}

	cn := &CanonicalName{Name: name, MIB: mib}
	t.canonicals[idx] = append(t.canonicals[idx], cn)
	return cn
}

func (t *AliasTable) addAlias(name string, canon *CanonicalName) {
	idx := normalizedHash(name, t.tableSize)

	for _, e := range t.aliases[idx] {
		if namesEqual(e.name, name) {
			e.canon = canon
			return
		}
	}

	t.aliases[idx] = append(t.aliases[idx], &aliasEntry{name: name, canon: canon})
}

// Canonicalise normalizes name and returns the CanonicalName it resolves
// to, whether name was itself a canonical name or an alias.
func (t *AliasTable) Canonicalise(name string) (*CanonicalName, bool) {
	idx := normalizedHash(name, t.tableSize)

	for _, cn := range t.canonicals[idx] {
		if namesEqual(cn.Name, name) {
			return cn, true
		}
	}

	for _, e := range t.aliases[idx] {
		if namesEqual(e.name, name) {
			return e.canon, true
		}
	}

	return nil, false
}

// MIBFromName returns the MIB enum for name, or 0 if it is not known.
func (t *AliasTable) MIBFromName(name string) uint16 {
	if cn, ok := t.Canonicalise(name); ok {
		return cn.MIB
	}
	return 0
}

// NameFromMIB returns the canonical name for a MIB enum. A linear scan is
// acceptable here: spec.md §4.1 notes it is "called only on encoding
// transitions".
func (t *AliasTable) NameFromMIB(mib uint16) (string, bool) {
	for _, bucket := range t.canonicals {
		for _, cn := range bucket {
			if cn.MIB == mib {
				return cn.Name, true
			}
		}
	}
	return "", false
}

// IsUnicode reports whether mib identifies one of UCS-4, UCS-2, UTF-8,
// UTF-16/BE/LE, or UTF-32/BE/LE.
func (t *AliasTable) IsUnicode(mib uint16) bool {
	return unicodeMIBs[mib]
}
