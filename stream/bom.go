package stream

import (
	"bytes"

	"github.com/servo/libparserutils/charset"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF32BE = []byte{0x00, 0x00, 0xFE, 0xFF}
	bomUTF32LE = []byte{0xFF, 0xFE, 0x00, 0x00}
)

// bomFor returns the exact byte-order-mark sequence the given MIB strips,
// or nil if that encoding has none (spec.md §4.4). Dispatch is strictly by
// MIB rather than by scanning data for any recognizable prefix: UTF-32LE's
// BOM (FF FE 00 00) starts with UTF-16LE's BOM (FF FE), so "does this
// prefix look like a BOM" is ambiguous on its own -- the encoding the
// stream already detected (via the detect callback or the UTF-8 default)
// is what decides which single check fires, never a heuristic byte scan.
func bomFor(mib uint16) []byte {
	switch mib {
	case charset.MIBUTF8:
		return bomUTF8
	case charset.MIBUTF16BE:
		return bomUTF16BE
	case charset.MIBUTF16LE:
		return bomUTF16LE
	case charset.MIBUTF32BE:
		return bomUTF32BE
	case charset.MIBUTF32LE:
		return bomUTF32LE
	default:
		return nil
	}
}

// resolveGenericUTF16 settles the byte order for the generic "UTF-16" MIB
// (spec.md §4.2.2), which names no byte order of its own: it inspects the
// leading bytes for a UTF-16BE/LE BOM and returns the concrete MIB that
// matches, falling back to big-endian when neither BOM is present. Callers
// pass the result to NameFromMIB/NewFilter/stripBOM in place of the generic
// MIB so the rest of beginFirstChunk only ever deals with a resolved byte
// order.
func resolveGenericUTF16(data []byte) uint16 {
	switch {
	case bytes.HasPrefix(data, bomUTF16BE):
		return charset.MIBUTF16BE
	case bytes.HasPrefix(data, bomUTF16LE):
		return charset.MIBUTF16LE
	default:
		return charset.MIBUTF16BE
	}
}

// stripBOM returns the number of leading bytes of data that match mib's
// byte-order mark (0 if none, or if mib carries no BOM at all).
func stripBOM(mib uint16, data []byte) int {
	bom := bomFor(mib)
	if bom == nil || len(data) < len(bom) {
		return 0
	}
	if bytes.Equal(data[:len(bom)], bom) {
		return len(bom)
	}
	return 0
}
