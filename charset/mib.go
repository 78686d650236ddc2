// Package charset implements the encoding alias registry, codec plug-in
// framework, and pivoted conversion filter shared by the markup parsers
// built on this module: every byte read from a document passes through the
// alias table to pick a codec, the codec to produce UCS-4 code points, and
// a write codec to re-emit UTF-8.
package charset

// MIB enum identifiers for the encodings this package handles natively.
// Values follow the IANA Character Sets MIB registry.
const (
	MIBUTF8    uint16 = 106
	MIBUTF16   uint16 = 1015
	MIBUTF16BE uint16 = 1013
	MIBUTF16LE uint16 = 1014
	MIBUTF32   uint16 = 1017
	MIBUTF32BE uint16 = 1018
	MIBUTF32LE uint16 = 1019
	MIBUCS2    uint16 = 1000
	MIBUCS4    uint16 = 1001
)

var unicodeMIBs = map[uint16]bool{
	MIBUTF8:    true,
	MIBUTF16:   true,
	MIBUTF16BE: true,
	MIBUTF16LE: true,
	MIBUTF32:   true,
	MIBUTF32BE: true,
	MIBUTF32LE: true,
	MIBUCS2:    true,
	MIBUCS4:    true,
}
