package charset

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	parserutils "github.com/servo/libparserutils"
)

// fallbackScratchSize bounds a single decoder.Transform call's output
// buffer. It has no correctness role -- any size works -- it just caps how
// much gets copied into pendingUTF8 per iteration.
const fallbackScratchSize = 4096

// replacementUTF8 is U+FFFD encoded as UTF-8, emitted once per
// resynchronized EILSEQ span rather than once per skipped byte
// (spec.md §4.2.3).
var replacementUTF8 = []byte{0xEF, 0xBF, 0xBD}

// fallbackCodec is the iconv-equivalent codec of spec.md §4.2.3: every
// encoding that isn't UTF-8 or UTF-16 natively, realized on top of
// golang.org/x/text's encoding.Encoding/transform.Transformer rather than a
// hand-rolled converter table. htmlindex supplies the WHATWG encoding-label
// lookup spec.md §4.1 otherwise hand-rolls for the native codecs.
//
// x/text's EINVAL/E2BIG/EILSEQ analogues are transform.ErrShortSrc,
// transform.ErrShortDst, and any other non-nil error respectively, matching
// this package's NeedData/NoMem/Invalid taxonomy.
type fallbackCodec struct {
	mib  uint16
	enc  encoding.Encoding
	mode ErrorMode

	decoder *encoding.Decoder
	encoder *encoding.Encoder

	pendingSrc  []byte // undecoded native bytes retained across Decode calls
	pendingUTF8 []byte // decoded UTF-8 bytes not yet delivered as runes

	skipping bool // mid-EILSEQ-span in Loose mode, scanning for resync
}

func newFallbackCodec(mib uint16, name string, mode ErrorMode) (*fallbackCodec, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, parserutils.ErrBadEncoding
	}

	return &fallbackCodec{
		mib:     mib,
		enc:     enc,
		mode:    mode,
		decoder: enc.NewDecoder(),
		encoder: enc.NewEncoder(),
	}, nil
}

func (c *fallbackCodec) MIB() uint16 { return c.mib }

func (c *fallbackCodec) SetErrorMode(mode ErrorMode) { c.mode = mode }

func (c *fallbackCodec) Reset() {
	c.pendingSrc = c.pendingSrc[:0]
	c.pendingUTF8 = c.pendingUTF8[:0]
	c.skipping = false
	c.decoder = c.enc.NewDecoder()
	c.encoder = c.enc.NewEncoder()
}

// drainUTF8 copies complete runes out of pendingUTF8 into dst, stopping at
// dst's capacity or at a trailing byte sequence too short to be a full rune
// yet. It reports whether dst still had room left when it returned.
func (c *fallbackCodec) drainUTF8(dst []rune, nDst *int) bool {
	for len(c.pendingUTF8) > 0 {
		if *nDst == len(dst) {
			return false
		}
		if !utf8.FullRune(c.pendingUTF8) {
			break
		}

		r, size := utf8.DecodeRune(c.pendingUTF8)
		dst[*nDst] = r
		*nDst++
		c.pendingUTF8 = c.pendingUTF8[size:]
	}
	return true
}

// Decode drives the x/text Transformer incrementally, mirroring the
// pending-prefix pattern the native codecs use (utf8Codec, utf16Codec): a
// partial trailing sequence is retained in pendingSrc and prepended on the
// next call rather than reported as an error.
func (c *fallbackCodec) Decode(src []byte, dst []rune) (nSrc, nDst int, res Result, err error) {
	if !c.drainUTF8(dst, &nDst) {
		return 0, nDst, ResultNoMem, nil
	}

	atEOF := len(src) == 0
	prefixLen := len(c.pendingSrc)

	var buf []byte
	if prefixLen > 0 {
		buf = append(append([]byte(nil), c.pendingSrc...), src...)
	} else {
		buf = src
	}

	if len(buf) == 0 {
		// A flush call (atEOF with nothing left to feed the converter):
		// an EILSEQ span that was still being scanned for resync never
		// gets one, so it is finalized here with its single replacement
		// character rather than silently dropped.
		if atEOF && c.skipping {
			c.skipping = false
			c.pendingUTF8 = append(c.pendingUTF8, replacementUTF8...)
		}
		if !c.drainUTF8(dst, &nDst) {
			return 0, nDst, ResultNoMem, nil
		}
		return 0, nDst, ResultOK, nil
	}

	consumed := func(n int) int {
		m := n - prefixLen
		if m < 0 {
			return 0
		}
		return m
	}

	var scratch [fallbackScratchSize]byte
	total := 0

	for total < len(buf) {
		wasSkipping := c.skipping
		nOut, nIn, terr := c.decoder.Transform(scratch[:], buf[total:], atEOF)

		// Either nil or ErrShortDst means the converter made valid
		// progress this round (ErrShortDst just means scratch filled
		// up); if that follows a run of skipped EILSEQ bytes, the
		// converter has resynchronized. The replacement character for
		// the whole skipped span must land in pendingUTF8 before this
		// round's newly decoded bytes, not after, so it is appended
		// here rather than alongside them below.
		if wasSkipping && terr != transform.ErrShortSrc {
			if terr == nil || terr == transform.ErrShortDst {
				c.skipping = false
				c.pendingUTF8 = append(c.pendingUTF8, replacementUTF8...)
			}
		}

		if nOut > 0 {
			c.pendingUTF8 = append(c.pendingUTF8, scratch[:nOut]...)
		}
		total += nIn

		switch terr {
		case nil, transform.ErrShortDst:
			if !c.drainUTF8(dst, &nDst) {
				return consumed(total), nDst, ResultNoMem, nil
			}

		case transform.ErrShortSrc:
			if !c.drainUTF8(dst, &nDst) {
				return consumed(total), nDst, ResultNoMem, nil
			}
			c.pendingSrc = append(c.pendingSrc[:0], buf[total:]...)
			return consumed(len(buf)), nDst, ResultNeedData, nil

		default:
			if !c.drainUTF8(dst, &nDst) {
				return consumed(total), nDst, ResultNoMem, nil
			}
			if c.mode == Strict {
				c.skipping = false
				return consumed(total), nDst, ResultInvalid, terr
			}
			// Loose: scan forward byte-by-byte until the converter
			// resynchronizes; a single replacement character for the
			// whole span is emitted above once that happens, not here.
			c.skipping = true
			total++
		}
	}

	c.pendingSrc = c.pendingSrc[:0]
	return consumed(total), nDst, ResultOK, nil
}

// Encode runs one code point at a time through the x/text Encoder. That
// avoids tracking a fractional rune/byte offset across a partially
// consumed multi-rune chunk, at the cost of a Transform call per rune.
func (c *fallbackCodec) Encode(src []rune, dst []byte) (nSrc, nDst int, res Result, err error) {
	var scratch [utf8.UTFMax]byte

	for nSrc < len(src) {
		n := utf8.EncodeRune(scratch[:], src[nSrc])

		nOut, nIn, terr := c.encoder.Transform(dst[nDst:], scratch[:n], true)

		switch terr {
		case nil:
			if nIn < n {
				return nSrc, nDst, ResultNoMem, nil
			}
			nDst += nOut
			nSrc++

		case transform.ErrShortDst:
			return nSrc, nDst, ResultNoMem, nil

		default:
			if c.mode == Strict {
				return nSrc, nDst, ResultInvalid, terr
			}
			// Loose: substitute '?', per spec.md §4.2.3's byte-target
			// fallback (a Unicode target would instead take U+FFFD, but
			// this codec's targets are never Unicode by construction).
			if nDst == len(dst) {
				return nSrc, nDst, ResultNoMem, nil
			}
			dst[nDst] = '?'
			nDst++
			nSrc++
		}
	}

	return nSrc, nDst, ResultOK, nil
}
