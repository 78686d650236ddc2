package charset

import (
	"errors"
	"unicode/utf8"
)

// ErrInvalidUTF16 is returned by the native UTF-16 codec's Decode in
// Strict mode on an unpaired surrogate.
var ErrInvalidUTF16 = errors.New("charset: ill-formed UTF-16 sequence")

// utf16Codec is the native UTF-16 <-> UCS-4 codec (spec.md §4.2.2).
// Byte order is fixed at construction from the canonical name: UTF-16BE
// and UTF-16LE are explicit; plain UTF-16 defaults to big-endian, on the
// assumption that a leading BOM (if any) was already stripped by the
// InputStream before these bytes reach the codec.
type utf16Codec struct {
	mib     uint16
	be      bool
	mode    ErrorMode
	pending []byte
}

func newUTF16Codec(mib uint16, mode ErrorMode) *utf16Codec {
	return &utf16Codec{mib: mib, be: mib != MIBUTF16LE, mode: mode}
}

func (c *utf16Codec) MIB() uint16 { return c.mib }

func (c *utf16Codec) SetErrorMode(mode ErrorMode) { c.mode = mode }

func (c *utf16Codec) Reset() {
	c.pending = c.pending[:0]
}

func (c *utf16Codec) readUnit(b []byte) uint16 {
	if c.be {
		return uint16(b[0])<<8 | uint16(b[1])
	}
	return uint16(b[1])<<8 | uint16(b[0])
}

func (c *utf16Codec) writeUnit(dst []byte, u uint16) {
	if c.be {
		dst[0] = byte(u >> 8)
		dst[1] = byte(u)
	} else {
		dst[0] = byte(u)
		dst[1] = byte(u >> 8)
	}
}

// Decode implements spec.md §4.2.2: surrogate pairing for lead
// [0xD800,0xDBFF] followed by trail [0xDC00,0xDFFF]; unpaired surrogates
// are Invalid/U+FFFD per error mode. An odd trailing byte, or a lead
// surrogate with no trailing unit yet available, yields NeedData.
func (c *utf16Codec) Decode(src []byte, dst []rune) (nSrc, nDst int, res Result, err error) {
	if len(src) == 0 {
		if len(c.pending) == 0 {
			return 0, 0, ResultOK, nil
		}
		if len(dst) == 0 {
			return 0, 0, ResultNoMem, nil
		}
		if c.mode == Strict {
			c.pending = c.pending[:0]
			return 0, 0, ResultInvalid, ErrInvalidUTF16
		}
		dst[0] = utf8.RuneError
		c.pending = c.pending[:0]
		return 0, 1, ResultOK, nil
	}

	prefixLen := len(c.pending)

	var buf []byte
	if prefixLen > 0 {
		buf = append(append([]byte(nil), c.pending...), src...)
	} else {
		buf = src
	}

	consumed := func(i int) int {
		n := i - prefixLen
		if n < 0 {
			return 0
		}
		return n
	}

	i := 0
	for i < len(buf) {
		if nDst == len(dst) {
			if i < prefixLen {
				c.pending = c.pending[i:]
			} else {
				c.pending = c.pending[:0]
			}
			return consumed(i), nDst, ResultNoMem, nil
		}

		if i+2 > len(buf) {
			c.pending = append(c.pending[:0], buf[i:]...)
			return consumed(len(buf)), nDst, ResultNeedData, nil
		}

		u := c.readUnit(buf[i : i+2])

		switch {
		case u >= 0xD800 && u <= 0xDBFF:
			if i+4 > len(buf) {
				c.pending = append(c.pending[:0], buf[i:]...)
				return consumed(len(buf)), nDst, ResultNeedData, nil
			}

			lo := c.readUnit(buf[i+2 : i+4])
			if lo < 0xDC00 || lo > 0xDFFF {
				if c.mode == Strict {
					return consumed(i), nDst, ResultInvalid, ErrInvalidUTF16
				}
				dst[nDst] = utf8.RuneError
				nDst++
				i += 2
				continue
			}

			dst[nDst] = 0x10000 + (rune(u)-0xD800)<<10 + (rune(lo) - 0xDC00)
			nDst++
			i += 4

		case u >= 0xDC00 && u <= 0xDFFF:
			if c.mode == Strict {
				return consumed(i), nDst, ResultInvalid, ErrInvalidUTF16
			}
			dst[nDst] = utf8.RuneError
			nDst++
			i += 2

		default:
			dst[nDst] = rune(u)
			nDst++
			i += 2
		}
	}

	c.pending = c.pending[:0]
	return consumed(i), nDst, ResultOK, nil
}

// Encode implements the reverse direction: UCS-4 to UTF-16 code units,
// including surrogate pair emission for code points above U+FFFF.
func (c *utf16Codec) Encode(src []rune, dst []byte) (nSrc, nDst int, res Result, err error) {
	i := 0

	for i < len(src) {
		r := src[i]

		if (r >= 0xD800 && r <= 0xDFFF) || r > 0x10FFFF || r < 0 {
			if c.mode == Strict {
				return i, nDst, ResultInvalid, ErrInvalidCodePoint
			}
			r = utf8.RuneError
		}

		if r <= 0xFFFF {
			if nDst+2 > len(dst) {
				return i, nDst, ResultNoMem, nil
			}
			c.writeUnit(dst[nDst:], uint16(r))
			nDst += 2
		} else {
			if nDst+4 > len(dst) {
				return i, nDst, ResultNoMem, nil
			}
			r -= 0x10000
			c.writeUnit(dst[nDst:], uint16(0xD800+(r>>10)))
			c.writeUnit(dst[nDst+2:], uint16(0xDC00+(r&0x3FF)))
			nDst += 4
		}

		i++
	}

	return i, nDst, ResultOK, nil
}
