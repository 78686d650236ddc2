package charset

import (
	"testing"
	"unicode/utf16"

	xtextunicode "golang.org/x/text/encoding/unicode"
)

func TestUTF16CodecDecodeBE(t *testing.T) {
	c := newUTF16Codec(MIBUTF16BE, Strict)
	// "Hi" as UTF-16BE.
	dst := make([]rune, 8)
	n, m, res, err := c.Decode([]byte{0x00, 'H', 0x00, 'i'}, dst)
	if res != ResultOK || err != nil {
		t.Fatalf("Decode() res=%v err=%v", res, err)
	}
	if n != 4 || m != 2 || dst[0] != 'H' || dst[1] != 'i' {
		t.Fatalf("Decode() = (%d,%d,%v), runes=%v", n, m, res, dst[:m])
	}
}

func TestUTF16CodecDecodeLE(t *testing.T) {
	c := newUTF16Codec(MIBUTF16LE, Strict)
	dst := make([]rune, 8)
	n, m, res, err := c.Decode([]byte{'H', 0x00, 'i', 0x00}, dst)
	if res != ResultOK || err != nil {
		t.Fatalf("Decode() res=%v err=%v", res, err)
	}
	if n != 4 || m != 2 || dst[0] != 'H' || dst[1] != 'i' {
		t.Fatalf("Decode() = (%d,%d,%v), runes=%v", n, m, res, dst[:m])
	}
}

func TestUTF16CodecSurrogatePair(t *testing.T) {
	c := newUTF16Codec(MIBUTF16BE, Strict)
	// U+1F600 (grinning face) as a BE surrogate pair: D83D DE00.
	dst := make([]rune, 4)
	n, m, res, err := c.Decode([]byte{0xD8, 0x3D, 0xDE, 0x00}, dst)
	if res != ResultOK || err != nil {
		t.Fatalf("Decode() res=%v err=%v", res, err)
	}
	if n != 4 || m != 1 || dst[0] != 0x1F600 {
		t.Fatalf("Decode() = (%d,%d,%v), want (4,1,[U+1F600]), got %U", n, m, res, dst[:m])
	}
}

func TestUTF16CodecUnpairedSurrogateStrict(t *testing.T) {
	c := newUTF16Codec(MIBUTF16BE, Strict)
	dst := make([]rune, 4)
	// A lone trailing surrogate DC00 with no preceding lead.
	_, _, res, err := c.Decode([]byte{0xDC, 0x00}, dst)
	if res != ResultInvalid || err == nil {
		t.Fatalf("Decode(unpaired trail) res=%v err=%v, want Invalid", res, err)
	}
}

func TestUTF16CodecUnpairedSurrogateLoose(t *testing.T) {
	c := newUTF16Codec(MIBUTF16BE, Loose)
	dst := make([]rune, 4)
	n, m, res, err := c.Decode([]byte{0xDC, 0x00}, dst)
	if res != ResultOK || err != nil || n != 2 || m != 1 || dst[0] != 0xFFFD {
		t.Fatalf("Decode(unpaired trail, loose) = (%d,%d,%v,%v), want (2,1,OK,nil) with U+FFFD", n, m, res, err)
	}
}

func TestUTF16CodecSplitSurrogatePair(t *testing.T) {
	c := newUTF16Codec(MIBUTF16BE, Strict)
	dst := make([]rune, 4)

	// Feed the lead surrogate only; the codec must ask for more data
	// rather than treating it as unpaired. The lead is retained internally,
	// so its two bytes count as consumed.
	n, m, res, err := c.Decode([]byte{0xD8, 0x3D}, dst)
	if res != ResultNeedData || err != nil || n != 2 || m != 0 {
		t.Fatalf("Decode(lead only) = (%d,%d,%v,%v), want (2,0,NeedData,nil)", n, m, res, err)
	}

	n, m, res, err = c.Decode([]byte{0xDE, 0x00}, dst)
	if res != ResultOK || err != nil || n != 2 || m != 1 || dst[0] != 0x1F600 {
		t.Fatalf("Decode(trail) = (%d,%d,%v,%v), want (2,1,OK,nil) with U+1F600", n, m, res, err)
	}
}

func TestUTF16CodecEncodeSurrogatePair(t *testing.T) {
	c := newUTF16Codec(MIBUTF16BE, Strict)
	dst := make([]byte, 8)
	n, m, res, err := c.Encode([]rune{0x1F600}, dst)
	if res != ResultOK || err != nil || n != 1 || m != 4 {
		t.Fatalf("Encode() = (%d,%d,%v,%v)", n, m, res, err)
	}
	want := []byte{0xD8, 0x3D, 0xDE, 0x00}
	if string(dst[:m]) != string(want) {
		t.Fatalf("Encode() = %x, want %x", dst[:m], want)
	}
}

// TestUTF16CodecAgreesWithXText cross-checks the hand-rolled BE decoder
// against golang.org/x/text/encoding/unicode's big-endian UTF-16 decoder,
// configured to ignore a BOM (SPEC_FULL.md §11), confirming both agree on an input mixing ASCII, a
// BMP non-ASCII character and an astral surrogate pair. This never runs in
// the production decode path -- only here, as a test-time second opinion.
func TestUTF16CodecAgreesWithXText(t *testing.T) {
	in := utf16.Encode([]rune("Hié\U0001F600"))
	raw := make([]byte, len(in)*2)
	for i, u := range in {
		raw[i*2] = byte(u >> 8)
		raw[i*2+1] = byte(u)
	}

	c := newUTF16Codec(MIBUTF16BE, Strict)
	dst := make([]rune, 16)
	_, m, res, err := c.Decode(raw, dst)
	if res != ResultOK || err != nil {
		t.Fatalf("Decode() res=%v err=%v", res, err)
	}

	xdec := xtextunicode.UTF16(xtextunicode.BigEndian, xtextunicode.IgnoreBOM).NewDecoder()
	want, err := xdec.Bytes(raw)
	if err != nil {
		t.Fatalf("x/text decode error = %v", err)
	}

	if string(dst[:m]) != string(want) {
		t.Fatalf("hand-rolled decode = %q, x/text decode = %q", string(dst[:m]), string(want))
	}
}
