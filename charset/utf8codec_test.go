package charset

import "testing"

func decodeAll(t *testing.T, c Codec, chunks [][]byte) ([]rune, Result, error) {
	t.Helper()

	var out []rune
	for _, chunk := range chunks {
		buf := make([]rune, 64)
		pos := 0
		for pos < len(chunk) {
			n, m, res, err := c.Decode(chunk[pos:], buf)
			out = append(out, buf[:m]...)
			pos += n
			if res == ResultInvalid {
				return out, res, err
			}
			if n == 0 && m == 0 {
				break
			}
		}
	}
	return out, ResultOK, nil
}

func TestUTF8CodecDecodeASCII(t *testing.T) {
	c := newUTF8Codec(Strict)
	out, res, err := decodeAll(t, c, [][]byte{[]byte("hello")})
	if res != ResultOK || err != nil {
		t.Fatalf("Decode() res=%v err=%v", res, err)
	}
	if string(out) != "hello" {
		t.Fatalf("Decode() = %q, want %q", string(out), "hello")
	}
}

func TestUTF8CodecDecodeSplitSequence(t *testing.T) {
	c := newUTF8Codec(Strict)
	// U+00E9 (é) = C3 A9, split across two Decode calls.
	out, res, err := decodeAll(t, c, [][]byte{{0xC3}, {0xA9}})
	if res != ResultOK || err != nil {
		t.Fatalf("Decode() res=%v err=%v", res, err)
	}
	if len(out) != 1 || out[0] != 0xE9 {
		t.Fatalf("Decode() = %v, want [U+00E9]", out)
	}
}

func TestUTF8CodecRejectsOverlong(t *testing.T) {
	c := newUTF8Codec(Strict)
	// C0 80 is an overlong encoding of NUL.
	_, res, err := decodeAll(t, c, [][]byte{{0xC0, 0x80}})
	if res != ResultInvalid || err == nil {
		t.Fatalf("Decode(overlong) res=%v err=%v, want Invalid", res, err)
	}
}

func TestUTF8CodecRejectsSurrogate(t *testing.T) {
	c := newUTF8Codec(Strict)
	// ED A0 80 encodes U+D800, a surrogate.
	_, res, err := decodeAll(t, c, [][]byte{{0xED, 0xA0, 0x80}})
	if res != ResultInvalid || err == nil {
		t.Fatalf("Decode(surrogate) res=%v err=%v, want Invalid", res, err)
	}
}

func TestUTF8CodecLooseSubstitutesIllFormed(t *testing.T) {
	c := newUTF8Codec(Loose)
	out, res, err := decodeAll(t, c, [][]byte{{0x41, 0xC0, 0x41}})
	if res != ResultOK || err != nil {
		t.Fatalf("Decode() res=%v err=%v", res, err)
	}
	want := []rune{'A', 0xFFFD, 'A'}
	if len(out) != len(want) || out[0] != want[0] || out[1] != want[1] || out[2] != want[2] {
		t.Fatalf("Decode() = %v, want %v", out, want)
	}
}

func TestUTF8CodecEncodeRoundTrip(t *testing.T) {
	c := newUTF8Codec(Strict)
	src := []rune{'h', 'i', 0xE9, 0x1F600}
	dst := make([]byte, 16)

	nSrc, nDst, res, err := c.Encode(src, dst)
	if res != ResultOK || err != nil {
		t.Fatalf("Encode() res=%v err=%v", res, err)
	}
	if nSrc != len(src) {
		t.Fatalf("Encode() consumed %d runes, want %d", nSrc, len(src))
	}

	dec := newUTF8Codec(Strict)
	out, dres, derr := decodeAll(t, dec, [][]byte{dst[:nDst]})
	if dres != ResultOK || derr != nil {
		t.Fatalf("round-trip decode res=%v err=%v", dres, derr)
	}
	if len(out) != len(src) {
		t.Fatalf("round-trip = %v, want %v", out, src)
	}
	for i := range src {
		if out[i] != src[i] {
			t.Fatalf("round-trip[%d] = %U, want %U", i, out[i], src[i])
		}
	}
}

func TestUTF8CodecEncodeNoMem(t *testing.T) {
	c := newUTF8Codec(Strict)
	dst := make([]byte, 1)

	nSrc, nDst, res, err := c.Encode([]rune{0xE9, 'x'}, dst)
	if res != ResultNoMem || err != nil {
		t.Fatalf("Encode() res=%v err=%v, want NoMem", res, err)
	}
	if nSrc != 0 || nDst != 0 {
		t.Fatalf("Encode() consumed (%d,%d), want (0,0) since 0xE9 needs 2 bytes", nSrc, nDst)
	}
}

func TestUTF8CodecResetDropsPending(t *testing.T) {
	c := newUTF8Codec(Strict)
	// Feed a truncated lead byte, then Reset, then feed valid ASCII --
	// the pending truncated sequence must not resurface.
	buf := make([]rune, 4)
	_, _, res, _ := c.Decode([]byte{0xC3}, buf)
	if res != ResultNeedData {
		t.Fatalf("Decode() res=%v, want NeedData", res)
	}

	c.Reset()

	n, m, res, err := c.Decode([]byte("A"), buf)
	if res != ResultOK || err != nil || n != 1 || m != 1 || buf[0] != 'A' {
		t.Fatalf("Decode() after Reset = (%d,%d,%v,%v), want (1,1,OK,nil)", n, m, res, err)
	}
}
