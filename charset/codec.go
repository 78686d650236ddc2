package charset

// ErrorMode selects how a codec reacts to unrepresentable or ill-formed
// data (spec.md §4.2).
type ErrorMode int

const (
	// Strict returns ResultInvalid on any unrepresentable/ill-formed
	// input.
	Strict ErrorMode = iota

	// Loose substitutes U+FFFD on decode, and '?' (or U+FFFD for a
	// Unicode target) on encode.
	Loose

	// Translit is reserved; transliteration is a non-goal (spec.md §1),
	// so it behaves exactly like Loose.
	Translit
)

// Result is the outcome of a single Encode/Decode call, mirroring the
// four-way result discipline of spec.md §4.2 (Ok, NoMem, Invalid,
// NeedData).
type Result int

const (
	// ResultOK: all of src was consumed and the output fit in dst.
	ResultOK Result = iota

	// ResultNoMem: dst was exhausted; the caller must retry with a
	// larger dst. Bytes already reflected in the returned consumed count
	// are not re-presented on the next call.
	ResultNoMem

	// ResultInvalid: the next input is not representable (encode) or is
	// ill-formed (decode); the consumed count points at the offending
	// input.
	ResultInvalid

	// ResultNeedData: input ends mid-sequence; retained internally for
	// the next call.
	ResultNeedData
)

// Codec is the capability set every charset implementation exposes:
// encode (UCS-4 -> native bytes), decode (native bytes -> UCS-4), and
// reset. Implementations live behind this interface rather than a C-style
// vtable/tagged-union (spec.md §9 "Polymorphic codecs"): an interface is
// the idiomatic Go realization of the same capability set.
//
// The UCS-4 pivot is represented directly as []rune rather than as
// big-endian 4-byte groups in a byte buffer -- that packed representation
// in spec.md §3 exists to cross a C ABI boundary this Go module has no
// need to cross.
type Codec interface {
	// Decode consumes src (in the codec's native encoding) and produces
	// code points into dst. Returns the number of src bytes and dst
	// runes consumed/written, the result, and an error when Result is
	// ResultInvalid.
	Decode(src []byte, dst []rune) (nSrc, nDst int, res Result, err error)

	// Encode consumes src (UCS-4 code points) and produces the codec's
	// native bytes into dst. Returns the number of src runes and dst
	// bytes consumed/written, the result, and an error when Result is
	// ResultInvalid.
	Encode(src []rune, dst []byte) (nSrc, nDst int, res Result, err error)

	// Reset drops any retained partial input/output; after this call
	// behavior matches a freshly constructed codec with the same MIB and
	// error mode.
	Reset()

	// MIB returns this codec's encoding identity. It never changes after
	// construction (spec.md §3): to switch encodings, construct a new
	// codec.
	MIB() uint16

	// SetErrorMode changes how this codec reacts to unrepresentable or
	// ill-formed data.
	SetErrorMode(mode ErrorMode)
}
