// Package stream implements the InputStream of spec.md §4.4: a
// dual-buffer pipeline that accepts raw, document-encoded bytes, detects
// or accepts a declared encoding on first data, strips a matching
// byte-order mark, and exposes a peek/advance cursor over the canonical
// UTF-8 result -- with the ability to splice synthetic UTF-8 input
// directly at the cursor (spec.md "Insert contract", used by HTML's
// document.write-style re-entry).
package stream

import (
	parserutils "github.com/servo/libparserutils"
	"github.com/servo/libparserutils/buffer"
	"github.com/servo/libparserutils/charset"
)

// refillScratchSize bounds how many converted bytes a single refill
// produces before they are appended to the utf8 buffer. Purely a
// throughput knob -- each refill runs the filter once, which stops when
// raw is drained or the scratch fills, and Peek calls refill again as
// needed.
const refillScratchSize = 4096

// DetectFunc sniffs an initial charset from the first chunk of raw,
// undecoded bytes (spec.md §4.4 step 1). It returns ok == false to
// decline, in which case the stream falls back to its default (UTF-8,
// encSrc 0).
type DetectFunc func(data []byte) (mib uint16, encSrc uint32, ok bool)

// PeekResult distinguishes the three outcomes of Peek: a character is
// available (PeekOK), the stream is exhausted (PeekEOF), or more bytes
// could still arrive later (PeekOOD, "out of data") (spec.md §4.4).
type PeekResult int

const (
	PeekOK PeekResult = iota
	PeekEOF
	PeekOOD

	// PeekInvalid reports a Strict-mode codec's ill-formed/unrepresentable
	// input (spec.md §8 boundary: "in Strict equivalent, Invalid"), or, in
	// any mode, a failure to set up the stream's encoding on the first
	// chunk (an unknown MIB or one no codec supports). The underlying
	// error is available from Err(). A Loose-mode stream substitutes
	// U+FFFD for ill-formed input instead of reporting it.
	PeekInvalid
)

// InputStream is spec.md §4.4's core state machine: Fresh -> Sniffing ->
// Streaming -> Drained. raw holds bytes not yet charset-converted; utf8
// holds the canonical result the cursor walks. Both are
// *buffer.Buffer rather than the spec's hand-rolled RawBuffer/Utf8Buffer,
// since buffer.Buffer already implements the same grow/append/discard
// contract (spec.md §6 "ByteBuffer").
type InputStream struct {
	registry *charset.Registry
	filter   *charset.Filter

	raw  *buffer.Buffer
	utf8 *buffer.Buffer

	cursor int

	hadEOF         bool
	doneFirstChunk bool

	mib    uint16
	encSrc uint32

	mode    charset.ErrorMode
	detect  DetectFunc
	flushed bool

	// err is a sticky error from a Strict-mode codec's ResultInvalid or
	// from a failed encoding setup on the first chunk. Once set, Peek
	// reports PeekInvalid on every call rather than retrying, since the
	// stream cannot make further progress on its own; a caller that wants
	// the underlying error calls Err(). SetEncoding clears it.
	err error

	listeners []Listener
}

const defaultUTF8Capacity = 4096

// New creates an InputStream. enc == "" means sniff (spec.md
// "inputstream_create(enc?, ...)"); otherwise enc is canonicalized
// immediately and used as the locked encoding once data arrives, with
// encSrc recorded as its priority. mode governs the codecs the stream
// constructs internally (Strict surfaces ill-formed/unrepresentable input
// as an error retrievable via Err; Loose substitutes U+FFFD, matching a
// browser-style parser's usual tolerance). detect may be nil.
func New(registry *charset.Registry, enc string, encSrc uint32, mode charset.ErrorMode, detect DetectFunc) (*InputStream, error) {
	s := &InputStream{
		registry: registry,
		raw:      buffer.New(),
		utf8:     buffer.NewWithCapacity(defaultUTF8Capacity),
		mode:     mode,
		detect:   detect,
	}

	if enc != "" {
		cn, ok := registry.Aliases().Canonicalise(enc)
		if !ok {
			return nil, parserutils.ErrBadEncoding
		}
		s.mib = cn.MIB
		s.encSrc = encSrc
	}

	return s, nil
}

// Append adds data to the raw buffer. Append(nil) marks EOF (spec.md
// "Append contract").
func (s *InputStream) Append(data []byte) error {
	if data == nil {
		s.hadEOF = true
		return nil
	}
	s.raw.Append(data)
	return nil
}

// Insert splices already-valid UTF-8 directly into the canonical buffer
// at the current cursor (spec.md "Insert contract"). The caller is
// responsible for data being well-formed UTF-8; InputStream does not
// re-validate it.
func (s *InputStream) Insert(data []byte) error {
	s.utf8.Insert(s.cursor, data)
	return nil
}

// ReadCharset returns the canonical name of the stream's current encoding
// and its priority class. Before any chunk has been processed and absent
// a constructor-supplied encoding, this reports "UTF-8" / 0 (spec.md
// §4.4 "Read-charset").
func (s *InputStream) ReadCharset() (string, uint32) {
	if s.mib == 0 {
		return "UTF-8", 0
	}
	if name, ok := s.registry.Aliases().NameFromMIB(s.mib); ok {
		return name, s.encSrc
	}
	return "UTF-8", 0
}

// Err returns the error behind the last PeekInvalid (a Strict-mode decode
// error or an encoding setup error), or nil. See the err field's doc
// comment.
func (s *InputStream) Err() error {
	return s.err
}

// SetEncoding retargets an already-streaming InputStream to a new source
// encoding (spec.md §8 "Encoding switch mid-stream"), e.g. after an
// HTML <meta charset> sniff overrides the stream's initial guess. It
// always resets the filter afterwards -- per spec.md §4.3 the caller
// would normally decide that, but a retained partial pivot decoded under
// the old encoding must never surface under the new one (spec.md §8: "no
// bytes of the prior encoding may surface after the switch"), so this
// method makes that call itself rather than leaving it optional.
func (s *InputStream) SetEncoding(name string, encSrc uint32) error {
	if !s.doneFirstChunk || s.filter == nil {
		return parserutils.ErrBadParm
	}

	if err := s.filter.SetEncoding(name); err != nil {
		return err
	}
	s.filter.Reset()

	cn, _ := s.registry.Aliases().Canonicalise(name)
	s.mib = cn.MIB
	s.encSrc = encSrc
	s.err = nil
	s.flushed = false

	s.notify(Event{Type: EventEncodingChanged, Encoding: cn.Name, MIB: cn.MIB})
	return nil
}

// Advance moves the cursor forward by n bytes of canonical UTF-8. n must
// not exceed the bytes currently available past the cursor; an overrun
// is a programmer error and panics immediately (spec.md §4.4, §7:
// "abort the process intentionally"), rather than returning an error.
func (s *InputStream) Advance(n int) error {
	if s.cursor == s.utf8.Len() {
		return nil
	}
	if n < 0 || n > s.utf8.Len()-s.cursor {
		panic("stream: advance beyond available data")
	}
	s.cursor += n
	return nil
}

// Peek looks offset bytes past the cursor without consuming them,
// refilling from raw as needed (spec.md §4.4 "Peek contract"). On
// PeekOK it returns the first byte of the character at that position and
// the character's full byte length (1 for ASCII, up to 4 for a
// multi-byte UTF-8 sequence); the returned pointer-equivalent is simply
// "still valid until the next Advance past it or the next Insert" exactly
// as spec.md §9's "opaque handle" alternative recommends for a language
// with checked aliasing.
func (s *InputStream) Peek(offset int) (byte, int, PeekResult) {
	if offset < 0 {
		panic("stream: negative peek offset")
	}

	for {
		if s.err != nil {
			return 0, 0, PeekInvalid
		}

		if pos := s.cursor + offset; pos < s.utf8.Len() {
			data := s.utf8.Bytes()
			b := data[pos]

			if b&0x80 == 0 {
				return b, 1, PeekOK
			}

			n := charset.UTF8SeqLen(b)
			if n == 0 {
				// Malformed lead byte; the invariant that utf8 only ever
				// holds well-formed UTF-8 (spec.md §8) means this can't
				// happen in practice, but a single byte still lets the
				// caller make progress rather than spinning.
				return b, 1, PeekOK
			}
			if pos+n <= s.utf8.Len() {
				return b, n, PeekOK
			}
			// The character's tail hasn't arrived yet; fall through to
			// the slow path to try to get it.
		}

		// raw is empty: either the stream is merely waiting on more input
		// (OOD), or it has already seen EOF and flushed (EOF), or it has
		// seen EOF but the source codec may still be holding a truncated
		// trailing sequence that a flush would resolve -- that last case
		// must fall through to refill() once before EOF is reported.
		if s.raw.Len() == 0 && (s.flushed || !s.hadEOF) {
			if s.hadEOF {
				return 0, 0, PeekEOF
			}
			return 0, 0, PeekOOD
		}

		if err := s.refill(); err != nil {
			s.err = err
			return 0, 0, PeekInvalid
		}
	}
}

// refill implements spec.md §4.4 "Ordinary refill" plus, on the very
// first call, the "Transition Sniffing -> Streaming" detection/BOM step.
func (s *InputStream) refill() error {
	if !s.doneFirstChunk {
		if err := s.beginFirstChunk(); err != nil {
			return err
		}
	}

	// Discard what the cursor has already consumed and realign to 0 --
	// the Go equivalent of spec.md's "slide utf8.data[cursor..length] to
	// offset 0": buffer.Buffer's Append already grows on demand, so there
	// is no separate doubling step to perform here.
	if s.cursor > 0 {
		s.utf8.Discard(0, s.cursor)
		s.cursor = 0
	}

	if s.raw.Len() == 0 {
		// Resolve any partial sequence the source codec is still holding
		// (spec.md §4.2.1/§4.2.2 "flush call") exactly once, now that no
		// more raw bytes will ever arrive -- otherwise a truncated final
		// sequence would sit in the codec forever and Peek would report
		// EOF without ever surfacing it.
		if s.hadEOF && !s.flushed {
			s.flushed = true

			var scratch [refillScratchSize]byte
			nOut, res, err := s.filter.Flush(scratch[:])
			if nOut > 0 {
				s.utf8.Append(scratch[:nOut])
			}
			if res == charset.ResultInvalid {
				return err
			}
		}
		return nil
	}

	var scratch [refillScratchSize]byte
	nIn, nOut, res, err := s.filter.Run(s.raw.Bytes(), scratch[:])

	if nOut > 0 {
		s.utf8.Append(scratch[:nOut])
	}
	if nIn > 0 {
		s.raw.Discard(0, nIn)
	}

	if res == charset.ResultInvalid {
		return err
	}

	return nil
}

// beginFirstChunk resolves the stream's encoding (constructor-supplied,
// detected, or default UTF-8), strips a matching BOM, and builds the
// Filter the rest of the stream's life uses (spec.md §4.4 "Transition
// Sniffing -> Streaming").
func (s *InputStream) beginFirstChunk() error {
	raw := s.raw.Bytes()

	if s.mib == 0 {
		if s.detect != nil {
			if mib, encSrc, ok := s.detect(raw); ok {
				s.mib = mib
				s.encSrc = encSrc
			}
		}
		if s.mib == 0 {
			s.mib = charset.MIBUTF8
			s.encSrc = 0
		}
	}

	// The generic "UTF-16" MIB names no byte order of its own (spec.md
	// §4.2.2): resolve it to the concrete BE/LE variant by sniffing the
	// leading bytes for a BOM before the alias lookup below, which would
	// otherwise hand the Filter a MIB that newUTF16Codec always treats as
	// big-endian regardless of the stream's actual byte order.
	if s.mib == charset.MIBUTF16 {
		s.mib = resolveGenericUTF16(raw)
	}

	name, ok := s.registry.Aliases().NameFromMIB(s.mib)
	if !ok {
		return parserutils.ErrBadEncoding
	}

	filter, err := charset.NewFilter(s.registry, name, s.mode)
	if err != nil {
		return err
	}
	s.filter = filter

	if n := stripBOM(s.mib, raw); n > 0 {
		s.raw.Discard(0, n)
		s.notify(Event{Type: EventBOMStripped, Encoding: name, MIB: s.mib})
	}

	s.doneFirstChunk = true
	s.notify(Event{Type: EventEncodingDetected, Encoding: name, MIB: s.mib})
	return nil
}
