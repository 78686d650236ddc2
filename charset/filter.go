package charset

import parserutils "github.com/servo/libparserutils"

// defaultPivotCapacity bounds how many code points a single internal
// decode round produces before Run hands them to the target codec. It has
// no correctness role; a larger pivot just means fewer decode/encode
// round trips per Run call.
const defaultPivotCapacity = 256

// Filter composes a source codec's Decode with a target codec's Encode
// through a UCS-4 pivot, implementing spec.md §4.3: the single entry point
// an InputStream (or any caller) uses to reencode bytes from one charset
// into another -- almost always into UTF-8.
//
// Filter is stateful across calls in the same way a Codec is: a partial
// pivot batch that the target codec couldn't fully encode (dst exhausted)
// is carried into the next Run rather than dropped.
type Filter struct {
	registry *Registry
	mode     ErrorMode

	src Codec
	dst Codec

	pivot []rune
	carry []rune
}

// NewFilter builds a Filter that decodes from srcName (resolved through
// registry) and encodes to UTF-8. registry is retained so SetEncoding can
// later swap the read codec without the caller having to construct one
// itself.
func NewFilter(registry *Registry, srcName string, mode ErrorMode) (*Filter, error) {
	src, err := registry.NewCodec(srcName, mode)
	if err != nil {
		return nil, err
	}

	dst, err := registry.NewCodecForMIB(MIBUTF8, "UTF-8", mode)
	if err != nil {
		return nil, err
	}

	return &Filter{
		registry: registry,
		mode:     mode,
		src:      src,
		dst:      dst,
		pivot:    make([]rune, defaultPivotCapacity),
	}, nil
}

// SourceMIB returns the MIB enum of the codec currently reading input.
func (f *Filter) SourceMIB() uint16 { return f.src.MIB() }

// SetEncoding implements spec.md §4.3 setopt(SET_ENCODING, name): if name
// does not canonicalize, ErrBadEncoding. If the new canonical MIB equals
// the current read codec's MIB, this is a no-op success -- per spec.md §9
// Open Question, an unresolvable name and a resolvable-but-unrepresentable
// one are both reported as ErrBadEncoding, never distinguished. The write
// (UTF-8) codec is never replaced. The caller is responsible for calling
// Reset afterwards if it wants carried state cleared.
func (f *Filter) SetEncoding(name string) error {
	cn, ok := f.registry.Aliases().Canonicalise(name)
	if !ok {
		return parserutils.ErrBadEncoding
	}

	if cn.MIB == f.src.MIB() {
		return nil
	}

	next, err := f.registry.NewCodecForMIB(cn.MIB, cn.Name, f.mode)
	if err != nil {
		return parserutils.ErrBadEncoding
	}

	f.src = next
	return nil
}

// Reset drops any carried pivot state and resets both underlying codecs.
func (f *Filter) Reset() {
	f.carry = f.carry[:0]
	f.src.Reset()
	f.dst.Reset()
}

// Run decodes as much of in as fits through the pivot and target codec
// into out. It returns how much of in was consumed, how many bytes out
// now holds, and the same four-way Result any Codec method returns:
// ResultNeedData when in ends mid-sequence, ResultNoMem when out fills
// before everything decoded so far has been written -- which can happen
// even after all of in was consumed, the rest being carried (call again
// with a fresh out to continue),
// ResultInvalid when either codec rejects its input in Strict mode, and
// ResultOK once all of in has been consumed.
func (f *Filter) Run(in []byte, out []byte) (nIn, nOut int, res Result, err error) {
	if len(f.carry) > 0 {
		eSrc, eDst, eRes, eErr := f.dst.Encode(f.carry, out)
		nOut += eDst
		f.carry = f.carry[eSrc:]

		if eRes == ResultNoMem {
			return 0, nOut, ResultNoMem, nil
		}
		if eRes == ResultInvalid {
			return 0, nOut, ResultInvalid, eErr
		}
	}

	for nIn < len(in) {
		dSrc, dPivot, dRes, dErr := f.src.Decode(in[nIn:], f.pivot)
		nIn += dSrc

		if dPivot > 0 {
			eSrc, eDst, eRes, eErr := f.dst.Encode(f.pivot[:dPivot], out[nOut:])
			nOut += eDst

			if eSrc < dPivot {
				f.carry = append(f.carry[:0], f.pivot[eSrc:dPivot]...)
			}

			if eRes == ResultNoMem {
				return nIn, nOut, ResultNoMem, nil
			}
			if eRes == ResultInvalid {
				return nIn, nOut, ResultInvalid, eErr
			}
		}

		if dRes == ResultInvalid {
			return nIn, nOut, ResultInvalid, dErr
		}
		if dRes == ResultNeedData {
			return nIn, nOut, ResultNeedData, nil
		}
		// dRes == ResultOK or ResultNoMem (pivot was full this round):
		// loop again to either decode more input or drain the pivot we
		// just filled through the target codec.
	}

	return nIn, nOut, ResultOK, nil
}

// Flush resolves any partial sequence the source codec is still holding
// at end of stream into dst, the way a final decode(src_len=0) call does
// for a native codec (spec.md §4.2.1/§4.2.2: "A flush call... converts
// retained partial input into Invalid (Strict) or U+FFFD (Loose)"). A
// caller drains raw input through Run as usual and calls Flush exactly
// once, after appending EOF, to surface (or substitute) a truncated
// trailing sequence that would otherwise sit forever in the codec's
// internal state.
func (f *Filter) Flush(dst []byte) (nOut int, res Result, err error) {
	if len(f.carry) > 0 {
		eSrc, eDst, eRes, eErr := f.dst.Encode(f.carry, dst)
		nOut += eDst
		f.carry = f.carry[eSrc:]

		if eRes == ResultNoMem {
			return nOut, ResultNoMem, nil
		}
		if eRes == ResultInvalid {
			return nOut, ResultInvalid, eErr
		}
	}

	_, dPivot, dRes, dErr := f.src.Decode(nil, f.pivot)

	if dPivot > 0 {
		eSrc, eDst, eRes, eErr := f.dst.Encode(f.pivot[:dPivot], dst[nOut:])
		nOut += eDst

		if eSrc < dPivot {
			f.carry = append(f.carry[:0], f.pivot[eSrc:dPivot]...)
		}

		if eRes == ResultNoMem {
			return nOut, ResultNoMem, nil
		}
		if eRes == ResultInvalid {
			return nOut, ResultInvalid, eErr
		}
	}

	if dRes == ResultInvalid {
		return nOut, ResultInvalid, dErr
	}

	return nOut, ResultOK, nil
}
