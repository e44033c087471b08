package ggcontainer

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zstd"
)

// TypedValue is a closed tagged union over the 15 metadata value kinds
// defined by ValueKind, plus an Unknown fallback that preserves a raw
// kind byte. Such a value is never produced by this module's own reader
// or constructors; a caller that somehow holds one (for example, one
// built by hand for a test) can still pass it to WriteTo without the
// library panicking. WriteTo emits only its kind byte, and a reader
// halts metadata parsing when it meets that code, so the entry does
// not survive a round trip.
type TypedValue struct {
	kind ValueKind

	str    string
	strArr []string
	bin    []byte
	u      uint64
	i      int64
	f      float64
	b      bool
}

// Kind reports the wire kind of the value.
func (v TypedValue) Kind() ValueKind { return v.kind }

func NewStringValue(s string) TypedValue      { return TypedValue{kind: KindString, str: s} }
func NewU8Value(x uint8) TypedValue           { return TypedValue{kind: KindU8, u: uint64(x)} }
func NewI8Value(x int8) TypedValue            { return TypedValue{kind: KindI8, i: int64(x)} }
func NewU16Value(x uint16) TypedValue         { return TypedValue{kind: KindU16, u: uint64(x)} }
func NewI16Value(x int16) TypedValue          { return TypedValue{kind: KindI16, i: int64(x)} }
func NewU32Value(x uint32) TypedValue         { return TypedValue{kind: KindU32, u: uint64(x)} }
func NewI32Value(x int32) TypedValue          { return TypedValue{kind: KindI32, i: int64(x)} }
func NewU64Value(x uint64) TypedValue         { return TypedValue{kind: KindU64, u: x} }
func NewBoolValue(x bool) TypedValue          { return TypedValue{kind: KindBool, b: x} }
func NewI64Value(x int64) TypedValue          { return TypedValue{kind: KindI64, i: x} }
func NewF64Value(x float64) TypedValue        { return TypedValue{kind: KindF64, f: x} }
func NewF32Value(x float32) TypedValue        { return TypedValue{kind: KindF32, f: float64(x)} }
func NewStringArrayValue(xs []string) TypedValue {
	cp := make([]string, len(xs))
	copy(cp, xs)
	return TypedValue{kind: KindStringArray, strArr: cp}
}
func NewBinaryValue(b []byte) TypedValue {
	cp := make([]byte, len(b))
	copy(cp, b)
	return TypedValue{kind: KindBinary, bin: cp}
}

// newUnknownValue builds an Unknown(code) value. Unexported: callers
// outside this module cannot construct one, since the wire format has
// no byte sequence that means "a value of unknown kind" — only a
// reader that has already halted parsing upon encountering one can
// meaningfully hand it back.
func newUnknownValue(code uint8) TypedValue {
	return TypedValue{kind: ValueKind(code), u: uint64(code)}
}

// String returns the value and true if Kind() == KindString.
func (v TypedValue) String() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// U8 returns the value and true if Kind() == KindU8.
func (v TypedValue) U8() (uint8, bool) {
	if v.kind != KindU8 {
		return 0, false
	}
	return uint8(v.u), true
}

// I8 returns the value and true if Kind() == KindI8.
func (v TypedValue) I8() (int8, bool) {
	if v.kind != KindI8 {
		return 0, false
	}
	return int8(v.i), true
}

// U16 returns the value and true if Kind() == KindU16.
func (v TypedValue) U16() (uint16, bool) {
	if v.kind != KindU16 {
		return 0, false
	}
	return uint16(v.u), true
}

// I16 returns the value and true if Kind() == KindI16.
func (v TypedValue) I16() (int16, bool) {
	if v.kind != KindI16 {
		return 0, false
	}
	return int16(v.i), true
}

// U32 returns the value and true if Kind() == KindU32.
func (v TypedValue) U32() (uint32, bool) {
	if v.kind != KindU32 {
		return 0, false
	}
	return uint32(v.u), true
}

// I32 returns the value and true if Kind() == KindI32.
func (v TypedValue) I32() (int32, bool) {
	if v.kind != KindI32 {
		return 0, false
	}
	return int32(v.i), true
}

// U64 returns the value and true if Kind() == KindU64.
func (v TypedValue) U64() (uint64, bool) {
	if v.kind != KindU64 {
		return 0, false
	}
	return v.u, true
}

// Bool returns the value and true if Kind() == KindBool.
func (v TypedValue) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// I64 returns the value and true if Kind() == KindI64.
func (v TypedValue) I64() (int64, bool) {
	if v.kind != KindI64 {
		return 0, false
	}
	return v.i, true
}

// F64 returns the value and true if Kind() == KindF64.
func (v TypedValue) F64() (float64, bool) {
	if v.kind != KindF64 {
		return 0, false
	}
	return v.f, true
}

// F32 returns the value and true if Kind() == KindF32.
func (v TypedValue) F32() (float32, bool) {
	if v.kind != KindF32 {
		return 0, false
	}
	return float32(v.f), true
}

// StringArray returns the value and true if Kind() == KindStringArray.
// The returned slice is not a copy: mutating it mutates the value.
func (v TypedValue) StringArray() ([]string, bool) {
	if v.kind != KindStringArray {
		return nil, false
	}
	return v.strArr, true
}

// Binary returns the value and true if Kind() == KindBinary.
// The returned slice is not a copy: mutating it mutates the value.
func (v TypedValue) Binary() ([]byte, bool) {
	if v.kind != KindBinary {
		return nil, false
	}
	return v.bin, true
}

// CompressBinary returns a new Binary value holding the zstd-compressed
// form of v's bytes. Returns an error (not ok=false) if v is not a
// Binary value, since a caller passing the wrong kind is a programming
// mistake rather than a data condition.
func (v TypedValue) CompressBinary() (TypedValue, error) {
	raw, ok := v.Binary()
	if !ok {
		return TypedValue{}, fmt.Errorf("ggcontainer: CompressBinary called on a %s value", v.kind)
	}
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		return TypedValue{}, fmt.Errorf("ggcontainer: zstd writer: %w", err)
	}
	if _, err := enc.Write(raw); err != nil {
		enc.Close()
		return TypedValue{}, fmt.Errorf("ggcontainer: zstd compress: %w", err)
	}
	if err := enc.Close(); err != nil {
		return TypedValue{}, fmt.Errorf("ggcontainer: zstd compress: %w", err)
	}
	return NewBinaryValue(buf.Bytes()), nil
}

// DecompressBinary returns a new Binary value holding the
// zstd-decompressed form of v's bytes.
func (v TypedValue) DecompressBinary() (TypedValue, error) {
	raw, ok := v.Binary()
	if !ok {
		return TypedValue{}, fmt.Errorf("ggcontainer: DecompressBinary called on a %s value", v.kind)
	}
	dec, err := zstd.NewReader(bytes.NewReader(raw))
	if err != nil {
		return TypedValue{}, fmt.Errorf("ggcontainer: zstd reader: %w", err)
	}
	defer dec.Close()
	out, err := io.ReadAll(dec)
	if err != nil {
		return TypedValue{}, fmt.Errorf("ggcontainer: zstd decompress: %w", err)
	}
	return NewBinaryValue(out), nil
}

// Interface returns the value boxed as any, for presentation purposes
// (CLI printing, logging) where the caller does not need to know the
// kind ahead of time.
func (v TypedValue) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindU8:
		return uint8(v.u)
	case KindI8:
		return int8(v.i)
	case KindU16:
		return uint16(v.u)
	case KindI16:
		return int16(v.i)
	case KindU32:
		return uint32(v.u)
	case KindI32:
		return int32(v.i)
	case KindU64:
		return v.u
	case KindBool:
		return v.b
	case KindI64:
		return v.i
	case KindF64:
		return v.f
	case KindF32:
		return float32(v.f)
	case KindStringArray:
		return v.strArr
	case KindBinary:
		return v.bin
	default:
		return nil
	}
}

// writeTo emits the key, kind byte, and kind-dependent payload per the
// wire table for ValueKind.
func (v TypedValue) writeTo(w io.Writer, key string) error {
	if err := writeString(w, key); err != nil {
		return fmt.Errorf("failed to write metadata key %q: %w", key, err)
	}
	if _, err := w.Write([]byte{byte(v.kind)}); err != nil {
		return fmt.Errorf("failed to write kind byte for key %q: %w", key, err)
	}

	switch v.kind {
	case KindString:
		return writeString(w, v.str)
	case KindU8:
		return writeU8(w, uint8(v.u))
	case KindI8:
		return writeU8(w, uint8(v.i))
	case KindU16:
		return writeLE(w, uint16(v.u))
	case KindI16:
		return writeLE(w, uint16(v.i))
	case KindU32:
		return writeLE(w, uint32(v.u))
	case KindI32:
		return writeLE(w, uint32(v.i))
	case KindU64:
		return writeLE(w, v.u)
	case KindBool:
		b := uint8(0)
		if v.b {
			b = 1
		}
		return writeU8(w, b)
	case KindI64:
		return writeLE(w, uint64(v.i))
	case KindF64:
		return writeLE(w, math.Float64bits(v.f))
	case KindF32:
		return writeLE(w, math.Float32bits(float32(v.f)))
	case KindStringArray:
		if err := writeLE(w, uint64(len(v.strArr))); err != nil {
			return err
		}
		for _, s := range v.strArr {
			if err := writeString(w, s); err != nil {
				return err
			}
		}
		return nil
	case KindBinary:
		return writeBytes(w, v.bin)
	default:
		// Unknown(code): the kind byte itself carries the code; there is
		// no payload to write, matching how the reader halts before ever
		// trying to size one.
		return nil
	}
}

func writeString(w io.Writer, s string) error {
	if err := writeLE(w, uint64(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func writeBytes(w io.Writer, b []byte) error {
	if err := writeLE(w, uint64(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

func writeU8(w io.Writer, b byte) error {
	_, err := w.Write([]byte{b})
	return err
}

func writeLE[T uint16 | uint32 | uint64](w io.Writer, v T) error {
	return binary.Write(w, binary.LittleEndian, v)
}
