// Package safetensors ingests tensors from a safetensors-format blob,
// widening any source dtype this module understands to little-endian
// F32 bytes.
package safetensors

import "fmt"

// DType identifies the storage type of a tensor inside a safetensors
// file. Every dtype the format defines is named as a constant and
// parseable via ParseDType, but only F32, F16 and BF16 can be widened
// to F32; Ingest skips a tensor of any other dtype (BOOL, integers,
// F64).
type DType uint8

const (
	Unknown DType = iota
	BOOL
	U8
	I8
	I16
	U16
	F16
	BF16
	I32
	U32
	F32
	F64
	I64
	U64
)

var dTypeToString = map[DType]string{
	BOOL: "BOOL",
	U8:   "U8",
	I8:   "I8",
	I16:  "I16",
	U16:  "U16",
	F16:  "F16",
	BF16: "BF16",
	I32:  "I32",
	U32:  "U32",
	F32:  "F32",
	F64:  "F64",
	I64:  "I64",
	U64:  "U64",
}

var stringToDType = func() map[string]DType {
	m := make(map[string]DType, len(dTypeToString))
	for dt, s := range dTypeToString {
		m[s] = dt
	}
	return m
}()

// String returns dt's safetensors JSON spelling.
func (dt DType) String() string {
	if s, ok := dTypeToString[dt]; ok {
		return s
	}
	return fmt.Sprintf("Unknown(%d)", uint8(dt))
}

// ParseDType parses a safetensors JSON dtype string.
func ParseDType(s string) (DType, error) {
	if dt, ok := stringToDType[s]; ok {
		return dt, nil
	}
	return 0, fmt.Errorf("safetensors: invalid dtype string %q", s)
}
