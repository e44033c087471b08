package ggcontainer

import "strconv"

// Type codes for the tensor formats this module can decode. Any other
// code is accepted verbatim by Reader/Writer but is not decodable.
const (
	TypeF32  uint32 = 0
	TypeQ4_0 uint32 = 100
	TypeQ5_1 uint32 = 101
)

// TypeName returns a short display name for a known type code, or
// "type<code>" for an unrecognized one.
func TypeName(typeCode uint32) string {
	switch typeCode {
	case TypeF32:
		return "F32"
	case TypeQ4_0:
		return "Q4_0"
	case TypeQ5_1:
		return "Q5_1"
	default:
		return "type" + strconv.FormatUint(uint64(typeCode), 10)
	}
}

// Tensor is the in-memory form of one tensor directory entry plus its
// payload. Payload is always the raw encoded bytes for TypeCode;
// higher-level float views are derived on demand by the quant
// package's decoders, never stored alongside.
//
// A Tensor is immutable once constructed: quantizing a Tensor produces
// a new Tensor rather than mutating the source.
type Tensor struct {
	Name       string
	TypeCode   uint32
	Dims       []uint64
	Payload    []byte
	DataOffset uint64
}

// NewTensor constructs a Tensor, copying dims and payload so later
// mutation of the caller's slices cannot corrupt the tensor.
func NewTensor(name string, typeCode uint32, dims []uint64, payload []byte) Tensor {
	dimsCopy := make([]uint64, len(dims))
	copy(dimsCopy, dims)
	payloadCopy := make([]byte, len(payload))
	copy(payloadCopy, payload)
	return Tensor{
		Name:     name,
		TypeCode: typeCode,
		Dims:     dimsCopy,
		Payload:  payloadCopy,
	}
}

// ElementCount returns Π dims[i], with the convention that an empty
// dims list yields 1.
func (t Tensor) ElementCount() (uint64, error) {
	return elementCount(t.Dims)
}
