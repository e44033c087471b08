package main

import (
	"github.com/tensorkeg/ggcontainer"
	"github.com/tensorkeg/ggcontainer/quant"
)

// decodeTensor decodes t's payload to float32 values if its type code
// is one this tree understands, returning a nil slice (no error) for
// an unrecognized type code.
func decodeTensor(t ggcontainer.Tensor, n uint64) ([]float32, error) {
	switch t.TypeCode {
	case ggcontainer.TypeF32:
		return quant.DecodeF32(t.Payload, n)
	case ggcontainer.TypeQ4_0:
		return quant.DecodeQ4_0(t.Payload, n)
	case ggcontainer.TypeQ5_1:
		return quant.DecodeQ5_1(t.Payload, n)
	default:
		return nil, nil
	}
}
