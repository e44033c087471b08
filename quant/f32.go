package quant

// EncodeF32 concatenates little-endian 4-byte encodings of values.
func EncodeF32(values []float32) []byte {
	out := make([]byte, 4*len(values))
	for i, v := range values {
		putF32LE(out[i*4:], v)
	}
	return out
}

// DecodeF32 reads exactly n little-endian floats from payload.
// Trailing bytes beyond 4*n are ignored; a payload whose length isn't
// a multiple of 4 is InvalidBlock, and one shorter than 4*n is
// ShortRead.
func DecodeF32(payload []byte, n uint64) ([]float32, error) {
	if len(payload)%4 != 0 {
		return nil, &ErrInvalidBlock{Reason: "F32 payload length not a multiple of 4"}
	}
	if uint64(len(payload)) < 4*n {
		return nil, &ErrShortRead{Reason: "F32 payload shorter than 4*N"}
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = readF32LE(payload[i*4:])
	}
	return out, nil
}
