package quant

// q4BlockHeaderLen is 2 little-endian f32s (scale, zero).
const q4BlockHeaderLen = 8

// q4DataLen is the fixed data-region length of one Q4_0 block: one
// byte per block slot, holding a single 4-bit quantized value in its
// low nibble. Every block, including a short final one, occupies this
// full width — the high bits of a slot past the real element count
// are left zero rather than the block being truncated, which is what
// keeps the encoded length a clean function of block count alone.
const q4DataLen = BlockSize

// q4BlockLen is the total encoded length of one Q4_0 block, full or
// short: 8-byte header plus the fixed 32-byte data region.
const q4BlockLen = q4BlockHeaderLen + q4DataLen

// EncodeQ4_0 quantizes values into the Q4_0 block format: each run of
// up to 32 elements gets its own (scale, zero) pair and a fixed
// 32-byte data region holding one quantized nibble per byte (low bits
// only; the rest of the byte is zero). A short final block still
// consumes the full 40-byte block footprint, with unused slots zeroed.
func EncodeQ4_0(values []float32) []byte {
	numBlocks := ceilDivUint64(uint64(len(values)), BlockSize)
	out := make([]byte, 0, numBlocks*q4BlockLen)

	for start := 0; start < len(values); start += BlockSize {
		end := start + BlockSize
		if end > len(values) {
			end = len(values)
		}
		block := values[start:end]

		lo, hi := blockRange(block)
		rng := hi - lo
		if rng < 1e-6 {
			rng = 1e-6
		}
		scale := rng / 15

		header := make([]byte, q4BlockHeaderLen)
		putF32LE(header[0:4], scale)
		putF32LE(header[4:8], lo)
		out = append(out, header...)

		data := make([]byte, q4DataLen)
		for i, x := range block {
			data[i] = byte(clampRound(float64((x-lo)/scale), 0, 15))
		}
		out = append(out, data...)
	}
	return out
}

// DecodeQ4_0 reproduces n floats from a Q4_0-encoded payload. Each
// block is read as up to q4DataLen bytes bounded by remaining input;
// the target element count n, not payload length, is what stops
// emission, so a short final block's padding slots are never touched.
func DecodeQ4_0(payload []byte, n uint64) ([]float32, error) {
	out := make([]float32, 0, n)
	pos := 0

	for uint64(len(out)) < n {
		if pos+q4BlockHeaderLen > len(payload) {
			return nil, &ErrShortRead{Reason: "Q4_0 block header truncated"}
		}
		scale := readF32LE(payload[pos : pos+4])
		zero := readF32LE(payload[pos+4 : pos+8])
		pos += q4BlockHeaderLen

		if !isFiniteNonZero(scale) {
			return nil, &ErrInvalidScale{Scale: scale}
		}

		remaining := len(payload) - pos
		dataLen := q4DataLen
		if remaining < dataLen {
			dataLen = remaining
		}
		data := payload[pos : pos+dataLen]
		pos += dataLen

		for _, b := range data {
			if uint64(len(out)) >= n {
				break
			}
			out = append(out, scale*float32(b&0x0F)+zero)
		}
	}
	return out, nil
}
