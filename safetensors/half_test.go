package safetensors

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_F16_ToFloat32_knownValues(t *testing.T) {
	cases := map[F16]float32{
		0x3C00: 1.0,
		0xC000: -2.0,
		0x3800: 0.5,
		0x0000: 0.0,
		0x8000: float32(math.Copysign(0, -1)),
	}
	for bits, want := range cases {
		assert.Equal(t, want, bits.ToFloat32())
	}
}

func Test_F16_ToFloat32_subnormal(t *testing.T) {
	// smallest positive subnormal half, 2^-24
	got := F16(0x0001).ToFloat32()
	assert.InDelta(t, math.Pow(2, -24), float64(got), 1e-12)
}

func Test_F16_ToFloat32_infAndNaN(t *testing.T) {
	assert.True(t, math.IsInf(float64(F16(0x7C00).ToFloat32()), 1))
	assert.True(t, math.IsInf(float64(F16(0xFC00).ToFloat32()), -1))
	assert.True(t, math.IsNaN(float64(F16(0x7E00).ToFloat32())))
}

func Test_BF16_ToFloat32_knownValues(t *testing.T) {
	cases := map[BF16]float32{
		0x3F80: 1.0,
		0xC000: -2.0,
		0x0000: 0.0,
	}
	for bits, want := range cases {
		assert.Equal(t, want, bits.ToFloat32())
	}
}

func Test_BF16_ToFloat32_truncatesMantissa(t *testing.T) {
	// bf16 keeps only the top 16 bits of an f32, so widening back loses
	// the low mantissa bits that were never stored.
	original := float32(3.14159265)
	bits := uint16(math.Float32bits(original) >> 16)
	widened := BF16(bits).ToFloat32()
	assert.InDelta(t, original, widened, 0.01)
}
