package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensorkeg/ggcontainer"
	"github.com/tensorkeg/ggcontainer/quant"
)

func f32Bytes(vs ...float32) []byte {
	var out []byte
	for _, v := range vs {
		out = append(out, quant.EncodeF32([]float32{v})...)
	}
	return out
}

func Test_Validate_allPass(t *testing.T) {
	meta := ggcontainer.NewMetadata()
	values := []float32{1, 2, 3, 4}
	tensors := []ggcontainer.Tensor{
		ggcontainer.NewTensor("w", ggcontainer.TypeF32, []uint64{4}, f32Bytes(values...)),
		ggcontainer.NewTensor("q", ggcontainer.TypeQ4_0, []uint64{4}, quant.EncodeQ4_0(values)),
	}

	report, err := Validate(meta, tensors)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Checked)
	assert.Empty(t, report.Skipped)
}

func Test_Validate_collectsFailuresAcrossTensors(t *testing.T) {
	meta := ggcontainer.NewMetadata()
	good := ggcontainer.NewTensor("good", ggcontainer.TypeF32, []uint64{1}, f32Bytes(1))
	// Q4_0 payload with a NaN scale in its only block.
	badPayload := make([]byte, 40)
	badPayload[0], badPayload[1], badPayload[2], badPayload[3] = 0, 0, 0xC0, 0x7F
	bad := ggcontainer.NewTensor("bad", ggcontainer.TypeQ4_0, []uint64{32}, badPayload)

	report, err := Validate(meta, []ggcontainer.Tensor{good, bad})
	require.Error(t, err)
	assert.Equal(t, 2, report.Checked)
	assert.Contains(t, err.Error(), "bad")
}

func Test_Validate_skipsUnrecognizedTypeCode(t *testing.T) {
	meta := ggcontainer.NewMetadata()
	mystery := ggcontainer.NewTensor("mystery", 999, []uint64{4}, make([]byte, 16))

	report, err := Validate(meta, []ggcontainer.Tensor{mystery})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Checked)
	assert.Equal(t, []string{"mystery"}, report.Skipped)
}

func Test_Validate_reportsChecksumMismatch(t *testing.T) {
	meta := ggcontainer.NewMetadata()
	tensor := ggcontainer.NewTensor("w", ggcontainer.TypeF32, []uint64{1}, f32Bytes(1))
	meta.Set(ggcontainer.ChecksumKey("w"), ggcontainer.NewU64Value(12345))

	_, err := Validate(meta, []ggcontainer.Tensor{tensor})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")
}
