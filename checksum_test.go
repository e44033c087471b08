package ggcontainer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ChecksumKey_roundtrip(t *testing.T) {
	key := ChecksumKey("layer.0.weight")
	assert.Equal(t, "layer.0.weight.xxh64", key)

	name, ok := TensorNameFromChecksumKey(key)
	assert.True(t, ok)
	assert.Equal(t, "layer.0.weight", name)

	_, ok = TensorNameFromChecksumKey("layer.0.weight")
	assert.False(t, ok)
}

func Test_AnnotateChecksums_VerifyChecksums(t *testing.T) {
	tensors := []Tensor{
		NewTensor("a", TypeF32, []uint64{1}, f32Bytes(1)),
		NewTensor("b", TypeF32, []uint64{1}, f32Bytes(2)),
	}
	meta := NewMetadata()
	AnnotateChecksums(meta, tensors)

	assert.Empty(t, VerifyChecksums(meta, tensors))

	tensors[0].Payload = f32Bytes(999)
	errs := VerifyChecksums(meta, tensors)
	assert.Len(t, errs, 1)
}

func Test_VerifyChecksums_ignoresTensorsWithoutRecordedChecksum(t *testing.T) {
	tensors := []Tensor{NewTensor("a", TypeF32, []uint64{1}, f32Bytes(1))}
	meta := NewMetadata()
	assert.Empty(t, VerifyChecksums(meta, tensors))
}
