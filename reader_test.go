package ggcontainer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ReadFrom_shortHeader(t *testing.T) {
	f := &memFile{data: []byte("GGUF")}
	_, _, err := ReadFrom(f)
	assert.ErrorIs(t, err, ErrShortRead)
}

func Test_ReadFrom_tensorPayloadSplitByOffsets(t *testing.T) {
	tensors := []Tensor{
		NewTensor("a", TypeF32, []uint64{1}, f32Bytes(1)),
		NewTensor("b", TypeF32, []uint64{1}, f32Bytes(2)),
	}
	f := &memFile{}
	require.NoError(t, WriteTo(f, NewMetadata(), tensors))
	f.pos = 0

	_, got, err := ReadFrom(f)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, f32Bytes(1), got[0].Payload)
	assert.Equal(t, f32Bytes(2), got[1].Payload)
}

func Test_readString_lossyUTF8(t *testing.T) {
	f := &memFile{}
	// length-prefixed invalid UTF-8 byte sequence.
	f.data = append(f.data, 1, 0, 0, 0, 0, 0, 0, 0, 0xff)
	s, err := readString(f)
	require.NoError(t, err)
	assert.NotEqual(t, "", s)
}
