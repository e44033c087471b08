package ggcontainer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_WriteTo_emitsVersion2(t *testing.T) {
	f := &memFile{}
	require.NoError(t, WriteTo(f, NewMetadata(), nil))

	assert.Equal(t, magicBytes[:], f.data[:4])
	version, err := readLE[uint32](&memFile{data: f.data[4:8]})
	require.NoError(t, err)
	assert.EqualValues(t, ContainerVersion, version)
}

func Test_WriteTo_backpatchesRealOffsets(t *testing.T) {
	tensors := []Tensor{
		NewTensor("v", TypeF32, []uint64{2}, f32Bytes(1, 2)),
	}
	f := &memFile{}
	require.NoError(t, WriteTo(f, NewMetadata(), tensors))
	f.pos = 0

	_, got, err := ReadFrom(f)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotZero(t, got[0].DataOffset)
	assert.Less(t, got[0].DataOffset, uint64(len(f.data)))
}
