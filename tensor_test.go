package ggcontainer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_TypeName(t *testing.T) {
	assert.Equal(t, "F32", TypeName(TypeF32))
	assert.Equal(t, "Q4_0", TypeName(TypeQ4_0))
	assert.Equal(t, "Q5_1", TypeName(TypeQ5_1))
	assert.Equal(t, "type7", TypeName(7))
}

func Test_Tensor_ElementCount(t *testing.T) {
	cases := []struct {
		dims []uint64
		want uint64
	}{
		{nil, 1},
		{[]uint64{}, 1},
		{[]uint64{5}, 5},
		{[]uint64{2, 3, 4}, 24},
	}
	for _, tc := range cases {
		tensor := NewTensor("t", TypeF32, tc.dims, nil)
		got, err := tensor.ElementCount()
		assert.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func Test_NewTensor_copiesSlices(t *testing.T) {
	dims := []uint64{1, 2}
	payload := []byte{1, 2, 3}
	tensor := NewTensor("t", TypeF32, dims, payload)

	dims[0] = 99
	payload[0] = 99

	assert.EqualValues(t, 1, tensor.Dims[0])
	assert.EqualValues(t, 1, tensor.Payload[0])
}
