package safetensors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_DType_String(t *testing.T) {
	assert.Equal(t, "F32", F32.String())
	assert.Equal(t, "BF16", BF16.String())
	assert.Contains(t, Unknown.String(), "Unknown")
}

func Test_ParseDType_roundtrip(t *testing.T) {
	for _, name := range []string{"BOOL", "U8", "I8", "I16", "U16", "F16", "BF16", "I32", "U32", "F32", "F64", "I64", "U64"} {
		dt, err := ParseDType(name)
		assert.NoError(t, err)
		assert.Equal(t, name, dt.String())
	}
}

func Test_ParseDType_invalid(t *testing.T) {
	_, err := ParseDType("COMPLEX128")
	assert.Error(t, err)
}
