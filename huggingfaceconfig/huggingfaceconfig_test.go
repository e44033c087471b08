package huggingfaceconfig

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

func find(values []NamedValue, key string) (NamedValue, bool) {
	for _, nv := range values {
		if nv.Key == key {
			return nv, true
		}
	}
	return NamedValue{}, false
}

func Test_Promote_copiesAllowlistedFields(t *testing.T) {
	doc := decode(t, `{
		"hidden_size": 4096,
		"layer_norm_eps": 1e-5,
		"tie_word_embeddings": false,
		"unk_token": "<unk>",
		"architectures": ["LlamaForCausalLM"]
	}`)

	values := Promote(doc)

	hiddenSize, ok := find(values, "hidden_size")
	require.True(t, ok)
	u, ok := hiddenSize.Value.U64()
	require.True(t, ok)
	assert.Equal(t, uint64(4096), u)

	unkToken, ok := find(values, "unk_token")
	require.True(t, ok)
	s, ok := unkToken.Value.String()
	require.True(t, ok)
	assert.Equal(t, "<unk>", s)

	_, ok = find(values, "architectures")
	assert.False(t, ok, "non-allowlisted field must not be promoted")
}

func Test_Promote_skipsTypeMismatch(t *testing.T) {
	doc := decode(t, `{"hidden_size": "not a number"}`)

	values := Promote(doc)

	_, ok := find(values, "hidden_size")
	assert.False(t, ok)
}

func Test_Promote_negativeNotTreatedAsU64(t *testing.T) {
	doc := decode(t, `{"training_steps": -5, "learning_rate": -5}`)

	values := Promote(doc)

	_, ok := find(values, "training_steps")
	assert.False(t, ok, "negative value must not be coerced into u64")

	lr, ok := find(values, "learning_rate")
	require.True(t, ok)
	f, ok := lr.Value.F64()
	require.True(t, ok)
	assert.Equal(t, -5.0, f)
}

func Test_Promote_emptyDocument(t *testing.T) {
	values := Promote(map[string]any{})
	assert.Empty(t, values)
}
