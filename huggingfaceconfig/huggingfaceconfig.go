// Package huggingfaceconfig promotes a subset of a Hugging Face
// config.json's already-decoded fields into typed metadata values,
// preserving the key's JSON name and converting each to the metadata
// kind the allow-list fixes for that field (U64, F64, Bool or String).
// Decoding config.json itself is the
// caller's job: this package only maps a JSON object already decoded
// into Go values.
package huggingfaceconfig

import (
	"github.com/tensorkeg/ggcontainer"
)

type converter func(any) (ggcontainer.TypedValue, bool)

// NamedValue pairs a promoted config.json key with its typed value.
type NamedValue struct {
	Key   string
	Value ggcontainer.TypedValue
}

// allowlist names every config.json field this module will copy into
// metadata, and how to convert its JSON value. Fields not named here
// are ignored even if present, since config.json carries far more
// than a container's metadata needs.
var allowlist = []struct {
	key     string
	convert converter
}{
	// architecture
	{"hidden_size", toU64},
	{"intermediate_size", toU64},
	{"num_attention_heads", toU64},
	{"num_hidden_layers", toU64},
	{"layer_norm_eps", toF64},
	{"tie_word_embeddings", toBool},
	{"kv_cache", toBool},
	{"rotary_dim", toU64},

	// tokenizer
	{"vocab_size", toU64},
	{"pad_token_id", toU64},
	{"bos_token_id", toU64},
	{"eos_token_id", toU64},
	{"unk_token", toString},
	{"cls_token", toString},
	{"sep_token", toString},
	{"mask_token", toString},
	{"add_prefix_space", toBool},

	// fine-tuning provenance
	{"fine_tuned_from", toString},
	{"fine_tune_dataset", toString},
	{"training_steps", toU64},
	{"learning_rate", toF64},
}

// Promote maps every allow-listed field present in doc (a config.json
// object already decoded into Go values, e.g. via encoding/json into
// map[string]any) to a NamedValue, skipping fields that are absent or
// whose JSON type doesn't match what the field expects. Unknown fields
// in doc are ignored.
func Promote(doc map[string]any) []NamedValue {
	var out []NamedValue
	for _, entry := range allowlist {
		raw, present := doc[entry.key]
		if !present {
			continue
		}
		value, ok := entry.convert(raw)
		if !ok {
			continue
		}
		out = append(out, NamedValue{Key: entry.key, Value: value})
	}
	return out
}

func toU64(v any) (ggcontainer.TypedValue, bool) {
	f, ok := v.(float64)
	if !ok || f < 0 || f != float64(uint64(f)) {
		return ggcontainer.TypedValue{}, false
	}
	return ggcontainer.NewU64Value(uint64(f)), true
}

func toF64(v any) (ggcontainer.TypedValue, bool) {
	f, ok := v.(float64)
	if !ok {
		return ggcontainer.TypedValue{}, false
	}
	return ggcontainer.NewF64Value(f), true
}

func toBool(v any) (ggcontainer.TypedValue, bool) {
	b, ok := v.(bool)
	if !ok {
		return ggcontainer.TypedValue{}, false
	}
	return ggcontainer.NewBoolValue(b), true
}

func toString(v any) (ggcontainer.TypedValue, bool) {
	s, ok := v.(string)
	if !ok {
		return ggcontainer.TypedValue{}, false
	}
	return ggcontainer.NewStringValue(s), true
}
