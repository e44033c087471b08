package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	require.NoError(t, err, "output: %s", out.String())
	return out.String()
}

func Test_CLI_write_inspect_validate_roundtrip(t *testing.T) {
	dir := t.TempDir()

	metaPath := filepath.Join(dir, "meta.json")
	tensorsPath := filepath.Join(dir, "tensors.json")
	outPath := filepath.Join(dir, "out.gguf")

	metaJSON, err := json.Marshal(map[string]any{
		"quantization_format": "F32",
		"vocab_size":          32000,
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(metaPath, metaJSON, 0o644))

	tensorsJSON, err := json.Marshal([]tensorDef{
		{Name: "w", Dims: []uint64{4}, Values: []float32{1, 2, 3, 4}},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(tensorsPath, tensorsJSON, 0o644))

	runCLI(t, "write", "-m", metaPath, "-t", tensorsPath, "-o", outPath)

	inspectOut := runCLI(t, "inspect", outPath)
	assert.Contains(t, inspectOut, "w")
	assert.Contains(t, inspectOut, "F32")

	validateOut := runCLI(t, "validate", outPath)
	assert.Contains(t, validateOut, "ok:")
}

func Test_CLI_quantize_producesQ4_0(t *testing.T) {
	dir := t.TempDir()

	metaPath := filepath.Join(dir, "meta.json")
	tensorsPath := filepath.Join(dir, "tensors.json")
	f32Path := filepath.Join(dir, "f32.gguf")
	q4Path := filepath.Join(dir, "q4.gguf")

	require.NoError(t, os.WriteFile(metaPath, []byte(`{}`), 0o644))

	values := make([]float32, 32)
	for i := range values {
		values[i] = float32(i)
	}
	tensorsJSON, err := json.Marshal([]tensorDef{{Name: "w", Dims: []uint64{32}, Values: values}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(tensorsPath, tensorsJSON, 0o644))

	runCLI(t, "write", "-m", metaPath, "-t", tensorsPath, "-o", f32Path)
	runCLI(t, "quantize", "-i", f32Path, "-o", q4Path, "-f", "Q4_0")

	inspectOut := runCLI(t, "inspect", q4Path)
	assert.Contains(t, inspectOut, "Q4_0")
}

func Test_CLI_quantize_rejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	metaPath := filepath.Join(dir, "meta.json")
	require.NoError(t, os.WriteFile(metaPath, []byte(`{}`), 0o644))

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"quantize", "-i", metaPath, "-o", filepath.Join(dir, "x.gguf"), "-f", "bogus"})
	err := cmd.Execute()
	assert.Error(t, err)
}
