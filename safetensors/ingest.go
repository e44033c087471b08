package safetensors

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/tensorkeg/ggcontainer"
)

// headerEntry mirrors one tensor's record in a safetensors header: a
// dtype name, a shape, and a [start, end) byte range into the data
// segment that follows the header.
type headerEntry struct {
	DType       string   `json:"dtype"`
	Shape       []uint64 `json:"shape"`
	DataOffsets [2]uint64 `json:"data_offsets"`
}

// Result is the outcome of ingesting a safetensors blob.
type Result struct {
	Tensors   []ggcontainer.Tensor
	AllWereF32 bool
}

// Ingest parses a safetensors blob and converts every tensor it can
// into an F32-typed ggcontainer.Tensor. A dtype this module can't
// widen is skipped with a diagnostic rather than aborting the whole
// blob.
func Ingest(blob []byte) (Result, error) {
	if len(blob) < 8 {
		return Result{}, fmt.Errorf("safetensors: blob too short for header length")
	}
	headerLen := binary.LittleEndian.Uint64(blob[:8])
	if uint64(len(blob)) < 8+headerLen {
		return Result{}, fmt.Errorf("safetensors: blob shorter than declared header length")
	}

	var header map[string]json.RawMessage
	if err := json.Unmarshal(blob[8:8+headerLen], &header); err != nil {
		return Result{}, fmt.Errorf("safetensors: invalid header JSON: %w", err)
	}
	delete(header, "__metadata__")

	dataStart := 8 + headerLen
	result := Result{AllWereF32: true}

	for name, raw := range header {
		var entry headerEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return Result{}, fmt.Errorf("safetensors: tensor %q: invalid header entry: %w", name, err)
		}
		dtype, err := ParseDType(entry.DType)
		if err != nil {
			logrus.WithField("tensor", name).Warn("safetensors: unrecognized dtype, skipping")
			continue
		}

		start := dataStart + entry.DataOffsets[0]
		end := dataStart + entry.DataOffsets[1]
		if end > uint64(len(blob)) || start > end {
			return Result{}, fmt.Errorf("safetensors: tensor %q: data offsets out of range", name)
		}
		src := blob[start:end]

		payload, ok := widenToF32(dtype, src)
		if !ok {
			logrus.WithFields(logrus.Fields{"tensor": name, "dtype": dtype}).
				Warn("safetensors: unsupported source dtype, skipping")
			continue
		}
		if dtype != F32 {
			result.AllWereF32 = false
		}

		result.Tensors = append(result.Tensors, ggcontainer.NewTensor(name, ggcontainer.TypeF32, entry.Shape, payload))
	}

	return result, nil
}

// widenToF32 converts src (raw bytes of dtype) to little-endian F32
// bytes. ok is false for any dtype this module doesn't widen.
func widenToF32(dtype DType, src []byte) (payload []byte, ok bool) {
	switch dtype {
	case F32:
		out := make([]byte, len(src))
		copy(out, src)
		return out, true
	case F16:
		return widenHalves(src, func(bits uint16) float32 { return F16(bits).ToFloat32() }), true
	case BF16:
		return widenHalves(src, func(bits uint16) float32 { return BF16(bits).ToFloat32() }), true
	default:
		return nil, false
	}
}

func widenHalves(src []byte, toFloat32 func(uint16) float32) []byte {
	n := len(src) / 2
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		bits := binary.LittleEndian.Uint16(src[i*2:])
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(toFloat32(bits)))
	}
	return out
}
