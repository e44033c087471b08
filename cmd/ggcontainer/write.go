package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tensorkeg/ggcontainer"
	"github.com/tensorkeg/ggcontainer/huggingfaceconfig"
	"github.com/tensorkeg/ggcontainer/quant"
	"github.com/tensorkeg/ggcontainer/safetensors"
)

// tensorDef is the JSON shape for a plain-float tensor definition:
// values are always stored F32, type is always TypeF32.
type tensorDef struct {
	Name   string    `json:"name"`
	Dims   []uint64  `json:"dims"`
	Values []float32 `json:"values"`
}

func newWriteCmd() *cobra.Command {
	var (
		metadataPath    string
		tensorsPath     string
		safetensorsPath string
		hfConfigPath    string
		outputPath      string
	)

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Assemble a container from metadata and tensors",
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := loadMetadataJSON(metadataPath)
			if err != nil {
				return err
			}

			if hfConfigPath != "" {
				raw, err := os.ReadFile(hfConfigPath)
				if err != nil {
					return fmt.Errorf("read hf config: %w", err)
				}
				var doc map[string]any
				if err := json.Unmarshal(raw, &doc); err != nil {
					logrus.WithError(err).Warn("failed to parse huggingface config, continuing without it")
				} else {
					for _, nv := range huggingfaceconfig.Promote(doc) {
						meta.Set(nv.Key, nv.Value)
					}
				}
			}

			var tensors []ggcontainer.Tensor
			switch {
			case safetensorsPath != "":
				blob, err := os.ReadFile(safetensorsPath)
				if err != nil {
					return fmt.Errorf("read safetensors file: %w", err)
				}
				result, err := safetensors.Ingest(blob)
				if err != nil {
					return fmt.Errorf("ingest safetensors: %w", err)
				}
				tensors = result.Tensors
				if !result.AllWereF32 {
					logrus.Info("one or more tensors were widened to F32 from a narrower source dtype")
				}
			case tensorsPath != "":
				tensors, err = loadTensorsJSON(tensorsPath)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("no tensor input provided: pass --tensors or --safetensors")
			}

			if activeCfg.AnnotateChecksums {
				ggcontainer.AnnotateChecksums(meta, tensors)
			}
			if activeCfg.CompressMetadata {
				compressBinaryEntries(meta)
			}

			if err := ggcontainer.Write(outputPath, meta, tensors); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&metadataPath, "metadata", "m", "", "Path to metadata JSON")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output container file path")
	cmd.Flags().StringVarP(&tensorsPath, "tensors", "t", "", "Path to tensor definitions in JSON")
	cmd.Flags().StringVarP(&safetensorsPath, "safetensors", "s", "", "Path to tensors in safetensors format")
	cmd.Flags().StringVar(&hfConfigPath, "config", "", "Path to a HuggingFace config.json to promote into metadata")
	_ = cmd.MarkFlagRequired("metadata")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func loadMetadataJSON(path string) (*ggcontainer.Metadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata file: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("parse metadata JSON: %w", err)
	}

	meta := ggcontainer.NewMetadata()
	for key, v := range fields {
		value, ok := jsonToTypedValue(v)
		if !ok {
			logrus.WithField("key", key).Warn("skipping unsupported metadata value")
			continue
		}
		meta.Set(key, value)
	}
	return meta, nil
}

func jsonToTypedValue(v any) (ggcontainer.TypedValue, bool) {
	switch x := v.(type) {
	case string:
		return ggcontainer.NewStringValue(x), true
	case bool:
		return ggcontainer.NewBoolValue(x), true
	case float64:
		if x == float64(uint64(x)) && x >= 0 {
			return ggcontainer.NewU64Value(uint64(x)), true
		}
		return ggcontainer.NewF64Value(x), true
	default:
		return ggcontainer.TypedValue{}, false
	}
}

func loadTensorsJSON(path string) ([]ggcontainer.Tensor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tensors file: %w", err)
	}
	var defs []tensorDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return nil, fmt.Errorf("parse tensors JSON: %w", err)
	}

	tensors := make([]ggcontainer.Tensor, len(defs))
	for i, def := range defs {
		tensors[i] = ggcontainer.NewTensor(def.Name, ggcontainer.TypeF32, def.Dims, quant.EncodeF32(def.Values))
	}
	return tensors, nil
}

func compressBinaryEntries(meta *ggcontainer.Metadata) {
	for _, key := range meta.Keys() {
		v, _ := meta.Get(key)
		if v.Kind() != ggcontainer.KindBinary {
			continue
		}
		compressed, err := v.CompressBinary()
		if err != nil {
			logrus.WithError(err).WithField("key", key).Warn("failed to compress binary metadata entry")
			continue
		}
		meta.Set(key, compressed)
	}
}
