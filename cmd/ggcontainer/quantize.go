package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tensorkeg/ggcontainer"
	"github.com/tensorkeg/ggcontainer/quant"
)

func newQuantizeCmd() *cobra.Command {
	var (
		inputPath  string
		outputPath string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "quantize",
		Short: "Re-encode every F32 tensor in a container under a target format",
		RunE: func(cmd *cobra.Command, args []string) error {
			targetType, err := parseQuantFormat(format)
			if err != nil {
				return err
			}

			meta, tensors, err := ggcontainer.Read(inputPath)
			if err != nil {
				return err
			}

			out := make([]ggcontainer.Tensor, len(tensors))
			for i, t := range tensors {
				if t.TypeCode != ggcontainer.TypeF32 {
					out[i] = t
					continue
				}
				n, err := t.ElementCount()
				if err != nil {
					return fmt.Errorf("tensor %q: %w", t.Name, err)
				}
				values, err := quant.DecodeF32(t.Payload, n)
				if err != nil {
					return fmt.Errorf("tensor %q: %w", t.Name, err)
				}

				var payload []byte
				switch targetType {
				case ggcontainer.TypeQ4_0:
					payload = quant.EncodeQ4_0(values)
				case ggcontainer.TypeQ5_1:
					payload = quant.EncodeQ5_1(values)
				}
				out[i] = ggcontainer.NewTensor(t.Name, targetType, t.Dims, payload)
			}

			meta.Set("quantized", ggcontainer.NewBoolValue(true))
			meta.Set("quantization_format", ggcontainer.NewStringValue(ggcontainer.TypeName(targetType)))

			ggcontainer.AnnotateChecksums(meta, out)
			if err := ggcontainer.Write(outputPath, meta, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", outputPath, format)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input container file path")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output container file path")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Target quantization format (Q4_0|Q5_1)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	_ = cmd.MarkFlagRequired("format")

	return cmd
}

func parseQuantFormat(s string) (uint32, error) {
	switch strings.ToUpper(s) {
	case "Q4_0":
		return ggcontainer.TypeQ4_0, nil
	case "Q5_1":
		return ggcontainer.TypeQ5_1, nil
	default:
		return 0, fmt.Errorf("unknown quantization format %q (want Q4_0 or Q5_1)", s)
	}
}
