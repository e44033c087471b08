package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tensorkeg/ggcontainer"
)

// previewLen caps how many decoded float values "inspect" prints per
// tensor; real tensors run into the millions of elements and a full
// dump would be unreadable.
const previewLen = 8

func newInspectCmd() *cobra.Command {
	var decompressMetadata bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print a container's metadata and tensor directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, tensors, err := ggcontainer.Read(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version: %d\n", ggcontainer.ContainerVersion)
			fmt.Fprintf(out, "tensor count: %d\n", len(tensors))
			fmt.Fprintf(out, "metadata count: %d\n\n", meta.Len())

			for i, key := range meta.Sorted() {
				v, _ := meta.Get(key)
				display := v
				if decompressMetadata && v.Kind() == ggcontainer.KindBinary {
					if decompressed, err := v.DecompressBinary(); err == nil {
						display = decompressed
					}
				}
				fmt.Fprintf(out, "  %d. %s (%s) => %v\n", i, key, display.Kind(), display.Interface())
			}

			fmt.Fprintln(out, "\n--- tensor directory ---")
			for _, t := range tensors {
				n, err := t.ElementCount()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "tensor: %s\n", t.Name)
				fmt.Fprintf(out, "  type: %s\n", ggcontainer.TypeName(t.TypeCode))
				fmt.Fprintf(out, "  dims: %v\n", t.Dims)
				fmt.Fprintf(out, "  elements: %d\n", n)
				fmt.Fprintf(out, "  payload bytes: %d\n", len(t.Payload))
				fmt.Fprintln(out, "  values:", previewValues(t, n))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&decompressMetadata, "decompress-metadata", false, "Decompress Binary metadata values for display")
	return cmd
}

func previewValues(t ggcontainer.Tensor, n uint64) string {
	values, err := decodeTensor(t, n)
	if err != nil {
		return fmt.Sprintf("<decode error: %v>", err)
	}
	if values == nil {
		return "<undecodable type code>"
	}
	if len(values) > previewLen {
		return fmt.Sprintf("%v ... (%d more)", values[:previewLen], len(values)-previewLen)
	}
	return fmt.Sprintf("%v", values)
}
