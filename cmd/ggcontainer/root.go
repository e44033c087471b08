package main

import (
	"github.com/spf13/cobra"

	"github.com/tensorkeg/ggcontainer/internal/config"
	"github.com/tensorkeg/ggcontainer/internal/logging"
)

var (
	cfgFile   string
	activeCfg config.Config
)

// NewRootCmd builds the ggcontainer command tree.
func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "ggcontainer",
		Short: "Inspect, validate, write, and quantize container files",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			activeCfg = loaded
			logging.Setup(loaded.LogLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newWriteCmd())
	cmd.AddCommand(newQuantizeCmd())

	return cmd
}
