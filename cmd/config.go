package cmd

import (
	"fmt"

	"github.com/grovetools/ristate/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// effectiveConfig is the YAML view printed by "config show".
type effectiveConfig struct {
	Source string   `yaml:"source"`
	Report []string `yaml:"report"`
	Output string   `yaml:"output,omitempty"`
	Seat   string   `yaml:"seat,omitempty"`
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the ristate configuration",
	}
	cmd.AddCommand(newConfigShowCmd(opts))
	cmd.AddCommand(newConfigSchemaCmd())
	return cmd
}

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Long: `Loads the configuration file, merges it with the report and filter flags
given on the parent command and prints the result.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, file, _ := setup(cmd, opts)

			source := file.Path
			if source == "" {
				source = "(defaults)"
			}
			out := effectiveConfig{
				Source: source,
				Report: cfg.Fields.Names(),
				Output: cfg.Output,
				Seat:   cfg.Seat,
			}
			if out.Report == nil {
				out.Report = []string{}
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(out); err != nil {
				return fmt.Errorf("failed to encode configuration: %w", err)
			}
			return enc.Close()
		},
	}
}

func newConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.GenerateSchema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}
