package cli

import (
	"github.com/spf13/cobra"
)

// CommandOptions holds the options shared by every ristate command.
type CommandOptions struct {
	ConfigFile string
	Verbose    bool
}

// NewStandardCommand creates a command carrying the shared persistent flags.
// --verbose has no shorthand so that -vt stays unambiguous.
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().Bool("verbose", false, "Enable debug logging on stderr")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to a ristate.yml or ristate.toml file")

	return cmd
}

// GetOptions extracts the shared options from a command.
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	return CommandOptions{
		ConfigFile: configFile,
		Verbose:    verbose,
	}
}
