package cmd

import (
	"github.com/spf13/cobra"

	"sqlcat/pkg/config"
	"sqlcat/pkg/logging"
	"sqlcat/pkg/version"
)

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	debug      bool
	configFile string
}

// NewRootCmd builds the sqlcat command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "sqlcat",
		Short: "sqlcat merges SQL files into a single deployment script",
		Long: `sqlcat concatenates an ordered list of SQL files into one script.
Line endings are normalized to CRLF, and GO batch separators, a deployment
preamble and per-file comments can be inserted between the files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Setup(opts.debug, version.Get().Version)
		},
	}

	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "Additional config file applied after ~/"+config.FileName+" and ./"+config.FileName)

	root.AddCommand(newMergeCmd(opts))
	root.AddCommand(newListCmd(opts))
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}
