package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sqlcat/pkg/concat"
	"sqlcat/pkg/config"
	"sqlcat/pkg/logging"
	"sqlcat/pkg/output"
	"sqlcat/pkg/session"
)

type mergeFlags struct {
	selectionFlags
	output     string
	preamble   bool
	separator  bool
	trailingGo bool
	comments   bool
	force      bool
	dryRun     bool
}

func newMergeCmd(root *rootOptions) *cobra.Command {
	flags := &mergeFlags{}

	mergeCmd := &cobra.Command{
		Use:   "merge [file|dir|glob]...",
		Short: "Merge SQL files into one script",
		Long: `Merge concatenates the given files in order into a single script encoded as
UTF-8 with a byte order mark. Directories are expanded recursively (honouring
.gitignore and .sqlcatignore) and glob patterns may use **.

Files listed in .sqlcat.yaml come first, followed by the arguments. Files
already in the list are skipped; --remove and --move are applied afterwards.`,
		Example: `  sqlcat merge schema/ procs/*.sql -o release.sql --preamble
  sqlcat merge a.sql b.sql c.sql --move 3:-2 --trailing-go -o -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd, root, flags, args)
		},
	}

	fs := mergeCmd.Flags()
	flags.register(fs)
	fs.StringVarP(&flags.output, "output", "o", "", "Output file (default <YYYYMMDD>_concatenated.sql, - for stdout)")
	fs.BoolVar(&flags.preamble, "preamble", false, "Emit SET ANSI_NULLS ON / SET QUOTED_IDENTIFIER ON before the files")
	fs.BoolVar(&flags.separator, "separator", true, "Emit a GO batch separator between files")
	fs.BoolVar(&flags.trailingGo, "trailing-go", false, "Emit a GO batch separator after the last file")
	fs.BoolVar(&flags.comments, "comments", true, "Emit a run header and BEGIN/END FILE comments")
	fs.BoolVarP(&flags.force, "force", "f", false, "Overwrite the output file without asking")
	fs.BoolVar(&flags.dryRun, "dry-run", false, "Print the resolved file order and exit")
	return mergeCmd
}

// mergeOptions applies flags the user set explicitly over the config.
func mergeOptions(cmd *cobra.Command, cfg config.Config, flags *mergeFlags) concat.Options {
	opts := cfg.Options
	fs := cmd.Flags()
	if fs.Changed("preamble") {
		opts.Preamble = flags.preamble
	}
	if fs.Changed("separator") {
		opts.SeparatorBetweenFiles = flags.separator
	}
	if fs.Changed("trailing-go") {
		opts.TrailingSeparator = flags.trailingGo
	}
	if fs.Changed("comments") {
		opts.Comments = flags.comments
	}
	return opts
}

func runMerge(cmd *cobra.Command, root *rootOptions, flags *mergeFlags, args []string) error {
	logger := logging.Logger
	notify := newNotifier(cmd.OutOrStdout(), logger)

	s, cfg, err := buildSession(cmd, root, &flags.selectionFlags, args)
	if err != nil {
		return err
	}
	if flags.dryRun {
		printList(cmd.OutOrStdout(), s.Files())
		return nil
	}

	opts := mergeOptions(cmd, cfg, flags)
	dest := cfg.Output
	if cmd.Flags().Changed("output") {
		dest = flags.output
	}

	if dest == "-" {
		res, err := s.Render(opts)
		if errors.Is(err, session.ErrEmptyInput) {
			notify.EmptyInput()
			return nil
		}
		if err != nil {
			return notify.Failure(err)
		}
		return output.WriteTo(cmd.OutOrStdout(), res.Text)
	}

	if dest == "" {
		dest = output.DefaultFileName(s.Now())
	}
	s.Sink.Overwrite = flags.force
	if !flags.force && len(s.Files()) > 0 && s.Sink.Exists(dest) && stdinIsTerminal() {
		ok, err := promptUser(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("%s already exists. Overwrite? (y/n): ", dest))
		if err != nil {
			logger.Error("Failed to read user input", zap.Error(err))
			return fmt.Errorf("failed to read user input: %w", err)
		}
		if !ok {
			notify.Aborted(dest)
			return nil
		}
		s.Sink.Overwrite = true
	}

	report, err := s.Save(dest, opts)
	if errors.Is(err, session.ErrEmptyInput) {
		notify.EmptyInput()
		return nil
	}
	if err != nil {
		return notify.Failure(err)
	}
	notify.Saved(report)
	return nil
}
