package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newListCmd(root *rootOptions) *cobra.Command {
	flags := &selectionFlags{}

	listCmd := &cobra.Command{
		Use:   "list [file|dir|glob]...",
		Short: "Print the files a merge would use, in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := buildSession(cmd, root, flags, args)
			if err != nil {
				return err
			}
			files := s.Files()
			if len(files) == 0 {
				newNotifier(cmd.OutOrStdout(), nil).EmptyInput()
				return nil
			}
			printList(cmd.OutOrStdout(), files)
			return nil
		},
	}

	flags.register(listCmd.Flags())
	return listCmd
}

func printList(w io.Writer, files []string) {
	for i, f := range files {
		fmt.Fprintf(w, "%d/%d\t%s\n", i+1, len(files), f)
	}
}
