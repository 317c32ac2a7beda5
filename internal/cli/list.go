package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <installer>",
		Short: "List the files inside an InnoSetup/GOG installer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, _, err := newManager()
			if err != nil {
				return err
			}

			entries, err := mgr.ListInstallerEntries(args[0])
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Printf("%s No files found in %s\n", emptyMark(), args[0])
				return nil
			}

			fmt.Printf("%s:\n\n", bold(args[0]))
			for _, entry := range entries {
				fmt.Printf(" %s\n", entry)
			}
			return nil
		},
	}
}
