package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/softlock/unvault/internal/extract"
)

func newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <path>...",
		Short: "Show which extractor a file name maps to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				kind := extract.GuessKind(path)
				if kind == extract.KindUnknown {
					fmt.Printf("%s %s %s\n", unknownMark(), path, dim("(unknown, generic backend will auto-detect)"))
					continue
				}
				fmt.Printf("%s %s %s\n", okMark(), path, cyan(string(kind)))
			}
			return nil
		},
	}
}
