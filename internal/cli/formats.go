package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/softlock/unvault/internal/extract"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the sub-formats the generic archive tool supports",
		Run: func(cmd *cobra.Command, args []string) {
			formats := extract.SevenZipFormats()
			sort.Strings(formats)

			fmt.Println("Supported sub-format tags:")
			for _, f := range formats {
				fmt.Printf(" %s\n", f)
			}
		},
	}
}
