package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent extractions",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, _, err := newManager()
			if err != nil {
				return err
			}

			records, err := mgr.History(limit)
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Printf("\n%s No extractions recorded\n", emptyMark())
				return nil
			}

			fmt.Println("Recent extractions:")
			fmt.Println()
			for _, rec := range records {
				kind := rec.Kind
				if kind == "" {
					kind = "auto"
				}
				fmt.Printf(" %s %s\n   %s %s  %s %s  %s %s\n",
					okMark(), bold(rec.Source),
					cyan("into:"), rec.Destination,
					cyan("kind:"), kind,
					cyan("when:"), humanize.Time(rec.ExtractedAt))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of records to show")
	return cmd
}
