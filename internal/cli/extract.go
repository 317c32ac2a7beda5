package cli

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/softlock/unvault/internal/extract"
	"github.com/softlock/unvault/internal/manager"
)

func newExtractCmd() *cobra.Command {
	var (
		dest       string
		format     string
		keepNested bool
		sha256     string
	)

	cmd := &cobra.Command{
		Use:   "extract <archive|url>...",
		Short: "Extract archives into a destination directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "" && !knownFormat(format) {
				return fmt.Errorf("unsupported format %q (see 'unvault formats')", format)
			}

			mgr, cfg, err := newManager()
			if err != nil {
				return err
			}

			if dest == "" {
				dest, err = os.Getwd()
				if err != nil {
					return err
				}
			}
			if err := os.MkdirAll(dest, 0755); err != nil {
				return err
			}

			ctx := cmd.Context()
			mu := &sync.Mutex{}
			var errs []error
			output := make(map[string]string)

			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(min(len(args), cfg.MaxParallel))

			stop := withSpinner(gctx, fmt.Sprintf("Extracting %d archive(s)...", len(args)))

			for _, source := range args {
				source := source
				g.Go(func() error {
					rec, err := mgr.Extract(gctx, source, dest, manager.ExtractOptions{
						MergeSingle: !keepNested,
						Format:      format,
						SHA256:      sha256,
					})

					mu.Lock()
					defer mu.Unlock()
					if err != nil {
						errs = append(errs, fmt.Errorf("%s: %v", source, err))
						return nil
					}
					output[source] = fmt.Sprintf("%s %s\n  %s %s",
						okMark(), bold(rec.Source),
						cyan("into:"), rec.Destination)
					return nil
				})
			}
			_ = g.Wait()
			stop()

			fmt.Println()
			for _, source := range args {
				if msg, ok := output[source]; ok {
					fmt.Println(msg)
				}
			}

			if len(errs) > 0 {
				for _, e := range errs {
					fmt.Printf("%s %s\n", failMark(), e)
				}
				return fmt.Errorf("failed to extract %d archive(s)", len(errs))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&dest, "to", "", "Destination directory (default: current directory)")
	cmd.Flags().StringVar(&format, "format", "", "Force an extractor instead of detecting by suffix")
	cmd.Flags().BoolVar(&keepNested, "keep-nested", false, "Keep a single wrapping top-level directory")
	cmd.Flags().StringVar(&sha256, "sha256", "", "Expected SHA256 checksum for downloaded archives")
	return cmd
}

// knownFormat accepts the named extractor kinds plus every 7z-family
// sub-format tag.
func knownFormat(format string) bool {
	switch format {
	case "tar", "tgz", "txz", "tbz2", "bz2", "tzst", "gzip", "exe", "deb", "gog", "AppImage":
		return true
	}
	return extract.IsSevenZipSupported("", format)
}
