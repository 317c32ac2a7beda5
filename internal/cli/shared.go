package cli

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

var (
	bold = color.New(color.Bold).SprintFunc()
	dim  = color.New(color.Faint).SprintFunc()
	cyan = color.New(color.FgCyan).SprintFunc()
)

// Result glyphs shared by the commands: extraction outcome, detection
// verdict, empty listings.
func okMark() string      { return color.GreenString("✓") }
func failMark() string    { return color.RedString("✗") }
func unknownMark() string { return color.YellowString("?") }
func emptyMark() string   { return dim("○") }

// withSpinner shows an indeterminate spinner on stderr until stop is called.
// The extract command runs a single spinner for the whole batch while the
// per-archive goroutines work; stop is safe to call more than once and after
// the context is canceled.
func withSpinner(ctx context.Context, desc string) (stop func()) {
	spinner := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				spinner.Add(1)
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			spinner.Finish()
		})
	}
}
