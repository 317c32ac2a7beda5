package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/softlock/unvault/internal/cache"
	"github.com/softlock/unvault/internal/config"
	"github.com/softlock/unvault/internal/extract"
	"github.com/softlock/unvault/internal/fetch"
	"github.com/softlock/unvault/internal/history"
	"github.com/softlock/unvault/internal/logging"
	"github.com/softlock/unvault/internal/manager"
	"github.com/softlock/unvault/internal/tools"
)

func Execute() error {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "unvault",
		Short: "Extract game archives and installers",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(verbosity)
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity")
	rootCmd.AddCommand(
		newExtractCmd(),
		newListCmd(),
		newDetectCmd(),
		newFormatsCmd(),
		newHistoryCmd(),
		newClearCmd(),
		newVersionCmd(),
	)
	return rootCmd.Execute()
}

func newManager() (*manager.Manager, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	c, err := cache.New(cfg.CacheDir)
	if err != nil {
		return nil, nil, err
	}

	hist, err := history.NewSQLite(cfg.StateDB, cfg.HistoryFile)
	if err != nil {
		return nil, nil, err
	}

	locator := tools.NewLocator(cfg.RuntimeDir)
	extractor := extract.New(tools.NewSevenZip(locator), tools.NewInnoextract(locator))

	return manager.New(
		fetch.New(cfg.CacheDir, 1*time.Hour),
		c,
		extractor,
		hist), cfg, nil
}
