package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"placebook/catalog"
	"placebook/config"
	"placebook/storage"
	"placebook/utils"
)

// app carries what every command needs once the root command has run its
// setup.
type app struct {
	cfg    *config.Config
	logger *utils.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "placebook",
		Short:        "Browse, pick and crawl a list of places",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.cfg = config.Load()
			// The browser owns the terminal, so it logs to a file.
			a.setupLogger(cmd.Name() == "browse" || cmd == cmd.Root())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.browse(cmd.Context())
		},
	}

	root.AddCommand(
		a.browseCmd(),
		a.pickCmd(),
		a.listCmd(),
		a.addCmd(),
		a.removeCmd(),
		a.crawlCmd(),
		a.statsCmd(),
	)
	return root
}

func (a *app) setupLogger(toFile bool) {
	var (
		logger *utils.Logger
		err    error
	)
	if toFile {
		logger, err = utils.NewFileLogger(a.cfg.LogFile, a.cfg.LogLevel)
	} else {
		logger, err = utils.NewLevelLogger(a.cfg.LogLevel)
	}
	if err != nil {
		a.logger = utils.NewLogger()
		a.logger.Warn("[config] %v — logging to stdout at debug level", err)
		return
	}
	a.logger = logger
}

// loader builds the catalog loader: HTTP when CATALOG_URL is set, the list
// file otherwise.
func (a *app) loader() *catalog.Loader {
	client := &http.Client{Timeout: time.Duration(a.cfg.PageTimeoutSec) * time.Second}
	return catalog.NewLoader(client, a.cfg.CatalogURL, a.cfg.ListPath, a.logger)
}

func (a *app) picker() *catalog.Picker {
	return catalog.NewPicker(nil, time.Duration(a.cfg.RouletteDelayMs)*time.Millisecond)
}

func (a *app) listStore() *storage.ListStore {
	return storage.NewListStore(a.cfg.ListPath, a.logger)
}
