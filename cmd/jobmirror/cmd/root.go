package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"jobmirror/cmd/jobmirror/cmd/cleanup"
	"jobmirror/cmd/jobmirror/cmd/sync"
	"jobmirror/internal/app/syncer"
	"jobmirror/internal/config"
	"jobmirror/internal/utils/logger"
)

var (
	cfgFile    string
	debug      bool
	jsonOutput bool
	cfg        *config.Config
	log        *slog.Logger
	app        *syncer.App
)

var rootCmd = &cobra.Command{
	Use:   "jobmirror",
	Short: "jobmirror replicates job listings from the master catalog into the public catalogs",
	Long: `jobmirror keeps the public job-listing catalogs in step with the master
catalog: open listings fan out into the category/tier catalogs they belong
to, closed listings are retracted from every public catalog.

Each run is one-shot: "jobmirror sync" replicates, "jobmirror cleanup"
retracts. Both end with a tallied summary line; per-record failures are
counted, not fatal.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	env := cfg.Env
	if debug {
		env = config.EnvLocal
	}
	log = logger.New(env)

	app = syncer.New(cfg, log)
	cmd.SetContext(syncer.NewContext(cmd.Context(), app))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a .env configuration file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print the run summary as JSON")

	rootCmd.AddCommand(sync.SyncCmd)
	rootCmd.AddCommand(cleanup.CleanupCmd)
}
