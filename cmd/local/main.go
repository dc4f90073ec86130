package main

import (
	"context"
	"os"
	"os/signal"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"github.com/jusunglee/mta-mcp/internal/logger"
	"github.com/jusunglee/mta-mcp/pkg/mta"
)

var rootCmd = &cobra.Command{
	Use:          "mta-local",
	Short:        "Query NYC subway realtime feeds from the command line",
	SilenceUsage: true,
}

var (
	configPath string
	feedID     string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVarP(&feedID, "feed", "f", "1", "MTA feed id")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(dumpCmd)
}

func newClient(ctx context.Context) (*mta.LocalClient, error) {
	config, err := mta.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = "warn"
	if verbose {
		logCfg.Level = "debug"
	}
	return mta.NewLocal(ctx, config, logger.New(logCfg))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
