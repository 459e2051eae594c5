// Package cmd wires the cobra command tree for the crawlsearch CLI.
package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/crawlsearch/internal/config"
	crawlcmd "github.com/jonesrussell/crawlsearch/cmd/crawl"
	querycmd "github.com/jonesrussell/crawlsearch/cmd/query"
	reportcmd "github.com/jonesrussell/crawlsearch/cmd/report"
	servecmd "github.com/jonesrussell/crawlsearch/cmd/serve"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "crawlsearch",
	Short: "A concurrent web crawler, indexer, and search engine",
	Long: "crawlsearch crawls a seed set of pages, builds an inverted index " +
		"over their titles and bodies, and answers tf-idf ranked queries " +
		"against that index.",
}

// Execute loads .env and configuration, wires every subcommand against it,
// and runs the root command.
func Execute() error {
	_ = godotenv.Load()

	// Subcommands hold cfg; it is filled in after cobra has parsed --config
	// and --debug, just before the chosen subcommand runs.
	cfg := &config.Config{}
	rootCmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		loaded, err := loadConfig()
		if err != nil {
			return fmt.Errorf("init config: %w", err)
		}
		*cfg = *loaded
		return nil
	}

	rootCmd.AddCommand(
		crawlcmd.Command(cfg),
		querycmd.Command(cfg),
		servecmd.Command(cfg),
		reportcmd.Command(cfg),
	)

	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func loadConfig() (*config.Config, error) {
	v := viper.New()

	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.App.Debug = true
		cfg.Logging.Level = "debug"
	}

	return cfg, nil
}
