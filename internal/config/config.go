// Package config aggregates the application's sub-configurations and loads
// them from a config file, environment variables, and CLI flags via viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/jonesrussell/crawlsearch/internal/config/app"
	"github.com/jonesrussell/crawlsearch/internal/config/crawler"
	"github.com/jonesrussell/crawlsearch/internal/config/logging"
	"github.com/jonesrussell/crawlsearch/internal/config/retriever"
	"github.com/jonesrussell/crawlsearch/internal/store"
)

// Config aggregates every sub-configuration the application needs.
type Config struct {
	App       app.Config
	Logging   logging.Config
	Crawler   crawler.Config
	Retriever retriever.Config
	Database  store.Config
}

// Load builds a Config from defaults, an optional config file, environment
// variables (prefixed CRAWLSEARCH_), and the given viper instance's already-
// bound flags.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix("CRAWLSEARCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		App: app.Config{
			Name:        v.GetString("app.name"),
			Version:     v.GetString("app.version"),
			Environment: v.GetString("app.environment"),
			Debug:       v.GetBool("app.debug"),
		},
		Logging: logging.Config{
			Level:       v.GetString("logging.level"),
			Encoding:    v.GetString("logging.encoding"),
			Development: v.GetBool("logging.development"),
		},
		Crawler: crawler.Config{
			Seeds:              v.GetStringSlice("crawler.seeds"),
			WorkerCount:        v.GetInt("crawler.worker_count"),
			MaxPages:           v.GetInt("crawler.max_pages"),
			BatchSize:          v.GetInt("crawler.batch_size"),
			UserAgent:          v.GetString("crawler.user_agent"),
			RequestTimeout:     v.GetDuration("crawler.request_timeout"),
			MaxRedirects:       v.GetInt("crawler.max_redirects"),
			ClaimRetryDelay:    v.GetDuration("crawler.claim_retry_delay"),
			MaxOutlinksPerPage: v.GetInt("crawler.max_outlinks_per_page"),
		},
		Retriever: retriever.Config{
			MaxResults: v.GetInt("retriever.max_results"),
		},
		Database: store.Config{
			Host:     v.GetString("database.host"),
			Port:     v.GetString("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			DBName:   v.GetString("database.dbname"),
			SSLMode:  v.GetString("database.sslmode"),
		},
	}

	return cfg, nil
}

// setDefaults registers the fallback value for every setting Load reads.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "crawlsearch")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.encoding", "console")
	v.SetDefault("logging.development", true)

	v.SetDefault("crawler.worker_count", 40)
	v.SetDefault("crawler.max_pages", 1000)
	v.SetDefault("crawler.batch_size", 50)
	v.SetDefault("crawler.user_agent", "crawlsearch/1.0")
	v.SetDefault("crawler.request_timeout", "30s")
	v.SetDefault("crawler.max_redirects", 5)
	v.SetDefault("crawler.claim_retry_delay", "200ms")
	v.SetDefault("crawler.max_outlinks_per_page", 0)

	v.SetDefault("retriever.max_results", 50)

	def := store.DefaultConfig()
	v.SetDefault("database.host", def.Host)
	v.SetDefault("database.port", def.Port)
	v.SetDefault("database.user", def.User)
	v.SetDefault("database.dbname", def.DBName)
	v.SetDefault("database.sslmode", def.SSLMode)
}
