// Package cmd implements the bgmeta command line interface.
package cmd

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/cusox/bgmeta/internal/config"
)

// CLI represents the complete command structure for the bgmeta application.
type CLI struct {
	// Global flags
	Verbose bool `help:"Enable debug logging"`

	// Cache flags
	CacheDBFile string `help:"Path to cache SQLite database file" default:"./cache.db"`
	CacheTTL    string `help:"Cache time-to-live duration (e.g., 720h for 30 days)" default:"720h"`

	// Tag filtering flags
	TagUserCount int `help:"Minimum tagger count for a tag to be kept" default:"0"`
	TagCount     int `help:"Maximum number of tags kept" default:"0"`

	Identify IdentifyCmd `cmd:"" help:"Look up book metadata by title or Bangumi ID"`
	Cover    CoverCmd    `cmd:"" help:"Download the cached cover image for a book"`
	Cache    CacheCmd    `cmd:"" help:"Manage the lookup cache"`
	Selftest SelftestCmd `cmd:"" help:"Run the built-in lookup self-test against the live API"`
}

// Execute runs the Kong-based CLI.
func Execute() {
	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("bgmeta"),
		kong.Description("Fetch book metadata from Bangumi (https://bangumi.tv/)."),
		kong.UsageOnError(),
	)

	initLogging(cli.Verbose)
	initConfig()
	updateGlobalConfig(&cli)

	if err := ctx.Run(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	// Cache defaults
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("cache.ttl", "720h") // 30 days

	// Enable environment variable support
	viper.AutomaticEnv()
	if err := viper.BindEnv("bangumi.api_base_url", "BGM_API_BASE_URL"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}
	if err := viper.BindEnv("bangumi.user_agent", "BGM_USER_AGENT"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	// Initialize global config
	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	viper.Set("cache.dbfile", cli.CacheDBFile)
	viper.Set("cache.ttl", cli.CacheTTL)

	config.SetTagUserCount(cli.TagUserCount)
	config.SetTagCount(cli.TagCount)
}

func initLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}
