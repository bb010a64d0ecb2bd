package config

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/BurntSushi/toml"
)

const baseCfgPath = "newswatch/config.toml"

type Config struct {
	// Keywords are the search expressions to collect, in run order.
	// They may use the boolean AND/OR/NOT operators.
	Keywords        []string   `toml:"keywords"`
	DatabasePath    string     `toml:"database_path"`
	OutputDirectory string     `toml:"output_directory"` // Directory for exported files (defaults to $HOME/newswatch)
	Feed            FeedConfig `toml:"feed"`
	// PacingDelaySeconds is the pause between keyword fetches, to be
	// polite to the provider.
	PacingDelaySeconds int `toml:"pacing_delay_seconds"`
	// CacheTTLMinutes is how long a keyword's fetched feed stays fresh.
	CacheTTLMinutes int `toml:"cache_ttl_minutes"`
}

// FeedConfig describes the provider search endpoint and its locale
// parameters.
type FeedConfig struct {
	BaseURL  string `toml:"base_url"`
	Language string `toml:"language"` // hl parameter
	Country  string `toml:"country"`  // gl parameter
	Edition  string `toml:"edition"`  // ceid parameter
}

func (c Config) PacingDelay() time.Duration {
	return time.Duration(c.PacingDelaySeconds) * time.Second
}

func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

func Read(path string) (Config, error) {
	conf := Default()
	dat, err := os.ReadFile(path)
	if err != nil {
		return conf, err
	}
	_, err = toml.Decode(string(dat), &conf)
	if err != nil {
		return conf, fmt.Errorf("failed to decode config at %s with %w", path, err)
	}
	return conf, nil
}

func Write(cfgPath string, cfg Config) error {
	blob, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config with %w", err)
	}
	basePath := path.Dir(cfgPath)
	err = os.MkdirAll(basePath, os.ModePerm)
	if err != nil {
		return fmt.Errorf("failed to create base config directory at '%s' with %w", basePath, err)
	}
	err = os.WriteFile(cfgPath, blob, 0644)
	if err != nil {
		return fmt.Errorf("failed to write into config file at '%s' with %w", cfgPath, err)
	}
	slog.Info("config written", "at", cfgPath)
	return nil
}

func Default() Config {
	var home = os.Getenv("HOME")
	var dbBase = path.Join(home, ".local/share/newswatch")
	return Config{
		Keywords: []string{
			"carbon accounting",
			"scope 3 emissions",
			"carbon capture",
		},
		DatabasePath:       path.Join(dbBase, "data.db"),
		OutputDirectory:    path.Join(home, "newswatch"),
		PacingDelaySeconds: 1,
		CacheTTLMinutes:    60,
		Feed: FeedConfig{
			BaseURL:  "https://news.google.com/rss/search",
			Language: "en-US",
			Country:  "US",
			Edition:  "US:en",
		},
	}
}

func DefaultPath() string {
	var xdgHome = os.Getenv("XDG_CONFIG_HOME")
	if xdgHome != "" {
		return path.Join(xdgHome, baseCfgPath)
	}

	var home = os.Getenv("HOME")
	if home != "" {
		return path.Join(home, ".config", baseCfgPath)
	}

	panic("unclear where to search for the config file")
}
