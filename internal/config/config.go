// Package config loads runtime configuration from an optional YAML file, a .env
// file and environment variables.
package config

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the scraper's runtime configuration
type Config struct {
	Store  StoreConfig
	Scrape ScrapeConfig
	Log    LogConfig
}

type StoreConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite memory"`
	DSN    string `mapstructure:"dsn" validate:"required_unless=Driver memory"`
}

type ScrapeConfig struct {
	BaseURL        string        `mapstructure:"base_url" validate:"required,url"`
	Season         int           `mapstructure:"season" validate:"gte=1900,lte=2100"`
	UserAgent      string        `mapstructure:"user_agent"`
	Timeout        time.Duration `mapstructure:"timeout" validate:"gt=0"`
	Delay          time.Duration `mapstructure:"delay" validate:"gte=0"`
	RatingsMaxRows int           `mapstructure:"ratings_max_rows" validate:"gte=1"`
	RollingWindow  int           `mapstructure:"rolling_window" validate:"gte=1"`
	Teams          []string      `mapstructure:"-" validate:"min=1,dive,required"`
	HTMLCacheDir   string        `mapstructure:"html_cache_dir"`
	CSVDir         string        `mapstructure:"csv_dir"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// Defaults
const (
	DefaultDriver         = "postgres"
	DefaultBaseURL        = "https://www.sports-reference.com/cbb"
	DefaultSeason         = 2026
	DefaultTimeout        = 20 * time.Second
	DefaultDelay          = 2 * time.Second
	DefaultRatingsMaxRows = 100
	DefaultRollingWindow  = 10
)

var envBindings = map[string]string{
	"store.driver":            "STORE_DRIVER",
	"store.dsn":               "DATABASE_URL",
	"scrape.base_url":         "SCRAPE_BASE_URL",
	"scrape.season":           "SCRAPE_SEASON",
	"scrape.user_agent":       "SCRAPE_USER_AGENT",
	"scrape.timeout":          "SCRAPE_TIMEOUT",
	"scrape.delay":            "SCRAPE_DELAY",
	"scrape.ratings_max_rows": "SCRAPE_RATINGS_MAX_ROWS",
	"scrape.rolling_window":   "SCRAPE_ROLLING_WINDOW",
	"scrape.teams":            "SCRAPE_TEAMS",
	"scrape.html_cache_dir":   "SCRAPE_HTML_CACHE_DIR",
	"scrape.csv_dir":          "SCRAPE_CSV_DIR",
	"log.level":               "LOG_LEVEL",
	"log.format":              "LOG_FORMAT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.driver", DefaultDriver)
	v.SetDefault("scrape.base_url", DefaultBaseURL)
	v.SetDefault("scrape.season", DefaultSeason)
	v.SetDefault("scrape.timeout", DefaultTimeout)
	v.SetDefault("scrape.delay", DefaultDelay)
	v.SetDefault("scrape.ratings_max_rows", DefaultRatingsMaxRows)
	v.SetDefault("scrape.rolling_window", DefaultRollingWindow)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load reads configuration. path may name a config file; when empty,
// config.yaml is looked up in . and ./config and is optional.
func Load(path string) (*Config, error) {
	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, errors.Wrapf(err, "bind %s", env)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	cfg.Scrape.Teams = teamList(v.Get("scrape.teams"))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

// teamList accepts a comma separated string (environment) or a YAML list and
// falls back to DefaultTeams when nothing usable is set.
func teamList(raw any) []string {
	var items []string
	switch t := raw.(type) {
	case string:
		items = strings.Split(t, ",")
	case []string:
		items = t
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				items = append(items, s)
			}
		}
	}

	teams := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			teams = append(teams, s)
		}
	}
	if len(teams) == 0 {
		return DefaultTeams()
	}
	return teams
}
