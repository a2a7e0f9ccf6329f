package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the site build settings, merged from defaults, an optional
// notesite.yml file and NOTESITE_* environment variables.
type Config struct {
	SiteTitle string `mapstructure:"site_title"`
	DocsDir   string `mapstructure:"docs_dir"`
	OutputDir string `mapstructure:"output_dir"`
	BaseURL   string `mapstructure:"base_url"`
	NavFile   string `mapstructure:"nav_file"`
	Strict    bool   `mapstructure:"strict"`
	Port      int    `mapstructure:"port"`
}

// Load reads configuration. cfgFile may be empty, in which case ./notesite.yml
// is used when present; a missing default file is not an error, a missing
// explicit file is.
func Load(cfgFile string) (Config, error) {
	v := viper.New()

	v.SetDefault("site_title", "Notes")
	v.SetDefault("docs_dir", "docs")
	v.SetDefault("output_dir", "site")
	v.SetDefault("base_url", "")
	v.SetDefault("nav_file", "nav.yml")
	v.SetDefault("strict", false)
	v.SetDefault("port", 8000)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("notesite")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("NOTESITE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	return cfg, nil
}

// Validate checks the configuration before any work starts.
func (c Config) Validate() error {
	if c.DocsDir == "" {
		return fmt.Errorf("docs_dir must not be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.OutputDir == c.DocsDir {
		return fmt.Errorf("output_dir must differ from docs_dir")
	}
	if c.NavFile == "" {
		return fmt.Errorf("nav_file must not be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	return nil
}
