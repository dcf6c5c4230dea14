// Package config loads the application configuration from defaults, an
// optional YAML file, a .env file and INVOICE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// INVOICE_LETTER_SIGNER_NAME overrides letter.signer_name.
const EnvPrefix = "INVOICE"

type Config struct {
	Letter Letter    `mapstructure:"letter"`
	Mail   Mail      `mapstructure:"mail"`
	Output Output    `mapstructure:"output"`
	Log    LogConfig `mapstructure:"log"`
}

// Letter holds the organization text, assets and signer printed on every letter.
type Letter struct {
	Organization   string   `mapstructure:"organization"`
	ShortName      string   `mapstructure:"short_name"`
	CharterName    string   `mapstructure:"charter_name"`
	ContactLines   []string `mapstructure:"contact_lines"`
	LogoPath       string   `mapstructure:"logo_path"`
	FooterPath     string   `mapstructure:"footer_path"`
	SignaturePath  string   `mapstructure:"signature_path"`
	SignerName     string   `mapstructure:"signer_name"`
	SignerTitle    string   `mapstructure:"signer_title"`
	StaffMember    string   `mapstructure:"staff_member"`
	CurrencySymbol string   `mapstructure:"currency_symbol"`
	Compress       bool     `mapstructure:"compress"`
}

// Mail configures the draft composer.
type Mail struct {
	From       string `mapstructure:"from"`
	DraftDir   string `mapstructure:"draft_dir"`
	OpenDrafts bool   `mapstructure:"open_drafts"`
	// OpenWith names the application that opens drafts. Empty uses the
	// desktop default.
	OpenWith   string `mapstructure:"open_with"`
}

// Output configures where generated letters are written.
type Output struct {
	Dir string `mapstructure:"dir"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// Load reads the configuration. configPath may be empty, in which case only
// defaults, .env and environment variables are used.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath == "" {
		configPath = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the built-in configuration without reading any source.
func Default() Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("letter.organization", "Thomas More College")
	v.SetDefault("letter.short_name", "TMC")
	v.SetDefault("letter.charter_name", "TMC User Device Charter")
	v.SetDefault("letter.contact_lines", []string{
		"23 Amsterdam Crescent,",
		"Salisbury Downs, SA",
		"PO Box 535, Salisbury, SA 5108",
		"E tmc@tmc.catholic.edu.au",
		"T (08) 8182 2600",
		"www.tmc.catholic.edu.au",
	})
	v.SetDefault("letter.logo_path", "Logo.png")
	v.SetDefault("letter.footer_path", "Footer.png")
	v.SetDefault("letter.signature_path", "Signature.JPG")
	v.SetDefault("letter.signer_name", "Angelo Anastasiadis")
	v.SetDefault("letter.signer_title", "ICT Manager")
	v.SetDefault("letter.staff_member", "Benjamin Li")
	v.SetDefault("letter.currency_symbol", "$")
	v.SetDefault("letter.compress", true)

	v.SetDefault("mail.from", "")
	v.SetDefault("mail.draft_dir", "drafts")
	v.SetDefault("mail.open_drafts", true)
	v.SetDefault("mail.open_with", "")

	v.SetDefault("output.dir", "letters")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
}

// Validate checks the settings the letter cannot be produced without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Letter.Organization) == "" {
		return fmt.Errorf("letter.organization is required")
	}
	if strings.TrimSpace(c.Letter.ShortName) == "" {
		return fmt.Errorf("letter.short_name is required")
	}
	if strings.TrimSpace(c.Letter.SignerName) == "" {
		return fmt.Errorf("letter.signer_name is required")
	}
	if strings.TrimSpace(c.Output.Dir) == "" {
		return fmt.Errorf("output.dir is required")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}
