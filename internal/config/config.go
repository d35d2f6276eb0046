package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/brogergvhs/magnify/internal/royalty"

	"gopkg.in/yaml.v3"
)

// EnvMarketplace overrides the marketplace stored in the active profile.
const EnvMarketplace = "MAGNIFY_MARKETPLACE"

type Config struct {
	Marketplace    string        `yaml:"marketplace"`
	Format         string        `yaml:"format"`
	ShowDimensions bool          `yaml:"show_dimensions"`
	Debug          bool          `yaml:"debug"`
	Delay          time.Duration `yaml:"delay"`
	PollInterval   time.Duration `yaml:"poll_interval"`

	Royalty RoyaltyConfig `yaml:"royalty"`
}

type RoyaltyConfig struct {
	Rate          float64           `yaml:"rate"`
	PageThreshold int               `yaml:"page_threshold"`
	Marketplaces  royalty.CostTable `yaml:"marketplaces,omitempty"`
}

type Options struct {
	IgnoreConfig   bool
	Debug          bool
	Marketplace    string
	Format         string
	ShowDimensions bool
	Delay          time.Duration
	PollInterval   time.Duration
}

var formats = []string{"text", "html", "json", "pdf"}

func DefaultConfig() *Config {
	return &Config{
		Marketplace:  "",
		Format:       "text",
		Delay:        1500 * time.Millisecond,
		PollInterval: 250 * time.Millisecond,
		Royalty: RoyaltyConfig{
			Rate:          royalty.DefaultRate,
			PageThreshold: royalty.DefaultPageThreshold,
		},
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Load reads one profile file over the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadMerged resolves the effective configuration: built-in defaults, then
// the active profile, then the environment, then explicit CLI options. The
// returned string describes where the configuration came from.
func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		return cfg, "(ignored config)", normalizeDefaults(cfg)
	}

	activePath, err := ActiveConfigPath()
	if err == ErrNoConfig || activePath == "" {
		cfg := DefaultConfig()
		mergeEnv(cfg)
		mergeConfig(cfg, opts)
		return cfg, "(default config in memory)\nRun `magnify config init` to create an actual config\n", normalizeDefaults(cfg)
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := Load(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeEnv(cfg)
	mergeConfig(cfg, opts)

	return cfg, activePath, normalizeDefaults(cfg)
}

func mergeEnv(c *Config) {
	if m := strings.TrimSpace(os.Getenv(EnvMarketplace)); m != "" {
		c.Marketplace = m
	}
}

func mergeConfig(c *Config, o Options) {
	if o.Debug {
		c.Debug = true
	}
	if o.Marketplace != "" {
		c.Marketplace = o.Marketplace
	}
	if o.Format != "" {
		c.Format = o.Format
	}
	if o.ShowDimensions {
		c.ShowDimensions = true
	}
	if o.Delay != 0 {
		c.Delay = o.Delay
	}
	if o.PollInterval != 0 {
		c.PollInterval = o.PollInterval
	}
}

func normalizeDefaults(c *Config) error {
	def := DefaultConfig()

	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format == "" {
		c.Format = def.Format
	}
	if !validFormat(c.Format) {
		return fmt.Errorf("unknown output format %q (want one of %s)", c.Format, strings.Join(formats, ", "))
	}
	if c.Delay < 0 {
		c.Delay = 0
	}
	if c.PollInterval <= 0 {
		c.PollInterval = def.PollInterval
	}
	if c.Royalty.Rate <= 0 || c.Royalty.Rate > 1 {
		c.Royalty.Rate = def.Royalty.Rate
	}
	if c.Royalty.PageThreshold <= 0 {
		c.Royalty.PageThreshold = def.Royalty.PageThreshold
	}

	return nil
}

func validFormat(f string) bool {
	for _, known := range formats {
		if f == known {
			return true
		}
	}
	return false
}

// Calculator builds a royalty calculator from the royalty settings, with
// profile marketplaces layered over the built-in cost table.
func (c *Config) Calculator() *royalty.Calculator {
	return &royalty.Calculator{
		Costs:         royalty.DefaultCosts().Merge(c.Royalty.Marketplaces),
		Rate:          c.Royalty.Rate,
		PageThreshold: c.Royalty.PageThreshold,
	}
}

func (c *Config) Print(w io.Writer) {
	if c.Marketplace != "" {
		_, _ = fmt.Fprintf(w, " -marketplace: %s\n", c.Marketplace)
	}
	_, _ = fmt.Fprintf(w, " -format: %s\n", c.Format)
	if c.ShowDimensions {
		_, _ = fmt.Fprintf(w, " -show_dimensions: %t\n", c.ShowDimensions)
	}
	if c.Debug {
		_, _ = fmt.Fprintf(w, " -debug: %t\n", c.Debug)
	}
	_, _ = fmt.Fprintf(w, " -delay: %s\n", c.Delay)
	_, _ = fmt.Fprintf(w, " -poll_interval: %s\n", c.PollInterval)
	_, _ = fmt.Fprintf(w, " -royalty.rate: %g\n", c.Royalty.Rate)
	_, _ = fmt.Fprintf(w, " -royalty.page_threshold: %d\n", c.Royalty.PageThreshold)
	if len(c.Royalty.Marketplaces) > 0 {
		codes := c.Royalty.Marketplaces.Codes()
		_, _ = fmt.Fprintf(w, " -royalty.marketplaces: %s\n", strings.Join(codes, ", "))
	}
}
