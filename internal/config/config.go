// Load envs from .env
// Load YAML config
// Apply env overrides and defaults
// Validate config

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"go-jobapply-automation/internal/filter"
	"go-jobapply-automation/internal/listing"
	"go-jobapply-automation/internal/scraper"
)

const DefaultPath = "configs/config.yaml"

type Config struct {
	TelegramToken  string `yaml:"telegram_token"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`
	DatabaseURL    string `yaml:"database_url"`
	RedisURL       string `yaml:"redis_url"`
	// Host identifies this machine in the rate-limit log.
	Host string `yaml:"host"`

	Platforms []string        `yaml:"platforms"`
	Search    SearchConfig    `yaml:"search"`
	Criteria  filter.Criteria `yaml:"criteria"`
	Browser   BrowserConfig   `yaml:"browser"`

	RateLimitCooldown time.Duration `yaml:"rate_limit_cooldown"`
	// Parallelism is how many platforms are scraped at once.
	Parallelism int    `yaml:"parallelism"`
	ServerPort  string `yaml:"server_port"`
}

type SearchConfig struct {
	Terms            []string `yaml:"terms"`
	Location         string   `yaml:"location"`
	Remote           bool     `yaml:"remote"`
	MaxAgeDays       int      `yaml:"max_age_days"`
	EasyApply        bool     `yaml:"easy_apply"`
	MinCompanyRating float64  `yaml:"min_company_rating"`
	ResultsPerTerm   int      `yaml:"results_per_term"`
}

type BrowserConfig struct {
	Headless      bool   `yaml:"headless"`
	UserAgent     string `yaml:"user_agent"`
	CookiesPath   string `yaml:"cookies_path"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// Load reads .env, then the YAML file at path, then environment overrides.
// A missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{Browser: BrowserConfig{Headless: true}}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Printf("⚠️ Could not read %s, using defaults: %v", path, err)
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := decode(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() error {
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		c.TelegramToken = token
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		c.TelegramChatID = id
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		c.DatabaseURL = url
	}
	if url := os.Getenv("REDIS_URL"); url != "" {
		c.RedisURL = url
	}
	if host := os.Getenv("JOBAPPLY_HOST"); host != "" {
		c.Host = host
	}
	if port := os.Getenv("PORT"); port != "" {
		c.ServerPort = port
	}
	return nil
}

func (c *Config) applyDefaults() {
	if len(c.Platforms) == 0 {
		c.Platforms = []string{"linkedin", "indeed", "glassdoor"}
	}
	if len(c.Search.Terms) == 0 {
		// One empty search lists everything the filters let through.
		c.Search.Terms = []string{""}
	}
	if c.Browser.CookiesPath == "" {
		c.Browser.CookiesPath = ".cookies"
	}
	if c.Browser.ScreenshotDir == "" {
		c.Browser.ScreenshotDir = "logs/screenshots"
	}
	if c.RateLimitCooldown == 0 {
		c.RateLimitCooldown = 6 * time.Hour
	}
	if c.Parallelism == 0 {
		c.Parallelism = 1
	}
	if c.ServerPort == "" {
		c.ServerPort = "8080"
	}
	if c.Host == "" {
		if h, err := os.Hostname(); err == nil {
			c.Host = h
		}
	}
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Criteria.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("criteria: %w", err))
	}
	if _, err := c.PlatformList(); err != nil {
		errs = append(errs, err)
	}
	if c.TelegramToken != "" && c.TelegramChatID == 0 {
		errs = append(errs, errors.New("TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set"))
	}
	if c.Parallelism < 1 {
		errs = append(errs, fmt.Errorf("parallelism must be at least 1, got %d", c.Parallelism))
	}
	if c.RateLimitCooldown < 0 {
		errs = append(errs, fmt.Errorf("rate_limit_cooldown must not be negative, got %s", c.RateLimitCooldown))
	}
	if c.Search.MaxAgeDays < 0 || c.Search.ResultsPerTerm < 0 {
		errs = append(errs, errors.New("search: max_age_days and results_per_term must not be negative"))
	}
	return errors.Join(errs...)
}

// PlatformList parses Platforms, keeping order and dropping repeats.
func (c *Config) PlatformList() ([]listing.Platform, error) {
	seen := make(map[listing.Platform]bool, len(c.Platforms))
	out := make([]listing.Platform, 0, len(c.Platforms))
	for _, name := range c.Platforms {
		p, err := listing.ParsePlatform(name)
		if err != nil {
			return nil, err
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out, nil
}

// Query is the search settings every scraper shares.
func (c *Config) Query() scraper.Query {
	q := scraper.Query{
		Location:  c.Search.Location,
		Remote:    c.Search.Remote,
		MaxAge:    time.Duration(c.Search.MaxAgeDays) * 24 * time.Hour,
		EasyApply: c.Search.EasyApply,
		MinRating: c.Search.MinCompanyRating,
		Limit:     c.Search.ResultsPerTerm,
	}
	if s := c.Criteria.Salary.Min; s != nil {
		q.MinSalary = int(*s)
	}
	if s := c.Criteria.Salary.Max; s != nil {
		q.MaxSalary = int(*s)
	}
	return q
}
