package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config holds the application configuration loaded from .env files and environment variables.
type Config struct {
	AppName         string `mapstructure:"app_name"`
	Env             string `mapstructure:"app_env"`
	LogLevel        string `mapstructure:"log_level"`
	Port            int    `mapstructure:"port"`
	CORSOrigins     string `mapstructure:"cors_allowed_origins"`
	ShutdownSeconds int64  `mapstructure:"shutdown_timeout_seconds"`
	PublishersFile  string `mapstructure:"publishers_file"`

	GeminiAPIKey      string `mapstructure:"gemini_api_key"`
	LLMBaseURL        string `mapstructure:"llm_base_url"`
	LLMModel          string `mapstructure:"llm_model"`
	LLMTimeoutSeconds int64  `mapstructure:"llm_timeout_seconds"`

	SearchProvider       string `mapstructure:"search_provider"`
	NewsDataAPIKey       string `mapstructure:"newsdata_api_key"`
	TavilyAPIKey         string `mapstructure:"tavily_api_key"`
	SearchLanguage       string `mapstructure:"search_language"`
	SearchCategory       string `mapstructure:"search_category"`
	SearchTimeoutSeconds int64  `mapstructure:"search_timeout_seconds"`

	ScrapeTimeoutSeconds     int64  `mapstructure:"scrape_timeout_seconds"`
	ScrapeMetaTimeoutSeconds int64  `mapstructure:"scrape_meta_timeout_seconds"`
	ScrapeUserAgent          string `mapstructure:"scrape_user_agent"`
	MinArticleChars          int    `mapstructure:"min_article_chars"`
	MaxArticleChars          int    `mapstructure:"max_article_chars"`

	ShutdownTimeout   time.Duration `mapstructure:"-"`
	LLMTimeout        time.Duration `mapstructure:"-"`
	SearchTimeout     time.Duration `mapstructure:"-"`
	ScrapeTimeout     time.Duration `mapstructure:"-"`
	ScrapeMetaTimeout time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("app_name", "echohub-buster")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("port", 5000)
	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("shutdown_timeout_seconds", 10)
	v.SetDefault("publishers_file", "")

	v.SetDefault("gemini_api_key", "")
	v.SetDefault("llm_base_url", "https://generativelanguage.googleapis.com/v1beta/openai/")
	v.SetDefault("llm_model", "gemini-1.5-flash")
	v.SetDefault("llm_timeout_seconds", 60)

	v.SetDefault("search_provider", "newsdata")
	v.SetDefault("newsdata_api_key", "")
	v.SetDefault("tavily_api_key", "")
	v.SetDefault("search_language", "en")
	v.SetDefault("search_category", "business, top")
	v.SetDefault("search_timeout_seconds", 10)

	v.SetDefault("scrape_timeout_seconds", 10)
	v.SetDefault("scrape_meta_timeout_seconds", 5)
	v.SetDefault("scrape_user_agent", defaultUserAgent)
	v.SetDefault("min_article_chars", 100)
	v.SetDefault("max_article_chars", 8000)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) finalize() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if strings.TrimSpace(c.GeminiAPIKey) == "" {
		return fmt.Errorf("gemini_api_key is required")
	}
	if c.MinArticleChars <= 0 {
		return fmt.Errorf("invalid min_article_chars (must be positive)")
	}
	if c.MaxArticleChars < c.MinArticleChars {
		return fmt.Errorf("invalid max_article_chars (must be >= min_article_chars)")
	}

	durations := []struct {
		key     string
		seconds int64
		dst     *time.Duration
	}{
		{"shutdown_timeout_seconds", c.ShutdownSeconds, &c.ShutdownTimeout},
		{"llm_timeout_seconds", c.LLMTimeoutSeconds, &c.LLMTimeout},
		{"search_timeout_seconds", c.SearchTimeoutSeconds, &c.SearchTimeout},
		{"scrape_timeout_seconds", c.ScrapeTimeoutSeconds, &c.ScrapeTimeout},
		{"scrape_meta_timeout_seconds", c.ScrapeMetaTimeoutSeconds, &c.ScrapeMetaTimeout},
	}
	for _, d := range durations {
		if d.seconds <= 0 {
			return fmt.Errorf("invalid %s (must be positive seconds)", d.key)
		}
		*d.dst = time.Duration(d.seconds) * time.Second
	}

	c.SearchProvider = strings.ToLower(strings.TrimSpace(c.SearchProvider))
	return nil
}

// AllowedOrigins splits the comma-separated CORS origin list.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Redacted returns the config as a loggable map with secrets masked.
func (c *Config) Redacted() map[string]any {
	return map[string]any{
		"app_name":             c.AppName,
		"app_env":              c.Env,
		"log_level":            c.LogLevel,
		"port":                 c.Port,
		"cors_allowed_origins": c.AllowedOrigins(),
		"publishers_file":      c.PublishersFile,
		"gemini_api_key":       mask(c.GeminiAPIKey),
		"llm_base_url":         c.LLMBaseURL,
		"llm_model":            c.LLMModel,
		"llm_timeout":          c.LLMTimeout.String(),
		"search_provider":      c.SearchProvider,
		"newsdata_api_key":     mask(c.NewsDataAPIKey),
		"tavily_api_key":       mask(c.TavilyAPIKey),
		"search_language":      c.SearchLanguage,
		"search_category":      c.SearchCategory,
		"search_timeout":       c.SearchTimeout.String(),
		"scrape_timeout":       c.ScrapeTimeout.String(),
		"scrape_meta_timeout":  c.ScrapeMetaTimeout.String(),
		"min_article_chars":    c.MinArticleChars,
		"max_article_chars":    c.MaxArticleChars,
	}
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "***"
}
