package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// Store drivers understood by repository.NewStore.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Email strategies understood by service.EmailComposer.
const (
	StrategyTwoStage = "two_stage"
	StrategyDirect   = "direct"
)

// LLMConfig describes the OpenAI-compatible chat completion endpoint.
type LLMConfig struct {
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	JSONMode bool   `yaml:"json_mode"`
}

// StoreConfig selects and addresses the persistence backend.
type StoreConfig struct {
	Driver      string `yaml:"driver"`
	MongoURL    string `yaml:"mongodb_url"`
	Database    string `yaml:"database"`
	PostgresDSN string `yaml:"postgres_dsn"`
}

// Config aggregates application-wide configuration values.
type Config struct {
	Port              string        `yaml:"port"`
	Environment       string        `yaml:"environment"`
	LogLevel          string        `yaml:"log_level"`
	LLM               LLMConfig     `yaml:"llm"`
	Store             StoreConfig   `yaml:"store"`
	CORSOrigins       []string      `yaml:"cors_origins"`
	ScrapeTimeout     time.Duration `yaml:"scrape_timeout"`
	EmailStrategy     string        `yaml:"email_strategy"`
	SupabaseJWTSecret string        `yaml:"supabase_jwt_secret"`
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() *Config {
	return &Config{
		Port:        "8000",
		Environment: "development",
		LogLevel:    "info",
		LLM: LLMConfig{
			Model:   "llama-3.3-70b-versatile",
			BaseURL: "https://api.groq.com/openai/v1/",
		},
		Store: StoreConfig{
			Driver:   DriverMongo,
			MongoURL: "mongodb://mongodb:27017",
			Database: "salesgpt",
		},
		CORSOrigins:   []string{"*"},
		ScrapeTimeout: 30 * time.Second,
		EmailStrategy: StrategyTwoStage,
	}
}

// Load reads the optional YAML file named by CONFIG_FILE, then applies environment variables on top.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Environment = getEnv("APP_ENV", cfg.Environment)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LLM.APIKey = getEnv("GROQ_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.Model = getEnv("GROQ_MODEL", cfg.LLM.Model)
	cfg.LLM.BaseURL = getEnv("GROQ_BASE_URL", cfg.LLM.BaseURL)
	cfg.Store.Driver = strings.ToLower(getEnv("STORE_DRIVER", cfg.Store.Driver))
	cfg.Store.MongoURL = getEnv("MONGODB_URL", cfg.Store.MongoURL)
	cfg.Store.Database = getEnv("DATABASE_NAME", cfg.Store.Database)
	cfg.Store.PostgresDSN = getEnv("DATABASE_URL", cfg.Store.PostgresDSN)
	cfg.EmailStrategy = strings.ToLower(getEnv("EMAIL_STRATEGY", cfg.EmailStrategy))
	cfg.SupabaseJWTSecret = getEnv("SUPABASE_JWT_SECRET", cfg.SupabaseJWTSecret)

	if raw, ok := lookupEnv("LLM_JSON_MODE"); ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid LLM_JSON_MODE value: %w", err)
		}
		cfg.LLM.JSONMode = v
	}

	if raw, ok := lookupEnv("SCRAPE_TIMEOUT"); ok {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid SCRAPE_TIMEOUT value: %q", raw)
		}
		cfg.ScrapeTimeout = d
	}

	if raw, ok := lookupEnv("BACKEND_CORS_ORIGINS"); ok {
		cfg.CORSOrigins = parseList(raw)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// APIKeyConfigured reports whether a language-model API key is available.
func (c *Config) APIKeyConfigured() bool {
	return strings.TrimSpace(c.LLM.APIKey) != ""
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverMongo:
		if c.Store.MongoURL == "" {
			return fmt.Errorf("MONGODB_URL must not be empty for the mongo driver")
		}
	case DriverPostgres:
		if c.Store.PostgresDSN == "" {
			return fmt.Errorf("DATABASE_URL must not be empty for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER: %s", c.Store.Driver)
	}

	switch c.EmailStrategy {
	case StrategyTwoStage, StrategyDirect:
	default:
		return fmt.Errorf("unsupported EMAIL_STRATEGY: %s", c.EmailStrategy)
	}

	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = []string{"*"}
	}
	if c.ScrapeTimeout <= 0 {
		c.ScrapeTimeout = 30 * time.Second
	}
	return nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func parseList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if val, ok := lookupEnv(key); ok {
		return val
	}
	return fallback
}

func lookupEnv(key string) (string, bool) {
	val, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(val) == "" {
		return "", false
	}
	return strings.TrimSpace(val), true
}
