package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// EnvFile is loaded before anything else; missing is fine
	EnvFile = ".env.local"
	// DefaultConfigFile is read when BOOKAI_CONFIG is not set
	DefaultConfigFile = "config.yaml"

	// placeholderAPIKey is what the sample env files ship with
	placeholderAPIKey = "your_api_key_here"
)

const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config is built once at startup and passed by value to every component
type Config struct {
	Port           string      `yaml:"port"`
	Env            string      `yaml:"env"`
	LogLevel       string      `yaml:"log_level"`
	AllowedOrigins []string    `yaml:"allowed_origins"`
	LLM            LLMConfig   `yaml:"llm"`
	GoogleBooks    GoogleBooks `yaml:"google_books"`
	MyMemory       MyMemory    `yaml:"mymemory"`
	Translation    Translation `yaml:"translation"`
}

type LLMConfig struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	Model    string `yaml:"model"`
}

type GoogleBooks struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

type MyMemory struct {
	BaseURL           string  `yaml:"base_url"`
	Email             string  `yaml:"email"` // raises the provider's free daily quota
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

type Translation struct {
	// Concurrency bounds parallel LLM chunk calls; 1 keeps them sequential
	Concurrency int `yaml:"concurrency"`
}

// LLMEnabled reports whether an LLM credential is configured
func (c Config) LLMEnabled() bool {
	return c.LLM.APIKey != ""
}

// IsProduction reports whether the service runs in production mode
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func expandEnvVars(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return ""
	})
}

// Load reads the env file, the optional YAML file at path and then the
// environment. Later sources win. An empty path means DefaultConfigFile.
func Load(path string) (Config, error) {
	_ = godotenv.Load(EnvFile)

	if path == "" {
		path = os.Getenv("BOOKAI_CONFIG")
	}
	if path == "" {
		path = DefaultConfigFile
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// env-only configuration
	default:
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	applyEnv(&cfg)
	setDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Port, "PORT")
	setString(&cfg.Env, "ENV")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	setString(&cfg.LLM.Provider, "LLM_PROVIDER")
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = ProviderGroq
	}
	switch cfg.LLM.Provider {
	case ProviderGroq:
		setString(&cfg.LLM.APIKey, "GROQ_API_KEY")
	case ProviderOpenAI:
		setString(&cfg.LLM.APIKey, "OPENAI_API_KEY")
	case ProviderGemini:
		setString(&cfg.LLM.APIKey, "GEMINI_API_KEY")
	}
	setString(&cfg.LLM.APIKey, "LLM_API_KEY")
	setString(&cfg.LLM.BaseURL, "LLM_BASE_URL")
	setString(&cfg.LLM.Model, "LLM_MODEL")
	if strings.TrimSpace(cfg.LLM.APIKey) == placeholderAPIKey {
		cfg.LLM.APIKey = ""
	}

	setString(&cfg.GoogleBooks.BaseURL, "GOOGLE_BOOKS_URL")
	setString(&cfg.GoogleBooks.APIKey, "GOOGLE_BOOKS_API_KEY")

	setString(&cfg.MyMemory.BaseURL, "MYMEMORY_URL")
	setString(&cfg.MyMemory.Email, "MYMEMORY_EMAIL")
	if v := os.Getenv("MYMEMORY_RPS"); v != "" {
		if rps, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.MyMemory.RequestsPerSecond = rps
		}
	}

	if v := os.Getenv("TRANSLATION_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Translation.Concurrency = n
		}
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setDefaults(cfg *Config) {
	if cfg.Port == "" {
		cfg.Port = "5001"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LLM.Model == "" {
		switch cfg.LLM.Provider {
		case ProviderGemini:
			cfg.LLM.Model = "gemini-2.5-flash"
		case ProviderOpenAI:
			cfg.LLM.Model = "gpt-4o-mini"
		default:
			cfg.LLM.Model = "llama-3.3-70b-versatile"
		}
	}
	if cfg.LLM.BaseURL == "" && cfg.LLM.Provider == ProviderGroq {
		cfg.LLM.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.GoogleBooks.BaseURL == "" {
		cfg.GoogleBooks.BaseURL = "https://www.googleapis.com/books/v1/volumes"
	}
	if cfg.MyMemory.BaseURL == "" {
		cfg.MyMemory.BaseURL = "https://api.mymemory.translated.net/get"
	}
	if cfg.MyMemory.RequestsPerSecond <= 0 {
		cfg.MyMemory.RequestsPerSecond = 5
	}
	if cfg.Translation.Concurrency <= 0 {
		cfg.Translation.Concurrency = 1
	}
}

func (c Config) validate() error {
	switch c.LLM.Provider {
	case ProviderGroq, ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("unsupported LLM provider: %q", c.LLM.Provider)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid port %q: %w", c.Port, err)
	}
	return nil
}
