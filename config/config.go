package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

type Config struct {
	Port            string
	Provider        string
	GeminiAPIKey    string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	Model           string
	MaxTokens       int
	Temperature     float64
	MaxHistory      int
	MemoryFile      string
	DatabaseURL     string
	DefaultRole     string
}

// Load reads configuration from the environment, with .env support.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("[INFO] No .env file found, using environment variables")
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Provider:        getEnv("LLM_PROVIDER", ProviderGemini),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		Model:           getEnv("LLM_MODEL", ""),
		MaxTokens:       getEnvInt("MAX_TOKENS", 1000),
		Temperature:     getEnvFloat("TEMPERATURE", 0.7),
		MaxHistory:      getEnvInt("MAX_HISTORY", 50),
		MemoryFile:      getEnv("MEMORY_FILE", "conversation_history.json"),
		DatabaseURL:     getEnv("DB_URL", ""),
		DefaultRole:     getEnv("DEFAULT_ROLE", "general"),
	}
}

// Validate checks that the active provider has an API key. A missing key
// is the only fatal configuration condition.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY not found, please set it in your .env file")
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY not found, please set it in your .env file")
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY not found, please set it in your .env file")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER: %s", c.Provider)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[WARN] Invalid value for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("[WARN] Invalid value for %s: %q, using default %g", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
