package config

import (
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/mnemoslabs/mnemos/pkg/helpers"
)

type Config struct {
	GeminiAPIKey     string
	GeminiModel      string
	GeminiBaseURL    string
	GeminiTimeout    time.Duration
	EmbeddingsAPIURL string
	EmbeddingsAPIKey string
	EmbeddingsModel  string
	HTTPPort         string
	DBPath           string
	LogLevel         string
}

func getEnv(key, defaultValue string, printEnv bool) string {
	if printEnv {
		log.Default().Info("Env", "key", key, "value", os.Getenv(key))
	}
	return helpers.GetEnv(key, defaultValue)
}

func getEnvSeconds(key string, defaultSeconds int, printEnv bool) time.Duration {
	raw := getEnv(key, strconv.Itoa(defaultSeconds), printEnv)
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		seconds = defaultSeconds
	}
	return time.Duration(seconds) * time.Second
}

func LoadConfig(printEnv bool) *Config {
	_ = godotenv.Load()

	return &Config{
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", "", false),
		GeminiModel:      getEnv("GEMINI_MODEL", "models/gemini-2.5-flash", printEnv),
		GeminiBaseURL:    getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta", printEnv),
		GeminiTimeout:    getEnvSeconds("GEMINI_TIMEOUT_SECONDS", 60, printEnv),
		EmbeddingsAPIURL: getEnv("EMBEDDINGS_API_URL", "https://api.openai.com/v1", printEnv),
		EmbeddingsAPIKey: getEnv("EMBEDDINGS_API_KEY", "", false),
		EmbeddingsModel:  getEnv("EMBEDDINGS_MODEL", "text-embedding-3-small", printEnv),
		HTTPPort:         getEnv("HTTP_PORT", "5000", printEnv),
		DBPath:           getEnv("DB_PATH", "./output/sqlite/memory.db", printEnv),
		LogLevel:         getEnv("LOG_LEVEL", "debug", printEnv),
	}
}
