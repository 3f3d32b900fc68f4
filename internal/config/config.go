package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	OpenAIAPIKey  string
	Model         string
	AllowedOrigin string
	// Database (email threads). Optional; thread endpoints are disabled
	// without it.
	DatabaseURL   string
	MigrationsDir string
	// Assistant prompt spec and cached-credential location
	PromptFile     string
	CredentialFile string
	// How many trailing transcript messages go to the assistant per turn
	HistoryWindow int
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:           getEnvDefault("PORT", "8080"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		Model:          getEnvDefault("OPENAI_MODEL", "gpt-4o-mini"),
		AllowedOrigin:  getEnvDefault("ALLOWED_ORIGIN", "*"),
		DatabaseURL:    os.Getenv("DB_URL"),
		MigrationsDir:  getEnvDefault("MIGRATIONS_DIR", "./migrations"),
		PromptFile:     getEnvDefault("PROMPT_FILE", "./prompts/assistant.yaml"),
		CredentialFile: getEnvDefault("CREDENTIAL_FILE", "data/assistant_credential.json"),
		HistoryWindow:  getEnvIntDefault("HISTORY_WINDOW", 40),
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("warning: OPENAI_API_KEY is not set; assistant calls will fail until provided")
	}
	return cfg
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvIntDefault(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
