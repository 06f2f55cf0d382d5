package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	PartiesDir     string
	OutputPrefix   string
	TemplatePath   string
	TasksTemplate  string
	SecretsFile    string
	DatabaseURL    string
	DatabaseDriver string
	LogLevel       string
	LogFormat      string
}

// Secrets holds the per-supplier task-tracker credentials.
type Secrets struct {
	AsanaToken     string `json:"asana_token"`
	AsanaWorkspace string `json:"asana_workspace"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := &Config{
		PartiesDir:     getEnv("PARTIES_DIR", "parties"),
		OutputPrefix:   getEnv("OUTPUT_PREFIX", "invoices/{supplier}_{client}_{payment_reference}"),
		TemplatePath:   getEnv("INVOICE_TEMPLATE", "template.html"),
		TasksTemplate:  getEnv("TASKS_TEMPLATE", "template-asana.html"),
		SecretsFile:    getEnv("SECRETS_FILE", "secrets.json"),
		DatabaseURL:    getEnv("DATABASE_URL", "./invoices.db"),
		DatabaseDriver: getEnv("DATABASE_DRIVER", "sqlite3"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
	}

	return cfg, nil
}

// LoadSecrets reads the secrets file and returns the entry for the given
// supplier. The file maps supplier identifiers to their credentials.
func (c *Config) LoadSecrets(supplier string) (*Secrets, error) {
	data, err := os.ReadFile(c.SecretsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read secrets file: %w", err)
	}

	var all map[string]Secrets
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("failed to parse secrets file: %w", err)
	}

	secrets, ok := all[supplier]
	if !ok {
		return nil, fmt.Errorf("no secrets for supplier %q", supplier)
	}
	return &secrets, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
