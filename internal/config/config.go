package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config 应用配置
type Config struct {
	Port         string
	DBDriver     string // sqlite or postgres
	DBPath       string
	DatabaseURL  string
	JWTSecret    string // Empty disables bearer auth
	RateLimit    int    // Requests per minute per client IP, 0 disables
	DatasetsFile string // Empty uses the embedded catalog
}

// LoadEnvFiles loads .env files into the process environment. Missing files
// are skipped and variables already set win.
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// Load 加载配置
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", ":8080"),
		DBDriver:     getEnv("DB_DRIVER", "sqlite"),
		DBPath:       getEnv("DB_PATH", "./data/crimes.db"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		RateLimit:    getEnvAsInt("RATE_LIMIT", 120),
		DatasetsFile: os.Getenv("DATASETS_FILE"),
	}
}

// DSN returns the data source name for the configured driver
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" && c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DBPath
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
