package config

import (
	"log"
	"os"
)

type Config struct {
	Port      string
	DataDir   string
	StaticDir string
}

func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", "3000"),
		DataDir:   getEnv("DATA_DIR", "./data"),
		StaticDir: getEnv("STATIC_DIR", "./web/static"),
	}
}

// getEnv reads an environment variable and returns its value or a default value
func getEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Printf("Environment variable %s not set, using default value: %s", key, fallback)
		return fallback
	}
	return value
}
