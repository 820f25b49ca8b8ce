package config

import (
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Port          string
	UploadDir     string
	SessionTTL    time.Duration
	SweepInterval time.Duration
}

func Load() Config {
	return Config{
		Port:          getenv("PORT", "8080"),
		UploadDir:     getenv("UPLOAD_DIR", "./uploads"),
		SessionTTL:    24 * time.Hour,
		SweepInterval: time.Hour,
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
