package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI string
	MongoDB  string
	Port     string

	LogMode string
	LogFile string

	GCSBucket          string
	GCSCredentialsFile string
	GCSPublicBaseURL   string

	// Expresión cron para refrescar el catálogo; vacío lo deshabilita
	CatalogRefreshSpec string
	CacheTTL           time.Duration
}

func LoadConfig() *Config {
	// Solo cargar .env en desarrollo local
	if _, err := os.Stat(".env"); err == nil {
		err := godotenv.Load()
		if err != nil {
			log.Println("⚠️ Error loading .env file:", err)
		} else {
			log.Println("✅ .env file loaded successfully")
		}
	} else {
		log.Println("🌐 Using system environment variables")
	}

	return &Config{
		MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:            getEnv("MONGO_DB", "pos"),
		Port:               getEnv("PORT", "8080"),
		LogMode:            getEnv("LOG_MODE", "development"),
		LogFile:            getEnv("LOG_FILE", ""),
		GCSBucket:          getEnv("GCS_BUCKET", ""),
		GCSCredentialsFile: getEnv("GCS_CREDENTIALS_FILE", ""),
		GCSPublicBaseURL:   getEnv("GCS_PUBLIC_BASE_URL", "https://storage.googleapis.com"),
		CatalogRefreshSpec: getEnv("CATALOG_REFRESH_SPEC", "@every 5m"),
		CacheTTL:           getDuration("CACHE_TTL", 2*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("⚠️ Invalid duration for %s: %v", key, err)
		return fallback
	}
	return d
}
