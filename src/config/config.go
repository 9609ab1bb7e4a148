package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	ConnectID string
	SecretKey string
	AdSpaceID string

	BaseURL           string
	HTTPClientTimeout time.Duration
	ProviderRateRPS   float64

	Port     string
	LogLevel string
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	connectID := getEnv("ZANOX_CONNECT_ID", "")
	if connectID == "" {
		log.Fatalf("FATAL: ZANOX_CONNECT_ID is required but not set in environment or .env file.")
	}
	secretKey := getEnv("ZANOX_SECRET_KEY", "")
	if secretKey == "" {
		log.Fatalf("FATAL: ZANOX_SECRET_KEY is required but not set in environment or .env file.")
	}
	adSpaceID := getEnv("ZANOX_AD_SPACE_ID", "")
	if adSpaceID == "" {
		log.Fatalf("FATAL: ZANOX_AD_SPACE_ID is required but not set in environment or .env file.")
	}

	timeoutStr := getEnv("HTTP_CLIENT_TIMEOUT", "20s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		log.Printf("WARNING: Invalid HTTP_CLIENT_TIMEOUT format '%s'. Using default 20s. Error: %v", timeoutStr, err)
		timeout = 20 * time.Second
	}

	rpsStr := getEnv("PROVIDER_RATE_LIMIT_RPS", "4")
	rps, err := strconv.ParseFloat(rpsStr, 64)
	if err != nil {
		log.Printf("WARNING: Invalid PROVIDER_RATE_LIMIT_RPS format '%s'. Using default 4. Error: %v", rpsStr, err)
		rps = 4
	}

	Cfg = &AppConfig{
		ConnectID: connectID,
		SecretKey: secretKey,
		AdSpaceID: adSpaceID,

		BaseURL:           getEnv("ZANOX_BASE_URL", ""),
		HTTPClientTimeout: timeout,
		ProviderRateRPS:   rps,

		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, ConnectID=%s", Cfg.Port, Cfg.LogLevel, Cfg.ConnectID)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	if fallback != "" {
		log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	}
	return fallback
}
