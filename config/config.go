package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	FrontendDomain string

	GatewayAPIURL         string // Payment gateway base URL
	GatewaySecretKey      string // Payment gateway secret key
	GatewayPublishableKey string // Public key handed to the frontend
	GatewayWebhookSecret  string // Shared secret for webhook signatures

	SendgridAPIKey string
	EmailSender    string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "edumart"),
		DBPort:     getEnv("DB_PORT", "5432"),

		FrontendDomain: getEnv("FRONTEND_DOMAIN", "http://localhost:5173"),

		GatewayAPIURL:         getEnv("GATEWAY_API_URL", "https://api.sandbox.paygate.io"),
		GatewaySecretKey:      getEnv("GATEWAY_SECRET_KEY", ""),
		GatewayPublishableKey: getEnv("GATEWAY_PUBLISHABLE_KEY", ""),
		GatewayWebhookSecret:  getEnv("GATEWAY_WEBHOOK_SECRET", ""),

		SendgridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "no-reply@edumart.io"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.GatewayWebhookSecret == "" {
		log.Println("Warning: GATEWAY_WEBHOOK_SECRET is empty. Webhook requests will be rejected.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
