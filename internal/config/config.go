package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI      string
	DBName        string
	JWTSecret     string
	TokenTTL      time.Duration
	AdminKey      string
	AdminUsername string
	AdminPassword string
	CORSOrigins   []string
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPass      string
	MailFrom      string
	UploadsDir    string
	Port          string
}

const defaultOrigins = "http://127.0.0.1:5500,http://localhost:5500,https://website-0c1h.onrender.com"

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:      getEnvOrDefault("MONGODB_URI", ""),
		DBName:        getEnvOrDefault("MONGODB_DB", "tidex"),
		JWTSecret:     getEnvOrDefault("JWT_SECRET", "dev-secret"),
		TokenTTL:      getDurationEnv("TOKEN_TTL", 7, 24*time.Hour),
		AdminKey:      getEnvOrDefault("ADMIN_KEY", ""),
		AdminUsername: getEnvOrDefault("ADMIN_USERNAME", ""),
		AdminPassword: getEnvOrDefault("ADMIN_PASSWORD", ""),
		CORSOrigins:   splitOrigins(getEnvOrDefault("CORS_ORIGINS", defaultOrigins)),
		SMTPHost:      getEnvOrDefault("SMTP_HOST", ""),
		SMTPPort:      getIntEnv("SMTP_PORT", 587),
		SMTPUser:      getEnvOrDefault("SMTP_USER", ""),
		SMTPPass:      getEnvOrDefault("SMTP_PASS", ""),
		MailFrom:      getEnvOrDefault("MAIL_FROM", "no-reply@tidex.local"),
		UploadsDir:    getEnvOrDefault("UPLOADS_DIR", "./uploads"),
		Port:          getEnvOrDefault("PORT", "3000"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
