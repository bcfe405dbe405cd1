package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	DBPath      string

	// Outbound automation webhook endpoints. Defaults point at the n8n
	// instance that owns the actual sending/scheduling logic.
	ScheduleWebhookURL string
	TemplateWebhookURL string
	ImportWebhookURL   string
	InstanceWebhookURL string
	CadenceWebhookURL  string

	JWTSecret  string
	SessionTTL time.Duration

	// Optional seed credentials for the first staff login.
	AdminEmail    string
	AdminPassword string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file")
	}

	base := getEnv("WEBHOOK_BASE_URL", "https://n8n-n8n.wju2x4.easypanel.host/webhook")

	return &Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		DBPath:             getEnv("DB_PATH", "./disparo.db"),
		ScheduleWebhookURL: getEnv("SCHEDULE_WEBHOOK_URL", base+"/agendamento_disparos"),
		TemplateWebhookURL: getEnv("TEMPLATE_WEBHOOK_URL", base+"/c23921ee-d540-47f7-9833-b882e47254ff"),
		ImportWebhookURL:   getEnv("IMPORT_WEBHOOK_URL", base+"/461b8175-1a6d-4259-8048-d36b71f86117"),
		InstanceWebhookURL: getEnv("INSTANCE_WEBHOOK_URL", base+"/criar-instancia-evolution"),
		CadenceWebhookURL:  getEnv("CADENCE_WEBHOOK_URL", base+"/cadencia_disparos"),
		JWTSecret:          getEnv("JWT_SECRET", "dev-secret-change-me"),
		SessionTTL:         time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		AdminEmail:         getEnv("ADMIN_EMAIL", ""),
		AdminPassword:      getEnv("ADMIN_PASSWORD", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Warning: invalid value for %s, using %d", key, fallback)
	}
	return fallback
}
