package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB       int    `mapstructure:"REDIS_SESSION_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Google Calendar configuration.
	GoogleCalendarID         string `mapstructure:"GOOGLE_CALENDAR_ID"`
	GoogleServiceAccountFile string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_FILE"`

	// WhatsApp webhook configuration.
	WhatsAppVerifyToken string `mapstructure:"WHATSAPP_VERIFY_TOKEN"`

	// Admin access.
	AdminToken string `mapstructure:"ADMIN_TOKEN"`

	// Business schedule. Hours are 24h wall-clock; weekdays follow
	// time.Weekday numbering (0=Sunday).
	OpeningHour    int    `mapstructure:"OPENING_HOUR"`
	ClosingHour    int    `mapstructure:"CLOSING_HOUR"`
	BusinessDays   []int  `mapstructure:"BUSINESS_DAYS"`
	Timezone       string `mapstructure:"TIMEZONE"`
	SessionTTLMins int    `mapstructure:"SESSION_TTL_MINS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "itelsa")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 1)
	viper.SetDefault("GOOGLE_CALENDAR_ID", "")
	viper.SetDefault("GOOGLE_SERVICE_ACCOUNT_FILE", "service-account.json")
	viper.SetDefault("WHATSAPP_VERIFY_TOKEN", "")
	viper.SetDefault("ADMIN_TOKEN", "")
	viper.SetDefault("OPENING_HOUR", 8)
	viper.SetDefault("CLOSING_HOUR", 17)
	viper.SetDefault("BUSINESS_DAYS", []int{1, 2, 3, 4, 5})
	viper.SetDefault("TIMEZONE", "America/Bogota")
	viper.SetDefault("SESSION_TTL_MINS", 30)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
