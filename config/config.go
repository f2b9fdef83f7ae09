package config

import (
	"os"
	"strconv"

	"go.uber.org/zap"
)

type Config struct {
	Port        string
	DB          DB
	JWT         JWT
	Redis       Redis
	SMTP        SMTP
	PhonePe     PhonePe
	DeliveryFee float64
}

type DB struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWT struct {
	AccessSecret  string
	RefreshSecret string
}

type Redis struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type SMTP struct {
	Host     string
	Port     int
	User     string
	Password string
	To       string // inbox that receives contact-form inquiries
}

type PhonePe struct {
	BaseURL       string
	AuthURL       string
	ClientID      string
	ClientSecret  string
	ClientVersion string
	RedirectBase  string
}

// Load reads the full configuration from the environment. Required
// variables abort startup; the rest fall back to dev defaults.
func Load(log *zap.Logger) *Config {
	redisAddr := os.Getenv("REDIS_ADDR")
	return &Config{
		Port: envDefault("PORT", "8080"),
		DB: DB{
			Host:     mustEnv("DB_HOST", log),
			Port:     envDefault("DB_PORT", "5432"),
			User:     mustEnv("DB_USER", log),
			Password: mustEnv("DB_PASSWORD", log),
			Name:     mustEnv("DB_NAME", log),
			SSLMode:  envDefault("DB_SSLMODE", "disable"),
		},
		JWT: JWT{
			AccessSecret:  mustEnv("JWT_SECRET", log),
			RefreshSecret: mustEnv("REFRESH_TOKEN_SECRET", log),
		},
		Redis: Redis{
			Enabled:  redisAddr != "",
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       atoiDefault(os.Getenv("REDIS_DB"), 0),
		},
		SMTP: SMTP{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     atoiDefault(os.Getenv("SMTP_PORT"), 587),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			To:       os.Getenv("CONTACT_INBOX"),
		},
		PhonePe: PhonePe{
			BaseURL:       os.Getenv("PHONEPE_BASE_URL"),
			AuthURL:       os.Getenv("PHONEPE_AUTH_URL"),
			ClientID:      os.Getenv("PHONEPE_CLIENT_ID"),
			ClientSecret:  os.Getenv("PHONEPE_CLIENT_SECRET"),
			ClientVersion: envDefault("PHONEPE_CLIENT_VERSION", "1"),
			RedirectBase:  os.Getenv("PHONEPE_REDIRECT_URL"),
		},
		DeliveryFee: floatDefault(os.Getenv("DELIVERY_FEE"), 50),
	}
}

func mustEnv(key string, log *zap.Logger) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	log.Error("required environment variable not set", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func envDefault(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func floatDefault(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}
