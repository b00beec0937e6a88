package config

import (
	"os"
	"strings"
)

type Config struct {
	HTTPAddr    string
	DatabaseURL string
	DataDir     string
	RedisAddr   string

	KafkaBrokers []string
	ServiceName  string

	JWTSecret     string
	AdminEmail    string
	AdminPassword string

	Currency string

	PaymentAPIKey        string
	PaymentWebhookSecret string
	PaymentBaseURL       string
	SuccessURL           string
	CancelURL            string
}

func Load() Config {
	return Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DataDir:     getenv("DATA_DIR", "data"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),

		KafkaBrokers: splitCSV(os.Getenv("KAFKA_BROKERS")),
		ServiceName:  getenv("SERVICE_NAME", "storefront-api"),

		JWTSecret:     getenv("JWT_SECRET", "dev-secret"),
		AdminEmail:    getenv("ADMIN_EMAIL", "admin@malafaareh.com"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		Currency: getenv("CURRENCY", "XAF"),

		PaymentAPIKey:        os.Getenv("PAYMENT_API_KEY"),
		PaymentWebhookSecret: os.Getenv("PAYMENT_WEBHOOK_SECRET"),
		PaymentBaseURL:       getenv("PAYMENT_BASE_URL", "https://api.payment.example.com"),
		SuccessURL:           getenv("CHECKOUT_SUCCESS_URL", "https://example.com/success"),
		CancelURL:            getenv("CHECKOUT_CANCEL_URL", "https://example.com/cancel"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
