package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
)

// Config is the process configuration read from the environment. Optional
// integrations are nil when their credentials are not set.
type Config struct {
	Port           string
	AppEnv         string
	DatabaseURL    string
	RedisURL       string
	JWTSecret      string
	AllowedOrigins []string
	SupportEmail   string

	Stripe     StripeConfig
	Cloudinary *CloudinaryConfig
	Resend     *ResendConfig
	EmailJS    *EmailJSConfig
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret *string
	Currency      string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type ResendConfig struct {
	APIKey string
	From   string
}

type EmailJSConfig struct {
	ServiceID         string
	PublicKey         string
	PrivateKey        *string
	ContactTemplateID string
	ServiceTemplateID string
}

var ErrMissingSetting = errors.New("missing required setting")

// Load reads the environment. godotenv has already populated it in main's init.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8081"),
		AppEnv:         getEnv("APP_ENV", "development"),
		DatabaseURL:    databaseURL(),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		SupportEmail:   getEnv("SUPPORT_EMAIL", "info@jpperformancecars.co.uk"),
		Stripe: StripeConfig{
			SecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
			WebhookSecret: optionalEnv("STRIPE_WEBHOOK_SECRET"),
			Currency:      strings.ToLower(getEnv("STRIPE_CURRENCY", "gbp")),
		},
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET: %w", ErrMissingSetting)
	}
	if cfg.Stripe.SecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY: %w", ErrMissingSetting)
	}

	if name := os.Getenv("CLOUDINARY_CLOUD_NAME"); name != "" {
		cfg.Cloudinary = &CloudinaryConfig{
			CloudName: name,
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		}
	} else {
		log.Println("⚠️ CLOUDINARY_CLOUD_NAME not set, image uploads disabled")
	}

	if key := os.Getenv("RESEND_API_KEY"); key != "" {
		cfg.Resend = &ResendConfig{
			APIKey: key,
			From:   getEnv("RESEND_FROM_EMAIL", "JP Performance Cars <orders@jpperformancecars.co.uk>"),
		}
	} else {
		log.Println("⚠️ RESEND_API_KEY not set, order emails disabled")
	}

	if serviceID := os.Getenv("EMAILJS_SERVICE_ID"); serviceID != "" {
		cfg.EmailJS = &EmailJSConfig{
			ServiceID:         serviceID,
			PublicKey:         os.Getenv("EMAILJS_PUBLIC_KEY"),
			PrivateKey:        optionalEnv("EMAILJS_PRIVATE_KEY"),
			ContactTemplateID: getEnv("EMAILJS_CONTACT_TEMPLATE_ID", "template_contact"),
			ServiceTemplateID: getEnv("EMAILJS_SERVICE_TEMPLATE_ID", "template_service"),
		}
	} else {
		log.Println("⚠️ EMAILJS_SERVICE_ID not set, contact forms disabled")
	}

	if cfg.Stripe.WebhookSecret == nil {
		log.Println("⚠️ STRIPE_WEBHOOK_SECRET not set, webhook endpoint disabled")
	}

	return cfg, nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	log.Println("⚠️ DATABASE_URL not set, using local default")
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", ""),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "jp_performance"),
	)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func optionalEnv(key string) *string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	return &value
}

func splitList(raw string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
