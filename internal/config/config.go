package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Supabase
	SupabaseURL            string
	SupabaseServiceRoleKey string
	SupabaseJWTSecret      string
	AssetsBucket           string
	OutputsBucket          string

	// Database
	DatabaseURL string

	// Contact form / SMTP
	SMTPHost    string
	SMTPPort    int
	SMTPUser    string
	SMTPPass    string
	ContactTo   string
	ContactFrom string

	// Server
	Port           string
	Environment    string
	AllowedOrigins []string
}

func Load() (*Config, error) {
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	cfg := &Config{
		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabaseServiceRoleKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		SupabaseJWTSecret:      getEnv("SUPABASE_JWT_SECRET", ""),
		AssetsBucket:           getEnv("SUPABASE_ASSETS_BUCKET", "project-assets"),
		OutputsBucket:          getEnv("SUPABASE_OUTPUTS_BUCKET", "project-outputs"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		SMTPHost:    getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:    smtpPort,
		SMTPUser:    getEnv("SMTP_USER", ""),
		SMTPPass:    getEnv("SMTP_PASS", ""),
		ContactTo:   getEnv("CONTACT_TO", "studio@render-vault.com"),
		ContactFrom: getEnv("CONTACT_FROM", `"Render Vault" <studio@render-vault.com>`),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	origins := getEnv("ALLOWED_ORIGINS", "*")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the keys every deployment needs. SMTP credentials and
// DATABASE_URL are optional: the contact form fails closed without the
// former, and the server runs against the in-memory demo store without the
// latter.
func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabaseServiceRoleKey == "" {
		return fmt.Errorf("SUPABASE_SERVICE_ROLE_KEY is required")
	}
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
