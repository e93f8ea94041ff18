package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBUser  string
	DBPass  string
	DBHost  string
	DBPort  string
	DBName  string
	SSLMode string

	RedisHost string
	RedisPort string

	NatsHost string
	NatsPort string

	ApiPort string

	JWTSecret     string
	TokenValidity time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string
	MailFrom     string
	SupportEmail string
	CompanyName  string
}

// New loads and validates configuration from environment variables.
// Mail settings are optional: when SMTP host is unset the mailer worker
// logs confirmations instead of sending them.
func New() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBUser:        os.Getenv("GAMEZONE_POSTGRES_USER"),
		DBPass:        os.Getenv("GAMEZONE_POSTGRES_PASSWORD"),
		DBHost:        os.Getenv("GAMEZONE_POSTGRES_HOST"),
		DBPort:        os.Getenv("GAMEZONE_POSTGRES_PORT"),
		DBName:        os.Getenv("GAMEZONE_POSTGRES_DB"),
		SSLMode:       os.Getenv("GAMEZONE_POSTGRES_SSLMODE"),
		RedisHost:     os.Getenv("GAMEZONE_REDIS_HOST"),
		RedisPort:     os.Getenv("GAMEZONE_REDIS_PORT"),
		NatsHost:      os.Getenv("GAMEZONE_NATS_HOST"),
		NatsPort:      os.Getenv("GAMEZONE_NATS_PORT"),
		ApiPort:       getEnvDefault("GAMEZONE_API_PORT", "8080"),
		JWTSecret:     os.Getenv("GAMEZONE_JWT_SECRET"),
		TokenValidity: getEnvDuration("GAMEZONE_TOKEN_VALIDITY", 24*time.Hour),
		SMTPHost:      os.Getenv("GAMEZONE_SMTP_HOST"),
		SMTPPort:      getEnvInt("GAMEZONE_SMTP_PORT", 587),
		SMTPUser:      os.Getenv("GAMEZONE_SMTP_USER"),
		SMTPPass:      os.Getenv("GAMEZONE_SMTP_PASSWORD"),
		MailFrom:      os.Getenv("GAMEZONE_MAIL_FROM"),
		SupportEmail:  getEnvDefault("GAMEZONE_SUPPORT_EMAIL", "support@gamezone.local"),
		CompanyName:   getEnvDefault("GAMEZONE_COMPANY_NAME", "GameZone"),
	}

	// Required: database
	if cfg.DBUser == "" || cfg.DBHost == "" || cfg.DBName == "" || cfg.SSLMode == "" {
		return nil, fmt.Errorf("missing required env for database: GAMEZONE_POSTGRES_USER/HOST/DB/SSLMODE")
	}

	// Required: redis (token store)
	if cfg.RedisHost == "" || cfg.RedisPort == "" {
		return nil, fmt.Errorf("missing required env for redis: GAMEZONE_REDIS_HOST/PORT")
	}

	// Required: nats (notification bus)
	if cfg.NatsHost == "" || cfg.NatsPort == "" {
		return nil, fmt.Errorf("missing required env for nats: GAMEZONE_NATS_HOST/PORT")
	}

	// Required: token signing secret
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing required env: GAMEZONE_JWT_SECRET")
	}

	if cfg.SMTPHost != "" && cfg.MailFrom == "" {
		return nil, fmt.Errorf("GAMEZONE_MAIL_FROM is required when GAMEZONE_SMTP_HOST is set")
	}

	return cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName, c.SSLMode)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func (c *Config) NatsAddr() string {
	return fmt.Sprintf("nats://%s:%s", c.NatsHost, c.NatsPort)
}

func (c *Config) ApiAddr() string {
	return ":" + c.ApiPort
}

// MailEnabled reports whether SMTP delivery is configured.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != ""
}

func getEnvDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
