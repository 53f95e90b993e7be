package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPPort               string        `envconfig:"HTTP_PORT" default:"8080"`
	DBHost                 string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort                 string        `envconfig:"DB_PORT" default:"5432"`
	DBUser                 string        `envconfig:"DB_USER" required:"true"`
	DBPassword             string        `envconfig:"DB_PASSWORD" required:"true"`
	DBName                 string        `envconfig:"DB_NAME" required:"true"`
	DBSslMode              string        `envconfig:"DB_SSLMODE" default:"disable"`
	RedisAddr              string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	CartTTL                time.Duration `envconfig:"CART_TTL" default:"72h"`
	KafkaHost              string        `envconfig:"KAFKA_HOST"`
	KafkaOrderChangedTopic string        `envconfig:"KAFKA_ORDER_CHANGED_TOPIC" default:"order.status.changed"`
	BoardRefreshSchedule   string        `envconfig:"BOARD_REFRESH_SCHEDULE" default:"*/5 * * * * *"`
	Timezone               string        `envconfig:"TIMEZONE" default:"America/Sao_Paulo"`
	WhatsAppBaseURL        string        `envconfig:"WHATSAPP_BASE_URL" default:"https://wa.me/"`
	CORSAllowedOrigins     []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// LoadConfig reads .env from path when it exists and then the process
// environment, which wins over the file.
func LoadConfig(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN is the PostgreSQL connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// Location resolves Timezone, falling back to UTC for an empty value.
func (c Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.Timezone) == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}
