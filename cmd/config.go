package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"campusdelivery/internal/adapters/out/postgres"
	"campusdelivery/internal/core/domain/services"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPPort   string `yaml:"http_port"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`
	DBSslMode  string `yaml:"db_sslmode"`

	KafkaHost              string `yaml:"kafka_host"`
	KafkaOrderChangedTopic string `yaml:"kafka_order_changed_topic"`

	RedisAddr              string `yaml:"redis_addr"`
	WebhookDedupTTLSeconds int    `yaml:"webhook_dedup_ttl_seconds"`

	MidtransServerKey       string `yaml:"midtrans_server_key"`
	MidtransBaseURL         string `yaml:"midtrans_base_url"`
	MidtransTimeoutSeconds  int    `yaml:"midtrans_timeout_seconds"`
	MidtransVerifySignature bool   `yaml:"midtrans_verify_signature"`

	IdentityBaseURL    string `yaml:"identity_base_url"`
	IdentityServiceKey string `yaml:"identity_service_key"`

	JWTSecret string `yaml:"jwt_secret"`

	MatchingPolicy        string `yaml:"matching_policy"`
	AutoMatchSchedule     string `yaml:"auto_match_schedule"`
	PaymentExpiryMinutes  int    `yaml:"payment_expiry_minutes"`
	PaymentExpirySchedule string `yaml:"payment_expiry_schedule"`
}

func DefaultConfig() Config {
	return Config{
		HTTPPort:                "8080",
		DBPort:                  "5432",
		DBSslMode:               "disable",
		KafkaOrderChangedTopic:  "order.changed",
		WebhookDedupTTLSeconds:  86400,
		MidtransTimeoutSeconds:  10,
		MidtransVerifySignature: true,
		MatchingPolicy:          string(services.MatchFirstAvailable),
		PaymentExpiryMinutes:    60,
	}
}

// LoadConfig layers defaults, the YAML file at path (or CONFIG_PATH), an
// optional .env file and the process environment, later sources winning.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.HTTPPort == "" {
		errs = append(errs, errors.New("HTTP_PORT is required"))
	}
	if c.DBHost == "" || c.DBPort == "" || c.DBUser == "" || c.DBName == "" {
		errs = append(errs, errors.New("DB_HOST, DB_PORT, DB_USER and DB_NAME are required"))
	}
	if _, err := services.ParseMatchingPolicy(c.MatchingPolicy); err != nil {
		errs = append(errs, err)
	}
	if c.PaymentExpiryMinutes <= 0 {
		errs = append(errs, errors.New("PAYMENT_EXPIRY_MINUTES must be positive"))
	}
	return errors.Join(errs...)
}

func (c Config) Postgres() postgres.ConnectionConfig {
	return postgres.ConnectionConfig{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SslMode:  c.DBSslMode,
	}
}

func (c Config) KafkaBrokers() []string {
	if c.KafkaHost == "" {
		return nil
	}
	var out []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

func (c Config) WebhookDedupTTL() time.Duration {
	return time.Duration(c.WebhookDedupTTLSeconds) * time.Second
}

func (c Config) MidtransTimeout() time.Duration {
	return time.Duration(c.MidtransTimeoutSeconds) * time.Second
}

func (c Config) PaymentExpiry() time.Duration {
	return time.Duration(c.PaymentExpiryMinutes) * time.Minute
}

func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"HTTP_PORT":                 &cfg.HTTPPort,
		"DB_HOST":                   &cfg.DBHost,
		"DB_PORT":                   &cfg.DBPort,
		"DB_USER":                   &cfg.DBUser,
		"DB_PASSWORD":               &cfg.DBPassword,
		"DB_NAME":                   &cfg.DBName,
		"DB_SSLMODE":                &cfg.DBSslMode,
		"KAFKA_HOST":                &cfg.KafkaHost,
		"KAFKA_ORDER_CHANGED_TOPIC": &cfg.KafkaOrderChangedTopic,
		"REDIS_ADDR":                &cfg.RedisAddr,
		"MIDTRANS_SERVER_KEY":       &cfg.MidtransServerKey,
		"MIDTRANS_BASE_URL":         &cfg.MidtransBaseURL,
		"IDENTITY_BASE_URL":         &cfg.IdentityBaseURL,
		"IDENTITY_SERVICE_KEY":      &cfg.IdentityServiceKey,
		"JWT_SECRET":                &cfg.JWTSecret,
		"MATCHING_POLICY":           &cfg.MatchingPolicy,
		"AUTO_MATCH_SCHEDULE":       &cfg.AutoMatchSchedule,
		"PAYMENT_EXPIRY_SCHEDULE":   &cfg.PaymentExpirySchedule,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"WEBHOOK_DEDUP_TTL_SECONDS": &cfg.WebhookDedupTTLSeconds,
		"MIDTRANS_TIMEOUT_SECONDS":  &cfg.MidtransTimeoutSeconds,
		"PAYMENT_EXPIRY_MINUTES":    &cfg.PaymentExpiryMinutes,
	}
	for key, dst := range ints {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
	}

	if v := os.Getenv("MIDTRANS_VERIFY_SIGNATURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MIDTRANS_VERIFY_SIGNATURE: %w", err)
		}
		cfg.MidtransVerifySignature = b
	}
	return nil
}
