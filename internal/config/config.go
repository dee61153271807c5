package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DB stores PostgreSQL connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a pgx connection string from the DB settings.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Wolt stores Wolt Drive API credentials and mode.
type Wolt struct {
	APIToken      string
	MerchantID    string
	VenueID       string
	Development   bool
	WebhookSecret string
}

// Kafka stores order-events consumer settings. Empty brokers disable the consumer.
type Kafka struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Redis stores the negotiation-log store settings. Empty addr falls back to
// the in-memory store.
type Redis struct {
	Addr string
	DB   int
}

// Pprof stores the debug listener settings. Empty addr disables the listener.
type Pprof struct {
	Addr string
	User string
	Pass string
}

// Venue stores the venue operating hours and scheduling defaults.
type Venue struct {
	OpenTime    string
	CloseTime   string
	Timezone    string
	PrepMinutes int
}

// Config stores all service settings.
type Config struct {
	Port  int
	DB    DB
	Wolt  Wolt
	Kafka Kafka
	Redis Redis
	Pprof Pprof
	Venue Venue
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:  DefaultPort(),
		DB:    DefaultDB(),
		Wolt:  DefaultWolt(),
		Kafka: DefaultKafka(),
		Redis: DefaultRedis(),
		Venue: DefaultVenue(),
	}

	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse PORT: %w", err)
		}
		cfg.Port = p
	}

	envString(&cfg.DB.Host, "POSTGRES_HOST")
	envString(&cfg.DB.User, "POSTGRES_USER")
	envString(&cfg.DB.Pass, "POSTGRES_PASSWORD")
	envString(&cfg.DB.Name, "POSTGRES_DB")
	if v := os.Getenv("POSTGRES_PORT"); v != "" {
		if _, err := strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("parse POSTGRES_PORT: %w", err)
		}
		cfg.DB.Port = v
	}

	envString(&cfg.Wolt.APIToken, "WOLT_API_TOKEN")
	envString(&cfg.Wolt.MerchantID, "WOLT_MERCHANT_ID")
	envString(&cfg.Wolt.VenueID, "WOLT_VENUE_ID")
	envString(&cfg.Wolt.WebhookSecret, "WOLT_WEBHOOK_SECRET")
	if v := os.Getenv("WOLT_IS_DEVELOPMENT"); v != "" {
		cfg.Wolt.Development = v == "true"
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitCSV(v)
	}
	envString(&cfg.Kafka.Topic, "KAFKA_TOPIC")
	envString(&cfg.Kafka.GroupID, "KAFKA_GROUP_ID")

	envString(&cfg.Redis.Addr, "REDIS_ADDR")
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_DB: %w", err)
		}
		cfg.Redis.DB = n
	}

	envString(&cfg.Pprof.Addr, "PPROF_ADDR")
	envString(&cfg.Pprof.User, "PPROF_USER")
	envString(&cfg.Pprof.Pass, "PPROF_PASS")

	envString(&cfg.Venue.OpenTime, "VENUE_OPEN_TIME")
	envString(&cfg.Venue.CloseTime, "VENUE_CLOSE_TIME")
	envString(&cfg.Venue.Timezone, "VENUE_TIMEZONE")
	if v := os.Getenv("VENUE_PREP_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse VENUE_PREP_MINUTES: %w", err)
		}
		cfg.Venue.PrepMinutes = n
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Venue.PrepMinutes < MinPrepMinutes || c.Venue.PrepMinutes > MaxPrepMinutes {
		return fmt.Errorf("prep minutes out of range [%d, %d]: %d",
			MinPrepMinutes, MaxPrepMinutes, c.Venue.PrepMinutes)
	}
	return nil
}

func envString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
