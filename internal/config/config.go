package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores service settings.
type Config struct {
	Port      int
	LogLevel  string
	DB        DB
	Offer     Offer
	Dispatch  Dispatch
	Kafka     Kafka
	MQTT      MQTT
	RateLimit RateLimit
}

// DB stores PostgreSQL connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a pgx connection string.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Offer stores offer lifecycle settings.
type Offer struct {
	TTL           time.Duration // lifetime of a pending offer
	PoolCap       int           // max candidates per broadcast
	SweepInterval time.Duration // expiry sweep period (0 disables)
}

// Dispatch stores outbound notification settings.
type Dispatch struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Rate        float64 // messages per second per channel
	Burst       int
	Concurrency int
}

// Kafka stores broker settings; an empty broker list disables Kafka.
type Kafka struct {
	Brokers        []string
	SMSTopic       string
	ResponsesTopic string
	GroupID        string
}

// MQTT stores messaging-app broker settings; an empty broker disables MQTT.
type MQTT struct {
	Broker      string
	ClientID    string
	TopicPrefix string
}

// RateLimit stores the inbound HTTP rate limit settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := Config{
		Port:      DefaultPort(),
		LogLevel:  "info",
		DB:        DefaultDB(),
		Offer:     DefaultOffer(),
		Dispatch:  DefaultDispatch(),
		Kafka:     DefaultKafka(),
		MQTT:      DefaultMQTT(),
		RateLimit: DefaultRateLimit(),
	}

	var err error
	if cfg.Port, err = envInt("PORT", cfg.Port); err != nil {
		return nil, err
	}
	cfg.LogLevel = envString("LOG_LEVEL", cfg.LogLevel)

	cfg.DB.Host = envString("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = envString("POSTGRES_PORT", cfg.DB.Port)
	if _, err := strconv.Atoi(cfg.DB.Port); err != nil {
		return nil, fmt.Errorf("invalid POSTGRES_PORT %q: %w", cfg.DB.Port, err)
	}
	cfg.DB.User = envString("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = envString("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = envString("POSTGRES_DB", cfg.DB.Name)

	if cfg.Offer.TTL, err = envDuration("OFFER_TTL", cfg.Offer.TTL); err != nil {
		return nil, err
	}
	if cfg.Offer.PoolCap, err = envInt("OFFER_POOL_CAP", cfg.Offer.PoolCap); err != nil {
		return nil, err
	}
	if cfg.Offer.SweepInterval, err = envDuration("OFFER_SWEEP_INTERVAL", cfg.Offer.SweepInterval); err != nil {
		return nil, err
	}

	if cfg.Dispatch.MaxAttempts, err = envInt("DISPATCH_MAX_ATTEMPTS", cfg.Dispatch.MaxAttempts); err != nil {
		return nil, err
	}
	if cfg.Dispatch.BaseDelay, err = envDuration("DISPATCH_BASE_DELAY", cfg.Dispatch.BaseDelay); err != nil {
		return nil, err
	}
	if cfg.Dispatch.MaxDelay, err = envDuration("DISPATCH_MAX_DELAY", cfg.Dispatch.MaxDelay); err != nil {
		return nil, err
	}
	if cfg.Dispatch.Rate, err = envFloat("DISPATCH_RATE", cfg.Dispatch.Rate); err != nil {
		return nil, err
	}
	if cfg.Dispatch.Burst, err = envInt("DISPATCH_BURST", cfg.Dispatch.Burst); err != nil {
		return nil, err
	}
	if cfg.Dispatch.Concurrency, err = envInt("DISPATCH_CONCURRENCY", cfg.Dispatch.Concurrency); err != nil {
		return nil, err
	}

	if v := envString("KAFKA_BROKERS", ""); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	cfg.Kafka.SMSTopic = envString("KAFKA_SMS_TOPIC", cfg.Kafka.SMSTopic)
	cfg.Kafka.ResponsesTopic = envString("KAFKA_RESPONSES_TOPIC", cfg.Kafka.ResponsesTopic)
	cfg.Kafka.GroupID = envString("KAFKA_GROUP_ID", cfg.Kafka.GroupID)

	cfg.MQTT.Broker = envString("MQTT_BROKER", cfg.MQTT.Broker)
	cfg.MQTT.ClientID = envString("MQTT_CLIENT_ID", cfg.MQTT.ClientID)
	cfg.MQTT.TopicPrefix = envString("MQTT_TOPIC_PREFIX", cfg.MQTT.TopicPrefix)

	if cfg.RateLimit.Enabled, err = envBool("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Rate, err = envFloat("RATE_LIMIT_RATE", cfg.RateLimit.Rate); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Burst, err = envInt("RATE_LIMIT_BURST", cfg.RateLimit.Burst); err != nil {
		return nil, err
	}

	fs := pflag.CommandLine
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.DurationVar(&cfg.Offer.TTL, "offer-ttl", cfg.Offer.TTL, "lifetime of a pending offer")
	fs.IntVar(&cfg.Offer.PoolCap, "pool-cap", cfg.Offer.PoolCap, "max candidates offered per broadcast")
	fs.DurationVar(&cfg.Offer.SweepInterval, "sweep-interval", cfg.Offer.SweepInterval, "expiry sweep period, 0 disables")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Offer.TTL <= 0 {
		return fmt.Errorf("invalid offer ttl: %s", c.Offer.TTL)
	}
	if c.Offer.PoolCap <= 0 {
		return fmt.Errorf("invalid pool cap: %d", c.Offer.PoolCap)
	}
	if c.Offer.SweepInterval < 0 {
		return fmt.Errorf("invalid sweep interval: %s", c.Offer.SweepInterval)
	}
	if c.Dispatch.MaxAttempts <= 0 {
		return fmt.Errorf("invalid dispatch max attempts: %d", c.Dispatch.MaxAttempts)
	}
	if c.Dispatch.Concurrency <= 0 {
		return fmt.Errorf("invalid dispatch concurrency: %d", c.Dispatch.Concurrency)
	}
	return nil
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

func envBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
