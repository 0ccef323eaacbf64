package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type Config struct {
	HTTPAddr    string
	ServiceName string
	LogEnv      string
	LogLevel    string

	// Storage picks the entity engine: memory or postgres.
	Storage string
	// Sessions picks the session backend: memory, postgres or redis.
	Sessions             string
	SessionTTL           time.Duration
	SessionPruneInterval time.Duration

	DB        DB
	RedisAddr string

	KafkaBrokers  []string
	EventsEnabled bool

	InventoryGroup   string
	InventoryWorkers int
}

// DB is only read by the postgres engine and session store.
type DB struct {
	Host           string
	Port           int
	User           string
	Password       string
	Name           string
	MaxConns       int
	IdleTimeout    time.Duration
	ConnectTimeout time.Duration
}

func Load() Config {
	return Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8081"),
		ServiceName: getenv("SERVICE_NAME", "market-api"),
		LogEnv:      getenv("LOG_ENV", "dev"),
		LogLevel:    getenv("LOG_LEVEL", "info"),

		Storage:              strings.ToLower(getenv("STORAGE_BACKEND", BackendMemory)),
		Sessions:             strings.ToLower(getenv("SESSION_BACKEND", BackendMemory)),
		SessionTTL:           getduration("SESSION_TTL", 24*time.Hour),
		SessionPruneInterval: getduration("SESSION_PRUNE_INTERVAL", 24*time.Hour),

		DB: DB{
			Host:           getenv("DB_HOST", "localhost"),
			Port:           getint("DB_PORT", 5432),
			User:           getenv("DB_USER", "postgres"),
			Password:       os.Getenv("DB_PASSWORD"),
			Name:           getenv("DB_NAME", "postgres"),
			MaxConns:       getint("DB_MAX_CONNS", 10),
			IdleTimeout:    getduration("DB_IDLE_TIMEOUT", 30*time.Second),
			ConnectTimeout: getduration("DB_CONNECT_TIMEOUT", 2*time.Second),
		},
		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),

		KafkaBrokers:  splitCSV(getenv("KAFKA_BROKERS", "kafka:9092")),
		EventsEnabled: getbool("EVENTS_ENABLED", false),

		InventoryGroup:   getenv("INVENTORY_GROUP", "inventory-svc"),
		InventoryWorkers: getint("INVENTORY_WORKERS", 8),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	i, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return def
	}
	return i
}

func getbool(k string, def bool) bool {
	b, err := strconv.ParseBool(os.Getenv(k))
	if err != nil {
		return def
	}
	return b
}

func getduration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(k))
	if err != nil || d <= 0 {
		return def
	}
	return d
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
