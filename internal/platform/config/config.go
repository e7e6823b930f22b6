package config

import (
	"os"
	"strconv"
	"time"

	vstrings "vardef/pkg/platform/strings"
)

// Server captures process level configuration.
type Server struct {
	Addr                  string
	JWTSigningKey         string
	LogLevel              string
	LogFormat             string
	PublishedImmutable    string
	MetricsExportInterval time.Duration
	ShutdownTimeout       time.Duration
	Database              DatabaseConfig
	Redis                 RedisConfig
	Kafka                 KafkaConfig
	Klass                 KlassConfig
	Vardok                VardokConfig
}

// DatabaseConfig configures PostgreSQL. An empty URL selects the in-memory stores.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig configures the classification snapshot mirror. An empty URL disables it.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures definition change events. No brokers selects the log publisher.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// KlassConfig configures the classification authority client and refresh cadence.
type KlassConfig struct {
	BaseURL         string
	Timeout         time.Duration
	RefreshInterval time.Duration
	Classifications []string
}

// VardokConfig configures the legacy system client.
type VardokConfig struct {
	BaseURL string
	Timeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:                  getEnv("VARDEF_ADDR", ":8080"),
		JWTSigningKey:         getEnv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "json"),
		PublishedImmutable:    getEnv("VARDEF_PUBLISHED_IMMUTABLE_FIELDS", "classificationReference,unitTypes"),
		MetricsExportInterval: getDuration("METRICS_EXPORT_INTERVAL", time.Minute),
		ShutdownTimeout:       getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    getInt("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDuration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: vstrings.SplitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   getEnv("KAFKA_TOPIC", "variable-definition-events"),
		},
		Klass: KlassConfig{
			BaseURL:         getEnv("KLASS_BASE_URL", "https://data.ssb.no/api/klass/v1"),
			Timeout:         getDuration("KLASS_TIMEOUT", 10*time.Second),
			RefreshInterval: getDuration("KLASS_REFRESH_INTERVAL", 24*time.Hour),
			Classifications: vstrings.SplitList(getEnv("KLASS_CLASSIFICATIONS", "702,618,303")),
		},
		Vardok: VardokConfig{
			BaseURL: getEnv("VARDOK_BASE_URL", "https://www.ssb.no/a/xml/metadata/conceptvariable/vardok"),
			Timeout: getDuration("VARDOK_TIMEOUT", 10*time.Second),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

