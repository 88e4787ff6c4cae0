package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures process-level configuration. FromEnv keeps main lean;
// every value has a development default so the server boots with no env.
type Config struct {
	Addr string

	// PostgresURL selects the durable store. Empty means in-memory stores.
	PostgresURL string

	// RedisURL selects the Redis session store. Empty means in-memory sessions.
	RedisURL string

	// KafkaBrokers enables the Kafka audit sink when non-empty.
	KafkaBrokers string
	KafkaTopic   string

	JWTSigningKey string
	SessionTTL    time.Duration

	// BootstrapRecruiter seeds a recruiter account at startup so the
	// recruiter-gated operations are reachable on a fresh deployment.
	BootstrapRecruiterUser     string
	BootstrapRecruiterPassword string
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	cfg := Config{
		Addr:                       getenv("TALENTGATE_ADDR", ":8080"),
		PostgresURL:                os.Getenv("TALENTGATE_POSTGRES_URL"),
		RedisURL:                   os.Getenv("TALENTGATE_REDIS_URL"),
		KafkaBrokers:               os.Getenv("TALENTGATE_KAFKA_BROKERS"),
		KafkaTopic:                 getenv("TALENTGATE_KAFKA_TOPIC", "talentgate.audit"),
		JWTSigningKey:              getenv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		SessionTTL:                 getDuration("TALENTGATE_SESSION_TTL", 12*time.Hour),
		BootstrapRecruiterUser:     getenv("TALENTGATE_RECRUITER_USER", ""),
		BootstrapRecruiterPassword: os.Getenv("TALENTGATE_RECRUITER_PASSWORD"),
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
