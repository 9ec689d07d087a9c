package config

import (
	"os"
	"strconv"
	"time"
)

// ServerConfig carries the runtime parameters of the adapter process.
type ServerConfig struct {
	Env          string
	HTTPPort     string
	MetricsPort  string
	KafkaBrokers string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// LoadServerConfig reads the server parameters from the environment.
// KafkaBrokers empty means event publishing is disabled.
func LoadServerConfig() *ServerConfig {
	return &ServerConfig{
		Env:          getEnv("ENV", "local"),
		HTTPPort:     getEnv("PORT", "8080"),
		MetricsPort:  getEnv("METRICS_PORT", "9090"),
		KafkaBrokers: getEnv("KAFKA_BROKERS", ""),
		ReadTimeout:  getEnvAsDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvAsDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:  getEnvAsDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}
