package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is read once at startup from the environment. Every field has a
// development default except the admin credentials, which stay empty (and
// therefore unusable) unless set.
type Config struct {
	HTTPAddr  string
	MySQLDSN  string
	RedisAddr string

	KafkaBrokers []string // empty disables Kafka, notifications go to the log
	NotifyTopic  string

	NotifyWorkers   int
	NotifyQueueSize int
	NotifyRetries   int
	NotifyBackoff   time.Duration

	CartTTL time.Duration

	AdminEmail    string
	AdminPassword string
}

func Load() Config {
	return Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		MySQLDSN:        getenv("MYSQL_DSN", "root:root@tcp(localhost:3306)/storefront?parseTime=true"),
		RedisAddr:       getenv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:    splitCSV(os.Getenv("KAFKA_BROKERS")),
		NotifyTopic:     getenv("NOTIFY_TOPIC", "storefront.notifications"),
		NotifyWorkers:   getenvInt("NOTIFY_WORKERS", 2),
		NotifyQueueSize: getenvInt("NOTIFY_QUEUE_SIZE", 256),
		NotifyRetries:   getenvInt("NOTIFY_RETRIES", 3),
		NotifyBackoff:   time.Duration(getenvInt("NOTIFY_BACKOFF_MS", 500)) * time.Millisecond,
		CartTTL:         time.Duration(getenvInt("CART_TTL_HOURS", 720)) * time.Hour,
		AdminEmail:      os.Getenv("ADMIN_EMAIL"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key))); err == nil {
		return v
	}
	return fallback
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
