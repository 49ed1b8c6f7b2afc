package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const defaultQuotaBytes = 5 << 20

// DBConfig is one mysql shard, read from DB<n>_HOST, DB<n>_PORT, DB<n>_USER,
// DB<n>_PASS and DB<n>_NAME.
type DBConfig struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", c.User, c.Pass, c.Host, c.Port, c.Name)
}

type Config struct {
	Env             string
	Port            string
	StoreBackend    string // file, memory, redis or mysql
	StorePath       string
	StoreQuota      int
	RedisAddr       string
	DBShards        []DBConfig
	KafkaBrokers    []string
	OrderTopic      string
	OrderGroupID    string
	JWTSecret       string
	OrderServiceURL string
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Env:             getEnv("ENV", "development"),
		Port:            getEnv("PORT", "8080"),
		StoreBackend:    strings.ToLower(getEnv("STORE_BACKEND", "file")),
		StorePath:       getEnv("STORE_PATH", "./data/console.json"),
		StoreQuota:      defaultQuotaBytes,
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		KafkaBrokers:    getKafkaBrokerURLs(),
		OrderTopic:      getEnv("ORDER_TOPIC", "order-topic"),
		OrderGroupID:    getEnv("ORDER_GROUP_ID", "console-order-group"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		OrderServiceURL: strings.TrimRight(os.Getenv("ORDER_SERVICE_URL"), "/"),
	}

	if v := os.Getenv("STORE_QUOTA_BYTES"); v != "" {
		quota, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid STORE_QUOTA_BYTES %q: %w", v, err)
		}
		cfg.StoreQuota = quota
	}

	switch cfg.StoreBackend {
	case "file", "memory":
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("STORE_BACKEND=redis requires REDIS_ADDR")
		}
	case "mysql":
		for i := 1; i <= 3; i++ {
			prefix := fmt.Sprintf("DB%d_", i)
			if os.Getenv(prefix+"HOST") == "" {
				break
			}
			cfg.DBShards = append(cfg.DBShards, DBConfig{
				Host: os.Getenv(prefix + "HOST"),
				Port: getEnv(prefix+"PORT", "3306"),
				User: os.Getenv(prefix + "USER"),
				Pass: os.Getenv(prefix + "PASS"),
				Name: os.Getenv(prefix + "NAME"),
			})
		}
		if len(cfg.DBShards) == 0 {
			return nil, fmt.Errorf("STORE_BACKEND=mysql requires DB1_HOST")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	if cfg.JWTSecret == "" {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "secret"
	}
	return cfg, nil
}

// KafkaEnabled reports whether order events should be published.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
