package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	SecretKey     string
	SigningMethod jwt.SigningMethod
	TokenTTL      time.Duration

	GinMode string
	Port    string
}

// Load reads configuration from the environment. The signing secret has no
// default: a missing SECRET_KEY is a configuration error and the process must
// not start serving requests.
func Load() (*Config, error) {
	cfg := &Config{
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "tracker"),
		DBPassword: getEnv("DB_PASSWORD", "tracker"),
		DBName:     getEnv("DB_NAME", "issue_tracker"),
		SecretKey:  os.Getenv("SECRET_KEY"),
		GinMode:    getEnv("GIN_MODE", "debug"),
		Port:       getEnv("PORT", "8080"),
	}

	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY is not set")
	}

	switch cfg.DBDriver {
	case "postgres", "mysql":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	switch alg := getEnv("JWT_ALGORITHM", "HS256"); alg {
	case "HS256":
		cfg.SigningMethod = jwt.SigningMethodHS256
	case "HS384":
		cfg.SigningMethod = jwt.SigningMethodHS384
	case "HS512":
		cfg.SigningMethod = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported JWT_ALGORITHM %q", alg)
	}

	ttlStr := getEnv("TOKEN_TTL_MINUTES", "60")
	ttlMinutes, err := strconv.Atoi(ttlStr)
	if err != nil || ttlMinutes < 1 {
		return nil, fmt.Errorf("invalid TOKEN_TTL_MINUTES %q", ttlStr)
	}
	cfg.TokenTTL = time.Duration(ttlMinutes) * time.Minute

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
