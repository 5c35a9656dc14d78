package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv  string
	AppPort string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBURL      string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CartTTL       time.Duration
	CartCacheSize int

	JWTSecret     string
	Currency      string
	AllowedOrigin string
}

// LoadConfig reads .env when present, then the process environment. It
// exits when the database host or JWT secret is missing.
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		AppPort:       getEnv("APP_PORT", "8080"),
		DBHost:        os.Getenv("DB_HOST"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBURL:         os.Getenv("DB_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CartTTL:       time.Duration(getEnvInt("CART_TTL_HOURS", 24*30)) * time.Hour,
		CartCacheSize: getEnvInt("CART_CACHE_SIZE", 1024),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		Currency:      getEnv("CURRENCY", "EGP"),
		AllowedOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),
	}

	if cfg.DBHost == "" || cfg.JWTSecret == "" {
		log.Fatal("Environment variables not loaded properly: DB_HOST and JWT_SECRET are required")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
