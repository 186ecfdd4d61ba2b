package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort        string
	PostgresDSN     string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	DBMaxOpenConns  int
	DBMaxIdleConns  int
	DBConnMaxIdle   time.Duration
	DBConnMaxLife   time.Duration
	DBConnectWait   time.Duration
	RequestTimeout  time.Duration
	LoginRateLimit  int
	LoginRateWindow time.Duration
	SubmitRateLimit int
	SubmitRateWin   time.Duration
	UploadDir       string
	PublicBaseURL   string
	MailRelayURL    string
	MailRelayKey    string
	MailFrom        string
	RedisAddr       string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8000"),
		PostgresDSN:     getEnv("DATABASE_URL", ""),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		AccessTokenTTL:  getDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL: getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		DBMaxOpenConns:  getInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:  getInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxIdle:   getDuration("DB_CONN_MAX_IDLE", 5*time.Minute),
		DBConnMaxLife:   getDuration("DB_CONN_MAX_LIFE", 30*time.Minute),
		DBConnectWait:   getDuration("DB_CONNECT_WAIT", 30*time.Second),
		RequestTimeout:  getDuration("REQUEST_TIMEOUT", 10*time.Second),
		LoginRateLimit:  getInt("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow: getDuration("LOGIN_RATE_WINDOW", time.Minute),
		SubmitRateLimit: getInt("SUBMIT_RATE_LIMIT", 5),
		SubmitRateWin:   getDuration("SUBMIT_RATE_WINDOW", time.Minute),
		UploadDir:       getEnv("UPLOAD_DIR", "media/resumes"),
		PublicBaseURL:   getEnv("PUBLIC_BASE_URL", "http://localhost:8000"),
		MailRelayURL:    getEnv("MAIL_RELAY_BASE_URL", ""),
		MailRelayKey:    getEnv("MAIL_RELAY_INTERNAL_KEY", ""),
		MailFrom:        getEnv("MAIL_FROM", "hr@veridia.io"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
	}

	if cfg.PostgresDSN == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
