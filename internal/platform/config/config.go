package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	APIPort string
	JWTKey  []byte
	JWTExp  time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RefreshTokenTTL             time.Duration
	SessionRefreshWindowSeconds int

	OTPCodeTTL         time.Duration
	PhoneCountryCode   string
	SignupRateLimitTTL time.Duration

	SessionPollAttempts  int
	SessionPollDelayMs   int
	ProfileInsertRetries int
	ProfileInsertDelayMs int

	ValidityMinDays int
	ValidityMaxDays int
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:                     getEnv("API_PORT", "8080"),
		JWTKey:                      []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTExp:                      time.Duration(getEnvAsInt("JWT_EXPIRATION_MINUTES", 60)) * time.Minute,
		DBHost:                      getEnv("DB_HOST", "localhost"),
		DBPort:                      getEnv("DB_PORT", "5432"),
		DBUser:                      getEnv("DB_USER", "user"),
		DBPassword:                  getEnv("DB_PASSWORD", "password"),
		DBName:                      getEnv("DB_NAME", "farmdirect_db"),
		DBSslMode:                   getEnv("DB_SSLMODE", "disable"),
		RedisAddr:                   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:               getEnv("REDIS_PASSWORD", ""),
		RedisDB:                     getEnvAsInt("REDIS_DB", 0),
		RefreshTokenTTL:             time.Duration(getEnvAsInt("REFRESH_TOKEN_TTL_HOURS", 720)) * time.Hour,
		SessionRefreshWindowSeconds: getEnvAsInt("SESSION_REFRESH_WINDOW_SECONDS", 60),
		OTPCodeTTL:                  time.Duration(getEnvAsInt("OTP_CODE_TTL_SECONDS", 300)) * time.Second,
		PhoneCountryCode:            getEnv("PHONE_COUNTRY_CODE", "+91"),
		SignupRateLimitTTL:          time.Duration(getEnvAsInt("SIGNUP_RATE_LIMIT_SECONDS", 48)) * time.Second,
		SessionPollAttempts:         getEnvAsInt("SESSION_POLL_ATTEMPTS", 20),
		SessionPollDelayMs:          getEnvAsInt("SESSION_POLL_DELAY_MS", 300),
		ProfileInsertRetries:        getEnvAsInt("PROFILE_INSERT_RETRIES", 2),
		ProfileInsertDelayMs:        getEnvAsInt("PROFILE_INSERT_DELAY_MS", 500),
		ValidityMinDays:             getEnvAsInt("VALIDITY_MIN_DAYS", 1),
		ValidityMaxDays:             getEnvAsInt("VALIDITY_MAX_DAYS", 365),
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
