package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string
	LogLevel   string

	Wiki WikiConfig
}

// WikiConfig описывает параметры обращения к DokuWiki.
type WikiConfig struct {
	UserAgent           string
	ContactEmail        string
	Referer             string
	Timeout             time.Duration
	MaxConcurrency      int
	RetryCount          int
	ContinueOnPageError bool
	Timezone            string
}

func LoadConfig() (Config, error) {

	err := godotenv.Load()

	return Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "peer_review"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		Wiki: WikiConfig{
			UserAgent:           getEnv("WIKI_USER_AGENT", "peer-review-service/1.0"),
			ContactEmail:        getEnv("WIKI_CONTACT_EMAIL", "admin@example.com"),
			Referer:             getEnv("WIKI_REFERER", "http://localhost:8080/"),
			Timeout:             getEnvDuration("WIKI_TIMEOUT", 30*time.Second),
			MaxConcurrency:      getEnvInt("WIKI_MAX_CONCURRENCY", 4),
			RetryCount:          getEnvInt("WIKI_RETRY_COUNT", 0),
			ContinueOnPageError: getEnvBool("WIKI_CONTINUE_ON_PAGE_ERROR", false),
			Timezone:            getEnv("WIKI_TIMEZONE", "Local"),
		},
	}, err
}

// Location возвращает часовой пояс для разбора дат ревизий.
// Неизвестное имя пояса трактуется как локальное время.
func (w WikiConfig) Location() *time.Location {
	if w.Timezone == "" || w.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(w.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
