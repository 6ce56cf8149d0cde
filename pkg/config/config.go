package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Recommend RecommendConfig
}

type AppConfig struct {
	Name            string
	Version         string
	Environment     string
	AppShareCodeKey string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

// RecommendConfig carries the default re-ranking knobs. Per-station
// overrides live in the rerank_profiles table.
type RecommendConfig struct {
	DefaultCount    int
	ExplorationRate float64
	DiversityWeight float64
	NoveltyWeight   float64
	PopularityAlpha float64
	PenaltyStrength float64
	NoveltyBoost    float64
	DataPath        string
	SessionTTLMin   int
	MaxSessions     int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:            getEnv("APP_NAME", "FairTune API"),
			Version:         getEnv("APP_VERSION", "1.0.0"),
			Environment:     getEnv("APP_ENV", "development"),
			AppShareCodeKey: getEnv("APP_SHARE_CODE_KEY", ""),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "fairtune_api"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvInt("REDIS_DB", 0),
		},
		Recommend: RecommendConfig{
			DefaultCount:    getEnvInt("DEFAULT_RECOMMENDATION_COUNT", 20),
			ExplorationRate: getEnvFloat("EXPLORATION_RATE", 0.3),
			DiversityWeight: getEnvFloat("DIVERSITY_WEIGHT", 0.4),
			NoveltyWeight:   getEnvFloat("NOVELTY_WEIGHT", 0.3),
			PopularityAlpha: getEnvFloat("POPULARITY_ALPHA", 0.7),
			PenaltyStrength: getEnvFloat("PENALTY_STRENGTH", 0.3),
			NoveltyBoost:    getEnvFloat("NOVELTY_BOOST", 1.5),
			DataPath:        getEnv("DATA_PATH", "data"),
			SessionTTLMin:   getEnvInt("SESSION_TTL_MINUTES", 120),
			MaxSessions:     getEnvInt("MAX_SESSIONS", 10000),
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.App.AppShareCodeKey == "" {
		return nil, errors.New("missing app share code key")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}

	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}

	return defaultVal
}
