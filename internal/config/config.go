package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Бэкенды хранения списка занятий
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

type Config struct {
	TelegramToken  string `mapstructure:"TELEGRAM_TOKEN"`
	Environment    string `mapstructure:"ENV"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	StorageBackend string `mapstructure:"STORAGE_BACKEND"`
	StorageKey     string `mapstructure:"STORAGE_KEY"`
	DBDSN          string `mapstructure:"DB_DSN"`
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	DataDir        string `mapstructure:"DATA_DIR"`
	FontPath       string `mapstructure:"FONT_PATH"`
	OwnerID        int64  `mapstructure:"OWNER_TELEGRAM_ID"`
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}

	log.Printf("Config loaded (storage: %s)\n", cfg.StorageBackend)

	return cfg, nil
}

// FromEnv собирает конфиг из переменных окружения, проставляет дефолты и проверяет обязательные поля
func FromEnv() (*Config, error) {
	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		Environment:    os.Getenv("ENV"),
		LogLevel:       strings.TrimSpace(os.Getenv("LOG_LEVEL")),
		StorageBackend: strings.ToLower(strings.TrimSpace(os.Getenv("STORAGE_BACKEND"))),
		StorageKey:     os.Getenv("STORAGE_KEY"),
		DBDSN:          os.Getenv("DB_DSN"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		DataDir:        os.Getenv("DATA_DIR"),
		FontPath:       os.Getenv("FONT_PATH"),
	}

	if owner := strings.TrimSpace(os.Getenv("OWNER_TELEGRAM_ID")); owner != "" {
		id, err := strconv.ParseInt(owner, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("OWNER_TELEGRAM_ID must be a number: %w", err)
		}
		cfg.OwnerID = id
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.StorageBackend == "" {
		cfg.StorageBackend = StorageFile
	}
	if cfg.StorageKey == "" {
		cfg.StorageKey = "lectures"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}

	// Проверяем обязательные поля для выбранного бэкенда
	switch cfg.StorageBackend {
	case StorageMemory, StorageFile:
	case StoragePostgres:
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("DB_DSN is required for postgres storage but not set")
		}
	case StorageRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required for redis storage but not set")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	return cfg, nil
}

// RequireTelegram проверяет что задан токен бота
func (c *Config) RequireTelegram() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
