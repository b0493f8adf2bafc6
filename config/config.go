package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"

	"github.com/yourusername/tgmock/internal/domain/entity"
	"github.com/yourusername/tgmock/internal/domain/repository"
	"github.com/yourusername/tgmock/internal/infrastructure/storage"
	"github.com/yourusername/tgmock/internal/logger"
)

// FSM storage turlari
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StoragePebble = "pebble"
	StorageSQLite = "sqlite"
)

// Config fixture konfiguratsiyasi
type Config struct {
	BotToken     string `yaml:"bot_token"`
	BotID        int64  `yaml:"bot_id"`
	BotUsername  string `yaml:"bot_username"`
	BotFirstName string `yaml:"bot_first_name"`

	UserID        int64  `yaml:"user_id"`
	UserFirstName string `yaml:"user_first_name"`
	UserLastName  string `yaml:"user_last_name"`

	LogLevel string `yaml:"log_level"`

	FSMStorageType string `yaml:"fsm_storage"`
	RedisAddr      string `yaml:"redis_addr"`
	RedisPrefix    string `yaml:"redis_prefix"`
	PebbleDir      string `yaml:"pebble_dir"`
	SQLitePath     string `yaml:"sqlite_path"`

	HistoryFile string `yaml:"history_file"`
}

// Default standart qiymatlar
func Default() *Config {
	return &Config{
		BotToken:       "738453453:test-token",
		BotID:          738453453,
		BotUsername:    "test_bot",
		BotFirstName:   "Test bot",
		UserID:         103592704,
		UserFirstName:  "Linus",
		UserLastName:   "Torvalds",
		FSMStorageType: StorageMemory,
		RedisAddr:      "localhost:6379",
		RedisPrefix:    storage.DefaultRedisPrefix,
	}
}

// Load konfiguratsiyani environment dan yuklash
func Load() (*Config, error) {
	// .env faylini yuklash (mavjud bo'lsa)
	_ = godotenv.Load()

	config := Default()
	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadFile YAML profilni o'qish; environment qiymatlari ustun turadi
func LoadFile(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %v: %w", path, err, entity.ErrConfiguration)
	}
	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnv() error {
	setString(&c.BotToken, "TGMOCK_BOT_TOKEN")
	setString(&c.BotUsername, "TGMOCK_BOT_USERNAME")
	setString(&c.UserFirstName, "TGMOCK_USER_FIRST_NAME")
	setString(&c.UserLastName, "TGMOCK_USER_LAST_NAME")
	setString(&c.LogLevel, "TGMOCK_LOG_LEVEL")
	setString(&c.FSMStorageType, "TGMOCK_FSM_STORAGE")
	setString(&c.RedisAddr, "TGMOCK_REDIS_ADDR")
	setString(&c.PebbleDir, "TGMOCK_PEBBLE_DIR")
	setString(&c.SQLitePath, "TGMOCK_SQLITE_PATH")
	setString(&c.HistoryFile, "TGMOCK_HISTORY_FILE")

	if err := setInt64(&c.BotID, "TGMOCK_BOT_ID"); err != nil {
		return err
	}
	return setInt64(&c.UserID, "TGMOCK_USER_ID")
}

func setString(dst *string, name string) {
	if value := os.Getenv(name); value != "" {
		*dst = value
	}
}

func setInt64(dst *int64, name string) error {
	raw := os.Getenv(name)
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("%s noto'g'ri formatda: %v: %w", name, err, entity.ErrConfiguration)
	}
	*dst = parsed
	return nil
}

// Validate qiymatlarni tekshirish
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("bot token bo'sh: %w", entity.ErrConfiguration)
	}
	if c.BotID <= 0 {
		return fmt.Errorf("bot id %d musbat bo'lishi kerak: %w", c.BotID, entity.ErrConfiguration)
	}
	if c.UserID <= 0 {
		return fmt.Errorf("user id %d musbat bo'lishi kerak: %w", c.UserID, entity.ErrConfiguration)
	}
	if c.BotID == c.UserID {
		return fmt.Errorf("bot and user share id %d: %w", c.BotID, entity.ErrConfiguration)
	}
	if !logger.Valid(c.LogLevel) {
		return fmt.Errorf("log level %q noma'lum: %w", c.LogLevel, entity.ErrConfiguration)
	}

	switch strings.ToLower(c.FSMStorageType) {
	case "", StorageMemory, StoragePebble, StorageSQLite:
	case StorageRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("redis storage requires redis address: %w", entity.ErrConfiguration)
		}
	default:
		return fmt.Errorf("fsm storage %q noma'lum: %w", c.FSMStorageType, entity.ErrConfiguration)
	}
	return nil
}

// BotUser bot foydalanuvchisi
func (c *Config) BotUser() tgbotapi.User {
	return tgbotapi.User{
		ID:        c.BotID,
		IsBot:     true,
		FirstName: c.BotFirstName,
		UserName:  c.BotUsername,
	}
}

// TargetUser test qilinayotgan foydalanuvchi
func (c *Config) TargetUser() tgbotapi.User {
	return tgbotapi.User{
		ID:        c.UserID,
		FirstName: c.UserFirstName,
		LastName:  c.UserLastName,
	}
}

// FSMStorage sozlangan suhbat holati storage ni yaratish
func (c *Config) FSMStorage() (repository.FSMStorage, error) {
	switch strings.ToLower(c.FSMStorageType) {
	case "", StorageMemory:
		return storage.NewMemoryFSMStorage(), nil
	case StorageRedis:
		client := redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		return storage.NewRedisFSMStorage(client, c.RedisPrefix), nil
	case StoragePebble:
		return storage.NewPebbleFSMStorage(c.PebbleDir)
	case StorageSQLite:
		return storage.NewSQLiteFSMStorage(c.SQLitePath)
	default:
		return nil, fmt.Errorf("fsm storage %q noma'lum: %w", c.FSMStorageType, entity.ErrConfiguration)
	}
}
