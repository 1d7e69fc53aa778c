// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config.yml"

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Storage   StorageConfig   `yaml:"storage"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	HTTP      HTTPConfig      `yaml:"http"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Host string `yaml:"host"`
}

type LoggingConfig struct {
	Development bool `yaml:"development"`
}

type StorageConfig struct {
	Type           string        `yaml:"type"` // inmemory, file, sqlite или postgres
	DataDir        string        `yaml:"data_dir"`
	SQLitePath     string        `yaml:"sqlite_path"`
	PostgresURL    string        `yaml:"postgres_url"`
	MaxConnections int           `yaml:"max_connections"`
	MinConnections int           `yaml:"min_connections"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
}

type SchedulerConfig struct {
	DailyResetEnabled bool   `yaml:"daily_reset_enabled"`
	DailyResetAt      string `yaml:"daily_reset_at"` // "HH:MM"
}

type HTTPConfig struct {
	RateLimitRPM int           `yaml:"rate_limit_rpm"`
	Timeout      time.Duration `yaml:"timeout"`
	CORSOrigins  []string      `yaml:"cors_origins"`
}

const (
	StorageInMemory = "inmemory"
	StorageFile     = "file"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: "8080",
		},
		Storage: StorageConfig{
			Type:           StorageFile,
			DataDir:        "./data",
			SQLitePath:     "./data/tlist.db",
			MaxConnections: 10,
			MinConnections: 2,
			IdleTimeout:    5 * time.Minute,
		},
		Scheduler: SchedulerConfig{
			DailyResetAt: "00:00",
		},
		HTTP: HTTPConfig{
			RateLimitRPM: 100,
			Timeout:      30 * time.Second,
			CORSOrigins:  []string{"capacitor://localhost", "http://localhost"},
		},
	}
}

// Load читает YAML поверх значений по умолчанию, затем .env и переменные TLIST_*.
// Отсутствующий файл не ошибка.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath
	}

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("ошибка парсинга %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("не могу открыть %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("загрузка .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString("TLIST_HOST", &c.Server.Host)
	setString("TLIST_PORT", &c.Server.Port)
	setString("TLIST_STORAGE_TYPE", &c.Storage.Type)
	setString("TLIST_DATA_DIR", &c.Storage.DataDir)
	setString("TLIST_SQLITE_PATH", &c.Storage.SQLitePath)
	setString("TLIST_POSTGRES_URL", &c.Storage.PostgresURL)
	setString("TLIST_DAILY_RESET_AT", &c.Scheduler.DailyResetAt)

	if v := os.Getenv("TLIST_DEVELOPMENT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TLIST_DEVELOPMENT: %w", err)
		}
		c.Logging.Development = b
	}
	if v := os.Getenv("TLIST_DAILY_RESET_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TLIST_DAILY_RESET_ENABLED: %w", err)
		}
		c.Scheduler.DailyResetEnabled = b
	}
	if v := os.Getenv("TLIST_RATE_LIMIT_RPM"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TLIST_RATE_LIMIT_RPM: %w", err)
		}
		c.HTTP.RateLimitRPM = n
	}
	if v := os.Getenv("TLIST_CORS_ORIGINS"); v != "" {
		c.HTTP.CORSOrigins = strings.Split(v, ",")
	}
	return nil
}

func setString(key string, target *string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StorageInMemory, StorageFile, StorageSQLite:
	case StoragePostgres:
		if c.Storage.PostgresURL == "" {
			return fmt.Errorf("storage.postgres_url обязателен для типа %q", StoragePostgres)
		}
	default:
		return fmt.Errorf("неизвестный тип хранилища %q", c.Storage.Type)
	}

	if c.Scheduler.DailyResetEnabled {
		if _, _, err := c.Scheduler.ResetClock(); err != nil {
			return err
		}
	}
	if c.HTTP.RateLimitRPM < 0 {
		return fmt.Errorf("http.rate_limit_rpm не может быть отрицательным")
	}
	return nil
}

// ResetClock разбирает daily_reset_at в часы и минуты.
func (s SchedulerConfig) ResetClock() (uint, uint, error) {
	t, err := time.Parse("15:04", s.DailyResetAt)
	if err != nil {
		return 0, 0, fmt.Errorf("scheduler.daily_reset_at %q: ожидается HH:MM", s.DailyResetAt)
	}
	return uint(t.Hour()), uint(t.Minute()), nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
