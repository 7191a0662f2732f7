package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Env string `yaml:"env"`

	Server struct {
		Port                   string   `yaml:"port"`
		ShutdownTimeoutSeconds int      `yaml:"shutdown_timeout_seconds"`
		AllowedOrigins         []string `yaml:"allowed_origins"`
	} `yaml:"server"`

	Database struct {
		Driver   string `yaml:"driver"`
		DSN      string `yaml:"dsn"`
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"ssl_mode"`
	} `yaml:"database"`

	Redis struct {
		Address         string `yaml:"address"`
		User            string `yaml:"user"`
		Password        string `yaml:"password"`
		DB              int    `yaml:"db"`
		LockTTLSeconds  int    `yaml:"lock_ttl_seconds"`
		LockWaitSeconds int    `yaml:"lock_wait_seconds"`
	} `yaml:"redis"`

	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`

	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`

	Hotel struct {
		Timezone string `yaml:"timezone"`
	} `yaml:"hotel"`

	RateLimit struct {
		BookingsPerMinute int `yaml:"bookings_per_minute"`
		Burst             int `yaml:"burst"`
	} `yaml:"rate_limit"`
}

// LoadEnv nạp biến môi trường từ tệp `.env` nếu có
func LoadEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
}

func defaults() *Config {
	var cfg Config
	cfg.Env = "dev"
	cfg.Server.Port = "8083"
	cfg.Server.ShutdownTimeoutSeconds = 10
	cfg.Database.Driver = "postgres"
	cfg.Database.SSLMode = "disable"
	cfg.Redis.LockTTLSeconds = 10
	cfg.Redis.LockWaitSeconds = 5
	cfg.Log.Level = "info"
	cfg.Hotel.Timezone = "Asia/Ho_Chi_Minh"
	cfg.RateLimit.BookingsPerMinute = 10
	cfg.RateLimit.Burst = 3
	return &cfg
}

// Load reads the optional YAML file at path, then applies environment overrides.
// ${VAR} placeholders in the file are expanded from the environment.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		data = []byte(os.ExpandEnv(string(data)))
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	applyEnv(cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Env, "ENV")
	setString(&cfg.Server.Port, "PORT")
	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.DSN, "DB_DSN")
	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")
	setString(&cfg.Redis.Address, "REDIS_ADDR")
	setString(&cfg.Redis.User, "REDIS_USER")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.Auth.JWTSecret, "JWT_SECRET")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Hotel.Timezone, "TIMEZONE")
	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimit.BookingsPerMinute = n
		}
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite", "memory":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required to verify admin tokens")
	}
	return nil
}

// Location is the hotel's timezone; "today" is computed in it.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Hotel.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Hotel.Timezone, err)
	}
	return loc, nil
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second
}

func (c *Config) LockTTL() time.Duration {
	return time.Duration(c.Redis.LockTTLSeconds) * time.Second
}

func (c *Config) LockWait() time.Duration {
	return time.Duration(c.Redis.LockWaitSeconds) * time.Second
}

// DatabaseDSN returns DB_DSN when set, otherwise builds one for the driver.
func (c *Config) DatabaseDSN() string {
	db := c.Database
	if db.DSN != "" {
		return db.DSN
	}
	switch db.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			db.User, db.Password, db.Host, db.Port, db.Name)
	case "sqlite":
		if db.Name == "" {
			return "hotelsite.db"
		}
		return db.Name
	default:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			db.Host, db.User, db.Password, db.Name, db.Port, db.SSLMode)
	}
}
