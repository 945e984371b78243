package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

var (
	// ErrLoad возвращается, когда не удалось прочитать файл конфигурации
	ErrLoad = errors.New("config: failed to load")

	// ErrInvalid возвращается, когда конфигурация не прошла проверку
	ErrInvalid = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Auth       AuthConfig       `toml:"auth"`
	RateLimit  RateLimitConfig  `toml:"rate_limit"`
	CORS       CORSConfig       `toml:"cors"`
	Assistant  AssistantConfig  `toml:"assistant"`
	Automation AutomationConfig `toml:"automation"`
}

type ServerConfig struct {
	Env             string `toml:"env"`
	HTTPPort        int    `toml:"http_port"`
	ReadTimeout     int    `toml:"read_timeout"`
	WriteTimeout    int    `toml:"write_timeout"`
	IdleTimeout     int    `toml:"idle_timeout"`
	ShutdownTimeout int    `toml:"shutdown_timeout"`
	MaxBodyBytes    int64  `toml:"max_body_bytes"`
}

// IsDevelopment включает выдачу деталей внутренних ошибок клиенту
func (s ServerConfig) IsDevelopment() bool {
	return s.Env == EnvDevelopment
}

type DatabaseConfig struct {
	URL             string `toml:"url"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq; URL имеет приоритет над отдельными полями
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Target адрес БД для логов (без пароля)
func (d DatabaseConfig) Target() string {
	if d.URL != "" {
		if u, err := url.Parse(d.URL); err == nil {
			return fmt.Sprintf("%s%s", u.Host, u.Path)
		}
		return "url"
	}
	return fmt.Sprintf("%s:%d/%s", d.Host, d.Port, d.DBName)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AuthConfig struct {
	JWTSecret         string `toml:"jwt_secret"`
	TokenTTLHours     int    `toml:"token_ttl_hours"`
	BcryptCost        int    `toml:"bcrypt_cost"`
	MinPasswordLength int    `toml:"min_password_length"`
}

type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

type AssistantConfig struct {
	Enabled     bool    `toml:"enabled"`
	BaseURL     string  `toml:"base_url"`
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	Timeout     int     `toml:"timeout"`
	Temperature float64 `toml:"temperature"`
}

type AutomationConfig struct {
	// 0 отключает фоновое освобождение завершившихся бронирований
	ReleaseIntervalSeconds int `toml:"release_interval_seconds"`
}

// Default значения по умолчанию; файл и переменные окружения их перекрывают
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Env:             EnvDevelopment,
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
			MaxBodyBytes:    5 << 20,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "room_booking",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "room-booking-service",
		},
		Auth: AuthConfig{
			TokenTTLHours:     8,
			BcryptCost:        10,
			MinPasswordLength: 6,
		},
		RateLimit: RateLimitConfig{Enabled: true, RPS: 5, Burst: 10},
		CORS:      CORSConfig{AllowedOrigins: []string{"*"}},
		Assistant: AssistantConfig{
			BaseURL:     "https://api.openai.com/v1",
			Model:       "gpt-4o-mini",
			Timeout:     20,
			Temperature: 0.4,
		},
	}
}

// Load читает TOML файл (если он существует), затем .env и переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("%w: decode %s: %v", ErrLoad, path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: stat %s: %v", ErrLoad, path, err)
		}
	}

	// .env не обязателен; уже заданные переменные окружения не перезаписываются
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Env, "APP_ENV")
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Assistant.APIKey, "OPENAI_API_KEY")
	setString(&c.Assistant.Model, "OPENAI_MODEL")
	setString(&c.Assistant.BaseURL, "OPENAI_BASE_URL")
	setString(&c.Logs.Level, "LOG_LEVEL")

	if err := setInt(&c.Server.HTTPPort, "HTTP_PORT"); err != nil {
		return err
	}
	if err := setInt(&c.Database.Port, "DB_PORT"); err != nil {
		return err
	}

	// Ключ провайдера включает AI-ассистента, если он не выключен явно в файле
	if os.Getenv("OPENAI_API_KEY") != "" && os.Getenv("ASSISTANT_DISABLED") == "" {
		c.Assistant.Enabled = true
	}

	return nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("%w: auth.jwt_secret (JWT_SECRET) is required", ErrInvalid)
	}
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalid)
	}
	if c.Auth.TokenTTLHours <= 0 {
		return fmt.Errorf("%w: auth.token_ttl_hours must be positive", ErrInvalid)
	}
	if c.Auth.MinPasswordLength <= 0 {
		return fmt.Errorf("%w: auth.min_password_length must be positive", ErrInvalid)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit.rps and rate_limit.burst must be positive", ErrInvalid)
	}
	if c.Automation.ReleaseIntervalSeconds < 0 {
		return fmt.Errorf("%w: automation.release_interval_seconds must not be negative", ErrInvalid)
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not a number", ErrInvalid, key, v)
	}
	*dst = n
	return nil
}
