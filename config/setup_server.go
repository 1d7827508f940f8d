package config

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"
)

const (
	EnvironmentProduction  = "production"
	EnvironmentDevelopment = "development"
)

type AppConfig struct {
	Environment    string         `yaml:"environment"`
	ServerAddr     string         `yaml:"serverAddr"`
	DatabaseConfig DatabaseConfig `yaml:"databaseConfig"`
	RedisConfig    RedisConfig    `yaml:"redisConfig"`
	JWT            JWTConfig      `yaml:"jwt"`
	Cookies        CookieConfig   `yaml:"cookies"`
	Password       PasswordConfig `yaml:"password"`
	Events         EventsConfig   `yaml:"events"`
}

// LoadConfig читает yaml (если файл есть), затем применяет переменные окружения и значения по умолчанию.
// Отсутствие секрета подписи в production возвращается как ошибка, сервис не должен стартовать.
func LoadConfig(path string) (*AppConfig, error) {
	var cfg AppConfig

	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return nil, err
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	cfg.applyEnv(os.LookupEnv)
	cfg.applyDefaults()

	if err := cfg.ResolveSigningSecret(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *AppConfig) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("ENVIRONMENT"); ok && v != "" {
		c.Environment = v
	}
	if v, ok := lookup("JWT_SECRET"); ok && v != "" {
		c.JWT.SecretKey = v
	}
	if v, ok := lookup("DATABASE_URL"); ok && strings.TrimSpace(v) != "" {
		c.DatabaseConfig.DSN = v
	}
	if v, ok := lookup("DATABASE_REQUIRED"); ok {
		switch strings.ToLower(v) {
		case "1", "true", "yes":
			c.DatabaseConfig.Required = true
		case "0", "false", "no":
			c.DatabaseConfig.Required = false
		}
	}
	if v, ok := lookup("REDIS_ADDR"); ok && v != "" {
		c.RedisConfig.Addr = v
	}
	if v, ok := lookup("SERVER_ADDR"); ok && v != "" {
		c.ServerAddr = v
	}
}

func (c *AppConfig) applyDefaults() {
	if c.Environment == "" {
		c.Environment = EnvironmentDevelopment
	}
	if c.ServerAddr == "" {
		c.ServerAddr = "127.0.0.1:8000"
	}
	if c.RedisConfig.ProfileTTL == "" {
		c.RedisConfig.ProfileTTL = "5m"
	}

	if c.JWT.AccessTokenTTL == "" {
		c.JWT.AccessTokenTTL = "15m"
	}
	if c.JWT.RefreshTokenTTL == "" {
		c.JWT.RefreshTokenTTL = "168h"
	}
	if c.JWT.Leeway == "" {
		c.JWT.Leeway = "0s"
	}

	if c.Cookies.AccessName == "" {
		c.Cookies.AccessName = "access_token"
	}
	if c.Cookies.RefreshName == "" {
		c.Cookies.RefreshName = "refresh_token"
	}
	if c.Cookies.CSRFName == "" {
		c.Cookies.CSRFName = "csrf_token"
	}
	if c.Cookies.RefreshPath == "" {
		c.Cookies.RefreshPath = "/api/v1/auth"
	}
	c.Cookies.Secure = c.IsProduction()

	if c.Password.MemoryKiB == 0 {
		c.Password.MemoryKiB = 19 * 1024
	}
	if c.Password.Iterations == 0 {
		c.Password.Iterations = 2
	}
	if c.Password.Parallelism == 0 {
		c.Password.Parallelism = 1
	}
	if c.Password.SaltLength == 0 {
		c.Password.SaltLength = 16
	}
	if c.Password.KeyLength == 0 {
		c.Password.KeyLength = 32
	}
	if c.Password.MinLength == 0 {
		c.Password.MinLength = 8
	}
	if c.Password.MaxLength == 0 {
		c.Password.MaxLength = 128
	}

	if c.Events.Topic == "" {
		c.Events.Topic = "session.events"
	}
}

// IsProduction : "production" и "prod" без учёта регистра
func (c *AppConfig) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == EnvironmentProduction || env == "prod"
}

func SetupServer(serverAddress string) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:    serverAddress,
		Handler: router,
	}

	return server, router
}

func SetupDatabase(dsn string) (*Database, error) {
	return NewDatabaseConnection("postgres", dsn)
}

func SetupRedis(cfg *RedisConfig) (*RedisClient, error) {
	return NewRedisClient(cfg)
}
