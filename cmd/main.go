package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"session-security/config"
	_ "session-security/docs"
	"session-security/internal/events"
	"session-security/internal/handler"
	"session-security/internal/metrics"
	"session-security/internal/ports"
	"session-security/internal/repository"
	"session-security/internal/security"
	"session-security/internal/service"

	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Session security API
// @version 1.0
// @description JWT access/refresh токены, cookie для web и тело ответа для native клиентов, CSRF double-submit

// @host localhost:8000

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig(configPath())
	if err != nil {
		fatal("ошибка загрузки конфигурации", err)
	}
	slog.Info("конфигурация загружена", "environment", cfg.Environment, "secure_cookies", cfg.Cookies.Secure)

	db := setupDatabase(cfg)
	if db != nil {
		defer func() {
			if err := db.Close(); err != nil {
				slog.Error("ошибка при закрытии БД", "error", err)
			}
		}()
	}

	redisClient := setupRedis(cfg)
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Error("ошибка при закрытии Redis", "error", err)
			}
		}()
	}

	publisher := setupPublisher(cfg, redisClient)
	defer func() {
		if err := publisher.Close(); err != nil {
			slog.Error("ошибка при закрытии publisher", "error", err)
		}
	}()

	jwtService, err := security.NewJWTService(&cfg.JWT)
	if err != nil {
		fatal("ошибка настройки JWT", err)
	}
	hasher, err := security.NewPasswordHasher(&cfg.Password)
	if err != nil {
		fatal("ошибка настройки хэширования паролей", err)
	}
	profileTTL, err := time.ParseDuration(cfg.RedisConfig.ProfileTTL)
	if err != nil {
		fatal("ошибка парсинга profile_ttl", err)
	}

	appMetrics := metrics.New()
	cookies := security.NewCookieBuilder(&cfg.Cookies, jwtService.AccessTTL(), jwtService.RefreshTTL())
	csrfGuard := security.NewCSRFGuard(cookies, appMetrics)

	userRepo := repository.NewUserRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, profileTTL)

	userService, err := service.NewUserService(userRepo, hasher, cacheRepo, publisher)
	if err != nil {
		fatal("ошибка создания сервиса пользователей", err)
	}
	authService := service.NewAuthenticationService(userService, jwtService, publisher, appMetrics)

	var cachePinger handler.Pinger
	if redisClient != nil {
		cachePinger = cacheRepo
	}

	srv, router := config.SetupServer(cfg.ServerAddr)

	handler.SetupRoutes(router, &handler.Handlers{
		Auth:    handler.NewAuthenticationHandler(authService, userService, cookies),
		Users:   handler.NewUserHandler(userService),
		CSRF:    handler.NewCSRFHandler(csrfGuard),
		Health:  handler.NewHealthHandler(userRepo, cachePinger, cfg.DatabaseConfig.Required),
		Metrics: appMetrics.Handler(),
	}, &handler.Security{
		Validator: jwtService,
		Cookies:   cookies,
		Guard:     csrfGuard,
	})
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	runServer(ctx, srv)
}

func configPath() string {
	if path, ok := os.LookupEnv("CONFIG_PATH"); ok && path != "" {
		return path
	}
	return "config.yaml"
}

// setupDatabase : без DSN или при ошибке подключения сервис стартует,
// если БД не обязательна (login/refresh тогда отвечают 503)
func setupDatabase(cfg *config.AppConfig) *config.Database {
	if cfg.DatabaseConfig.DSN == "" {
		if cfg.DatabaseConfig.Required {
			fatal("DATABASE_URL обязателен", errors.New("database dsn is empty"))
		}
		slog.Warn("БД не настроена, запуск без хранилища пользователей")
		return nil
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		if cfg.DatabaseConfig.Required {
			fatal("не удалось подключиться к БД", err)
		}
		slog.Warn("не удалось подключиться к БД, запуск без неё", "error", err)
		return nil
	}
	return db
}

func setupRedis(cfg *config.AppConfig) *config.RedisClient {
	if cfg.RedisConfig.Addr == "" {
		slog.Info("Redis не настроен, кэш профилей выключен")
		return nil
	}

	client, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		slog.Warn("ошибка подключения к Redis, кэш профилей выключен", "error", err)
		return nil
	}
	return client
}

func setupPublisher(cfg *config.AppConfig, redisClient *config.RedisClient) ports.EventPublisher {
	if !cfg.Events.Enabled {
		return events.NopPublisher{}
	}
	if redisClient == nil {
		slog.Warn("события сессий включены, но Redis недоступен: события не публикуются")
		return events.NopPublisher{}
	}

	publisher, err := events.NewRedisStreamPublisher(redisClient.Client, cfg.Events.Topic)
	if err != nil {
		slog.Warn("не удалось создать publisher событий", "error", err)
		return events.NopPublisher{}
	}
	return publisher
}

func fatal(message string, err error) {
	slog.Error(message, "error", err)
	os.Exit(1)
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("сервер запущен", "addr", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("ошибка работы сервера", err)
		}
	case sig := <-signalChannel:
		slog.Info("получен сигнал остановки работы сервера", "signal", sig.String())
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		slog.Error("ошибка при остановке сервера", "error", err)
	} else {
		slog.Info("сервер успешно остановлен")
	}
}
