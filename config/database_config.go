package config

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Database struct {
	*sqlx.DB
}

func NewDatabaseConnection(dbDriver string, dbConnectionStr string) (*Database, error) {
	database, err := sqlx.Connect(dbDriver, dbConnectionStr)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if err := database.Ping(); err != nil {
		return nil, fmt.Errorf("ошибка пинга БД: %w", err)
	}

	slog.Info("подключение к БД успешно выполнено")
	return &Database{
		database,
	}, nil
}

// Ping : проверка готовности БД для /health/ready
func (db *Database) Ping(ctx context.Context) error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("соединение с БД не настроено")
	}
	return db.DB.PingContext(ctx)
}

func (db *Database) Close() error {
	err := db.DB.Close()
	if err != nil {
		return fmt.Errorf("ошибка закрытия соединения с БД: %w", err)
	}

	return nil
}
