package ports

import (
	"context"

	"session-security/internal/model"
)

// EventPublisher отправляет события сессий. Ошибка публикации не влияет на ответ клиенту
type EventPublisher interface {
	Publish(ctx context.Context, event *model.SessionEvent) error
	Close() error
}
