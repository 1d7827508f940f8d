package config

import (
	"errors"
	"log/slog"
)

// DevelopmentSigningSecret используется только вне production, когда JWT_SECRET не задан
const DevelopmentSigningSecret = "DEVELOPMENT_ONLY_SECRET_CHANGE_IN_PRODUCTION_32bytes"

var (
	ErrMissingSigningSecret    = errors.New("JWT_SECRET must be set in production")
	ErrDevelopmentSecretInProd = errors.New("development JWT secret is not allowed in production")
)

// ResolveSigningSecret проверяет секрет подписи токенов.
// В production пустой секрет или секрет разработки — фатальная ошибка запуска.
func (c *AppConfig) ResolveSigningSecret() error {
	if c.JWT.SecretKey == "" {
		if c.IsProduction() {
			return ErrMissingSigningSecret
		}
		slog.Warn("!!! JWT_SECRET is not set, using the DEVELOPMENT signing secret. Never run like this in production !!!")
		c.JWT.SecretKey = DevelopmentSigningSecret
		return nil
	}

	if c.IsProduction() && c.JWT.SecretKey == DevelopmentSigningSecret {
		return ErrDevelopmentSecretInProd
	}

	return nil
}
