package config

type DatabaseConfig struct {
	DSN      string `yaml:"dsn"`
	Required bool   `yaml:"required"`
}

type RedisConfig struct {
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	ProfileTTL string `yaml:"profile_ttl"`
}

// JWTConfig : параметры подписи токенов. SecretKey читается один раз при старте
type JWTConfig struct {
	SecretKey       string `yaml:"secret_key"`
	AccessTokenTTL  string `yaml:"access_token_ttl"`
	RefreshTokenTTL string `yaml:"refresh_token_ttl"`
	Issuer          string `yaml:"issuer"`
	Leeway          string `yaml:"leeway"`
}

// CookieConfig : имена и пути cookie. Secure выставляется только в production
type CookieConfig struct {
	AccessName  string `yaml:"access_name"`
	RefreshName string `yaml:"refresh_name"`
	CSRFName    string `yaml:"csrf_name"`
	RefreshPath string `yaml:"refresh_path"`
	Domain      string `yaml:"domain"`
	Secure      bool   `yaml:"-"`
}

// PasswordConfig : параметры Argon2id и политика паролей
type PasswordConfig struct {
	MemoryKiB   uint32 `yaml:"memory_kib"`
	Iterations  uint32 `yaml:"iterations"`
	Parallelism uint8  `yaml:"parallelism"`
	SaltLength  uint32 `yaml:"salt_length"`
	KeyLength   uint32 `yaml:"key_length"`
	MinLength   int    `yaml:"min_length"`
	MaxLength   int    `yaml:"max_length"`
}

type EventsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Topic   string `yaml:"topic"`
}
