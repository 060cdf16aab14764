package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database   DatabaseConfig
	Redis      RedisConfig
	Storage    StorageConfig
	Rasterizer RasterizerConfig
	Notifier   NotifierConfig
	Admin      AdminConfig
	CORS       CORSConfig
	Log        LogConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	CacheTTL time.Duration
}

// StorageConfig controls the staging/orders/proofs directory tree and
// temp-file retention.
type StorageConfig struct {
	TempDir        string
	OrdersDir      string
	ProofsDir      string
	MaxUploadBytes int64
	RetentionTTL   time.Duration
	SweepInterval  time.Duration
}

// RasterizerConfig points at the poppler pdftoppm binary used to render
// uploaded documents page by page.
type RasterizerConfig struct {
	Binary  string
	DPI     int
	Timeout time.Duration
}

// NotifierConfig configures the fire-and-forget WhatsApp notification sent
// after an order is confirmed.
type NotifierConfig struct {
	Enabled bool
	URL     string
	Token   string
	Target  string
	Timeout time.Duration
}

// AdminConfig holds the basic-auth credentials guarding the admin surface.
// PasswordHash is a bcrypt hash; Password is a plaintext fallback for dev.
type AdminConfig struct {
	User         string
	Password     string
	PasswordHash string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
		CacheTTL: parseDuration(v.GetString("REDIS_CACHE_TTL"), 5*time.Minute),
	}

	maxUpload := v.GetInt64("MAX_UPLOAD_BYTES")
	if maxUpload <= 0 {
		maxUpload = 25 * 1024 * 1024
	}
	cfg.Storage = StorageConfig{
		TempDir:        v.GetString("STORAGE_TEMP_DIR"),
		OrdersDir:      v.GetString("STORAGE_ORDERS_DIR"),
		ProofsDir:      v.GetString("STORAGE_PROOFS_DIR"),
		MaxUploadBytes: maxUpload,
		RetentionTTL:   parseDuration(v.GetString("TEMP_RETENTION_TTL"), 30*24*time.Hour),
		SweepInterval:  parseDuration(v.GetString("TEMP_SWEEP_INTERVAL"), 24*time.Hour),
	}

	cfg.Rasterizer = RasterizerConfig{
		Binary:  v.GetString("PDFTOPPM_BINARY"),
		DPI:     v.GetInt("RASTER_DPI"),
		Timeout: parseDuration(v.GetString("RASTER_TIMEOUT"), 2*time.Minute),
	}

	cfg.Notifier = NotifierConfig{
		Enabled: v.GetBool("NOTIFY_ENABLED"),
		URL:     v.GetString("FONNTE_URL"),
		Token:   v.GetString("FONNTE_TOKEN"),
		Target:  v.GetString("ADMIN_WHATSAPP_NUMBER"),
		Timeout: parseDuration(v.GetString("NOTIFY_TIMEOUT"), 10*time.Second),
	}

	cfg.Admin = AdminConfig{
		User:         v.GetString("ADMIN_USER"),
		Password:     v.GetString("ADMIN_PASS"),
		PasswordHash: v.GetString("ADMIN_PASS_HASH"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "nitiprint")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_CACHE_TTL", "5m")

	v.SetDefault("STORAGE_TEMP_DIR", "./temp_uploads")
	v.SetDefault("STORAGE_ORDERS_DIR", "./orders")
	v.SetDefault("STORAGE_PROOFS_DIR", "./proofs")
	v.SetDefault("MAX_UPLOAD_BYTES", 25*1024*1024)
	v.SetDefault("TEMP_RETENTION_TTL", "720h")
	v.SetDefault("TEMP_SWEEP_INTERVAL", "24h")

	v.SetDefault("PDFTOPPM_BINARY", "pdftoppm")
	v.SetDefault("RASTER_DPI", 100)
	v.SetDefault("RASTER_TIMEOUT", "2m")

	v.SetDefault("NOTIFY_ENABLED", false)
	v.SetDefault("FONNTE_URL", "https://api.fonnte.com/send")
	v.SetDefault("FONNTE_TOKEN", "")
	v.SetDefault("ADMIN_WHATSAPP_NUMBER", "")
	v.SetDefault("NOTIFY_TIMEOUT", "10s")

	v.SetDefault("ADMIN_USER", "admin")
	v.SetDefault("ADMIN_PASS", "")
	v.SetDefault("ADMIN_PASS_HASH", "")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
