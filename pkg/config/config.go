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

	Database      DatabaseConfig
	Redis         RedisConfig
	JWT           JWTConfig
	CORS          CORSConfig
	Log           LogConfig
	Admin         AdminConfig
	Announcements AnnouncementsConfig
	Translation   TranslationConfig
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
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// AdminConfig seeds the demo admin account used by the dashboard.
type AdminConfig struct {
	Email    string
	Password string
}

// AnnouncementsConfig tunes the announcement store and banner loops.
type AnnouncementsConfig struct {
	SnapshotKey      string
	RefreshInterval  time.Duration
	RotationInterval time.Duration
	SessionTTL       time.Duration
}

// TranslationConfig governs the translation pipeline and its cache.
type TranslationConfig struct {
	Endpoint      string
	Debounce      time.Duration
	CachePrefix   string
	OnlineEnabled bool
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
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Admin = AdminConfig{
		Email:    v.GetString("ADMIN_EMAIL"),
		Password: v.GetString("ADMIN_PASSWORD"),
	}

	cfg.Announcements = AnnouncementsConfig{
		SnapshotKey:      v.GetString("ANNOUNCEMENTS_SNAPSHOT_KEY"),
		RefreshInterval:  parseDuration(v.GetString("ANNOUNCEMENTS_REFRESH_INTERVAL"), 30*time.Second),
		RotationInterval: parseDuration(v.GetString("ANNOUNCEMENTS_ROTATION_INTERVAL"), 4*time.Second),
		SessionTTL:       parseDuration(v.GetString("ANNOUNCEMENTS_SESSION_TTL"), 2*time.Hour),
	}

	cfg.Translation = TranslationConfig{
		Endpoint:      v.GetString("TRANSLATION_ENDPOINT"),
		Debounce:      parseDuration(v.GetString("TRANSLATION_DEBOUNCE"), 300*time.Millisecond),
		CachePrefix:   v.GetString("TRANSLATION_CACHE_PREFIX"),
		OnlineEnabled: v.GetBool("TRANSLATION_ONLINE_ENABLED"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "guest_services")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "guest-services-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ADMIN_EMAIL", "admin@otel.local")
	v.SetDefault("ADMIN_PASSWORD", "admin123")

	v.SetDefault("ANNOUNCEMENTS_SNAPSHOT_KEY", "announcements:snapshot")
	v.SetDefault("ANNOUNCEMENTS_REFRESH_INTERVAL", "30s")
	v.SetDefault("ANNOUNCEMENTS_ROTATION_INTERVAL", "4s")
	v.SetDefault("ANNOUNCEMENTS_SESSION_TTL", "2h")

	v.SetDefault("TRANSLATION_ENDPOINT", "https://libretranslate.com/translate")
	v.SetDefault("TRANSLATION_DEBOUNCE", "300ms")
	v.SetDefault("TRANSLATION_CACHE_PREFIX", "translation:")
	v.SetDefault("TRANSLATION_ONLINE_ENABLED", true)
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
