package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	AnalyticsSourcePostgres = "postgres"
	AnalyticsSourceMongo    = "mongo"

	// DevJWTSecret is the placeholder secret. It is refused in release mode.
	DevJWTSecret = "change-me-in-production"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	Log       LogConfig
	App       AppConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Analytics AnalyticsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string
	Mode           string
	AllowedOrigins []string
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	MaxOpen    int
	MaxIdle    int
	SchemaPath string
}

// DSN returns the lib/pq keyword connection string.
func (d DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// JWTConfig holds the shared secret used to verify tokens from the auth service.
type JWTConfig struct {
	Secret string
	Issuer string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// AppConfig holds domain settings.
type AppConfig struct {
	Timezone string
	Location *time.Location
}

// MongoConfig points at the legacy reservation collection.
type MongoConfig struct {
	URI      string
	Database string
}

// RedisConfig holds the sequence counter store settings.
type RedisConfig struct {
	Enabled     bool
	URL         string
	Host        string
	Port        string
	Password    string
	DB          int
	SequenceTTL time.Duration
}

// AnalyticsConfig selects where aggregation reads reservations from.
type AnalyticsConfig struct {
	Source string
}

// Load reads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			Mode:           v.GetString("GIN_MODE"),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			Host:       v.GetString("DB_HOST"),
			Port:       v.GetString("DB_PORT"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASSWORD"),
			Name:       v.GetString("DB_NAME"),
			SSLMode:    v.GetString("DB_SSLMODE"),
			MaxOpen:    v.GetInt("DB_MAX_OPEN"),
			MaxIdle:    v.GetInt("DB_MAX_IDLE"),
			SchemaPath: v.GetString("DB_SCHEMA_PATH"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			Issuer: v.GetString("JWT_ISSUER"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		App: AppConfig{
			Timezone: v.GetString("APP_TIMEZONE"),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("MONGO_URI"),
			Database: v.GetString("MONGO_DATABASE"),
		},
		Redis: RedisConfig{
			Enabled:     v.GetBool("REDIS_ENABLED"),
			URL:         v.GetString("REDIS_URL"),
			Host:        v.GetString("REDIS_HOST"),
			Port:        v.GetString("REDIS_PORT"),
			Password:    v.GetString("REDIS_PASSWORD"),
			DB:          v.GetInt("REDIS_DB"),
			SequenceTTL: time.Duration(v.GetInt("SEQUENCE_TTL_HOURS")) * time.Hour,
		},
		Analytics: AnalyticsConfig{
			Source: strings.ToLower(strings.TrimSpace(v.GetString("ANALYTICS_SOURCE"))),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "villa_user")
	v.SetDefault("DB_PASSWORD", "villa_password")
	v.SetDefault("DB_NAME", "villa_reservation_db")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN", 25)
	v.SetDefault("DB_MAX_IDLE", 10)
	v.SetDefault("DB_SCHEMA_PATH", "")

	v.SetDefault("JWT_SECRET", DevJWTSecret)
	v.SetDefault("JWT_ISSUER", "")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("APP_TIMEZONE", "UTC")
	v.SetDefault("ANALYTICS_SOURCE", AnalyticsSourcePostgres)

	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "villa")

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SEQUENCE_TTL_HOURS", 24*40)
}

func (c *Config) validate() error {
	if c.Server.Mode == gin.ReleaseMode && (strings.TrimSpace(c.JWT.Secret) == "" || c.JWT.Secret == DevJWTSecret) {
		return fmt.Errorf("JWT_SECRET must be set to a private value when GIN_MODE=%s", gin.ReleaseMode)
	}

	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.App.Timezone, err)
	}
	c.App.Location = loc

	switch c.Analytics.Source {
	case AnalyticsSourcePostgres, AnalyticsSourceMongo:
	default:
		return fmt.Errorf("invalid ANALYTICS_SOURCE %q: use %q or %q", c.Analytics.Source, AnalyticsSourcePostgres, AnalyticsSourceMongo)
	}

	if c.DB.MaxOpen <= 0 {
		c.DB.MaxOpen = 25
	}
	if c.DB.MaxIdle < 0 {
		c.DB.MaxIdle = 0
	}
	if c.Redis.SequenceTTL <= 0 {
		c.Redis.SequenceTTL = 24 * time.Hour
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
