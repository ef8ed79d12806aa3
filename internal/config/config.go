package config

import (
	"log/slog"
	"net"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// Database
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBAutoMigrate bool

	// JWT
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// Server
	Port         string
	CORSOrigins  string
	AppEnv       string
	RateLimitMax int

	// Goal dates are calendar dates; "today" is evaluated in this zone.
	Timezone *time.Location

	// Observability
	LogLevel         string
	LogFile          string
	LogRetentionDays int
	SentryDSN        string
	MetricsEnabled   bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("failed to read config file", "error", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "fittrack_db")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ACCESS_EXPIRY", "15m")
	v.SetDefault("JWT_REFRESH_EXPIRY", "168h")

	v.SetDefault("PORT", "8080")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("RATE_LIMIT_MAX", 60)
	v.SetDefault("APP_TIMEZONE", "UTC")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("LOG_RETENTION_DAYS", 30)
	v.SetDefault("SENTRY_DSN", "")
	v.SetDefault("METRICS_ENABLED", true)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		DBHost:        v.GetString("DB_HOST"),
		DBPort:        v.GetString("DB_PORT"),
		DBUser:        v.GetString("DB_USER"),
		DBPassword:    v.GetString("DB_PASSWORD"),
		DBName:        v.GetString("DB_NAME"),
		DBSSLMode:     v.GetString("DB_SSLMODE"),
		DBAutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),

		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTAccessExpiry:  parseDuration(v.GetString("JWT_ACCESS_EXPIRY"), 15*time.Minute),
		JWTRefreshExpiry: parseDuration(v.GetString("JWT_REFRESH_EXPIRY"), 168*time.Hour),

		Port:         v.GetString("PORT"),
		CORSOrigins:  v.GetString("CORS_ORIGINS"),
		AppEnv:       normalizeEnv(v.GetString("APP_ENV")),
		RateLimitMax: v.GetInt("RATE_LIMIT_MAX"),
		Timezone:     loadLocation(v.GetString("APP_TIMEZONE")),

		LogLevel:         strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFile:          v.GetString("LOG_FILE"),
		LogRetentionDays: v.GetInt("LOG_RETENTION_DAYS"),
		SentryDSN:        v.GetString("SENTRY_DSN"),
		MetricsEnabled:   v.GetBool("METRICS_ENABLED"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// MigrationURL is the postgres:// form expected by golang-migrate.
func (c *Config) MigrationURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSSLMode}}.Encode(),
	}
	return u.String()
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		slog.Warn("unknown APP_TIMEZONE, falling back to UTC", "timezone", name)
		return time.UTC
	}
	return loc
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}
