package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Qoyod  QoyodConfig
	Report ReportConfig
	CORS   CORSConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// QoyodConfig holds Qoyod API client settings.
type QoyodConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	APIKey       string `mapstructure:"api_key"`
	PerPage      int    `mapstructure:"per_page"`
	MaxPages     int    `mapstructure:"max_pages"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
	WindowMonths int    `mapstructure:"window_months"`
}

// ReportConfig holds bonus report settings.
type ReportConfig struct {
	// CartonMarker is the substring of a unit-type name that marks a line as
	// already priced per carton.
	CartonMarker string `mapstructure:"carton_marker"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the HAWAFIZ_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("HAWAFIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// Qoyod defaults
	v.SetDefault("qoyod.base_url", "https://api.qoyod.com/2.0")
	v.SetDefault("qoyod.api_key", "")
	v.SetDefault("qoyod.per_page", 100)
	v.SetDefault("qoyod.max_pages", 20)
	v.SetDefault("qoyod.timeout_secs", 60)
	v.SetDefault("qoyod.window_months", 4)

	// Report defaults
	v.SetDefault("report.carton_marker", "كرتون")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "HAWAFIZ_SERVER_PORT",
		"server.read_timeout":  "HAWAFIZ_SERVER_READ_TIMEOUT",
		"server.write_timeout": "HAWAFIZ_SERVER_WRITE_TIMEOUT",
		"server.environment":   "HAWAFIZ_SERVER_ENVIRONMENT",
		"qoyod.base_url":       "HAWAFIZ_QOYOD_BASE_URL",
		"qoyod.api_key":        "HAWAFIZ_QOYOD_API_KEY",
		"qoyod.per_page":       "HAWAFIZ_QOYOD_PER_PAGE",
		"qoyod.max_pages":      "HAWAFIZ_QOYOD_MAX_PAGES",
		"qoyod.timeout_secs":   "HAWAFIZ_QOYOD_TIMEOUT_SECS",
		"qoyod.window_months":  "HAWAFIZ_QOYOD_WINDOW_MONTHS",
		"report.carton_marker": "HAWAFIZ_REPORT_CARTON_MARKER",
		"cors.allowed_origins": "HAWAFIZ_CORS_ALLOWED_ORIGINS",
		"log.level":            "HAWAFIZ_LOG_LEVEL",
		"log.format":           "HAWAFIZ_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if HAWAFIZ_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("HAWAFIZ_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Qoyod = QoyodConfig{
		BaseURL:      strings.TrimRight(v.GetString("qoyod.base_url"), "/"),
		APIKey:       v.GetString("qoyod.api_key"),
		PerPage:      v.GetInt("qoyod.per_page"),
		MaxPages:     v.GetInt("qoyod.max_pages"),
		TimeoutSecs:  v.GetInt("qoyod.timeout_secs"),
		WindowMonths: v.GetInt("qoyod.window_months"),
	}
	cfg.Report = ReportConfig{
		CartonMarker: v.GetString("report.carton_marker"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}
