package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	QR        QRConfig
	ShortCode ShortCodeConfig
	Render    RenderConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type ServerConfig struct {
	// BaseURL overrides per-request host derivation for generated URLs.
	// Leave empty to root URLs at the serving host of each request.
	BaseURL string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type QRConfig struct {
	Width      int
	Margin     int
	Foreground string
	Background string
}

type ShortCodeConfig struct {
	Length      int
	MaxAttempts int
}

type RenderConfig struct {
	Timeout time.Duration
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "receipt-service")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "5000")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("SERVER_BASE_URL", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("QR_WIDTH", 300)
	viper.SetDefault("QR_MARGIN", 2)
	viper.SetDefault("QR_FOREGROUND", "#000000")
	viper.SetDefault("QR_BACKGROUND", "#FFFFFF")
	viper.SetDefault("SHORT_CODE_LENGTH", 6)
	viper.SetDefault("SHORT_CODE_MAX_ATTEMPTS", 5)
	viper.SetDefault("RENDER_TIMEOUT_SECONDS", 10)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Server: ServerConfig{
			BaseURL: viper.GetString("SERVER_BASE_URL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		QR: QRConfig{
			Width:      viper.GetInt("QR_WIDTH"),
			Margin:     viper.GetInt("QR_MARGIN"),
			Foreground: viper.GetString("QR_FOREGROUND"),
			Background: viper.GetString("QR_BACKGROUND"),
		},
		ShortCode: ShortCodeConfig{
			Length:      viper.GetInt("SHORT_CODE_LENGTH"),
			MaxAttempts: viper.GetInt("SHORT_CODE_MAX_ATTEMPTS"),
		},
		Render: RenderConfig{
			Timeout: time.Duration(viper.GetInt("RENDER_TIMEOUT_SECONDS")) * time.Second,
		},
	}
}
