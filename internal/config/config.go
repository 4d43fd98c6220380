package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string   `mapstructure:"PORT"`
	Env         string   `mapstructure:"ENV"`
	DatabaseURL string   `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32    `mapstructure:"DB_MIN_CONNS"`
	JWTSecret   string   `mapstructure:"JWT_SECRET"`
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	EvolutionAPIURL  string `mapstructure:"EVOLUTION_API_URL"`
	EvolutionAPIKey  string `mapstructure:"EVOLUTION_API_KEY"`
	WhatsAppInstance string `mapstructure:"WHATSAPP_INSTANCE"`
	PublicBaseURL    string `mapstructure:"PUBLIC_BASE_URL"`

	GeminiAPIKey      string `mapstructure:"GEMINI_API_KEY"`
	SpeechCredentials string `mapstructure:"SPEECH_CREDENTIALS_FILE"`
	SpeechLanguage    string `mapstructure:"SPEECH_LANGUAGE"`

	UploadDir string `mapstructure:"UPLOAD_DIR"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("SPEECH_LANGUAGE", "pt-BR")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("EVOLUTION_API_URL")
	v.BindEnv("EVOLUTION_API_KEY")
	v.BindEnv("WHATSAPP_INSTANCE")
	v.BindEnv("PUBLIC_BASE_URL")
	v.BindEnv("GEMINI_API_KEY")
	v.BindEnv("SPEECH_CREDENTIALS_FILE")
	v.BindEnv("SPEECH_LANGUAGE")
	v.BindEnv("UPLOAD_DIR")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// WhatsAppEnabled reports whether the Evolution API integration is configured.
// When false the messaging layer degrades to logged no-ops.
func (c *Config) WhatsAppEnabled() bool {
	return c.EvolutionAPIURL != "" && c.EvolutionAPIKey != "" && c.WhatsAppInstance != ""
}

// Validate checks that the configuration is safe to run. Outside development a
// real JWT secret must be present so that token verification is enforced.
func (c *Config) Validate() error {
	if !c.IsDev() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when ENV=%q", c.Env)
	}
	if len(c.JWTSecret) > 0 && len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters, got %d", len(c.JWTSecret))
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive, got %v", c.RateLimitRPS)
	}
	if c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be positive, got %d", c.RateLimitBurst)
	}
	return nil
}
