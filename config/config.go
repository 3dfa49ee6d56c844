package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type WebServerConfig struct {
	Port            string `mapstructure:"port"`
	IP              string `mapstructure:"ip"`
	ReadTimeout     int    `mapstructure:"read_timeout"`
	WriteTimeout    int    `mapstructure:"write_timeout"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
	// Proxies (IPs or CIDRs) whose X-Forwarded-For / X-Real-IP are believed.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

type SheetConfig struct {
	URL            string `mapstructure:"url"`
	ID             string `mapstructure:"id"`
	SheetName      string `mapstructure:"sheet_name"`
	RequestTimeout int    `mapstructure:"request_timeout"`
}

type SurveyConfig struct {
	Respondents []string `mapstructure:"respondents"`
	Timezone    string   `mapstructure:"timezone"`
	MemoryLimit int      `mapstructure:"memory_limit"`
}

type EmailConfig struct {
	Enabled      bool     `mapstructure:"enabled"`
	Provider     string   `mapstructure:"provider"` // "resend" or "smtp"
	ResendAPIKey string   `mapstructure:"resend_api_key"`
	From         string   `mapstructure:"from"`
	To           []string `mapstructure:"to"`
	Subject      string   `mapstructure:"subject"`
	SMTPHost     string   `mapstructure:"smtp_host"`
	SMTPPort     string   `mapstructure:"smtp_port"`
	SMTPUsername string   `mapstructure:"smtp_username"`
	SMTPPassword string   `mapstructure:"smtp_password"`
}

type GiftConfig struct {
	Password      string `mapstructure:"password"` // plain text or a bcrypt hash
	Message       string `mapstructure:"message"`
	AssetsDir     string `mapstructure:"assets_dir"`
	MaxAttempts   int    `mapstructure:"max_attempts"`
	AttemptWindow int    `mapstructure:"attempt_window"` // seconds
}

type FaceConfig struct {
	ReferenceFile string  `mapstructure:"reference_file"`
	Threshold     float64 `mapstructure:"threshold"`
}

type RedisConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	Address          string `mapstructure:"address"`
	Password         string `mapstructure:"password"`
	DB               int    `mapstructure:"db"`
	PoolSize         int    `mapstructure:"pool_size"`
	MinIdleConns     int    `mapstructure:"min_idle_conns"`
	OperationTimeout int    `mapstructure:"operation_timeout"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type CacheConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	MaxSizeMB   int  `mapstructure:"max_size_mb"`
	TTLSeconds  int  `mapstructure:"ttl_seconds"`
	CounterSize int  `mapstructure:"counter_size"`
}

type DigestConfig struct {
	Schedule string `mapstructure:"schedule"` // cron expression, empty disables the scheduler
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type Config struct {
	WebServer WebServerConfig `mapstructure:"webserver"`
	Sheet     SheetConfig     `mapstructure:"sheet"`
	Survey    SurveyConfig    `mapstructure:"survey"`
	Email     EmailConfig     `mapstructure:"email"`
	Gift      GiftConfig      `mapstructure:"gift"`
	Face      FaceConfig      `mapstructure:"face"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Digest    DigestConfig    `mapstructure:"digest"`
	Log       LogConfig       `mapstructure:"log"`
}

// legacyEnv maps config keys to the environment variable names the
// deployment already uses.
var legacyEnv = map[string]string{
	"sheet.url":            "GOOGLE_SHEET_URL",
	"email.resend_api_key": "RESEND_API_KEY",
	"email.from":           "EMAIL_FROM",
	"email.to":             "EMAIL_TO",
	"gift.password":        "GIFT_PASSWORD",
	"gift.message":         "GIFT_MESSAGE",
	"webserver.port":       "PORT",
}

const envPrefix = "DASHBOARD"

func LoadConfig() (Config, error) {
	var config Config

	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, name := range legacyEnv {
		prefixed := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, name); err != nil {
			return config, fmt.Errorf("bind env %s: %w", name, err)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Printf("Error reading config file: %v", err)
			return config, err
		}
	}

	if err := v.Unmarshal(&config); err != nil {
		log.Printf("Unable to decode into struct: %v", err)
		return config, err
	}

	config.Email.To = splitAddresses(config.Email.To)

	if err := config.Validate(); err != nil {
		return config, err
	}

	return config, nil
}

func MustLoadConfig() Config {
	config, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	return config
}

// Validate checks the settings the service cannot start without. A missing
// sheet is reported by the read endpoints and email settings are checked
// when a digest is sent, so the gift and health routes still come up.
func (c Config) Validate() error {
	if len(c.Survey.Respondents) != 2 {
		return fmt.Errorf("survey.respondents must name exactly two people, got %d", len(c.Survey.Respondents))
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("survey.timezone: %w", err)
	}
	return nil
}

// Location resolves the survey timezone used to decide what "today" is.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Survey.Timezone)
}

// Respondents returns the two survey participants in configured order.
func (c Config) Respondents() [2]string {
	var r [2]string
	copy(r[:], c.Survey.Respondents)
	return r
}

// splitAddresses flattens comma-joined entries, which is how EMAIL_TO is
// usually provided.
func splitAddresses(in []string) []string {
	var out []string
	for _, entry := range in {
		for _, addr := range strings.Split(entry, ",") {
			if addr = strings.TrimSpace(addr); addr != "" {
				out = append(out, addr)
			}
		}
	}
	return out
}

func setDefaults(v *viper.Viper) {
	// WebServer defaults
	v.SetDefault("webserver.port", "5000")
	v.SetDefault("webserver.ip", "0.0.0.0")
	v.SetDefault("webserver.read_timeout", 15)
	v.SetDefault("webserver.write_timeout", 30)
	v.SetDefault("webserver.shutdown_timeout", 30)
	v.SetDefault("webserver.trusted_proxies", []string{})

	// Sheet defaults
	v.SetDefault("sheet.url", "")
	v.SetDefault("sheet.id", "")
	v.SetDefault("sheet.sheet_name", "")
	v.SetDefault("sheet.request_timeout", 20)

	// Survey defaults
	v.SetDefault("survey.respondents", []string{"Michael", "Amy"})
	v.SetDefault("survey.timezone", "Local")
	v.SetDefault("survey.memory_limit", 10)

	// Email defaults
	v.SetDefault("email.enabled", true)
	v.SetDefault("email.provider", "resend")
	v.SetDefault("email.resend_api_key", "")
	v.SetDefault("email.from", "onboarding@resend.dev")
	v.SetDefault("email.to", []string{})
	v.SetDefault("email.subject", "Weekly Relationship Digest")
	v.SetDefault("email.smtp_host", "")
	v.SetDefault("email.smtp_port", "587")
	v.SetDefault("email.smtp_username", "")
	v.SetDefault("email.smtp_password", "")

	// Gift defaults
	v.SetDefault("gift.password", "")
	v.SetDefault("gift.message", "")
	v.SetDefault("gift.assets_dir", "gift-assets")
	v.SetDefault("gift.max_attempts", 10)
	v.SetDefault("gift.attempt_window", 900) // 15 minutes

	// Face defaults
	v.SetDefault("face.reference_file", "")
	v.SetDefault("face.threshold", 0.8)

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 5)
	v.SetDefault("redis.min_idle_conns", 1)
	v.SetDefault("redis.operation_timeout", 5)

	// Cache defaults
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.max_size_mb", 16)
	v.SetDefault("cache.ttl_seconds", 60)
	v.SetDefault("cache.counter_size", 1000)

	// RateLimit defaults
	v.SetDefault("ratelimit.requests_per_second", 5.0)
	v.SetDefault("ratelimit.burst", 10)

	v.SetDefault("digest.schedule", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", true)
}
