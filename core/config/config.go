package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"prikkr/core/constants"
	"prikkr/core/logger"
)

type ServerConfig struct {
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	BaseURL string `mapstructure:"base_url"` // public origin used in share links and emails
	Env     string `mapstructure:"env"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type GoogleConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

type AzureADConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	TenantID     string `mapstructure:"tenant_id"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

type EmailConfig struct {
	Provider        string `mapstructure:"provider"` // "ses" or "noop"
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	FromAddress     string `mapstructure:"from_address"`
	FromName        string `mapstructure:"from_name"`
}

type AuthConfig struct {
	JWTSecret  string `mapstructure:"jwt_secret"`
	CronSecret string `mapstructure:"cron_secret"`
	// 32-byte hex key used to seal participant OAuth tokens at rest.
	TokenSealKey string `mapstructure:"token_seal_key"`
}

type SchedulingConfig struct {
	Timezone       string `mapstructure:"timezone"`
	ResyncInterval string `mapstructure:"resync_interval"` // cron spec or @every duration
}

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Google     GoogleConfig     `mapstructure:"google"`
	AzureAD    AzureADConfig    `mapstructure:"azure_ad"`
	Email      EmailConfig      `mapstructure:"email"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Scheduling SchedulingConfig `mapstructure:"scheduling"`
}

var (
	instance *Config
	mu       sync.RWMutex
)

// Load reads config.yaml (optional) and environment variables, .env included.
// Environment variables win: PRIKKR_SERVER_PORT overrides server.port.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("config: no .env file loaded", "error", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("PRIKKR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	mu.Lock()
	instance = cfg
	mu.Unlock()
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7070)
	v.SetDefault("server.base_url", "http://localhost:7070")
	v.SetDefault("server.env", "development")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.from_name", "Prikkr")
	v.SetDefault("azure_ad.tenant_id", "common")
	v.SetDefault("scheduling.timezone", constants.DefaultTimezone)
	v.SetDefault("scheduling.resync_interval", "@every 30m")
}

// Get returns the loaded config. Panics when called before Load; use GetSafe
// in paths that may run during startup.
func Get() *Config {
	cfg, ok := GetSafe()
	if !ok {
		panic("config: Get called before Load")
	}
	return cfg
}

func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		return nil, false
	}
	return instance, true
}
