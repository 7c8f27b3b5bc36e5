package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	TokenCacheNone   = "none"
	TokenCacheMemory = "memory"
	TokenCacheRedis  = "redis"

	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr                   string
		ShutdownTimeoutSeconds int
	}
	Auth struct {
		JWTSecret       string
		TokenTTLMinutes int
		TokenCache      string
	}
	Cart struct {
		StrictQuantity bool
	}
	Store struct {
		Driver string
	}
	Seed struct {
		Source string
	}
	Redis struct {
		Addr      string
		Password  string
		DB        int
		KeyPrefix string
	}
	AWS struct {
		Region   string
		Profile  string
		Endpoint string
	}
	Log struct {
		Level  string
		Format string
	}
}

// Load reads configuration from environment variables, an optional .env file and an optional
// config file in the working directory.
func Load() (Config, error) {
	_ = godotenv.Load() // optional file; existing env vars win

	v := viper.New()
	v.SetEnvPrefix("SHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	if err := v.BindEnv("auth.jwtsecret", "SHOP_AUTH_JWTSECRET", "SECRET_KEY"); err != nil {
		return Config{}, fmt.Errorf("bind secret env: %w", err)
	}

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "0.0.0.0:3000")
	v.SetDefault("server.shutdowntimeoutseconds", 10)
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.tokenttlminutes", 24*60)
	v.SetDefault("auth.tokencache", TokenCacheNone)
	v.SetDefault("cart.strictquantity", false)
	v.SetDefault("store.driver", StoreMemory)
	v.SetDefault("seed.source", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.keyprefix", "shop:token:")
	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.profile", "")
	v.SetDefault("aws.endpoint", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Validate checks required settings and enumerations.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("auth jwt secret is required (SHOP_AUTH_JWTSECRET or SECRET_KEY)")
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		return fmt.Errorf("auth token ttl must be positive, got %d minutes", c.Auth.TokenTTLMinutes)
	}
	switch c.Auth.TokenCache {
	case TokenCacheNone, TokenCacheMemory, TokenCacheRedis:
	default:
		return fmt.Errorf("unknown auth token cache %q", c.Auth.TokenCache)
	}
	switch c.Store.Driver {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server addr is required")
	}
	return nil
}
