package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp keeps stray .env or config files in the package directory out of the test.
func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SECRET_KEY", "")
	t.Setenv("SHOP_AUTH_JWTSECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:3000", cfg.Server.Addr)
	assert.Equal(t, 1440, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, TokenCacheNone, cfg.Auth.TokenCache)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.False(t, cfg.Cart.StrictQuantity)
	assert.Equal(t, "info", cfg.Log.Level)

	assert.Error(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SHOP_AUTH_JWTSECRET", "")
	t.Setenv("SECRET_KEY", "legacy-secret")
	t.Setenv("SHOP_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("SHOP_AUTH_TOKENCACHE", "redis")
	t.Setenv("SHOP_CART_STRICTQUANTITY", "true")
	t.Setenv("SHOP_STORE_DRIVER", "sqlite")
	t.Setenv("SHOP_REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "legacy-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, TokenCacheRedis, cfg.Auth.TokenCache)
	assert.True(t, cfg.Cart.StrictQuantity)
	assert.Equal(t, StoreSQLite, cfg.Store.Driver)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.NoError(t, cfg.Validate())
}

func TestPrefixedSecretWins(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SHOP_AUTH_JWTSECRET", "primary")
	t.Setenv("SECRET_KEY", "legacy")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "primary", cfg.Auth.JWTSecret)
}

func TestLoadReadsDotEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SHOP_AUTH_JWTSECRET", "")
	t.Setenv("SECRET_KEY", "")
	os.Unsetenv("SECRET_KEY")
	require.NoError(t, os.WriteFile(".env", []byte("SECRET_KEY=from-dotenv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("SECRET_KEY") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Auth.JWTSecret)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var c Config
		c.Server.Addr = ":3000"
		c.Auth.JWTSecret = "s"
		c.Auth.TokenTTLMinutes = 1
		c.Auth.TokenCache = TokenCacheNone
		c.Store.Driver = StoreMemory
		return c
	}

	assert.NoError(t, valid().Validate())

	c := valid()
	c.Auth.TokenTTLMinutes = 0
	assert.Error(t, c.Validate())

	c = valid()
	c.Auth.TokenCache = "memcached"
	assert.Error(t, c.Validate())

	c = valid()
	c.Store.Driver = "postgres"
	assert.Error(t, c.Validate())

	c = valid()
	c.Server.Addr = ""
	assert.Error(t, c.Validate())
}
