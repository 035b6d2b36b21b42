package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"credd/internal/scoring"
	"credd/internal/structures"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Persistence: structures.Persistence{
			FilePath:     "/tmp/credd.snap",
			SaveInterval: 30 * time.Second,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
		Database: structures.DatabaseConfig{
			Driver: "sqlite",
			DSN:    "file::memory:",
		},
		Cache: structures.CacheConfig{
			Driver: "memory",
			Size:   16,
			TTL:    time.Hour,
		},
		Scoring: scoring.DefaultPolicy(),
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_UnknownDatabaseDriver(t *testing.T) {
	c := validConfig()
	c.Database.Driver = "oracle"
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_UnknownCacheDriver(t *testing.T) {
	c := validConfig()
	c.Cache.Driver = "memcached"
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_RedisNeedsAddr(t *testing.T) {
	c := validConfig()
	c.Cache.Driver = "redis"
	assert.Error(t, NewCnfValidator(c).Validate())

	c.Cache.Redis.Addr = "localhost:6379"
	assert.NoError(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_InvertedBands(t *testing.T) {
	c := validConfig()
	c.Scoring.UnclearThreshold = 80
	assert.Error(t, NewCnfValidator(c).Validate())
}
