package providers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"credd/internal/scoring"
	"credd/internal/structures"
)

const AppName = "credd"

var envBindings = map[string]string{
	"webServer.host":           "CREDD_HOST",
	"webServer.port":           "CREDD_PORT",
	"logger.level":             "CREDD_LOG_LEVEL",
	"logger.dir":               "CREDD_LOG_DIR",
	"database.driver":          "CREDD_DB_DRIVER",
	"database.dsn":             "CREDD_DB_DSN",
	"cache.driver":             "CREDD_CACHE_DRIVER",
	"cache.size":               "CREDD_CACHE_SIZE",
	"cache.ttl":                "CREDD_CACHE_TTL",
	"cache.redis.addr":         "CREDD_REDIS_ADDR",
	"cache.redis.password":     "CREDD_REDIS_PASSWORD",
	"cache.redis.db":           "CREDD_REDIS_DB",
	"factCheck.enabled":        "CREDD_FACTCHECK_ENABLED",
	"factCheck.apiKey":         "CREDD_FACTCHECK_API_KEY",
	"persistence.enabled":      "CREDD_PERSISTENCE_ENABLED",
	"persistence.filePath":     "CREDD_SNAPSHOT_PATH",
	"persistence.saveInterval": "CREDD_SAVE_INTERVAL",
	"persistence.s3.enabled":   "CREDD_S3_ENABLED",
	"persistence.s3.bucket":    "CREDD_S3_BUCKET",
	"persistence.s3.accessKey": "CREDD_S3_ACCESS_KEY",
	"persistence.s3.secretKey": "CREDD_S3_SECRET_KEY",
	"metrics.enabled":          "CREDD_METRICS_ENABLED",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 8080)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", "./logs")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "credd.db")

	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.size", 64)
	v.SetDefault("cache.ttl", time.Hour)

	v.SetDefault("sources.lookupTTL", 5*time.Minute)

	v.SetDefault("store.retries", 3)
	v.SetDefault("store.retryDelay", 50*time.Millisecond)

	p := scoring.DefaultPolicy()
	v.SetDefault("scoring.baseScore", p.BaseScore)
	v.SetDefault("scoring.suspiciousPenalty", p.SuspiciousPenalty)
	v.SetDefault("scoring.crediblePoints", p.CrediblePoints)
	v.SetDefault("scoring.neutralityPoints", p.NeutralityPoints)
	v.SetDefault("scoring.complexityPoints", p.ComplexityPoints)
	v.SetDefault("scoring.emotionalPenalty", p.EmotionalPenalty)
	v.SetDefault("scoring.neutralityThreshold", p.NeutralityThreshold)
	v.SetDefault("scoring.complexityThreshold", p.ComplexityThreshold)
	v.SetDefault("scoring.complexityMinWords", p.ComplexityMinWords)
	v.SetDefault("scoring.emotionalThreshold", p.EmotionalThreshold)
	v.SetDefault("scoring.domainWeight", p.DomainWeight)
	v.SetDefault("scoring.lowTrustThreshold", p.LowTrustThreshold)
	v.SetDefault("scoring.verifiedThreshold", p.VerifiedThreshold)
	v.SetDefault("scoring.unclearThreshold", p.UnclearThreshold)
	v.SetDefault("scoring.baseConfidence", p.BaseConfidence)
	v.SetDefault("scoring.signalConfidence", p.SignalConfidence)
	v.SetDefault("scoring.conflictPenalty", p.ConflictPenalty)
	v.SetDefault("scoring.maxConfidence", p.MaxConfidence)
	v.SetDefault("scoring.knownFakeScore", p.KnownFakeScore)
	v.SetDefault("scoring.knownFakeConfidence", p.KnownFakeConfidence)

	v.SetDefault("factCheck.enabled", false)
	v.SetDefault("factCheck.baseURL", "https://factchecktools.googleapis.com/v1alpha1")
	v.SetDefault("factCheck.rps", 5)
	v.SetDefault("factCheck.timeout", 5*time.Second)

	v.SetDefault("persistence.enabled", false)
	v.SetDefault("persistence.filePath", "./data/credd.snap")
	v.SetDefault("persistence.saveInterval", 10*time.Minute)
	v.SetDefault("persistence.s3.region", "us-east-1")
	v.SetDefault("persistence.s3.prefix", "snapshots/")
	v.SetDefault("persistence.s3.keep", 7)

	v.SetDefault("metrics.enabled", true)
}

// NewConfigProvider reads the YAML file named by the flags, layers CREDD_* environment
// variables (optionally from a .env file) on top, and validates the result. A missing
// config file is not an error; defaults and the environment still apply.
func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	if err := NewCnfValidator(&conf).Validate(); err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
