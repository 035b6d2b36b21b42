package structures

import "time"

type Server struct {
	Host string `yaml:"host" mapstructure:"host" validate:"required"`
	Port int    `yaml:"port" mapstructure:"port" validate:"required|uint|min:1"`
}

// Persistence controls periodic snapshots of the history and known-fakes tables.
type Persistence struct {
	Enabled      bool          `yaml:"enabled" mapstructure:"enabled"`
	FilePath     string        `yaml:"filePath" mapstructure:"filePath" validate:"required"`
	SaveInterval time.Duration `yaml:"saveInterval" mapstructure:"saveInterval" validate:"required|min:1"`
	S3           S3Config      `yaml:"s3" mapstructure:"s3"`
}

type S3Config struct {
	Enabled   bool   `yaml:"enabled" mapstructure:"enabled"`
	Endpoint  string `yaml:"endpoint" mapstructure:"endpoint"`
	Region    string `yaml:"region" mapstructure:"region"`
	Bucket    string `yaml:"bucket" mapstructure:"bucket"`
	Prefix    string `yaml:"prefix" mapstructure:"prefix"`
	AccessKey string `yaml:"accessKey" mapstructure:"accessKey"`
	SecretKey string `yaml:"secretKey" mapstructure:"secretKey"`
	Keep      int    `yaml:"keep" mapstructure:"keep"`
}

type LoggerConfig struct {
	Level string `yaml:"level" mapstructure:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" mapstructure:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" mapstructure:"dir" validate:"required"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver" validate:"required|in:sqlite,postgres,mysql"`
	DSN    string `yaml:"dsn" mapstructure:"dsn" validate:"required"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
}

type CacheConfig struct {
	Driver string        `yaml:"driver" mapstructure:"driver" validate:"required|in:memory,redis,none"`
	Size   int           `yaml:"size" mapstructure:"size"`
	TTL    time.Duration `yaml:"ttl" mapstructure:"ttl" validate:"required|min:1"`
	Redis  RedisConfig   `yaml:"redis" mapstructure:"redis"`
}

type SourcesConfig struct {
	LookupTTL time.Duration `yaml:"lookupTTL" mapstructure:"lookupTTL"`
}

// StoreConfig bounds the retries performed by the store adapters on transient errors.
type StoreConfig struct {
	Retries    int           `yaml:"retries" mapstructure:"retries"`
	RetryDelay time.Duration `yaml:"retryDelay" mapstructure:"retryDelay"`
}

// ScoringConfig holds the policy constants of the credibility scorer.
type ScoringConfig struct {
	BaseScore         float64 `yaml:"baseScore" mapstructure:"baseScore"`
	SuspiciousPenalty float64 `yaml:"suspiciousPenalty" mapstructure:"suspiciousPenalty"`
	CrediblePoints    float64 `yaml:"crediblePoints" mapstructure:"crediblePoints"`
	NeutralityPoints  float64 `yaml:"neutralityPoints" mapstructure:"neutralityPoints"`
	ComplexityPoints  float64 `yaml:"complexityPoints" mapstructure:"complexityPoints"`
	EmotionalPenalty  float64 `yaml:"emotionalPenalty" mapstructure:"emotionalPenalty"`

	NeutralityThreshold float64 `yaml:"neutralityThreshold" mapstructure:"neutralityThreshold"`
	ComplexityThreshold float64 `yaml:"complexityThreshold" mapstructure:"complexityThreshold"`
	ComplexityMinWords  int     `yaml:"complexityMinWords" mapstructure:"complexityMinWords"`
	EmotionalThreshold  float64 `yaml:"emotionalThreshold" mapstructure:"emotionalThreshold"`

	DomainWeight      float64 `yaml:"domainWeight" mapstructure:"domainWeight" validate:"min:0|max:1"`
	LowTrustThreshold float64 `yaml:"lowTrustThreshold" mapstructure:"lowTrustThreshold"`

	VerifiedThreshold int `yaml:"verifiedThreshold" mapstructure:"verifiedThreshold"`
	UnclearThreshold  int `yaml:"unclearThreshold" mapstructure:"unclearThreshold"`

	BaseConfidence      float64 `yaml:"baseConfidence" mapstructure:"baseConfidence"`
	SignalConfidence    float64 `yaml:"signalConfidence" mapstructure:"signalConfidence"`
	ConflictPenalty     float64 `yaml:"conflictPenalty" mapstructure:"conflictPenalty"`
	MaxConfidence       float64 `yaml:"maxConfidence" mapstructure:"maxConfidence"`
	KnownFakeScore      int     `yaml:"knownFakeScore" mapstructure:"knownFakeScore"`
	KnownFakeConfidence float64 `yaml:"knownFakeConfidence" mapstructure:"knownFakeConfidence"`
}

type FactCheckConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	BaseURL string        `yaml:"baseURL" mapstructure:"baseURL"`
	APIKey  string        `yaml:"apiKey" mapstructure:"apiKey"`
	RPS     float64       `yaml:"rps" mapstructure:"rps"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server          `yaml:"webServer" mapstructure:"webServer"`
	Logger      LoggerConfig    `yaml:"logger" mapstructure:"logger"`
	Database    DatabaseConfig  `yaml:"database" mapstructure:"database"`
	Cache       CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Sources     SourcesConfig   `yaml:"sources" mapstructure:"sources"`
	Store       StoreConfig     `yaml:"store" mapstructure:"store"`
	Scoring     ScoringConfig   `yaml:"scoring" mapstructure:"scoring"`
	FactCheck   FactCheckConfig `yaml:"factCheck" mapstructure:"factCheck"`
	Persistence Persistence     `yaml:"persistence" mapstructure:"persistence"`
	Metrics     MetricsConfig   `yaml:"metrics" mapstructure:"metrics"`
}
