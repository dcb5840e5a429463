package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Server struct {
		Port         int               `yaml:"port"`
		ReadTimeout  time.Duration     `yaml:"readTimeout"`
		WriteTimeout time.Duration     `yaml:"writeTimeout"`
		CORSOrigins  []string          `yaml:"corsOrigins"`
		APIKeys      map[string]string `yaml:"apiKeys"` // owner -> key
		RateLimit    struct {
			Capacity   int `yaml:"capacity"`
			RefillRate int `yaml:"refillRate"`
		} `yaml:"rateLimit"`
	} `yaml:"server"`

	Database struct {
		Driver   string `yaml:"driver"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslmode"`
	} `yaml:"database"`

	Minio struct {
		Endpoint       string `yaml:"endpoint"`
		AccessKey      string `yaml:"accessKey"`
		SecretKey      string `yaml:"secretKey"`
		EvidenceBucket string `yaml:"evidenceBucket"`
		ReportBucket   string `yaml:"reportBucket"`
		Region         string `yaml:"region"`
		UseSSL         bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	OpenAI struct {
		APIKey  string `yaml:"apiKey"`
		Model   string `yaml:"model"`
		BaseURL string `yaml:"baseURL"`
	} `yaml:"openai"`

	GitHub struct {
		Token string `yaml:"token"`
	} `yaml:"github"`

	Audit struct {
		MatchThreshold      int           `yaml:"matchThreshold"`
		AnswerTimeout       time.Duration `yaml:"answerTimeout"`
		FetchTimeout        time.Duration `yaml:"fetchTimeout"`
		DefaultOrganization string        `yaml:"defaultOrganization"`
		DefaultProjects     []string      `yaml:"defaultProjects"`
		ChecklistPath       string        `yaml:"checklistPath"`
	} `yaml:"audit"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Default returns a config usable without any file: in-memory store, no
// object storage, no LLM key.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Load baca file config.yaml, lalu env override
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML, fills defaults and applies env overrides.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	cfg.applyEnv(os.LookupEnv)
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	// execute dan export bisa lama
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 120 * time.Second
	}
	if c.Server.RateLimit.Capacity == 0 {
		c.Server.RateLimit.Capacity = 60
	}
	if c.Server.RateLimit.RefillRate == 0 {
		c.Server.RateLimit.RefillRate = 1
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverMemory
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Minio.EvidenceBucket == "" {
		c.Minio.EvidenceBucket = "audit-evidence"
	}
	if c.Minio.ReportBucket == "" {
		c.Minio.ReportBucket = "audit-reports"
	}
	if c.Audit.MatchThreshold == 0 {
		c.Audit.MatchThreshold = 85
	}
	if c.Audit.AnswerTimeout == 0 {
		c.Audit.AnswerTimeout = 60 * time.Second
	}
	if c.Audit.FetchTimeout == 0 {
		c.Audit.FetchTimeout = 30 * time.Second
	}
	if c.Audit.DefaultOrganization == "" {
		c.Audit.DefaultOrganization = "Default"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}

// secrets boleh dari env, menimpa nilai di file
func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	overrides := map[string]*string{
		"OPENAI_API_KEY":    &c.OpenAI.APIKey,
		"GITHUB_TOKEN":      &c.GitHub.Token,
		"MINIO_ACCESS_KEY":  &c.Minio.AccessKey,
		"MINIO_SECRET_KEY":  &c.Minio.SecretKey,
		"DATABASE_PASSWORD": &c.Database.Password,
	}
	for env, dst := range overrides {
		if v, ok := lookup(env); ok && v != "" {
			*dst = v
		}
	}
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	switch c.Database.Driver {
	case DriverMySQL, DriverPostgres, DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("database.driver %q is not one of mysql, postgres, memory", c.Database.Driver))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Audit.MatchThreshold <= 0 || c.Audit.MatchThreshold > 100 {
		errs = append(errs, fmt.Errorf("audit.matchThreshold must be in 1..100, got %d", c.Audit.MatchThreshold))
	}
	if c.Audit.AnswerTimeout < 0 || c.Audit.FetchTimeout < 0 {
		errs = append(errs, errors.New("audit timeouts must not be negative"))
	}
	if c.Server.RateLimit.Capacity < 0 || c.Server.RateLimit.RefillRate < 0 {
		errs = append(errs, errors.New("server.rateLimit values must not be negative"))
	}
	return errors.Join(errs...)
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// Helper untuk build DSN Postgres (URL form)
func (c *Config) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.Database.SSLMode),
	}
	return u.String()
}

// MinioEnabled reports whether object storage is configured.
func (c *Config) MinioEnabled() bool {
	return c.Minio.Endpoint != ""
}
