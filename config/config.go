package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Storage   StorageConfig   `yaml:"storage"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Security  SecurityConfig  `yaml:"security"`
	SignedURL SignedURLConfig `yaml:"signed_url"`
	Upload    UploadConfig    `yaml:"upload"`
	Display   DisplayConfig   `yaml:"display"`
}

type ServerConfig struct {
	Port int    `yaml:"port" validate:"min=1,max=65535"`
	Host string `yaml:"host"`
	Mode string `yaml:"mode" validate:"omitempty,oneof=debug release test"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=console json"`
}

type StorageConfig struct {
	Driver          string `yaml:"driver" validate:"oneof=gcs s3 local"`
	Bucket          string `yaml:"bucket" validate:"required_unless=Driver local"`
	CredentialsFile string `yaml:"credentials_file"`
	GoogleAccessID  string `yaml:"google_access_id"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	ForcePathStyle  bool   `yaml:"force_path_style"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	BasePath        string `yaml:"base_path" validate:"required_if=Driver local"`
	PublicBaseURL   string `yaml:"public_base_url"`
}

type DatabaseConfig struct {
	Driver       string `yaml:"driver" validate:"oneof=firestore mysql postgres sqlite"`
	DSN          string `yaml:"dsn"`
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	Database     string `yaml:"database"`
	Charset      string `yaml:"charset"`
	ProjectID    string `yaml:"project_id" validate:"required_if=Driver firestore"`
	Collection   string `yaml:"collection"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

type RedisConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	Password        string `yaml:"password"`
	DB              int    `yaml:"db"`
	FlashTTLSeconds int    `yaml:"flash_ttl_seconds"`
}

type SecurityConfig struct {
	SecretKey     string `yaml:"secret_key" validate:"required"`
	SessionCookie string `yaml:"session_cookie"`
}

type SignedURLConfig struct {
	DashboardExpiry time.Duration `yaml:"dashboard_expiry" validate:"gt=0"`
	DownloadExpiry  time.Duration `yaml:"download_expiry" validate:"gt=0"`
}

type UploadConfig struct {
	AllowedExtensions    []string `yaml:"allowed_extensions" validate:"min=1"`
	MultipartMemoryBytes int64    `yaml:"multipart_memory_bytes"`
}

type DisplayConfig struct {
	Timezone string `yaml:"timezone"`
}

// Location resolves the display time zone. An empty or "Local" value uses the
// process zone.
func (d DisplayConfig) Location() (*time.Location, error) {
	if d.Timezone == "" || strings.EqualFold(d.Timezone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(d.Timezone)
}

// DefaultAllowedExtensions is the upload whitelist used when none is configured.
var DefaultAllowedExtensions = []string{"png", "jpg", "jpeg", "gif", "mp4", "mov", "webm", "avi", "mkv"}

// DefaultSecretKey mirrors the development fallback of the mobile backend this
// service replaces. Override it in every deployed environment.
const DefaultSecretKey = "supersecretkey"

var validate = validator.New()

// LoadConfig reads the YAML file at path, overlays the environment (including
// an optional .env next to the working directory) and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MEDIABOX_SECRET_KEY"); v != "" {
		cfg.Security.SecretKey = v
	} else if v := os.Getenv("FLASK_SECRET"); v != "" && cfg.Security.SecretKey == "" {
		cfg.Security.SecretKey = v
	}
	if v := os.Getenv("MEDIABOX_BUCKET"); v != "" {
		cfg.Storage.Bucket = v
	}
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" && cfg.Storage.CredentialsFile == "" {
		cfg.Storage.CredentialsFile = v
	}
	if v := os.Getenv("MEDIABOX_DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("MEDIABOX_REDIS_ADDR"); v != "" {
		host, port, found := strings.Cut(v, ":")
		cfg.Redis.Host = host
		if found {
			if p, err := strconv.Atoi(port); err == nil {
				cfg.Redis.Port = p
			}
		}
	}
	if v := os.Getenv("MEDIABOX_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "gcs"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "firestore"
	}
	if cfg.Database.Collection == "" {
		cfg.Database.Collection = "files"
	}
	if cfg.Database.Charset == "" {
		cfg.Database.Charset = "utf8mb4"
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "127.0.0.1"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.FlashTTLSeconds == 0 {
		cfg.Redis.FlashTTLSeconds = 600
	}
	if cfg.Security.SecretKey == "" {
		cfg.Security.SecretKey = DefaultSecretKey
	}
	if cfg.Security.SessionCookie == "" {
		cfg.Security.SessionCookie = "session"
	}
	if cfg.SignedURL.DashboardExpiry == 0 {
		cfg.SignedURL.DashboardExpiry = 24 * time.Hour
	}
	if cfg.SignedURL.DownloadExpiry == 0 {
		cfg.SignedURL.DownloadExpiry = time.Hour
	}
	if len(cfg.Upload.AllowedExtensions) == 0 {
		cfg.Upload.AllowedExtensions = append([]string(nil), DefaultAllowedExtensions...)
	}
	if cfg.Upload.MultipartMemoryBytes == 0 {
		cfg.Upload.MultipartMemoryBytes = 32 << 20
	}
}
