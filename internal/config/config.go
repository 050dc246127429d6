package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	Storage StorageConfig
	Email   EmailConfig
	Log     LogConfig
	CORS    CORSConfig
	Render  RenderConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds the shared secret used to verify bearer tokens.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// StorageConfig selects and configures the object store documents are published to.
// Provider is "s3" or "gcs".
type StorageConfig struct {
	Provider        string `mapstructure:"provider"`
	Bucket          string `mapstructure:"bucket"`
	Prefix          string `mapstructure:"prefix"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKey       string `mapstructure:"access_key"`
	SecretKey       string `mapstructure:"secret_key"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

// EmailConfig holds email delivery settings. Provider is "ses" or "noop".
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RenderConfig holds document rendering settings.
type RenderConfig struct {
	OutputDir string `mapstructure:"output_dir"`
	LogoPath  string `mapstructure:"logo_path"`
}

// Load reads configuration from environment variables with the BIZDOCS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BIZDOCS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "bizdocs")
	v.SetDefault("db.password", "bizdocs_secret")
	v.SetDefault("db.name", "bizdocs_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "")

	// Storage defaults
	v.SetDefault("storage.provider", "s3")
	v.SetDefault("storage.bucket", "bizdocs-documents")
	v.SetDefault("storage.prefix", "documents")
	v.SetDefault("storage.region", "ap-south-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.credentials_file", "")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "noreply@bizdocs.local")
	v.SetDefault("email.from_name", "Accounts")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Render defaults
	v.SetDefault("render.output_dir", "output")
	v.SetDefault("render.logo_path", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "BIZDOCS_SERVER_PORT",
		"server.read_timeout":      "BIZDOCS_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "BIZDOCS_SERVER_WRITE_TIMEOUT",
		"server.environment":       "BIZDOCS_SERVER_ENVIRONMENT",
		"db.host":                  "BIZDOCS_DB_HOST",
		"db.port":                  "BIZDOCS_DB_PORT",
		"db.user":                  "BIZDOCS_DB_USER",
		"db.password":              "BIZDOCS_DB_PASSWORD",
		"db.name":                  "BIZDOCS_DB_NAME",
		"db.sslmode":               "BIZDOCS_DB_SSLMODE",
		"db.max_open":              "BIZDOCS_DB_MAX_OPEN",
		"db.max_idle":              "BIZDOCS_DB_MAX_IDLE",
		"jwt.secret":               "BIZDOCS_JWT_SECRET",
		"jwt.issuer":               "BIZDOCS_JWT_ISSUER",
		"storage.provider":         "BIZDOCS_STORAGE_PROVIDER",
		"storage.bucket":           "BIZDOCS_STORAGE_BUCKET",
		"storage.prefix":           "BIZDOCS_STORAGE_PREFIX",
		"storage.region":           "BIZDOCS_STORAGE_REGION",
		"storage.endpoint":         "BIZDOCS_STORAGE_ENDPOINT",
		"storage.access_key":       "BIZDOCS_STORAGE_ACCESS_KEY",
		"storage.secret_key":       "BIZDOCS_STORAGE_SECRET_KEY",
		"storage.credentials_file": "BIZDOCS_STORAGE_CREDENTIALS_FILE",
		"email.provider":           "BIZDOCS_EMAIL_PROVIDER",
		"email.region":             "BIZDOCS_EMAIL_REGION",
		"email.from_address":       "BIZDOCS_EMAIL_FROM_ADDRESS",
		"email.from_name":          "BIZDOCS_EMAIL_FROM_NAME",
		"log.level":                "BIZDOCS_LOG_LEVEL",
		"log.format":               "BIZDOCS_LOG_FORMAT",
		"cors.allowed_origins":     "BIZDOCS_CORS_ALLOWED_ORIGINS",
		"render.output_dir":        "BIZDOCS_RENDER_OUTPUT_DIR",
		"render.logo_path":         "BIZDOCS_RENDER_LOGO_PATH",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it if BIZDOCS_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BIZDOCS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret: v.GetString("jwt.secret"),
		Issuer: v.GetString("jwt.issuer"),
	}
	cfg.Storage = StorageConfig{
		Provider:        strings.ToLower(v.GetString("storage.provider")),
		Bucket:          v.GetString("storage.bucket"),
		Prefix:          strings.Trim(v.GetString("storage.prefix"), "/"),
		Region:          v.GetString("storage.region"),
		Endpoint:        v.GetString("storage.endpoint"),
		AccessKey:       v.GetString("storage.access_key"),
		SecretKey:       v.GetString("storage.secret_key"),
		CredentialsFile: v.GetString("storage.credentials_file"),
	}
	cfg.Email = EmailConfig{
		Provider:    strings.ToLower(v.GetString("email.provider")),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}
	cfg.Render = RenderConfig{
		OutputDir: v.GetString("render.output_dir"),
		LogoPath:  v.GetString("render.logo_path"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Provider {
	case "s3", "gcs":
	default:
		return fmt.Errorf("config: unsupported storage provider %q", c.Storage.Provider)
	}
	switch c.Email.Provider {
	case "ses", "noop":
	default:
		return fmt.Errorf("config: unsupported email provider %q", c.Email.Provider)
	}
	if c.Render.OutputDir == "" {
		return fmt.Errorf("config: render output directory is empty")
	}
	return nil
}
