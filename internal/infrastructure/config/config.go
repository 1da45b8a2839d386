package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DocumentStorePostgres = "postgres"
	DocumentStoreOracle   = "oracle"
	DocumentStoreSQLite   = "sqlite"
	DocumentStoreSupabase = "supabase"
	DocumentStoreMemory   = "memory"

	ObjectStoreSupabase = "supabase"
	ObjectStoreS3       = "s3"
	ObjectStoreR2       = "r2"
	ObjectStoreLocal    = "local"
	ObjectStoreMemory   = "memory"

	AuthProviderLocal    = "local"
	AuthProviderSupabase = "supabase"
)

type Config struct {
	ServerPort string
	ServerHost string
	LogLevel   string
	LogFormat  string

	DocumentStore string
	DBDSN         string
	SQLitePath    string

	ObjectStore      string
	StorageBucket    string
	StorageBaseURL   string
	StorageEndpoint  string
	StorageRegion    string
	StorageAccessKey string
	StorageSecretKey string
	StorageLocalPath string
	UploadPrefix     string
	MaxUploadBytes   int64

	SupabaseURL        string
	SupabaseServiceKey string

	AuthProvider      string
	AdminEmail        string
	AdminPasswordHash string
	JWTSecret         string
	SessionTTL        time.Duration
	AdminEmails       []string

	CacheRefreshInterval time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	ContactFrom  string
	ContactTo    string
}

// UsesSupabase reports whether any adapter needs the Supabase project client.
func (c *Config) UsesSupabase() bool {
	return c.DocumentStore == DocumentStoreSupabase ||
		c.ObjectStore == ObjectStoreSupabase ||
		c.AuthProvider == AuthProviderSupabase
}

// SMTPEnabled reports whether contact messages are delivered by e-mail.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != ""
}

func Load() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnvOrDefault("SERVER_PORT", "8080"),
		ServerHost: getEnvOrDefault("SERVER_HOST", "localhost"),
		LogLevel:   getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:  getEnvOrDefault("LOG_FORMAT", "text"),

		DocumentStore: strings.ToLower(getEnvOrDefault("DOCUMENT_STORE", DocumentStorePostgres)),
		DBDSN:         os.Getenv("DB_DSN"),
		SQLitePath:    getEnvOrDefault("SQLITE_PATH", "studio.db"),

		ObjectStore:      strings.ToLower(getEnvOrDefault("OBJECT_STORE", ObjectStoreLocal)),
		StorageBucket:    os.Getenv("STORAGE_BUCKET"),
		StorageBaseURL:   os.Getenv("STORAGE_BASE_URL"),
		StorageEndpoint:  os.Getenv("STORAGE_ENDPOINT"),
		StorageRegion:    os.Getenv("STORAGE_REGION"),
		StorageAccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
		StorageSecretKey: os.Getenv("STORAGE_SECRET_KEY"),
		StorageLocalPath: getEnvOrDefault("STORAGE_LOCAL_PATH", "./uploads"),
		UploadPrefix:     getEnvOrDefault("UPLOAD_PREFIX", "portfolio"),

		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseServiceKey: os.Getenv("SUPABASE_SERVICE_KEY"),

		AuthProvider:      strings.ToLower(getEnvOrDefault("AUTH_PROVIDER", AuthProviderLocal)),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminEmails:       splitList(os.Getenv("ADMIN_EMAILS")),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		ContactFrom:  os.Getenv("CONTACT_FROM"),
		ContactTo:    os.Getenv("CONTACT_TO"),
	}

	var err error
	if cfg.SessionTTL, err = time.ParseDuration(getEnvOrDefault("SESSION_TTL", "12h")); err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if cfg.CacheRefreshInterval, err = time.ParseDuration(getEnvOrDefault("CACHE_REFRESH_INTERVAL", "5m")); err != nil {
		return nil, fmt.Errorf("invalid CACHE_REFRESH_INTERVAL: %w", err)
	}
	if cfg.MaxUploadBytes, err = strconv.ParseInt(getEnvOrDefault("MAX_UPLOAD_BYTES", "5242880"), 10, 64); err != nil || cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES: %q", os.Getenv("MAX_UPLOAD_BYTES"))
	}
	if cfg.SMTPPort, err = strconv.Atoi(getEnvOrDefault("SMTP_PORT", "587")); err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DocumentStore {
	case DocumentStorePostgres, DocumentStoreOracle:
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN environment variable is required for %s document store", c.DocumentStore)
		}
	case DocumentStoreSQLite, DocumentStoreSupabase, DocumentStoreMemory:
	default:
		return fmt.Errorf("unsupported DOCUMENT_STORE: %s", c.DocumentStore)
	}

	switch c.ObjectStore {
	case ObjectStoreS3, ObjectStoreR2:
		if c.StorageBucket == "" {
			return fmt.Errorf("STORAGE_BUCKET environment variable is required for %s object store", c.ObjectStore)
		}
	case ObjectStoreSupabase:
		if c.StorageBucket == "" {
			return fmt.Errorf("STORAGE_BUCKET environment variable is required for supabase object store")
		}
	case ObjectStoreLocal, ObjectStoreMemory:
	default:
		return fmt.Errorf("unsupported OBJECT_STORE: %s", c.ObjectStore)
	}

	switch c.AuthProvider {
	case AuthProviderLocal:
		if c.AdminEmail == "" || c.AdminPasswordHash == "" || c.JWTSecret == "" {
			return fmt.Errorf("ADMIN_EMAIL, ADMIN_PASSWORD_HASH and JWT_SECRET are required for local auth provider")
		}
	case AuthProviderSupabase:
	default:
		return fmt.Errorf("unsupported AUTH_PROVIDER: %s", c.AuthProvider)
	}

	if c.UsesSupabase() && (c.SupabaseURL == "" || c.SupabaseServiceKey == "") {
		return fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_KEY are required when a supabase adapter is selected")
	}
	if c.SMTPEnabled() && c.ContactTo == "" {
		return fmt.Errorf("CONTACT_TO environment variable is required when SMTP_HOST is set")
	}
	if c.CacheRefreshInterval < 0 {
		return fmt.Errorf("invalid CACHE_REFRESH_INTERVAL: must not be negative")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
