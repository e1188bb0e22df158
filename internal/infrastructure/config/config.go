package config

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StorePostgres = "postgres"
	StoreMongo    = "mongo"

	MediaLocal = "local"
	MediaS3    = "s3"
)

type Config struct {
	Port          string        `env:"PORT,           default=3000"`
	Env           string        `env:"ENV,            default=development"`
	LogLevel      string        `env:"LOG_LEVEL,      default=info"`
	Secret        string        `env:"SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL,    default=24h"`
	SecureCookies bool          `env:"SECURE_COOKIES, default=false"`
	StoreDriver   string        `env:"STORE_DRIVER,   default=postgres"`

	Postgres PostgresConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Media    MediaConfig
}

type PostgresConfig struct {
	User     string `env:"PG_USER,     default=postgres"`
	Password string `env:"PG_PASSWORD"`
	Host     string `env:"PG_HOST,     default=localhost"`
	Port     int    `env:"PG_PORT,     default=5432"`
	Database string `env:"PG_DATABASE, default=gigcircle"`
	SSLMode  string `env:"PG_SSLMODE,  default=disable"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=gigcircle"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type MediaConfig struct {
	Driver      string `env:"MEDIA_DRIVER,  default=local"`
	UploadDir   string `env:"UPLOAD_DIR,    default=uploads"`
	MaxUploadMB int64  `env:"MAX_UPLOAD_MB, default=50"`

	S3Bucket    string `env:"S3_BUCKET"`
	S3Region    string `env:"S3_REGION,     default=us-east-1"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Validate checks what the server needs beyond parsing. Migrations only
// need the PG_* settings, so this is not part of Load.
func (c *Config) Validate() error {
	var errs []error
	if c.Secret == "" {
		errs = append(errs, errors.New("SECRET is required"))
	}
	switch c.StoreDriver {
	case StorePostgres, StoreMongo:
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER %q is not one of postgres, mongo", c.StoreDriver))
	}
	switch c.Media.Driver {
	case MediaLocal:
	case MediaS3:
		if c.Media.S3Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET is required when MEDIA_DRIVER=s3"))
		}
	default:
		errs = append(errs, fmt.Errorf("MEDIA_DRIVER %q is not one of local, s3", c.Media.Driver))
	}
	if c.Media.MaxUploadMB <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_MB must be positive"))
	}
	return errors.Join(errs...)
}

// IsProduction reports whether logs should be emitted as plain JSON.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// PostgresDSN assembles a postgres:// URL from the PG_* settings.
func (c *Config) PostgresDSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Postgres.User, c.Postgres.Password),
		Host:   net.JoinHostPort(c.Postgres.Host, strconv.Itoa(c.Postgres.Port)),
		Path:   "/" + c.Postgres.Database,
	}
	if c.Postgres.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.Postgres.SSLMode}}.Encode()
	}
	return u.String()
}
