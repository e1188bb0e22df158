package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/gigcircle/gigcircle/internal/core/ports"
	"github.com/gigcircle/gigcircle/internal/infrastructure/config"
	"github.com/gigcircle/gigcircle/internal/infrastructure/db/mongo"
	"github.com/gigcircle/gigcircle/internal/infrastructure/db/postgres"
	redisstore "github.com/gigcircle/gigcircle/internal/infrastructure/db/redis"
	"github.com/gigcircle/gigcircle/internal/infrastructure/http/handlers"
	"github.com/gigcircle/gigcircle/internal/infrastructure/storage"
)

type repositories struct {
	users   ports.UserRepository
	bands   ports.BandRepository
	events  ports.EventRepository
	artists ports.ArtistRepository
}

func (a *App) openStore(ctx context.Context) (repositories, error) {
	switch a.cfg.StoreDriver {
	case config.StoreMongo:
		return a.openMongo(ctx)
	default:
		return a.openPostgres(ctx)
	}
}

// openPostgres connects the pool and brings the schema up to date.
func (a *App) openPostgres(ctx context.Context) (repositories, error) {
	dsn := a.cfg.PostgresDSN()
	pool, err := connectWithRetry(ctx, a.retry, a.log, "postgres", func(ctx context.Context) (*pgxpool.Pool, error) {
		return postgres.Connect(ctx, postgres.Config{DSN: dsn})
	})
	if err != nil {
		return repositories{}, fmt.Errorf("postgres: %w", err)
	}
	a.onClose("postgres", func(context.Context) error {
		pool.Close()
		return nil
	})
	a.readiness["postgres"] = pool

	if err := migrateUp(dsn); err != nil {
		return repositories{}, err
	}

	return repositories{
		users:   postgres.NewUserRepository(pool),
		bands:   postgres.NewBandRepository(pool),
		events:  postgres.NewEventRepository(pool),
		artists: postgres.NewArtistRepository(pool),
	}, nil
}

func migrateUp(dsn string) error {
	m, err := postgres.NewMigrator(dsn)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()
	return m.Up()
}

func (a *App) openMongo(ctx context.Context) (repositories, error) {
	var db *mongodriver.Database
	client, err := connectWithRetry(ctx, a.retry, a.log, "mongo", func(ctx context.Context) (*mongodriver.Client, error) {
		c, d, err := mongo.Connect(ctx, mongo.Config{URI: a.cfg.Mongo.URI, Database: a.cfg.Mongo.Database})
		db = d
		return c, err
	})
	if err != nil {
		return repositories{}, fmt.Errorf("mongo: %w", err)
	}
	a.onClose("mongo", client.Disconnect)
	a.readiness["mongo"] = handlers.PingFunc(func(ctx context.Context) error {
		return client.Ping(ctx, nil)
	})

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return repositories{}, err
	}

	return repositories{
		users:   mongo.NewUserRepository(db),
		bands:   mongo.NewBandRepository(db),
		events:  mongo.NewEventRepository(db),
		artists: mongo.NewArtistRepository(db),
	}, nil
}

func (a *App) openRedis(ctx context.Context) (*goredis.Client, error) {
	client, err := connectWithRetry(ctx, a.retry, a.log, "redis", func(ctx context.Context) (*goredis.Client, error) {
		return redisstore.Connect(ctx, redisstore.Config{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	a.onClose("redis", func(context.Context) error { return client.Close() })
	a.readiness["redis"] = handlers.PingFunc(func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
	return client, nil
}

// openMedia returns the upload store and, for the local driver, the
// directory the router serves under /uploads.
func (a *App) openMedia(ctx context.Context) (ports.MediaStorage, string, error) {
	m := a.cfg.Media
	if m.Driver == config.MediaS3 {
		s, err := storage.NewS3Storage(ctx, storage.S3Config{
			Bucket:    m.S3Bucket,
			Region:    m.S3Region,
			Endpoint:  m.S3Endpoint,
			AccessKey: m.S3AccessKey,
			SecretKey: m.S3SecretKey,
		})
		if err != nil {
			return nil, "", err
		}
		return s, "", nil
	}

	s, err := storage.NewLocalStorage(m.UploadDir)
	if err != nil {
		return nil, "", err
	}
	return s, m.UploadDir, nil
}
