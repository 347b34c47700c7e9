package db

import (
	"context"
	"fmt"

	"github.com/geocoder89/taskhub/internal/config"
	"github.com/geocoder89/taskhub/internal/domain/task"
	"github.com/geocoder89/taskhub/internal/domain/user"
	"github.com/geocoder89/taskhub/internal/observability"
	"github.com/geocoder89/taskhub/internal/repo/memory"
	"github.com/geocoder89/taskhub/internal/repo/mongodb"
	"github.com/geocoder89/taskhub/internal/repo/postgres"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Stores is the process-scoped handle to durable state. It is opened once
// in main and passed to the services.
type Stores struct {
	Driver string
	Users  user.Store
	Tasks  task.Store

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

func (s *Stores) Ping(ctx context.Context) error {
	if s == nil || s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

func (s *Stores) Close(ctx context.Context) error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// NewMemoryStores returns in-process stores; used by tests and STORE_DRIVER=memory.
func NewMemoryStores() *Stores {
	return &Stores{
		Driver: config.DriverMemory,
		Users:  memory.NewUsersRepo(),
		Tasks:  memory.NewTasksRepo(),
	}
}

func Open(ctx context.Context, cfg config.Config, obs observability.DBObserver) (*Stores, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return NewMemoryStores(), nil

	case config.DriverPostgres:
		pool, err := NewPool(ctx, cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("postgres connect: %w", err)
		}

		if err := Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}

		return &Stores{
			Driver: config.DriverPostgres,
			Users:  postgres.NewUsersRepo(pool, obs),
			Tasks:  postgres.NewTasksRepo(pool, obs),
			ping:   pool.Ping,
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	case config.DriverMongo:
		client, database, err := NewMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("mongo connect: %w", err)
		}

		if err := EnsureMongoIndexes(ctx, database); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}

		return &Stores{
			Driver: config.DriverMongo,
			Users:  mongodb.NewUsersRepo(database, obs),
			Tasks:  mongodb.NewTasksRepo(database, obs),
			ping: func(ctx context.Context) error {
				return client.Ping(ctx, readpref.Primary())
			},
			close: client.Disconnect,
		}, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
