package main

import (
	"context"
	"fmt"

	"github.com/nazir19980501/mapty/internal/config"
	"github.com/nazir19980501/mapty/internal/db"
	"github.com/nazir19980501/mapty/internal/kv"

	"github.com/rs/zerolog/log"
)

// backend is the persistence collaborator picked by STORE_DRIVER and the
// function releasing its connection.
type backend struct {
	store kv.Store
	close func()
}

func openBackend(ctx context.Context, cfg config.Config) (backend, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return backend{store: kv.NewMemory(), close: func() {}}, nil

	case config.DriverRedis:
		rdb := db.ConnectRedis(cfg)
		if rdb == nil {
			return backend{}, fmt.Errorf("store driver %s needs REDIS_ADDR", cfg.StoreDriver)
		}
		if err := db.PingRedis(ctx, rdb); err != nil {
			_ = rdb.Close()
			return backend{}, err
		}
		return backend{store: kv.NewRedis(rdb), close: func() { _ = rdb.Close() }}, nil

	case config.DriverPostgres:
		pool, err := db.ConnectPostgres(ctx, cfg)
		if err != nil {
			return backend{}, err
		}
		pg := kv.NewPostgres(pool)
		if err := pg.Migrate(ctx); err != nil {
			pool.Close()
			return backend{}, err
		}
		return backend{store: pg, close: pool.Close}, nil

	case config.DriverSQLite, "":
		gdb, err := db.ConnectSQLite(cfg)
		if err != nil {
			return backend{}, err
		}
		store, err := kv.NewSQLite(gdb)
		if err != nil {
			return backend{}, err
		}
		return backend{store: store, close: func() {
			if sqlDB, err := gdb.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}}, nil
	}
	log.Error().Str("driver", cfg.StoreDriver).Msg("unknown store driver")
	return backend{}, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
