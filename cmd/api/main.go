package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nazir19980501/mapty/internal/config"
	"github.com/nazir19980501/mapty/internal/db"
	"github.com/nazir19980501/mapty/internal/server"
	"github.com/nazir19980501/mapty/internal/workout"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

var mainDepsProvider = defaultDeps
var mainRunner = realMain

func main() {
	if err := mainRunner(mainDepsProvider(), os.Args); err != nil {
		os.Exit(1)
	}
}

type mainDeps struct {
	loadConfig   func(path string) (config.Config, error)
	openBackend  func(context.Context, config.Config) (backend, error)
	connectRedis func(config.Config) *redis.Client
	notify       func(chan<- os.Signal, ...os.Signal)
	run          func(context.Context, config.Config, *workout.Store, *redis.Client, <-chan os.Signal, ListenFunc) error
}

func defaultDeps() mainDeps {
	return mainDeps{
		loadConfig:   config.LoadFile,
		openBackend:  openBackend,
		connectRedis: db.ConnectRedis,
		notify:       signal.Notify,
		run:          Run,
	}
}

func realMain(deps mainDeps, args []string) error {
	return newApp(deps).RunContext(context.Background(), args)
}

func newApp(deps mainDeps) *cli.App {
	return &cli.App{
		Name:     "mapty",
		HelpName: "mapty",
		Usage:    "log workouts on a map",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "config file read before the environment",
			},
		},
		ExitErrHandler: func(c *cli.Context, err error) {
			if err == nil {
				return
			}
			log.Error().Err(err).Msg(c.App.Name)
		},
		Before: func(c *cli.Context) error {
			cfg, err := deps.loadConfig(c.String("config"))
			if err != nil {
				return err
			}
			level, err := zerolog.ParseLevel(cfg.LogLevel)
			if err != nil || cfg.LogLevel == "" {
				level = zerolog.InfoLevel
			}
			zerolog.SetGlobalLevel(level)
			zerolog.DurationFieldUnit = time.Millisecond
			zerolog.DurationFieldInteger = false
			log.Logger = log.Output(
				zerolog.ConsoleWriter{
					Out:        c.App.ErrWriter,
					NoColor:    false,
					TimeFormat: time.RFC3339,
				},
			)
			c.App.Metadata = map[string]any{"config": cfg}
			return nil
		},
		Action: func(c *cli.Context) error {
			return serve(c, deps)
		},
		Commands: []*cli.Command{
			exportCommand(deps),
		},
	}
}

func configFrom(c *cli.Context) config.Config {
	cfg, _ := c.App.Metadata["config"].(config.Config)
	return cfg
}

func serve(c *cli.Context, deps mainDeps) error {
	cfg := configFrom(c)

	be, err := deps.openBackend(c.Context, cfg)
	if err != nil {
		return err
	}
	defer be.close()
	store := workout.NewStore(c.Context, be.store, cfg.StoreKey)

	rdb := deps.connectRedis(cfg)
	signals := make(chan os.Signal, 1)
	deps.notify(signals, syscall.SIGINT, syscall.SIGTERM)

	log.Info().Str("address", cfg.ServerPort).Str("driver", cfg.StoreDriver).Int("workouts", store.Len()).Msg("serving")
	return deps.run(c.Context, cfg, store, rdb, signals, nil)
}

type ListenFunc func(app *fiber.App, addr string) error

var defaultListen ListenFunc = func(app *fiber.App, addr string) error {
	return app.Listen(addr)
}

var shutdownFn = func(app *fiber.App, ctx context.Context) error {
	return app.ShutdownWithContext(ctx)
}

// Run starts the HTTP server and waits for termination signals.
func Run(ctx context.Context, cfg config.Config, store *workout.Store, rdb *redis.Client, signals <-chan os.Signal, listen ListenFunc) error {
	srv := server.NewServer(cfg, store, rdb)

	if listen == nil {
		listen = defaultListen
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- listen(srv.App, cfg.ServerPort)
	}()

	select {
	case <-signals:
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			_ = srv.Close()
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := shutdownFn(srv.App, shutdownCtx); err != nil {
		return err
	}
	if err := srv.Close(); err != nil {
		log.Warn().Err(err).Msg("stream hub close")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	return nil
}
