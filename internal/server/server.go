package server

import (
	"sync"
	"time"

	"github.com/nazir19980501/mapty/internal/config"
	"github.com/nazir19980501/mapty/internal/session"
	"github.com/nazir19980501/mapty/internal/stream"
	"github.com/nazir19980501/mapty/internal/web"
	"github.com/nazir19980501/mapty/internal/workout"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App      *fiber.App
	Cfg      config.Config
	Store    *workout.Store
	Redis    *redis.Client
	Stream   *stream.Hub
	Sessions *session.Registry

	stop     chan struct{}
	stopOnce sync.Once
}

const maxSweepEvery = time.Minute

// NewServer wires every route around one shared workout store. redisClient
// may be nil; the command stream then stays in process.
func NewServer(cfg config.Config, store *workout.Store, redisClient *redis.Client) *Server {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())
	app.Use(logger.New())

	hub := stream.NewHub(redisClient)
	s := &Server{
		App:      app,
		Cfg:      cfg,
		Store:    store,
		Redis:    redisClient,
		Stream:   hub,
		Sessions: session.NewRegistry(store, hub),
		stop:     make(chan struct{}),
	}

	registerRoutes(s)
	if cfg.SessionIdle > 0 {
		go s.sweepSessions(cfg.SessionIdle)
	}
	return s
}

func (s *Server) sweepSessions(idle time.Duration) {
	every := idle / 2
	if every > maxSweepEvery {
		every = maxSweepEvery
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.Sessions.Expire(idle, func(id string) bool { return s.Stream.Clients(id) > 0 })
		}
	}
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "workouts": s.Store.Len(), "sessions": s.Sessions.Len()})
	})
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	session.RegisterRoutes(s.App.Group("/sessions"), s.Sessions)
	workout.RegisterRoutes(s.App.Group("/workouts"), s.Store)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
	web.RegisterRoutes(s.App)
}

// Close stops the session sweeper and releases the stream subscription. The
// fiber app is shut down by the caller.
func (s *Server) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	return s.Stream.Close()
}
