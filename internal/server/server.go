// Package server exposes game sessions over HTTP and websockets using
// Fiber.
package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/chessai-go/internal/config"
	"github.com/lgbarn/chessai-go/internal/resource"
	"github.com/lgbarn/chessai-go/internal/service"
)

// Server wires the session manager into a Fiber app.
type Server struct {
	cfg    *config.Config
	games  *service.Manager
	assets resource.Service
	app    *fiber.App
}

// New builds the app and registers every route.
func New(cfg *config.Config, games *service.Manager, assets resource.Service) *Server {
	s := &Server{
		cfg:    cfg,
		games:  games,
		assets: assets,
		app: fiber.New(fiber.Config{
			AppName:               "chessai",
			DisableStartupMessage: cfg.Verbosity < 1,
		}),
	}

	s.app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))
	s.app.Use(requestLogger(cfg))

	api := s.app.Group("/api")
	api.Get("/health", s.health)
	api.Get("/rules", s.rules)
	api.Get("/assets", s.listAssets)
	api.Get("/ratings", s.scoreboard)
	api.Post("/ratings/elo", s.elo)

	sessions := api.Group("/games")
	sessions.Post("/", s.createGame)
	sessions.Get("/:gameId", s.getGame)
	sessions.Delete("/:gameId", s.deleteGame)
	sessions.Post("/:gameId/moves", s.makeMove)
	sessions.Post("/:gameId/engine", s.engineMove)
	sessions.Get("/:gameId/hint", s.hint)
	sessions.Post("/:gameId/undo", s.undo)

	s.app.Use("/ws", websocketUpgrade())
	s.app.Get("/ws/games/:gameId", websocket.New(s.handleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}))
	return s
}

// App returns the underlying Fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on the configured address until Shutdown.
func (s *Server) Listen() error {
	s.cfg.Logf(1, "listening on %s", s.cfg.Server.Addr)
	return s.app.Listen(s.cfg.Server.Addr)
}

// Shutdown stops accepting connections and waits for in-flight requests,
// bounded by the configured shutdown timeout.
func (s *Server) Shutdown() error {
	return s.app.ShutdownWithTimeout(s.cfg.Server.ShutdownTimeout)
}
