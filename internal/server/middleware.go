package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/chessai-go/internal/config"
)

// requestLogger logs each request at level 2.
func requestLogger(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		cfg.Logf(2, "%s %s -> %d (%v)", c.Method(), c.Path(), c.Response().StatusCode(), time.Since(start).Round(time.Microsecond))
		return err
	}
}

// websocketUpgrade refuses plain HTTP requests to websocket routes.
func websocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	}
}
