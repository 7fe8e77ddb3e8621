package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lborres/easel"
	fiberadapter "github.com/lborres/easel/adapters/fiber"
	pgxadapter "github.com/lborres/easel/adapters/pgx"
	"github.com/lborres/easel/canvas"
)

const sessionCleanupInterval = time.Hour

func logFormat() string {
	format := []string{
		"${time}",
		"${status}|${latency}",
		"${ip}:${port}",
		"${method}|${path}",
		"${errors}",
	}
	return strings.Join(format, "|") + "\n"
}

func main() {
	// Both are startup-fatal when absent: a misconfigured process must
	// not come up.
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	secret := os.Getenv("EASEL_SECRET")
	if secret == "" {
		log.Fatal("EASEL_SECRET is required")
	}

	addr := os.Getenv("EASEL_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		log.Fatalf("pgxpool.New: %v", err)
	}
	defer pool.Close()

	app := fiber.New()
	app.Use(logger.New(logger.Config{
		Format:     logFormat(),
		TimeFormat: "2006/01/02 15:04:05",
		TimeZone:   "Local",
	}))

	e, err := easel.New(easel.Config{
		Secret:   secret,
		Database: pgxadapter.New(pool),
		Canvas:   canvas.NewSurface(800, 600),
		Logger:   slog.Default(),
	})
	if err != nil {
		log.Fatalf("could not create easel instance: %v", err)
	}
	defer e.Close()

	http := fiberadapter.New(app, fiberadapter.Services{
		Auth:     e.Auth,
		Drawings: e.Drawings,
		Strokes:  e.Strokes,
	})
	http.RegisterRoutes("/api")

	go func() {
		ticker := time.NewTicker(sessionCleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			if n, err := e.CleanupExpiredSessions(); err != nil {
				slog.Warn("session cleanup failed", "error", err)
			} else if n > 0 {
				slog.Info("expired sessions removed", "count", n)
			}
		}
	}()

	if err := app.Listen(addr); err != nil {
		log.Fatalf("app.Listen: %v", err)
	}
}
