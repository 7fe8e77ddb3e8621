// Package fiber exposes the easel services over HTTP using Fiber v3.
package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/lborres/easel/services"
)

// Services are the operations the HTTP surface exposes.
type Services struct {
	Auth     *services.AuthService
	Drawings *services.DrawingService
	Strokes  *services.StrokeLog
}

type Adapter struct {
	app *fiber.App
	svc Services
}

func New(app *fiber.App, svc Services) *Adapter {
	return &Adapter{app: app, svc: svc}
}

// RegisterRoutes mounts all easel endpoints under basePath ("/api" when
// empty).
func (a *Adapter) RegisterRoutes(basePath string) {
	if basePath == "" {
		basePath = "/api"
	}
	api := a.app.Group(basePath)

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/sign-up", a.signUp)
	auth.Post("/sign-in", a.signIn)

	// Protected routes
	auth.Post("/sign-out", a.requireAuth, a.signOut)
	auth.Get("/session", a.requireAuth, a.session)

	drawings := api.Group("/drawings")
	drawings.Get("/", a.requireAuth, a.listDrawings)
	drawings.Post("/", a.requireAuth, a.createDrawing)
	drawings.Get("/:id", a.requireAuth, a.getDrawing)
	drawings.Put("/:id", a.requireAuth, a.updateDrawing)
	drawings.Post("/:id/strokes", a.requireAuth, a.appendStroke)
}
