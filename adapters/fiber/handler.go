package fiber

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/lborres/easel/core"
	"github.com/lborres/easel/services"
)

func (a *Adapter) signUp(c fiber.Ctx) error {
	var input services.SignUpInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	result, err := a.svc.Auth.SignUp(input)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(result)
}

func (a *Adapter) signIn(c fiber.Ctx) error {
	var input services.SignInInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	ipAddress := c.IP()
	userAgent := c.Get(fiber.HeaderUserAgent)

	result, err := a.svc.Auth.SignIn(input, ipAddress, userAgent)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusOK).JSON(result)
}

func (a *Adapter) signOut(c fiber.Ctx) error {
	token, _ := c.Locals("token").(string)

	if err := a.svc.Auth.SignOut(token); err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "signed out successfully",
	})
}

func (a *Adapter) session(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(core.SessionData{
		User:    currentUser(c),
		Session: sessionFromCtx(c),
	})
}

func sessionFromCtx(c fiber.Ctx) *core.Session {
	session, _ := c.Locals("session").(*core.Session)
	return session
}

type drawingInput struct {
	Name       string `json:"name"`
	CanvasData string `json:"canvasData"`
}

func (a *Adapter) createDrawing(c fiber.Ctx) error {
	var input drawingInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	owner := currentUser(c)

	var (
		drawing *core.Drawing
		err     error
	)
	if input.CanvasData == "" {
		drawing, err = a.svc.Drawings.Create(owner.ID, input.Name)
	} else {
		drawing, err = a.svc.Drawings.Save(owner.ID, input.Name, input.CanvasData)
	}
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(drawing)
}

func (a *Adapter) updateDrawing(c fiber.Ctx) error {
	var input drawingInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := a.svc.Drawings.Update(c.Params("id"), input.CanvasData, input.Name); err != nil {
		return handleError(c, err)
	}

	return c.SendStatus(http.StatusNoContent)
}

func (a *Adapter) getDrawing(c fiber.Ctx) error {
	drawing, err := a.svc.Drawings.Get(c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusOK).JSON(drawing)
}

func (a *Adapter) listDrawings(c fiber.Ctx) error {
	drawings, err := a.svc.Drawings.List(currentUser(c).ID)
	if err != nil {
		return handleError(c, err)
	}

	if drawings == nil {
		drawings = []*core.DrawingSummary{}
	}
	return c.Status(http.StatusOK).JSON(drawings)
}

type strokeInput struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Color     string `json:"color"`
	BrushSize int    `json:"brushSize"`
}

// appendStroke enqueues one stroke sample. The response is 202 on any
// accepted input: persistence is best-effort and its outcome is never
// reported to the client.
func (a *Adapter) appendStroke(c fiber.Ctx) error {
	var input strokeInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	a.svc.Strokes.Append(c.Params("id"), currentUser(c).ID, input.X, input.Y, input.Color, input.BrushSize)

	return c.SendStatus(http.StatusAccepted)
}

// handleError maps service errors to appropriate HTTP responses
func handleError(c fiber.Ctx, err error) error {
	return c.Status(mapErrorToStatus(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// mapErrorToStatus maps easel error types to HTTP status codes
func mapErrorToStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, core.ErrInvalidCredentials),
		errors.Is(err, core.ErrInvalidToken),
		errors.Is(err, core.ErrSessionNotFound),
		errors.Is(err, core.ErrSessionExpired):
		return http.StatusUnauthorized

	case errors.Is(err, core.ErrEmailRequired),
		errors.Is(err, core.ErrPasswordRequired),
		errors.Is(err, core.ErrPasswordTooShort),
		errors.Is(err, core.ErrInvalidEmail):
		return http.StatusBadRequest

	case errors.Is(err, core.ErrUserExists):
		return http.StatusConflict

	case errors.Is(err, core.ErrUserNotFound),
		errors.Is(err, core.ErrDrawingNotFound):
		return http.StatusNotFound

	case core.IsStorageError(err):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}
