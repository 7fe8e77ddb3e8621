package services

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/lborres/easel/core"
)

// State is the controller's position in the drawing-session lifecycle.
type State int

const (
	StateUnauthenticated State = iota
	StateNoDrawing             // signed in, current drawing not yet established
	StateDrawingOpen
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateNoDrawing:
		return "authenticated/no-drawing"
	case StateDrawingOpen:
		return "authenticated/drawing-open"
	}
	return "unknown"
}

const (
	// DownloadFilename is the suggested name for local PNG export.
	DownloadFilename = "my-drawing.png"

	statusTTL = 3 * time.Second

	defaultBrushColor = "#000000"
	defaultBrushSize  = 5
)

// Controller orchestrates the session, the drawing repository, the stroke
// log and the canvas surface. It owns the notion of "current drawing id"
// for the lifetime of an editing session.
//
// Every error crossing the controller boundary becomes a transient status
// message and is otherwise swallowed; nothing is retried. The one designed
// exception is drawing creation, which degrades to a local fallback id so
// the user can keep drawing.
type Controller struct {
	auth       *AuthService
	drawings   *DrawingService
	strokes    *StrokeLog
	canvas     core.Canvas
	transforms core.CanvasTransforms // nil when the canvas has no transforms
	log        *slog.Logger

	mu           sync.Mutex
	state        State
	user         *core.User
	token        string
	currentID    string
	list         []*core.DrawingSummary
	baseSnapshot string // last loaded/uploaded snapshot, for reset
	brushColor   string
	brushSize    int

	// epoch increments on sign-out. A repository call that started under
	// an older epoch must not mutate state when it lands: a save still in
	// flight when the user signs out cannot resurrect authenticated state.
	epoch uint64

	status    string
	statusGen uint64
}

func NewController(auth *AuthService, drawings *DrawingService, strokes *StrokeLog, canvas core.Canvas, log *slog.Logger) *Controller {
	transforms, _ := canvas.(core.CanvasTransforms)
	return &Controller{
		auth:       auth,
		drawings:   drawings,
		strokes:    strokes,
		canvas:     canvas,
		transforms: transforms,
		log:        log,
		brushColor: defaultBrushColor,
		brushSize:  defaultBrushSize,
	}
}

// ---- session lifecycle ----

// SignUp registers a new account. It does not sign the user in; the
// provider flow requires a sign-in afterwards.
func (c *Controller) SignUp(email, password, name string) {
	_, err := c.auth.SignUp(SignUpInput{Email: email, Password: password, Name: name})
	if err != nil {
		c.setStatus(statusText(err))
		return
	}
	c.setStatus("Account created - you can sign in now")
}

// SignIn authenticates and, on success, establishes the editing session:
// the drawing list is loaded and a brand-new current drawing is eagerly
// created. The eager create is a fixed onboarding policy, not conditional.
func (c *Controller) SignIn(email, password string) {
	res, err := c.auth.SignIn(SignInInput{Email: email, Password: password}, "", "")
	if err != nil {
		c.setStatus(statusText(err))
		return
	}
	c.establish(res.User, res.Token)
}

// RestoreSession validates a previously issued token at startup. On
// success it has the same side effects as SignIn; on failure the
// controller simply stays unauthenticated.
func (c *Controller) RestoreSession(token string) {
	sd, err := c.auth.GetSession(token)
	if err != nil {
		return
	}
	c.establish(sd.User, token)
}

// establish applies a successful authentication and opens a drawing.
func (c *Controller) establish(user *core.User, token string) {
	c.mu.Lock()
	c.user = user
	c.token = token
	c.state = StateNoDrawing
	epoch := c.epoch
	c.mu.Unlock()

	c.refreshList(epoch)
	c.openNewDrawing(epoch)
}

// openNewDrawing creates the current drawing. If the repository rejects
// the insert the controller synthesizes a local fallback id so drawing can
// continue - degrade, never block. Strokes and saves under a fallback id
// will not durably persist.
func (c *Controller) openNewDrawing(epoch uint64) {
	c.mu.Lock()
	if c.epoch != epoch || c.user == nil {
		c.mu.Unlock()
		return
	}
	ownerID := c.user.ID
	c.mu.Unlock()

	d, err := c.drawings.Create(ownerID, "")

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		return
	}
	if err != nil {
		c.currentID = fallbackDrawingID(time.Now())
		c.log.Warn("drawing create failed, continuing with local id",
			"id", c.currentID, "error", err)
		c.setStatusLocked("Working locally - this session will not be saved")
	} else {
		c.currentID = d.ID
	}
	c.state = StateDrawingOpen
}

// SignOut tears the session down. The provider call happens first: if it
// fails, local state is left untouched (sign-out is not forced locally on
// a remote failure).
func (c *Controller) SignOut() {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()

	if err := c.auth.SignOut(token); err != nil {
		c.setStatus(statusText(err))
		return
	}

	c.mu.Lock()
	c.user = nil
	c.token = ""
	c.currentID = ""
	c.list = nil
	c.baseSnapshot = ""
	c.state = StateUnauthenticated
	c.epoch++
	c.mu.Unlock()

	c.canvas.Clear()
}

// ---- drawing lifecycle ----

// SaveDrawing exports the current snapshot and inserts it as a new
// drawing row. Saves always insert - the previously current row is left
// unchanged - and the new id becomes current. A sign-out racing the save
// wins: the landed result is discarded.
func (c *Controller) SaveDrawing(name string) {
	c.mu.Lock()
	if c.user == nil {
		c.mu.Unlock()
		c.setStatus(statusText(core.ErrNotSignedIn))
		return
	}
	ownerID := c.user.ID
	epoch := c.epoch
	c.mu.Unlock()

	snapshot, err := c.canvas.ExportSnapshot()
	if err != nil {
		c.setStatus("Could not export the drawing")
		return
	}

	d, err := c.drawings.Save(ownerID, name, snapshot)

	c.mu.Lock()
	if c.epoch != epoch {
		c.mu.Unlock()
		return
	}
	if err != nil {
		c.setStatusLocked(statusText(err))
		c.mu.Unlock()
		return
	}
	c.currentID = d.ID
	c.state = StateDrawingOpen
	c.setStatusLocked("Drawing saved")
	c.mu.Unlock()

	c.refreshList(epoch)
}

// LoadDrawing fetches a stored drawing and replaces the canvas contents.
// There is no confirmation: unsaved pixels are silently replaced.
func (c *Controller) LoadDrawing(id string) {
	c.mu.Lock()
	if c.user == nil {
		c.mu.Unlock()
		c.setStatus(statusText(core.ErrNotSignedIn))
		return
	}
	epoch := c.epoch
	c.mu.Unlock()

	d, err := c.drawings.Get(id)
	if err != nil {
		c.setStatus(statusText(err))
		return
	}

	if err := c.canvas.LoadSnapshot(d.CanvasData); err != nil {
		// Canvas is blank at this point per the LoadSnapshot contract
		c.setStatus("Could not load the drawing")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		return
	}
	c.currentID = id
	c.baseSnapshot = d.CanvasData
	c.state = StateDrawingOpen
}

func (c *Controller) refreshList(epoch uint64) {
	c.mu.Lock()
	if c.epoch != epoch || c.user == nil {
		c.mu.Unlock()
		return
	}
	ownerID := c.user.ID
	c.mu.Unlock()

	list, err := c.drawings.List(ownerID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		return
	}
	if err != nil {
		c.setStatusLocked(statusText(err))
		return
	}
	c.list = list
}

// ---- pointer input ----

// SetBrush updates the styling applied to subsequent stroke segments.
func (c *Controller) SetBrush(color string, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if color != "" {
		c.brushColor = color
	}
	if size > 0 {
		c.brushSize = size
	}
}

// PointerDown starts a stroke. Without a signed-in identity nothing is
// drawn and a notice is surfaced.
func (c *Controller) PointerDown(pt core.Point) {
	c.mu.Lock()
	signedIn := c.user != nil
	c.mu.Unlock()

	if !signedIn {
		c.setStatus(statusText(core.ErrNotSignedIn))
		return
	}
	c.canvas.BeginStroke(pt)
}

// PointerMove extends the current stroke. The pixels land synchronously;
// the stroke log append is queued and never blocks or interrupts drawing.
func (c *Controller) PointerMove(pt core.Point) {
	c.mu.Lock()
	user := c.user
	drawingID := c.currentID
	color := c.brushColor
	size := c.brushSize
	c.mu.Unlock()

	if user == nil {
		return
	}

	seg, ok := c.canvas.ExtendStroke(pt, color, size)
	if !ok {
		return
	}

	c.strokes.Append(drawingID, user.ID, seg.X, seg.Y, seg.Color, seg.BrushSize)
}

// PointerUp ends the current stroke. Idempotent.
func (c *Controller) PointerUp() {
	c.canvas.EndStroke()
}

// ---- canvas actions ----

// ClearCanvas blanks the surface.
func (c *Controller) ClearCanvas() {
	c.canvas.Clear()
}

// Download writes the current buffer as PNG bytes, bypassing the
// repository entirely. Callers save it locally as DownloadFilename.
func (c *Controller) Download(w io.Writer) error {
	return c.canvas.EncodePNG(w)
}

// UploadImage replaces the canvas contents with an uploaded image file.
func (c *Controller) UploadImage(r io.Reader) {
	raw, err := io.ReadAll(r)
	if err != nil {
		c.setStatus("Could not read the image file")
		return
	}

	encoded := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)
	if err := c.canvas.LoadSnapshot(encoded); err != nil {
		c.setStatus("Could not decode the image file")
		return
	}

	c.mu.Lock()
	c.baseSnapshot = encoded
	c.mu.Unlock()
}

// Crop applies the center-square crop transform.
func (c *Controller) Crop() {
	if c.transforms == nil {
		return
	}
	c.transforms.CropSquare()
}

// Rotate turns the image a quarter turn clockwise.
func (c *Controller) Rotate() {
	if c.transforms == nil {
		return
	}
	c.transforms.RotateQuarterTurn()
}

// Adjust applies brightness then contrast to the whole buffer.
func (c *Controller) Adjust(brightness, contrast int) {
	if c.transforms == nil {
		return
	}
	c.transforms.AdjustBrightnessContrast(brightness, contrast)
}

// ResetImage restores the snapshot captured at the last load or upload,
// dropping all strokes and transforms applied since. With nothing loaded
// it clears the canvas.
func (c *Controller) ResetImage() {
	c.mu.Lock()
	base := c.baseSnapshot
	c.mu.Unlock()

	if base == "" {
		c.canvas.Clear()
		return
	}
	if err := c.canvas.LoadSnapshot(base); err != nil {
		c.setStatus("Could not reset the image")
	}
}

// ---- read surface ----

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) User() *core.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

// CurrentDrawingID returns the active save target. It may be a persisted
// repository id or a local-only fallback placeholder.
func (c *Controller) CurrentDrawingID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentID
}

// Drawings returns the last fetched drawing list, newest first.
func (c *Controller) Drawings() []*core.DrawingSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list
}

// StatusMessage returns the transient user-facing message, or "" when
// none is active. Messages clear themselves after a fixed interval.
func (c *Controller) StatusMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// ---- internals ----

func (c *Controller) setStatus(msg string) {
	c.mu.Lock()
	c.setStatusLocked(msg)
	c.mu.Unlock()
}

// setStatusLocked installs a status message and schedules its expiry. The
// generation counter makes sure an old expiry timer cannot clear a newer
// message.
func (c *Controller) setStatusLocked(msg string) {
	c.status = msg
	c.statusGen++
	gen := c.statusGen

	time.AfterFunc(statusTTL, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.statusGen == gen {
			c.status = ""
		}
	})
}

// fallbackDrawingID synthesizes a locally scoped placeholder id.
func fallbackDrawingID(now time.Time) string {
	return fmt.Sprintf("local-%d", now.UnixMilli())
}

// statusText maps an error to the message shown to the user.
func statusText(err error) string {
	switch {
	case errors.Is(err, core.ErrNotSignedIn):
		return "Sign in to start drawing"
	case errors.Is(err, core.ErrInvalidCredentials),
		errors.Is(err, core.ErrEmailRequired),
		errors.Is(err, core.ErrInvalidEmail),
		errors.Is(err, core.ErrPasswordRequired),
		errors.Is(err, core.ErrPasswordTooShort),
		errors.Is(err, core.ErrUserExists):
		return capitalize(unwrapText(err))
	case errors.Is(err, core.ErrDrawingNotFound):
		return "Drawing not found"
	case core.IsStorageError(err):
		return "Something went wrong talking to the server"
	default:
		return capitalize(unwrapText(err))
	}
}

func unwrapText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
