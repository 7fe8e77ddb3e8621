package core

import "time"

// User represents a user account in the system
//
// This is the "identity" - who someone is
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"emailVerified"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Account represents an authentication method
//
// This is the "credential" - how someone proves who they are
type Account struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	ProviderID string    `json:"providerId"` // "credential" for email/password
	AccountID  string    `json:"accountId"`
	Password   *string   `json:"-"` // Never expose in JSON
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Session represents an active login session
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	TokenHash string    `json:"-"` // Never expose in JSON (security!)
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SessionData combines user and session info
// The model returned to clients
type SessionData struct {
	User    *User    `json:"user"`
	Session *Session `json:"session"`
}

// Drawing is the unit of persistence: a named, owned, timestamped record
// whose payload is a full raster snapshot of the canvas.
//
// CanvasData holds the entire encoded bitmap (a PNG data URL). It is only
// ever overwritten wholesale, never patched.
type Drawing struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CreatedBy  string    `json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
	IsPublic   bool      `json:"isPublic"`
	CanvasData string    `json:"canvasData"`
}

// DrawingSummary is the listing shape: everything but the snapshot payload.
type DrawingSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	IsPublic  bool      `json:"isPublic"`
}

// Stroke is one committed pixel-space segment endpoint. Strokes are
// write-only: nothing reads them back to reconstruct a drawing. They exist
// purely as an audit log of pen activity.
type Stroke struct {
	DrawingID string `json:"drawingId"`
	UserID    string `json:"userId"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Color     string `json:"color"`
	BrushSize int    `json:"brushSize"`
}
