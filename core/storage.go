package core

// Ports define interfaces for external dependencies

// SessionStorage defines session-related database operations
type SessionStorage interface {
	CreateSession(session *Session) error

	GetSessionByHash(tokenHash string) (*Session, error)
	GetSessionByID(id string) (*Session, error)

	DeleteSessionByID(id string) error
	DeleteSessionByHash(tokenHash string) error
	DeleteUserSessions(userID string) (int, error)

	// Cleanup
	DeleteExpiredSessions() (int, error)
}

// UserStorage defines user-related database operations
type UserStorage interface {
	CreateUser(u *User) error

	GetUserByID(id string) (*User, error)
	GetUserByEmail(email string) (*User, error)
}

// AccountStorage defines account-related database operations
type AccountStorage interface {
	CreateAccount(a *Account) error

	GetAccountByUserAndProvider(userID, providerID string) ([]*Account, error)
}

type AuthStorage interface {
	UserStorage
	AccountStorage
	SessionStorage
}

// DrawingStorage defines the row operations behind the drawing repository.
//
// CreateDrawing fills the server-assigned ID and CreatedAt on the passed
// Drawing. GetDrawing need only populate ID and CanvasData. ListDrawings
// returns summaries ordered by CreatedAt descending - the only ordering
// defined anywhere in the system.
type DrawingStorage interface {
	CreateDrawing(d *Drawing) error
	UpdateDrawing(id, canvasData, name string) error
	GetDrawing(id string) (*Drawing, error)
	ListDrawings(ownerID string) ([]*DrawingSummary, error)
}

// StrokeStorage persists individual stroke samples. Append-only; nothing
// in the system ever reads strokes back.
type StrokeStorage interface {
	AppendStroke(s *Stroke) error
}

// Storage is the full persistence surface the library needs.
type Storage interface {
	AuthStorage
	DrawingStorage
	StrokeStorage
}
