package services

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/lborres/easel/core"
)

// FakeStorage is a test-only in-memory implementation of core.Storage.
// Error fields allow behavior injection per operation; hooks allow tests
// to stall an operation to exercise in-flight races.
type FakeStorage struct {
	mu sync.RWMutex

	users    map[string]*core.User // key: id
	accounts []*core.Account
	sessions map[string]*core.Session // key: token hash
	drawings map[string]*core.Drawing // key: id
	strokes  []*core.Stroke

	nextUserID    int
	nextDrawingID int
	clock         time.Time

	CreateUserErr    error
	CreateDrawingErr error
	ListDrawingsErr  error
	GetDrawingErr    error
	AppendStrokeErr  error
	DeleteSessionErr error

	// CreateDrawingGate, when non-nil, is received from inside
	// CreateDrawing before the insert happens. Lets tests hold a save
	// in flight.
	CreateDrawingGate chan struct{}
}

var _ core.Storage = (*FakeStorage)(nil)

func NewFakeStorage() *FakeStorage {
	return &FakeStorage{
		users:    make(map[string]*core.User),
		sessions: make(map[string]*core.Session),
		drawings: make(map[string]*core.Drawing),
		clock:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns a strictly increasing timestamp, so list ordering is
// deterministic.
func (f *FakeStorage) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

// ---- UserStorage ----

func (f *FakeStorage) CreateUser(u *core.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateUserErr != nil {
		return f.CreateUserErr
	}
	f.nextUserID++
	u.ID = fmt.Sprintf("user-%d", f.nextUserID)
	now := f.tick()
	u.CreatedAt = now
	u.UpdatedAt = now
	f.users[u.ID] = u
	return nil
}

func (f *FakeStorage) GetUserByID(id string) (*core.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	u, ok := f.users[id]
	if !ok {
		return nil, core.ErrUserNotFound
	}
	return u, nil
}

func (f *FakeStorage) GetUserByEmail(email string) (*core.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, core.ErrUserNotFound
}

// ---- AccountStorage ----

func (f *FakeStorage) CreateAccount(a *core.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = fmt.Sprintf("account-%d", len(f.accounts)+1)
	f.accounts = append(f.accounts, a)
	return nil
}

func (f *FakeStorage) GetAccountByUserAndProvider(userID, providerID string) ([]*core.Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []*core.Account
	for _, a := range f.accounts {
		if a.UserID == userID && a.ProviderID == providerID {
			out = append(out, a)
		}
	}
	return out, nil
}

// ---- SessionStorage ----

func (f *FakeStorage) CreateSession(s *core.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[s.TokenHash] = s
	return nil
}

func (f *FakeStorage) GetSessionByHash(tokenHash string) (*core.Session, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	s, ok := f.sessions[tokenHash]
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	return s, nil
}

func (f *FakeStorage) GetSessionByID(id string) (*core.Session, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, s := range f.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, core.ErrSessionNotFound
}

func (f *FakeStorage) DeleteSessionByID(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, s := range f.sessions {
		if s.ID == id {
			delete(f.sessions, k)
			return nil
		}
	}
	return core.ErrSessionNotFound
}

func (f *FakeStorage) DeleteSessionByHash(tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeleteSessionErr != nil {
		return f.DeleteSessionErr
	}
	if _, ok := f.sessions[tokenHash]; !ok {
		return core.ErrSessionNotFound
	}
	delete(f.sessions, tokenHash)
	return nil
}

func (f *FakeStorage) DeleteUserSessions(userID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for k, s := range f.sessions {
		if s.UserID == userID {
			delete(f.sessions, k)
			count++
		}
	}
	return count, nil
}

func (f *FakeStorage) DeleteExpiredSessions() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	now := time.Now()
	for k, s := range f.sessions {
		if s.ExpiresAt.Before(now) {
			delete(f.sessions, k)
			count++
		}
	}
	return count, nil
}

// ---- DrawingStorage ----

func (f *FakeStorage) CreateDrawing(d *core.Drawing) error {
	f.mu.Lock()
	gate := f.CreateDrawingGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateDrawingErr != nil {
		return f.CreateDrawingErr
	}
	f.nextDrawingID++
	d.ID = fmt.Sprintf("drawing-%d", f.nextDrawingID)
	d.CreatedAt = f.tick()
	stored := *d
	f.drawings[d.ID] = &stored
	return nil
}

func (f *FakeStorage) UpdateDrawing(id, canvasData, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.drawings[id]
	if !ok {
		return core.ErrDrawingNotFound
	}
	d.CanvasData = canvasData
	if name != "" {
		d.Name = name
	}
	return nil
}

func (f *FakeStorage) GetDrawing(id string) (*core.Drawing, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.GetDrawingErr != nil {
		return nil, f.GetDrawingErr
	}
	d, ok := f.drawings[id]
	if !ok {
		return nil, core.ErrDrawingNotFound
	}
	return &core.Drawing{ID: d.ID, CanvasData: d.CanvasData}, nil
}

func (f *FakeStorage) ListDrawings(ownerID string) ([]*core.DrawingSummary, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.ListDrawingsErr != nil {
		return nil, f.ListDrawingsErr
	}
	var out []*core.DrawingSummary
	for _, d := range f.drawings {
		if d.CreatedBy == ownerID {
			out = append(out, &core.DrawingSummary{
				ID:        d.ID,
				Name:      d.Name,
				CreatedBy: d.CreatedBy,
				CreatedAt: d.CreatedAt,
				IsPublic:  d.IsPublic,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// StoredDrawing returns a copy of a stored drawing row, for assertions.
func (f *FakeStorage) StoredDrawing(id string) (core.Drawing, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	d, ok := f.drawings[id]
	if !ok {
		return core.Drawing{}, false
	}
	return *d, true
}

// ---- StrokeStorage ----

func (f *FakeStorage) AppendStroke(s *core.Stroke) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.AppendStrokeErr != nil {
		return f.AppendStrokeErr
	}
	f.strokes = append(f.strokes, s)
	return nil
}

// Strokes returns a snapshot of the appended stroke rows.
func (f *FakeStorage) Strokes() []*core.Stroke {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]*core.Stroke, len(f.strokes))
	copy(out, f.strokes)
	return out
}
