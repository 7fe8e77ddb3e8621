package pgx

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/lborres/easel/core"
)

const sessionColumns = `id, user_id, token_hash, ip_address, user_agent, expires_at, created_at, updated_at`

func (a *Adapter) CreateSession(s *core.Session) error {
	ctx := context.Background()

	query := `INSERT INTO public.sessions (id, user_id, token_hash, ip_address, user_agent, expires_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := a.pool.Exec(ctx, query,
		s.ID, s.UserID, s.TokenHash, s.IPAddress, s.UserAgent, s.ExpiresAt, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return core.NewStorageError("sessions.create", err)
	}
	return nil
}

func (a *Adapter) GetSessionByHash(tokenHash string) (*core.Session, error) {
	return a.getSession(`WHERE token_hash = $1`, tokenHash)
}

func (a *Adapter) GetSessionByID(id string) (*core.Session, error) {
	return a.getSession(`WHERE id = $1`, id)
}

func (a *Adapter) getSession(where string, arg any) (*core.Session, error) {
	ctx := context.Background()
	q := `SELECT ` + sessionColumns + ` FROM public.sessions ` + where

	s := &core.Session{}
	err := a.pool.QueryRow(ctx, q, arg).Scan(
		&s.ID, &s.UserID, &s.TokenHash, &s.IPAddress, &s.UserAgent, &s.ExpiresAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, core.ErrSessionNotFound
		}
		return nil, core.NewStorageError("sessions.get", err)
	}
	return s, nil
}

func (a *Adapter) DeleteSessionByID(id string) error {
	ctx := context.Background()
	tag, err := a.pool.Exec(ctx, `DELETE FROM public.sessions WHERE id = $1`, id)
	if err != nil {
		return core.NewStorageError("sessions.delete", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrSessionNotFound
	}
	return nil
}

func (a *Adapter) DeleteSessionByHash(tokenHash string) error {
	ctx := context.Background()
	tag, err := a.pool.Exec(ctx, `DELETE FROM public.sessions WHERE token_hash = $1`, tokenHash)
	if err != nil {
		return core.NewStorageError("sessions.delete", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrSessionNotFound
	}
	return nil
}

func (a *Adapter) DeleteUserSessions(userID string) (int, error) {
	ctx := context.Background()
	tag, err := a.pool.Exec(ctx, `DELETE FROM public.sessions WHERE user_id = $1`, userID)
	if err != nil {
		return 0, core.NewStorageError("sessions.delete", err)
	}
	return int(tag.RowsAffected()), nil
}

func (a *Adapter) DeleteExpiredSessions() (int, error) {
	ctx := context.Background()
	tag, err := a.pool.Exec(ctx, `DELETE FROM public.sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, core.NewStorageError("sessions.cleanup", err)
	}
	return int(tag.RowsAffected()), nil
}
