package pgx

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lborres/easel/core"
)

func (a *Adapter) CreateDrawing(d *core.Drawing) error {
	ctx := context.Background()

	query := `INSERT INTO public.drawings (name, created_by, is_public, canvas_data)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at`

	var id string
	var createdAt time.Time
	err := a.pool.QueryRow(ctx, query, d.Name, d.CreatedBy, d.IsPublic, d.CanvasData).Scan(&id, &createdAt)
	if err != nil {
		return core.NewStorageError("drawings.create", err)
	}

	d.ID = id
	d.CreatedAt = createdAt
	return nil
}

func (a *Adapter) UpdateDrawing(id, canvasData, name string) error {
	ctx := context.Background()

	// Empty name keeps the stored one
	query := `UPDATE public.drawings
	          SET canvas_data = $1, name = COALESCE(NULLIF($2, ''), name)
	          WHERE id = $3`

	tag, err := a.pool.Exec(ctx, query, canvasData, name, id)
	if err != nil {
		return core.NewStorageError("drawings.update", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrDrawingNotFound
	}
	return nil
}

// GetDrawing fetches the snapshot payload only; loading a drawing needs
// nothing else.
func (a *Adapter) GetDrawing(id string) (*core.Drawing, error) {
	ctx := context.Background()
	q := `SELECT id, canvas_data FROM public.drawings WHERE id = $1`

	d := &core.Drawing{}
	err := a.pool.QueryRow(ctx, q, id).Scan(&d.ID, &d.CanvasData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, core.ErrDrawingNotFound
		}
		return nil, core.NewStorageError("drawings.get", err)
	}
	return d, nil
}

// ListDrawings returns the owner's drawings newest first - created_at
// descending is the only ordering defined anywhere in the system. The
// snapshot payload is excluded; no pagination.
func (a *Adapter) ListDrawings(ownerID string) ([]*core.DrawingSummary, error) {
	ctx := context.Background()
	q := `SELECT id, name, created_by, created_at, is_public
	      FROM public.drawings
	      WHERE created_by = $1
	      ORDER BY created_at DESC`

	rows, err := a.pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, core.NewStorageError("drawings.list", err)
	}
	defer rows.Close()

	var drawings []*core.DrawingSummary
	for rows.Next() {
		d := &core.DrawingSummary{}
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedBy, &d.CreatedAt, &d.IsPublic); err != nil {
			return nil, core.NewStorageError("drawings.list", err)
		}
		drawings = append(drawings, d)
	}

	if err = rows.Err(); err != nil {
		return nil, core.NewStorageError("drawings.list", err)
	}

	return drawings, nil
}
