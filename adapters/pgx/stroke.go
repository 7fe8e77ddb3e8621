package pgx

import (
	"context"

	"github.com/lborres/easel/core"
)

// AppendStroke inserts one stroke sample. The row timestamp is assigned
// by the database; rows are never updated or deleted by this code.
func (a *Adapter) AppendStroke(s *core.Stroke) error {
	ctx := context.Background()

	query := `INSERT INTO public.drawing_strokes (drawing_id, user_id, x, y, color, brush_size)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := a.pool.Exec(ctx, query, s.DrawingID, s.UserID, s.X, s.Y, s.Color, s.BrushSize)
	if err != nil {
		return core.NewStorageError("strokes.append", err)
	}
	return nil
}
