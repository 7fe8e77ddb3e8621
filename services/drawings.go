package services

import (
	"time"

	"github.com/lborres/easel/core"
)

// DrawingService implements the drawing repository semantics over a
// storage port. CanvasData is only ever overwritten wholesale: there is
// no delta encoding, no version field, and no conflict detection - the
// last writer wins.
type DrawingService struct {
	storage core.DrawingStorage
}

func NewDrawingService(storage core.DrawingStorage) *DrawingService {
	return &DrawingService{storage: storage}
}

// Create inserts a new public drawing with an empty snapshot. A blank
// name defaults to a timestamp-derived placeholder.
func (s *DrawingService) Create(ownerID, name string) (*core.Drawing, error) {
	if name == "" {
		name = placeholderName(time.Now())
	}

	d := &core.Drawing{
		Name:      name,
		CreatedBy: ownerID,
		IsPublic:  true,
	}

	if err := s.storage.CreateDrawing(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Save inserts the snapshot as a brand-new drawing row. Explicit saves
// always insert, leaving the previously current row untouched; the
// in-place Update below exists on the surface but no user action drives
// it.
func (s *DrawingService) Save(ownerID, name, canvasData string) (*core.Drawing, error) {
	if name == "" {
		name = placeholderName(time.Now())
	}

	d := &core.Drawing{
		Name:       name,
		CreatedBy:  ownerID,
		IsPublic:   true,
		CanvasData: canvasData,
	}

	if err := s.storage.CreateDrawing(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Update overwrites the snapshot (and optionally the name) of an existing
// drawing in place. A blank name keeps the stored one.
func (s *DrawingService) Update(id, canvasData, name string) error {
	return s.storage.UpdateDrawing(id, canvasData, name)
}

// Get fetches a drawing by id. Only ID and CanvasData are guaranteed to
// be populated; loading a drawing needs nothing else.
func (s *DrawingService) Get(id string) (*core.Drawing, error) {
	return s.storage.GetDrawing(id)
}

// List returns the owner's drawings ordered by creation time descending.
// The full result set is always returned; there is no pagination.
func (s *DrawingService) List(ownerID string) ([]*core.DrawingSummary, error) {
	return s.storage.ListDrawings(ownerID)
}

// placeholderName builds the default display name for an unnamed drawing.
func placeholderName(now time.Time) string {
	return "Drawing " + now.Format("2006-01-02 15:04:05")
}
