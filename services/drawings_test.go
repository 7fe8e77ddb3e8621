package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lborres/easel/core"
)

func TestDrawingService_CreateDefaultsName(t *testing.T) {
	storage := NewFakeStorage()
	svc := NewDrawingService(storage)

	d, err := svc.Create("user-1", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if !strings.HasPrefix(d.Name, "Drawing ") {
		t.Errorf("Name = %q, want a timestamp-derived placeholder", d.Name)
	}
	if !d.IsPublic {
		t.Error("IsPublic = false, want true (drawings are always created public)")
	}
	if d.CanvasData != "" {
		t.Errorf("CanvasData = %q, want empty on create", d.CanvasData)
	}
	if d.ID == "" {
		t.Error("ID not assigned by storage")
	}
}

func TestDrawingService_CreateKeepsExplicitName(t *testing.T) {
	svc := NewDrawingService(NewFakeStorage())

	d, err := svc.Create("user-1", "sunset sketch")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if d.Name != "sunset sketch" {
		t.Errorf("Name = %q, want %q", d.Name, "sunset sketch")
	}
}

func TestDrawingService_SaveCarriesSnapshot(t *testing.T) {
	storage := NewFakeStorage()
	svc := NewDrawingService(storage)

	d, err := svc.Save("user-1", "saved", "data:image/png;base64,AAAA")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	stored, ok := storage.StoredDrawing(d.ID)
	if !ok {
		t.Fatalf("drawing %q not stored", d.ID)
	}
	if stored.CanvasData != "data:image/png;base64,AAAA" {
		t.Errorf("stored CanvasData = %q, want the snapshot", stored.CanvasData)
	}
}

func TestDrawingService_UpdateMissing(t *testing.T) {
	svc := NewDrawingService(NewFakeStorage())

	err := svc.Update("missing", "data", "")
	if !errors.Is(err, core.ErrDrawingNotFound) {
		t.Errorf("Update() error = %v, want ErrDrawingNotFound", err)
	}
}

func TestDrawingService_UpdateKeepsNameWhenBlank(t *testing.T) {
	storage := NewFakeStorage()
	svc := NewDrawingService(storage)

	d, err := svc.Create("user-1", "original name")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Update(d.ID, "data:image/png;base64,BBBB", ""); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	stored, _ := storage.StoredDrawing(d.ID)
	if stored.Name != "original name" {
		t.Errorf("Name = %q, want %q (blank update keeps the stored name)", stored.Name, "original name")
	}
	if stored.CanvasData != "data:image/png;base64,BBBB" {
		t.Errorf("CanvasData = %q, want the overwritten snapshot", stored.CanvasData)
	}
}

// Requirement: List returns drawings strictly newest first.
func TestDrawingService_ListNewestFirst(t *testing.T) {
	storage := NewFakeStorage()
	svc := NewDrawingService(storage)

	for i := 0; i < 3; i++ {
		if _, err := svc.Create("user-1", ""); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	// Another owner's drawing must not appear
	if _, err := svc.Create("user-2", ""); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	list, err := svc.List("user-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len(list) = %d, want 3", len(list))
	}
	for i := 1; i < len(list); i++ {
		if !list[i-1].CreatedAt.After(list[i].CreatedAt) {
			t.Errorf("list[%d] not strictly newer than list[%d]", i-1, i)
		}
	}
}

func TestPlaceholderName(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)
	if got := placeholderName(now); got != "Drawing 2025-06-15 09:30:00" {
		t.Errorf("placeholderName() = %q, want %q", got, "Drawing 2025-06-15 09:30:00")
	}
}
