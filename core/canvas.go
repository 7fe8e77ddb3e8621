package core

import "io"

// Point is a pointer position in canvas space. Coordinates are float64
// because pointer events arrive sub-pixel; stroke log rows round them.
type Point struct {
	X, Y float64
}

// Segment is one committed stroke segment as reported by the canvas:
// the integer-rounded end point plus the styling in effect at that instant.
type Segment struct {
	X         int
	Y         int
	Color     string
	BrushSize int
}

// Canvas is the rendering port: the mutable raster surface the user paints
// into. Exactly one writer (the local user) mutates it, synchronously -
// pixels are visible before any network call is issued.
//
// Implementations own their pixel memory. The buffer size is fixed at
// construction and never changes.
type Canvas interface {
	// BeginStroke starts a new path at pt.
	BeginStroke(pt Point)

	// ExtendStroke draws a segment from the path's last point to pt with
	// round caps and joins, and returns the committed segment for logging.
	// Returns ok=false when no stroke is in progress.
	ExtendStroke(pt Point, color string, width int) (seg Segment, ok bool)

	// EndStroke terminates the current path. Idempotent.
	EndStroke()

	// Clear blanks the entire buffer to transparent.
	Clear()

	// LoadSnapshot clears the buffer, then decodes encoded (a PNG data URL)
	// into it. The clear happens before decoding, so a failed decode leaves
	// a blank canvas rather than the prior content.
	LoadSnapshot(encoded string) error

	// ExportSnapshot serializes the buffer to the persistence encoding.
	ExportSnapshot() (string, error)

	// EncodePNG writes the raw PNG bytes of the buffer, for local export.
	EncodePNG(w io.Writer) error
}

// CanvasTransforms are the destructive whole-buffer image adjustments.
// None of them can be undone.
type CanvasTransforms interface {
	CropSquare()
	RotateQuarterTurn()
	AdjustBrightnessContrast(brightness, contrast int)
}
