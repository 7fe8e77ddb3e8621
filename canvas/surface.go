// Package canvas provides the raster drawing surface: a fixed-size RGBA
// pixel buffer with round-cap segment stroking and PNG snapshot
// import/export in the encoding the repository persists.
package canvas

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // register decoder for uploaded images
	_ "image/jpeg" // register decoder for uploaded images
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/lborres/easel/core"
)

const snapshotPrefix = "data:image/png;base64,"

var ErrBadSnapshot = errors.New("snapshot is not a valid encoded image")

// Surface is a rectangular pixel buffer implementing core.Canvas. The
// buffer size is fixed at construction. All mutation is synchronous:
// a stroke segment is fully rendered before ExtendStroke returns.
//
// Surface is not safe for concurrent use; it has exactly one writer.
type Surface struct {
	width  int
	height int
	pix    []uint8 // RGBA format, 4 bytes per pixel

	inStroke bool
	last     core.Point
}

var _ core.Canvas = (*Surface)(nil)
var _ core.CanvasTransforms = (*Surface)(nil)

// NewSurface creates a transparent surface with the given dimensions.
func NewSurface(width, height int) *Surface {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return &Surface{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
	}
}

// Width returns the width of the surface.
func (s *Surface) Width() int { return s.width }

// Height returns the height of the surface.
func (s *Surface) Height() int { return s.height }

// rgba wraps the pixel buffer as an image.RGBA sharing the same memory.
func (s *Surface) rgba() *image.RGBA {
	return &image.RGBA{
		Pix:    s.pix,
		Stride: s.width * 4,
		Rect:   image.Rect(0, 0, s.width, s.height),
	}
}

// SetPixel sets the color of a single pixel. Out-of-bounds writes are
// silently dropped.
func (s *Surface) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	i := (y*s.width + x) * 4
	s.pix[i+0] = c.R
	s.pix[i+1] = c.G
	s.pix[i+2] = c.B
	s.pix[i+3] = c.A
}

// GetPixel returns the color of a single pixel.
func (s *Surface) GetPixel(x, y int) RGBA {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return RGBA{}
	}
	i := (y*s.width + x) * 4
	return RGBA{R: s.pix[i+0], G: s.pix[i+1], B: s.pix[i+2], A: s.pix[i+3]}
}

// BeginStroke starts a new path at pt.
func (s *Surface) BeginStroke(pt core.Point) {
	s.inStroke = true
	s.last = pt
}

// ExtendStroke draws a straight segment from the path's last point to pt
// with round caps and joins, then reports the committed segment. Returns
// ok=false when no stroke is in progress.
func (s *Surface) ExtendStroke(pt core.Point, color string, width int) (core.Segment, bool) {
	if !s.inStroke {
		return core.Segment{}, false
	}
	if width < 1 {
		width = 1
	}

	s.drawSegment(s.last, pt, Hex(color), float64(width)/2)
	s.last = pt

	return core.Segment{
		X:         int(math.Round(pt.X)),
		Y:         int(math.Round(pt.Y)),
		Color:     color,
		BrushSize: width,
	}, true
}

// EndStroke terminates the current path. Idempotent.
func (s *Surface) EndStroke() {
	s.inStroke = false
}

// Clear blanks the entire buffer to transparent.
func (s *Surface) Clear() {
	for i := range s.pix {
		s.pix[i] = 0
	}
}

// drawSegment stamps filled discs along the segment from a to b. Stamping
// at sub-pixel intervals yields round caps and joins without a path
// tessellator.
func (s *Surface) drawSegment(a, b core.Point, c RGBA, radius float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dist := math.Hypot(dx, dy)

	steps := int(math.Ceil(dist)) + 1
	for i := 0; i < steps; i++ {
		t := 0.0
		if steps > 1 {
			t = float64(i) / float64(steps-1)
		}
		s.stampDisc(a.X+dx*t, a.Y+dy*t, radius, c)
	}
}

// stampDisc fills a disc of the given radius centered at (cx, cy).
func (s *Surface) stampDisc(cx, cy, radius float64, c RGBA) {
	if radius < 0.5 {
		radius = 0.5
	}
	minX := int(math.Floor(cx - radius))
	maxX := int(math.Ceil(cx + radius))
	minY := int(math.Floor(cy - radius))
	maxY := int(math.Ceil(cy + radius))

	r2 := radius * radius
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			ddx := float64(x) - cx
			ddy := float64(y) - cy
			if ddx*ddx+ddy*ddy <= r2 {
				s.SetPixel(x, y, c)
			}
		}
	}
}

// LoadSnapshot clears the buffer and then decodes encoded into it. The
// clear precedes the decode on purpose: a failed decode leaves a blank
// canvas rather than stale content.
func (s *Surface) LoadSnapshot(encoded string) error {
	s.Clear()

	img, err := decodeSnapshot(encoded)
	if err != nil {
		return err
	}

	dst := s.rgba()
	draw.Draw(dst, dst.Rect, img, img.Bounds().Min, draw.Src)
	return nil
}

// ExportSnapshot serializes the buffer to a PNG data URL, the encoding
// the repository persists.
func (s *Surface) ExportSnapshot() (string, error) {
	var b strings.Builder
	b.WriteString(snapshotPrefix)

	enc := base64.NewEncoder(base64.StdEncoding, &b)
	if err := png.Encode(enc, s.rgba()); err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	return b.String(), nil
}

// EncodePNG writes the raw PNG bytes of the buffer.
func (s *Surface) EncodePNG(w io.Writer) error {
	return png.Encode(w, s.rgba())
}

// decodeSnapshot decodes a base64 data URL (or bare base64 payload) into
// an image. Any registered image format is accepted.
func decodeSnapshot(encoded string) (image.Image, error) {
	payload := encoded
	if i := strings.IndexByte(encoded, ','); i >= 0 && strings.HasPrefix(encoded, "data:") {
		payload = encoded[i+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	return img, nil
}
