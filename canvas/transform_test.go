package canvas

import (
	"bytes"
	"testing"
)

func fillGradient(s *Surface) {
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			s.SetPixel(x, y, RGBA{
				R: uint8(x * 7 % 256),
				G: uint8(y * 13 % 256),
				B: uint8((x + y) % 256),
				A: 255,
			})
		}
	}
}

// Requirement: AdjustBrightnessContrast(100, 100) is the identity
// transform given the fixed brightness-then-contrast order.
func TestAdjustBrightnessContrast_Identity(t *testing.T) {
	s := NewSurface(24, 16)
	fillGradient(s)

	before := make([]uint8, len(s.pix))
	copy(before, s.pix)

	s.AdjustBrightnessContrast(100, 100)

	if !bytes.Equal(before, s.pix) {
		t.Error("AdjustBrightnessContrast(100, 100) changed pixel data, want identity")
	}
}

func TestAdjustBrightnessContrast(t *testing.T) {
	tests := []struct {
		name       string
		in         uint8
		brightness int
		contrast   int
		want       uint8
	}{
		{name: "brightness doubles channel", in: 60, brightness: 200, contrast: 100, want: 120},
		{name: "brightness clamps at 255", in: 200, brightness: 200, contrast: 100, want: 255},
		{name: "zero contrast flattens to mid-gray", in: 200, brightness: 100, contrast: 0, want: 128},
		{name: "contrast pushes dark below zero and clamps", in: 20, brightness: 100, contrast: 300, want: 0},
		{name: "contrast pushes bright above range and clamps", in: 220, brightness: 100, contrast: 300, want: 255},
		{name: "mid-gray is a contrast fixed point", in: 128, brightness: 100, contrast: 250, want: 128},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := NewSurface(1, 1)
			s.SetPixel(0, 0, RGBA{R: test.in, G: test.in, B: test.in, A: 255})

			s.AdjustBrightnessContrast(test.brightness, test.contrast)

			got := s.GetPixel(0, 0)
			if got.R != test.want {
				t.Errorf("channel = %d, want %d", got.R, test.want)
			}
			if got.A != 255 {
				t.Errorf("alpha = %d, want 255 (alpha must be untouched)", got.A)
			}
		})
	}
}

func TestRotateQuarterTurn_SquareBuffer(t *testing.T) {
	s := NewSurface(4, 4)
	// Mark the top-left pixel; a clockwise quarter turn moves it to the
	// top-right corner.
	mark := RGBA{R: 255, A: 255}
	s.SetPixel(0, 0, mark)

	s.RotateQuarterTurn()

	if got := s.GetPixel(3, 0); got != mark {
		t.Errorf("GetPixel(3, 0) = %+v, want %+v after clockwise rotation", got, mark)
	}
	if got := s.GetPixel(0, 0); got == mark {
		t.Error("GetPixel(0, 0) still carries the mark after rotation")
	}
}

func TestRotateQuarterTurn_FourTurnsIsIdentity(t *testing.T) {
	s := NewSurface(8, 8)
	fillGradient(s)

	before := make([]uint8, len(s.pix))
	copy(before, s.pix)

	for i := 0; i < 4; i++ {
		s.RotateQuarterTurn()
	}

	if !bytes.Equal(before, s.pix) {
		t.Error("four quarter turns changed a square buffer, want identity")
	}
}

func TestCropSquare(t *testing.T) {
	t.Run("no-op on square buffer", func(t *testing.T) {
		s := NewSurface(8, 8)
		fillGradient(s)
		before := make([]uint8, len(s.pix))
		copy(before, s.pix)

		s.CropSquare()

		if !bytes.Equal(before, s.pix) {
			t.Error("CropSquare() changed a square buffer")
		}
	})

	t.Run("keeps the centered square of a wide buffer", func(t *testing.T) {
		s := NewSurface(12, 4)
		// Mark a pixel inside the centered 4x4 square (x in [4, 8)) and
		// one outside it.
		inside := RGBA{G: 255, A: 255}
		outside := RGBA{R: 255, A: 255}
		for y := 0; y < 4; y++ {
			for x := 4; x < 8; x++ {
				s.SetPixel(x, y, inside)
			}
		}
		s.SetPixel(0, 0, outside)

		s.CropSquare()

		// After cropping and rescaling, every pixel comes from the
		// centered square.
		for y := 0; y < s.Height(); y++ {
			for x := 0; x < s.Width(); x++ {
				if got := s.GetPixel(x, y); got != inside {
					t.Fatalf("GetPixel(%d, %d) = %+v, want %+v", x, y, got, inside)
				}
			}
		}
	})
}
