package canvas

// Destructive whole-buffer transforms. None of these can be undone; the
// controller keeps the last loaded snapshot around for its reset action.

// CropSquare keeps the centered square region of the buffer and scales it
// back up to the full buffer size with nearest-neighbor sampling, so the
// surface dimensions never change.
func (s *Surface) CropSquare() {
	side := s.width
	if s.height < side {
		side = s.height
	}
	if side == s.width && side == s.height {
		return // already square
	}

	offX := (s.width - side) / 2
	offY := (s.height - side) / 2

	src := make([]uint8, len(s.pix))
	copy(src, s.pix)

	for y := 0; y < s.height; y++ {
		sy := offY + y*side/s.height
		for x := 0; x < s.width; x++ {
			sx := offX + x*side/s.width
			si := (sy*s.width + sx) * 4
			di := (y*s.width + x) * 4
			copy(s.pix[di:di+4], src[si:si+4])
		}
	}
}

// RotateQuarterTurn rotates the buffer 90 degrees clockwise. Because the
// buffer size is fixed, a non-square buffer is scaled to fit with
// nearest-neighbor sampling.
func (s *Surface) RotateQuarterTurn() {
	src := make([]uint8, len(s.pix))
	copy(src, s.pix)

	w, h := s.width, s.height
	for y := 0; y < h; y++ {
		// position in the rotated (h wide, w tall) intermediate image
		rv := y * w / h
		for x := 0; x < w; x++ {
			ru := x * h / w
			// clockwise: rotated(u, v) = source(v, h-1-u)
			sx := rv
			sy := h - 1 - ru
			si := (sy*w + sx) * 4
			di := (y*w + x) * 4
			copy(s.pix[di:di+4], src[si:si+4])
		}
	}
}

// AdjustBrightnessContrast applies brightness then contrast to every
// pixel, in that fixed order. Both are percentages; (100, 100) is the
// identity. Brightness scales each channel by b/100 and clamps at 255;
// contrast then rescales around mid-gray by c/100. Alpha is untouched.
func (s *Surface) AdjustBrightnessContrast(brightness, contrast int) {
	bf := float64(brightness) / 100
	cf := float64(contrast) / 100

	for i := 0; i < len(s.pix); i += 4 {
		for ch := 0; ch < 3; ch++ {
			v := float64(s.pix[i+ch]) * bf
			if v > 255 {
				v = 255
			}
			v = (v-128)*cf + 128
			s.pix[i+ch] = clampByte(v)
		}
	}
}

// clampByte bounds v to the storable byte range. The source of this
// design only clamped the upper bound before the contrast rescale; the
// final store has to clamp both ends to fit a byte.
func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
