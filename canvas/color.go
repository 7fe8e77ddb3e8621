package canvas

// RGBA is one pixel value, 8 bits per channel.
type RGBA struct {
	R, G, B, A uint8
}

// Hex parses a CSS-style hex color string.
// Supports "RGB", "RRGGBB" and "RRGGBBAA", with or without a leading '#'.
// Unparseable input yields opaque black, matching canvas stroke defaults.
func Hex(hex string) RGBA {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	c := RGBA{A: 255}

	switch len(hex) {
	case 3: // RGB
		c.R = hexNibble(hex[0]) * 17
		c.G = hexNibble(hex[1]) * 17
		c.B = hexNibble(hex[2]) * 17
	case 6: // RRGGBB
		c.R = hexByte(hex[0], hex[1])
		c.G = hexByte(hex[2], hex[3])
		c.B = hexByte(hex[4], hex[5])
	case 8: // RRGGBBAA
		c.R = hexByte(hex[0], hex[1])
		c.G = hexByte(hex[2], hex[3])
		c.B = hexByte(hex[4], hex[5])
		c.A = hexByte(hex[6], hex[7])
	}

	return c
}

func hexNibble(b byte) uint8 {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10
	}
	return 0
}

func hexByte(hi, lo byte) uint8 {
	return hexNibble(hi)<<4 | hexNibble(lo)
}
