package vid84

// RawRect is one 4-byte rectangle record as stored in the stream, two
// corner coordinates in encoded (pre-scale) space.
type RawRect struct {
	X, Y, X2, Y2 uint8
}

// Rect is a rectangle in display space: coordinates scaled by the header's
// scale factor, X values shifted right by the canvas border width.
type Rect struct {
	X, Y, X2, Y2 int
}

// MapRect converts a raw stream rectangle into display space.
func (h *Header) MapRect(r RawRect) Rect {
	s := int(h.Scale)
	return Rect{
		X:  int(r.X)*s + CanvasOffsetX,
		Y:  int(r.Y) * s,
		X2: int(r.X2)*s + CanvasOffsetX,
		Y2: int(r.Y2) * s,
	}
}

// Bounds returns the fill origin and size. Degenerate edges are clamped to
// one scaled pixel so precise rectangles stay visible.
func (r Rect) Bounds(scale int) (x, y, w, h int) {
	w = abs(r.X2 - r.X)
	h = abs(r.Y2 - r.Y)
	if w == 0 {
		w = scale
	}
	if h == 0 {
		h = scale
	}
	return min(r.X, r.X2), min(r.Y, r.Y2), w, h
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
