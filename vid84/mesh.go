package vid84

// Bitmap is one square 1-bit frame at the encoded resolution. True pixels
// are ink (drawn black on the white canvas).
type Bitmap struct {
	Size int
	pix  []bool
}

// NewBitmap allocates an all-white bitmap.
func NewBitmap(size int) *Bitmap {
	return &Bitmap{Size: size, pix: make([]bool, size*size)}
}

// Set marks a pixel. Out-of-range coordinates are ignored.
func (b *Bitmap) Set(x, y int, on bool) {
	if x < 0 || x >= b.Size || y < 0 || y >= b.Size {
		return
	}
	b.pix[y*b.Size+x] = on
}

// At reports whether a pixel is ink. Out-of-range coordinates read white.
func (b *Bitmap) At(x, y int) bool {
	if x < 0 || x >= b.Size || y < 0 || y >= b.Size {
		return false
	}
	return b.pix[y*b.Size+x]
}

// MeshFrame covers all ink pixels with rectangles via row-major greedy
// expansion: each unvisited ink pixel seeds a run that grows right along the
// row, then down while the full span below stays ink and unvisited. Records
// come out in scan order, which keeps playback draw order stable.
func MeshFrame(b *Bitmap) []RawRect {
	visited := make([]bool, b.Size*b.Size)
	var rects []RawRect

	for y := 0; y < b.Size; y++ {
		for x := 0; x < b.Size; x++ {
			if !b.pix[y*b.Size+x] || visited[y*b.Size+x] {
				continue
			}

			w := 1
			for x+w < b.Size && b.pix[y*b.Size+x+w] && !visited[y*b.Size+x+w] {
				w++
			}

			h := 1
			for y+h < b.Size && spanClear(b, visited, x, y+h, w) {
				h++
			}

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					visited[yy*b.Size+xx] = true
				}
			}

			rects = append(rects, RawRect{
				X:  uint8(x),
				Y:  uint8(y),
				X2: uint8(x + w - 1),
				Y2: uint8(y + h - 1),
			})
		}
	}
	return rects
}

func spanClear(b *Bitmap, visited []bool, x, y, w int) bool {
	for i := 0; i < w; i++ {
		if !b.pix[y*b.Size+x+i] || visited[y*b.Size+x+i] {
			return false
		}
	}
	return true
}
