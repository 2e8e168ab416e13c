package vid84

import (
	"fmt"
	"io"
)

// Encoder writes a VID84 stream: the 8-byte header, one marker-prefixed
// rectangle run per frame, then the end-of-stream terminator.
type Encoder struct {
	w      io.Writer
	hdr    Header
	frames int
	closed bool
}

// NewEncoder validates the header and writes it.
func NewEncoder(w io.Writer, h Header) (*Encoder, error) {
	if err := h.Validate(); err != nil {
		return nil, fmt.Errorf("vid84 encoder: %w", err)
	}

	var b [HeaderSize]byte
	copy(b[0:5], Magic)
	b[5] = h.FrameRate
	b[6] = h.Version
	b[7] = h.Scale
	if _, err := w.Write(b[:]); err != nil {
		return nil, fmt.Errorf("vid84 encoder: write header: %w", err)
	}
	return &Encoder{w: w, hdr: h}, nil
}

// Frames reports how many frames have been written.
func (e *Encoder) Frames() int { return e.frames }

// WriteFrame writes the frame marker followed by the rectangle records.
// Coordinates must stay below the encoded resolution; that keeps every data
// byte clear of the marker values.
func (e *Encoder) WriteFrame(rects []RawRect) error {
	if e.closed {
		return fmt.Errorf("vid84 encoder: stream closed")
	}

	res := e.hdr.Resolution()
	buf := make([]byte, 0, 1+len(rects)*4)
	buf = append(buf, MarkerFrame)
	for _, r := range rects {
		if int(r.X) >= res || int(r.Y) >= res || int(r.X2) >= res || int(r.Y2) >= res {
			return fmt.Errorf("vid84 encoder: rect out of range for scale %d: %v", e.hdr.Scale, r)
		}
		buf = append(buf, r.X, r.Y, r.X2, r.Y2)
	}

	if _, err := e.w.Write(buf); err != nil {
		return fmt.Errorf("vid84 encoder: write frame: %w", err)
	}
	e.frames++
	return nil
}

// Close writes the end-of-stream terminator. At least one frame must have
// been written for the stream to be playable.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	if _, err := e.w.Write([]byte{MarkerEnd}); err != nil {
		return fmt.Errorf("vid84 encoder: write terminator: %w", err)
	}
	return nil
}
