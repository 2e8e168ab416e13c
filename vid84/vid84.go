package vid84

import "errors"

// Magic is the 5-byte stream identifier "84VID".
const Magic = "84VID"

// Version is the only supported format version.
const Version = 1

// Marker bytes. They delimit frames inside the stream body; rectangle
// coordinate bytes produced by the encoder never reach these values
// (max coordinate is 239).
const (
	MarkerFrame = 0xFF
	MarkerEnd   = 0xFE
)

// Stream layout constants.
const (
	HeaderSize = 8
	// BodyStart is the first rectangle byte: offset 8 is the mandatory
	// leading frame marker and carries no data.
	BodyStart = 9
)

// Display geometry. The canvas is square and horizontally centered on the
// surface, leaving black borders on both sides.
const (
	SurfaceWidth  = 320
	SurfaceHeight = 240
	CanvasSize    = 240
	CanvasOffsetX = (SurfaceWidth - CanvasSize) / 2
)

// MaxFrameRate is the format's soft refresh-rate limit.
const MaxFrameRate = 63

// MaxScale is the largest integer up-scale factor (40x40 source).
const MaxScale = 6

var (
	ErrBadMagic     = errors.New("vid84: bad magic")
	ErrBadFrameRate = errors.New("vid84: frame rate out of range")
	ErrBadVersion   = errors.New("vid84: unsupported version")
	ErrBadScale     = errors.New("vid84: scale factor out of range")
	ErrNoTerminator = errors.New("vid84: missing end-of-stream terminator")
	ErrTruncated    = errors.New("vid84: truncated stream")
)

// Header holds the fixed 8-byte VID84 stream header.
type Header struct {
	FrameRate uint8
	Version   uint8
	Scale     uint8
}

// ParseHeader reads and validates the header plus the trailing terminator.
//
// Checks run in order and the first failure rejects the stream; each failure
// maps to a distinct sentinel error.
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < HeaderSize+2 {
		// Too short to hold header, leading marker and terminator.
		return nil, ErrTruncated
	}
	if string(data[0:5]) != Magic {
		return nil, ErrBadMagic
	}

	h := &Header{
		FrameRate: data[5],
		Version:   data[6],
		Scale:     data[7],
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}

	if data[len(data)-1] != MarkerEnd {
		return nil, ErrNoTerminator
	}
	return h, nil
}

// Validate checks the header field invariants required by VID84 v1.
func (h *Header) Validate() error {
	if h.FrameRate == 0 || h.FrameRate > MaxFrameRate {
		return ErrBadFrameRate
	}
	if h.Version != Version {
		return ErrBadVersion
	}
	if h.Scale == 0 || h.Scale > MaxScale {
		return ErrBadScale
	}
	return nil
}

// FrameInterval returns the target wall-clock frame budget in milliseconds.
func (h *Header) FrameInterval() int {
	return 1000 / int(h.FrameRate)
}

// Resolution returns the encoded source resolution (square) for the scale.
func (h *Header) Resolution() int {
	return CanvasSize / int(h.Scale)
}
