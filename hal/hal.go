package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyEnter
	KeyEscape
)

// KeyEvent is a keyboard event. The player only ever waits on "any key"
// prompts, so the code set stays small; printable keys arrive as runes.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
}

// Clock is a monotonic millisecond clock. The playback scheduler polls
// NowMillis against its frame budget; SleepMillis blocks the calling
// goroutine.
type Clock interface {
	NowMillis() int64
	SleepMillis(n int)
}

// Storage loads external resources (video files) by name.
type Storage interface {
	ReadFile(path string) ([]byte, error)
}

// HAL provides the only contact point between the player and the platform.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Clock() Clock
	Storage() Storage
}
