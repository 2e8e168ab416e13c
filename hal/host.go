//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
)

type hostHAL struct {
	logger  *hostLogger
	fb      *hostFramebuffer
	kbd     *hostKeyboard
	clock   *systemClock
	storage *fileStorage
}

// New returns a host HAL implementation. The framebuffer matches the VID84
// playback surface (320x240).
func New() HAL {
	return &hostHAL{
		logger:  &hostLogger{w: os.Stdout},
		fb:      newHostFramebuffer(320, 240),
		kbd:     newHostKeyboard(),
		clock:   newSystemClock(),
		storage: &fileStorage{},
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd} }
func (h *hostHAL) Clock() Clock     { return h.clock }
func (h *hostHAL) Storage() Storage { return h.storage }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type fileStorage struct{}

func (fileStorage) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
