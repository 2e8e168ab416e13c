package app

import (
	"errors"
	"sync"
	"testing"
	"time"

	"picovid/hal"
)

type testClock struct {
	mu  sync.Mutex
	now int64
}

func (c *testClock) NowMillis() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now++
	return c.now
}

func (c *testClock) SleepMillis(n int) {
	if n <= 0 {
		return
	}
	c.mu.Lock()
	c.now += int64(n)
	c.mu.Unlock()
}

type testHAL struct {
	fb    *memFramebuffer
	clock *testClock
	data  []byte
	lines []string
}

type testDisplay struct{ fb hal.Framebuffer }

func (d testDisplay) Framebuffer() hal.Framebuffer { return d.fb }

type testInput struct{}

func (testInput) Keyboard() hal.Keyboard { return nil }

func (h *testHAL) Logger() hal.Logger   { return h }
func (h *testHAL) Display() hal.Display { return testDisplay{fb: h.fb} }
func (h *testHAL) Input() hal.Input     { return testInput{} }
func (h *testHAL) Clock() hal.Clock     { return h.clock }
func (h *testHAL) Storage() hal.Storage { return h }

func (h *testHAL) WriteLineString(s string) { h.lines = append(h.lines, s) }
func (h *testHAL) WriteLineBytes(b []byte)  { h.lines = append(h.lines, string(b)) }

func (h *testHAL) ReadFile(path string) ([]byte, error) {
	if h.data == nil {
		return nil, errors.New("no file")
	}
	return h.data, nil
}

func waitResult(t *testing.T, step func() error) error {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if err := step(); err != nil {
			return err
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("session did not finish")
	return nil
}

func TestSessionPlaysEmbeddedSample(t *testing.T) {
	h := &testHAL{fb: newMemFramebuffer(320, 240), clock: &testClock{}}
	step := NewWithConfig(h, Config{Autoplay: true})

	err := waitResult(t, step)
	if !errors.Is(err, ErrDone) {
		t.Fatalf("session error = %v, want ErrDone", err)
	}

	// Playback must leave the final frame on screen. The sample keeps a
	// floor strip along the bottom of the canvas and the bouncing box never
	// reaches the rows just above it.
	white := rgb565From888(0xFF, 0xFF, 0xFF)
	if got := h.fb.pixel(0, 0); got != 0 {
		t.Errorf("border pixel = %#04x, want black", got)
	}
	if got := h.fb.pixel(160, 212); got != white {
		t.Errorf("canvas pixel = %#04x, want white", got)
	}
	if got := h.fb.pixel(160, 224); got != 0 {
		t.Errorf("floor pixel = %#04x, want black", got)
	}
}

func TestSessionRejectsBadStream(t *testing.T) {
	h := &testHAL{
		fb:    newMemFramebuffer(320, 240),
		clock: &testClock{},
		data:  []byte("84VID not a stream"),
	}
	step := NewWithConfig(h, Config{VideoPath: "/bad.vid", Autoplay: true})

	err := waitResult(t, step)
	if !errors.Is(err, ErrBadVideo) {
		t.Fatalf("session error = %v, want ErrBadVideo", err)
	}
}
