package app

import (
	"testing"

	"picovid/hal"
	"picovid/vid84"
)

type memFramebuffer struct {
	w, h int
	buf  []byte
}

func newMemFramebuffer(w, h int) *memFramebuffer {
	return &memFramebuffer{w: w, h: h, buf: make([]byte, w*h*2)}
}

func (f *memFramebuffer) Width() int              { return f.w }
func (f *memFramebuffer) Height() int             { return f.h }
func (f *memFramebuffer) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *memFramebuffer) StrideBytes() int        { return f.w * 2 }
func (f *memFramebuffer) Buffer() []byte          { return f.buf }
func (f *memFramebuffer) ClearRGB(r, g, b uint8)  {}
func (f *memFramebuffer) Present() error          { return nil }

func (f *memFramebuffer) pixel(x, y int) uint16 {
	off := y*f.w*2 + x*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

func TestCanvasCentersOnTallPanels(t *testing.T) {
	fb := newMemFramebuffer(320, 320)
	c := newCanvas(fb)

	c.FillRect(0, 0, 320, 240, vid84.ColorWhite)

	white := rgb565From888(0xFF, 0xFF, 0xFF)
	if got := fb.pixel(0, 39); got != 0 {
		t.Fatalf("pixel above picture = %#04x, want untouched", got)
	}
	if got := fb.pixel(0, 40); got != white {
		t.Fatalf("first picture row = %#04x, want white", got)
	}
	if got := fb.pixel(319, 279); got != white {
		t.Fatalf("last picture row = %#04x, want white", got)
	}
	if got := fb.pixel(0, 280); got != 0 {
		t.Fatalf("pixel below picture = %#04x, want untouched", got)
	}
}

func TestCanvasDrawsBlackInk(t *testing.T) {
	fb := newMemFramebuffer(320, 240)
	c := newCanvas(fb)

	c.FillRect(0, 0, 320, 240, vid84.ColorWhite)
	c.FillRect(60, 20, 20, 20, vid84.ColorBlack)

	white := rgb565From888(0xFF, 0xFF, 0xFF)
	if got := fb.pixel(60, 20); got != 0 {
		t.Fatalf("ink pixel = %#04x, want black", got)
	}
	if got := fb.pixel(59, 20); got != white {
		t.Fatalf("pixel left of ink = %#04x, want white", got)
	}
	if got := fb.pixel(60, 40); got != white {
		t.Fatalf("pixel below ink = %#04x, want white", got)
	}
}
