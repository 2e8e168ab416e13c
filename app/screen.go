package app

import (
	"image/color"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"picovid/hal"
	"picovid/vid84"
)

var screenFont = &proggy.TinySZ8pt7b

// fbCanvas adapts a HAL framebuffer to the player's drawing surface. The
// player assumes a 320x240 surface; taller panels (the PicoCalc LCD is
// 320x320) get the picture vertically centered with untouched margins.
type fbCanvas struct {
	fb   hal.Framebuffer
	yOff int
}

func newCanvas(fb hal.Framebuffer) *fbCanvas {
	yOff := (fb.Height() - vid84.SurfaceHeight) / 2
	if yOff < 0 {
		yOff = 0
	}
	return &fbCanvas{fb: fb, yOff: yOff}
}

func (c *fbCanvas) FillRect(x, y, w, h int, col vid84.Color) {
	pixel := rgb565From888(0xFF, 0xFF, 0xFF)
	if col == vid84.ColorBlack {
		pixel = rgb565From888(0x00, 0x00, 0x00)
	}
	fillRectRGB565(c.fb.Buffer(), c.fb.StrideBytes(), x, y+c.yOff, w, h, pixel)
}

func (c *fbCanvas) Present() error { return c.fb.Present() }

// screen draws the non-playback states: prompts and the failure notice.
type screen struct {
	fb hal.Framebuffer
}

func (s screen) show(lines ...string) {
	clearRGB565(s.fb.Buffer(), rgb565From888(0x09, 0x0B, 0x10))

	lineH := fontHeight() + 6
	y := (s.fb.Height() - lineH*len(lines)) / 2
	for _, line := range lines {
		lw := textWidth(line)
		x := (s.fb.Width() - lw) / 2
		if x < 0 {
			x = 0
		}
		s.drawText(x, y, line, color.RGBA{R: 0xE6, G: 0xE6, B: 0xE6, A: 0xFF})
		y += lineH
	}
	_ = s.fb.Present()
}

func (s screen) drawText(x, y int, text string, c color.RGBA) {
	d := &fbDisplayer{fb: s.fb}
	tinyfont.WriteLine(d, screenFont, int16(x), int16(y+fontHeight()), text, c)
}

func textWidth(s string) int {
	_, w := tinyfont.LineWidth(screenFont, s)
	return int(w)
}

func fontHeight() int {
	return int(screenFont.YAdvance)
}

// fbDisplayer lets tinyfont draw straight into an RGB565 framebuffer.
type fbDisplayer struct {
	fb hal.Framebuffer
}

func (d *fbDisplayer) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplayer) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return
	}
	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	pixel := rgb565From888(c.R, c.G, c.B)
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *fbDisplayer) Display() error { return nil }

func clearRGB565(buf []byte, pixel uint16) {
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i+1 < len(buf); i += 2 {
		buf[i] = lo
		buf[i+1] = hi
	}
}

func fillRectRGB565(buf []byte, stride, x0, y0, w, h int, pixel uint16) {
	if w <= 0 || h <= 0 {
		return
	}
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for yy := 0; yy < h; yy++ {
		row := (y0+yy)*stride + x0*2
		for xx := 0; xx < w; xx++ {
			off := row + xx*2
			if off < 0 || off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
}

func rgb565From888(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}
