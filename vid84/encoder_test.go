package vid84

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestMeshFrameSolidBlock(t *testing.T) {
	b := NewBitmap(8)
	for y := 2; y <= 4; y++ {
		for x := 1; x <= 3; x++ {
			b.Set(x, y, true)
		}
	}

	rects := MeshFrame(b)
	if len(rects) != 1 {
		t.Fatalf("meshed %d rects, want 1: %v", len(rects), rects)
	}
	if want := (RawRect{X: 1, Y: 2, X2: 3, Y2: 4}); rects[0] != want {
		t.Errorf("rect = %+v, want %+v", rects[0], want)
	}
}

func TestMeshFrameCoversExactly(t *testing.T) {
	b := NewBitmap(16)
	// A cross, a lone pixel, and a ragged corner.
	for i := 0; i < 16; i++ {
		b.Set(i, 7, true)
		b.Set(7, i, true)
	}
	b.Set(12, 2, true)
	b.Set(0, 15, true)
	b.Set(1, 15, true)
	b.Set(0, 14, true)

	got := NewBitmap(16)
	for _, r := range MeshFrame(b) {
		if r.X > r.X2 || r.Y > r.Y2 {
			t.Fatalf("inverted rect %+v", r)
		}
		for y := int(r.Y); y <= int(r.Y2); y++ {
			for x := int(r.X); x <= int(r.X2); x++ {
				if got.At(x, y) {
					t.Fatalf("pixel (%d,%d) covered twice", x, y)
				}
				got.Set(x, y, true)
			}
		}
	}

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if b.At(x, y) != got.At(x, y) {
				t.Fatalf("pixel (%d,%d): ink=%v covered=%v", x, y, b.At(x, y), got.At(x, y))
			}
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	enc, err := NewEncoder(&buf, Header{FrameRate: 24, Version: 1, Scale: 6})
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	frames := [][]RawRect{
		{{0, 0, 10, 10}, {20, 20, 39, 39}},
		{},
		{{5, 5, 5, 5}},
	}
	for i, f := range frames {
		if err := enc.WriteFrame(f); err != nil {
			t.Fatalf("WriteFrame %d: %v", i, err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	fr, h, err := NewFrameReader(buf.Bytes())
	if err != nil {
		t.Fatalf("NewFrameReader: %v", err)
	}
	if h.FrameRate != 24 || h.Scale != 6 {
		t.Errorf("header = %+v", h)
	}

	for i, want := range frames {
		got, err := fr.Next()
		if err != nil {
			t.Fatalf("Next %d: %v", i, err)
		}
		if len(got) != len(want) {
			t.Fatalf("frame %d: %d rects, want %d", i, len(got), len(want))
		}
		for j := range want {
			if got[j] != want[j] {
				t.Errorf("frame %d rect %d = %+v, want %+v", i, j, got[j], want[j])
			}
		}
	}
	if _, err := fr.Next(); err != io.EOF {
		t.Fatalf("err after last frame = %v, want io.EOF", err)
	}
}

func TestEncoderRejectsOutOfRangeRect(t *testing.T) {
	var buf bytes.Buffer
	enc, err := NewEncoder(&buf, Header{FrameRate: 30, Version: 1, Scale: 6})
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	// Scale 6 means a 40x40 source; coordinate 40 is out of range.
	if err := enc.WriteFrame([]RawRect{{0, 0, 40, 10}}); err == nil {
		t.Fatal("expected range error")
	}
}

func TestEncoderRejectsBadHeader(t *testing.T) {
	var buf bytes.Buffer
	if _, err := NewEncoder(&buf, Header{FrameRate: 0, Version: 1, Scale: 1}); !errors.Is(err, ErrBadFrameRate) {
		t.Fatalf("err = %v, want ErrBadFrameRate", err)
	}
}
