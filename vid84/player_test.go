package vid84

import (
	"testing"
)

// fakeClock advances by step on every NowMillis call; SleepMillis records
// the request and advances time by the slept amount.
type fakeClock struct {
	now   int64
	step  int64
	slept []int
}

func (c *fakeClock) NowMillis() int64 {
	c.now += c.step
	return c.now
}

func (c *fakeClock) SleepMillis(n int) {
	c.slept = append(c.slept, n)
	c.now += int64(n)
}

type fillOp struct {
	x, y, w, h int
	c          Color
}

type recordCanvas struct {
	fills    []fillOp
	presents int
}

func (r *recordCanvas) FillRect(x, y, w, h int, c Color) {
	r.fills = append(r.fills, fillOp{x, y, w, h, c})
}

func (r *recordCanvas) Present() error {
	r.presents++
	return nil
}

// rectFills strips the per-frame background fills (two black borders, white
// canvas), leaving only drawn rectangles in draw order.
func (r *recordCanvas) rectFills() []fillOp {
	var out []fillOp
	for _, f := range r.fills {
		if f.c == ColorWhite {
			continue
		}
		if f.w == CanvasOffsetX && f.h == SurfaceHeight && (f.x == 0 || f.x == CanvasOffsetX+CanvasSize) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func TestPlaySingleFrame(t *testing.T) {
	s := stream(30, 1, 2, 10, 10, 20, 20, MarkerEnd)
	canvas := &recordCanvas{}
	clock := &fakeClock{}

	p, err := NewPlayer(s, canvas, clock)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	if err := p.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}

	if canvas.presents != 1 {
		t.Errorf("presents = %d, want 1", canvas.presents)
	}
	rects := canvas.rectFills()
	if len(rects) != 1 {
		t.Fatalf("drew %d rects, want 1", len(rects))
	}
	if want := (fillOp{60, 20, 20, 20, ColorBlack}); rects[0] != want {
		t.Errorf("rect = %+v, want %+v", rects[0], want)
	}
	// 1000/30 = 33 ms budget, nothing elapsed on the fake clock.
	if len(clock.slept) != 1 || clock.slept[0] != 33 {
		t.Errorf("final hold = %v, want [33]", clock.slept)
	}
}

func TestPlayDrawsInStreamOrder(t *testing.T) {
	body := []byte{}
	for i := byte(0); i < 5; i++ {
		body = append(body, i, i, i+1, i+2)
	}
	body = append(body, MarkerEnd)
	s := stream(63, 1, 1, body...)

	canvas := &recordCanvas{}
	p, err := NewPlayer(s, canvas, &fakeClock{})
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	if err := p.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}

	rects := canvas.rectFills()
	if len(rects) != 5 {
		t.Fatalf("drew %d rects, want 5", len(rects))
	}
	for i, f := range rects {
		want := fillOp{x: i + CanvasOffsetX, y: i, w: 1, h: 2, c: ColorBlack}
		if f != want {
			t.Errorf("rect %d = %+v, want %+v", i, f, want)
		}
	}
}

func TestPlayFlushesPrefetchBeforeLive(t *testing.T) {
	// Two frames. Idle time after frame one prefetches the whole second
	// frame; its rects must flush in stream order on the next cycle.
	body := []byte{
		0, 0, 1, 1,
		MarkerFrame,
		2, 2, 3, 3,
		4, 4, 5, 5,
		MarkerEnd,
	}
	s := stream(63, 1, 1, body...)

	canvas := &recordCanvas{}
	p, err := NewPlayer(s, canvas, &fakeClock{})
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	if err := p.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}

	if canvas.presents != 2 {
		t.Errorf("presents = %d, want 2", canvas.presents)
	}
	rects := canvas.rectFills()
	wantX := []int{40, 42, 44}
	if len(rects) != len(wantX) {
		t.Fatalf("drew %d rects, want %d", len(rects), len(wantX))
	}
	for i, f := range rects {
		if f.x != wantX[i] {
			t.Errorf("rect %d at x=%d, want %d", i, f.x, wantX[i])
		}
	}
}

func TestPrerollStopsAtQueueCapacity(t *testing.T) {
	// 40 rectangles in the first frame against an unconstrained budget:
	// exactly 32 queue, the rest decode live on the first cycle.
	body := []byte{}
	for i := byte(0); i < 40; i++ {
		body = append(body, i, i, i+1, i+1)
	}
	body = append(body, MarkerEnd)
	s := stream(1, 1, 1, body...)

	canvas := &recordCanvas{}
	p, err := NewPlayer(s, canvas, &fakeClock{})
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	if err := p.Preroll(); err != nil {
		t.Fatalf("Preroll: %v", err)
	}

	if p.queue.n != QueueCap {
		t.Fatalf("queued %d rects, want %d", p.queue.n, QueueCap)
	}
	if want := BodyStart + QueueCap*4; p.parser.Pos() != want {
		t.Errorf("cursor at %d, want %d", p.parser.Pos(), want)
	}

	if err := p.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	rects := canvas.rectFills()
	if len(rects) != 40 {
		t.Fatalf("drew %d rects, want 40", len(rects))
	}
	for i, f := range rects {
		if f.x != i+CanvasOffsetX {
			t.Errorf("rect %d at x=%d, want %d", i, f.x, i+CanvasOffsetX)
		}
	}
}

func TestPrerollInterruptRewindsPartialRecord(t *testing.T) {
	s := stream(30, 1, 1, 7, 8, 9, 10, MarkerEnd)
	canvas := &recordCanvas{}
	clock := &fakeClock{step: 125}

	p, err := NewPlayer(s, canvas, clock)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	// Budget 500 ms, 125 ms per clock poll: three component bytes get
	// consumed before the deadline hits mid-record.
	if err := p.Preroll(); err != nil {
		t.Fatalf("Preroll: %v", err)
	}
	if p.parser.Pos() != BodyStart || p.parser.Pending() != 0 {
		t.Fatalf("pos=%d pending=%d after interrupted preroll, want rewound to %d",
			p.parser.Pos(), p.parser.Pending(), BodyStart)
	}

	clock.step = 0
	if err := p.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	rects := canvas.rectFills()
	if len(rects) != 1 {
		t.Fatalf("drew %d rects, want 1", len(rects))
	}
	if want := (fillOp{47, 8, 2, 2, ColorBlack}); rects[0] != want {
		t.Errorf("rect = %+v, want %+v", rects[0], want)
	}
}

func TestPlayOverrunSkipsHold(t *testing.T) {
	s := stream(63, 1, 1, 1, 1, 2, 2, MarkerEnd)
	clock := &fakeClock{step: 20} // every poll burns more than the 15 ms budget
	p, err := NewPlayer(s, &recordCanvas{}, clock)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	if err := p.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if len(clock.slept) != 0 {
		t.Errorf("slept %v, want no sleeps on overrun", clock.slept)
	}
}
