package vid84

// Color is the 1-bit draw color of the format.
type Color uint8

const (
	ColorWhite Color = iota
	ColorBlack
)

// Canvas is the drawing surface the player renders into. Coordinates are in
// display space (320x240); the player never draws outside the surface for
// well-formed streams and performs no clipping of its own.
type Canvas interface {
	FillRect(x, y, w, h int, c Color)
	Present() error
}

// Clock is the monotonic time source driving the frame budget. SleepMillis
// is only used for the final-frame hold.
type Clock interface {
	NowMillis() int64
	SleepMillis(n int)
}

// PrerollBudgetMillis is the fixed decode-ahead budget granted before the
// first frame is displayed.
const PrerollBudgetMillis = 500

// Player decodes a VID84 stream and paces it against the clock. It owns the
// parser cursor and the prefetch queue for the whole session and runs on a
// single goroutine.
type Player struct {
	hdr    *Header
	parser *Parser
	queue  prefetchQueue
	canvas Canvas
	clock  Clock

	interval int
}

// NewPlayer validates the stream header and prepares a playback session.
func NewPlayer(stream []byte, canvas Canvas, clock Clock) (*Player, error) {
	h, err := ParseHeader(stream)
	if err != nil {
		return nil, err
	}
	return &Player{
		hdr:      h,
		parser:   NewParser(stream),
		canvas:   canvas,
		clock:    clock,
		interval: h.FrameInterval(),
	}, nil
}

// Header returns the parsed stream header.
func (p *Player) Header() Header { return *p.hdr }

// Preroll decodes ahead into the queue before the first frame is shown,
// bounded by PrerollBudgetMillis. It stops early when the queue fills or the
// first frame ends.
func (p *Player) Preroll() error {
	return p.prefetch(p.clock.NowMillis() + PrerollBudgetMillis)
}

// Play runs the frame loop until the end-of-stream marker is reached. Each
// cycle flushes prefetched rectangles, live-decodes the rest of the frame,
// presents, and spends any leftover budget prefetching the next frame. When
// a frame overruns its budget the next one starts immediately; the loop
// never sleeps a negative duration.
func (p *Player) Play() error {
	for {
		start := p.clock.NowMillis()

		p.beginFrame()
		p.queue.drain(p.fill)

		ev, err := p.liveDecode()
		if err != nil {
			return err
		}
		if err := p.canvas.Present(); err != nil {
			return err
		}
		if ev == EventFrameStart {
			p.parser.SkipMarker()
		}

		remaining := int64(p.interval) - (p.clock.NowMillis() - start)
		if ev == EventEndOfStream {
			// Final-frame hold, then done. The terminator stays
			// unconsumed.
			if remaining > 0 {
				p.clock.SleepMillis(int(remaining))
			}
			return nil
		}
		if remaining > 0 {
			if err := p.prefetch(start + int64(p.interval)); err != nil {
				return err
			}
		}
	}
}

// liveDecode draws completed rectangles as they assemble, until a marker.
// Live decoding is never time-sliced: the current frame must finish.
func (p *Player) liveDecode() (EventKind, error) {
	for {
		ev, err := p.parser.Step()
		if err != nil {
			return 0, err
		}
		switch ev.Kind {
		case EventRect:
			p.fill(p.hdr.MapRect(ev.Raw))
		case EventFrameStart, EventEndOfStream:
			return ev.Kind, nil
		}
	}
}

// prefetch decodes ahead into the queue until the deadline passes, the
// queue fills, or a marker is reached. The marker is left for the next live
// cycle. A mid-rectangle interruption rewinds the cursor so the live decoder
// re-reads the partial record from its first byte.
func (p *Player) prefetch(deadline int64) error {
	for p.clock.NowMillis() < deadline {
		if p.queue.full() {
			return nil
		}
		ev, err := p.parser.Step()
		if err != nil {
			return err
		}
		switch ev.Kind {
		case EventRect:
			p.queue.push(p.hdr.MapRect(ev.Raw))
		case EventFrameStart, EventEndOfStream:
			return nil
		}
	}
	p.parser.Rewind()
	return nil
}

// beginFrame redraws the side borders and clears the canvas before any
// rectangle of the frame is drawn.
func (p *Player) beginFrame() {
	p.canvas.FillRect(0, 0, CanvasOffsetX, SurfaceHeight, ColorBlack)
	p.canvas.FillRect(CanvasOffsetX+CanvasSize, 0, CanvasOffsetX, SurfaceHeight, ColorBlack)
	p.canvas.FillRect(CanvasOffsetX, 0, CanvasSize, SurfaceHeight, ColorWhite)
}

func (p *Player) fill(r Rect) {
	x, y, w, h := r.Bounds(int(p.hdr.Scale))
	p.canvas.FillRect(x, y, w, h, ColorBlack)
}
