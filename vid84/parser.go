package vid84

// EventKind classifies the outcome of a single parser step.
type EventKind uint8

const (
	// EventNone means a component byte was consumed but the in-flight
	// rectangle is still incomplete.
	EventNone EventKind = iota
	// EventRect carries a completed rectangle record.
	EventRect
	// EventFrameStart means the cursor is on a 0xFF frame marker.
	// The marker is not consumed; the caller decides (SkipMarker).
	EventFrameStart
	// EventEndOfStream means the cursor is on the final 0xFE marker.
	// The marker is never consumed.
	EventEndOfStream
)

// Event is the result of one Parser step.
type Event struct {
	Kind EventKind
	Raw  RawRect
}

// Parser is a resumable cursor over the stream body. It assembles 4-byte
// rectangle records one byte at a time and recognizes the two marker bytes.
//
// A single Parser is owned by one playback session; it is not safe for
// concurrent use.
type Parser struct {
	data []byte
	pos  int

	// pending counts captured components (0..3) of the in-flight
	// rectangle; comp holds their raw values.
	pending int
	comp    [4]byte
}

// NewParser returns a parser positioned at the first body byte (the leading
// frame marker at offset 8 carries no data and is skipped).
func NewParser(data []byte) *Parser {
	return &Parser{data: data, pos: BodyStart}
}

// Pos reports the cursor's byte offset.
func (p *Parser) Pos() int { return p.pos }

// Pending reports how many components of the in-flight rectangle are held.
func (p *Parser) Pending() int { return p.pending }

// Step consumes exactly one byte, unless the byte is a marker, in which case
// the cursor stays on it and a marker event is returned. Reading past the
// end of the stream fails with ErrTruncated.
func (p *Parser) Step() (Event, error) {
	if p.pos >= len(p.data) {
		return Event{}, ErrTruncated
	}

	b := p.data[p.pos]
	switch b {
	case MarkerFrame:
		return Event{Kind: EventFrameStart}, nil
	case MarkerEnd:
		return Event{Kind: EventEndOfStream}, nil
	}

	p.comp[p.pending] = b
	p.pending++
	p.pos++

	if p.pending < 4 {
		return Event{Kind: EventNone}, nil
	}
	p.pending = 0
	return Event{
		Kind: EventRect,
		Raw:  RawRect{X: p.comp[0], Y: p.comp[1], X2: p.comp[2], Y2: p.comp[3]},
	}, nil
}

// SkipMarker advances the cursor past a frame marker. Call only after Step
// reported EventFrameStart.
func (p *Parser) SkipMarker() { p.pos++ }

// Rewind rolls an interrupted partial rectangle back to its first byte, so
// the next run re-reads it whole. A rectangle is therefore either fully
// absent from the committed history or fully committed. The rollback is
// unconditional: skipping it for any pending count would desynchronize the
// record framing for the rest of the stream.
func (p *Parser) Rewind() {
	p.pos -= p.pending
	p.pending = 0
}
