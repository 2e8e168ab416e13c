package vid84

import "io"

// FrameReader iterates the stream frame by frame with no pacing. It serves
// offline tooling (mkvid decode/info); interactive playback goes through
// Player.
type FrameReader struct {
	p    *Parser
	done bool
}

// NewFrameReader validates the stream and positions the cursor on the first
// frame body.
func NewFrameReader(stream []byte) (*FrameReader, *Header, error) {
	h, err := ParseHeader(stream)
	if err != nil {
		return nil, nil, err
	}
	return &FrameReader{p: NewParser(stream)}, h, nil
}

// Next returns the raw rectangles of the next frame, or io.EOF past the
// final frame. An empty frame returns an empty (non-nil) slice.
func (fr *FrameReader) Next() ([]RawRect, error) {
	if fr.done {
		return nil, io.EOF
	}

	rects := []RawRect{}
	for {
		ev, err := fr.p.Step()
		if err != nil {
			return nil, err
		}
		switch ev.Kind {
		case EventRect:
			rects = append(rects, ev.Raw)
		case EventFrameStart:
			fr.p.SkipMarker()
			return rects, nil
		case EventEndOfStream:
			fr.done = true
			return rects, nil
		}
	}
}
