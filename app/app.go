// Package app wires the vid84 player to a HAL: it loads the clip, walks the
// prompt screens, and runs playback on its own goroutine while the platform
// loop presents the framebuffer.
package app

import (
	"errors"
	"fmt"

	"picovid/assets"
	"picovid/hal"
	"picovid/vid84"
)

// ErrDone reports a normal end of the session (playback finished or the
// user backed out of a prompt).
var ErrDone = errors.New("done")

// ErrBadVideo reports a clip that failed header or stream validation. Hosts
// map it to a nonzero exit code.
var ErrBadVideo = errors.New("bad video")

// Config selects the clip and the startup behavior.
type Config struct {
	// VideoPath names the clip to load through hal.Storage. Empty means the
	// embedded sample.
	VideoPath string

	// Autoplay skips the start prompt.
	Autoplay bool
}

type app struct {
	h   hal.HAL
	cfg Config

	done chan struct{}
	err  error
}

// New returns a step function for the platform loop, playing the embedded
// sample clip.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{})
}

// Run plays the embedded sample and blocks until the session ends
// (TinyGo/native entrypoint).
func Run(h hal.HAL) error {
	return RunWithConfig(h, Config{})
}

// RunWithConfig drives the step loop directly, for platforms without a host
// loop. A clean exit returns nil.
func RunWithConfig(h hal.HAL, cfg Config) error {
	step := NewWithConfig(h, cfg)
	for {
		if err := step(); err != nil {
			if errors.Is(err, ErrDone) {
				return nil
			}
			return err
		}
		h.Clock().SleepMillis(20)
	}
}

// NewWithConfig returns a step function for the platform loop. The session
// runs on its own goroutine; step reports nil until it ends, then the final
// error (ErrDone on a clean exit).
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	a := &app{h: h, cfg: cfg, done: make(chan struct{})}
	go a.run()
	return a.step
}

func (a *app) step() error {
	select {
	case <-a.done:
		return a.err
	default:
		return nil
	}
}

func (a *app) run() {
	err := a.session()
	if err == nil {
		err = ErrDone
	}
	a.err = err
	close(a.done)
}

func (a *app) session() error {
	log := a.h.Logger()
	fb := a.h.Display().Framebuffer()
	scr := screen{fb: fb}

	data := a.loadClip(log)

	player, err := vid84.NewPlayer(data, newCanvas(fb), a.h.Clock())
	if err != nil {
		log.WriteLineString("video: " + err.Error())
		scr.show("Unsupported video", "press any key to exit")
		a.waitKey()
		return fmt.Errorf("%w: %v", ErrBadVideo, err)
	}

	hdr := player.Header()
	log.WriteLineString(fmt.Sprintf("video: %d fps, scale %d (%dx%d)",
		hdr.FrameRate, hdr.Scale, hdr.Resolution(), hdr.Resolution()))

	if !a.cfg.Autoplay {
		scr.show("PicoVid", "press any key to play")
		if esc := a.waitKey(); esc {
			return ErrDone
		}
	}

	scr.show("Buffering...")
	if err := player.Preroll(); err != nil {
		log.WriteLineString("video: " + err.Error())
		scr.show("Broken video stream", "press any key to exit")
		a.waitKey()
		return fmt.Errorf("%w: %v", ErrBadVideo, err)
	}

	if err := player.Play(); err != nil {
		log.WriteLineString("video: " + err.Error())
		scr.show("Broken video stream", "press any key to exit")
		a.waitKey()
		return fmt.Errorf("%w: %v", ErrBadVideo, err)
	}

	log.WriteLineString("video: done")
	return ErrDone
}

// loadClip reads the configured clip from storage, falling back to the
// embedded sample when no path is set or the read fails.
func (a *app) loadClip(log hal.Logger) []byte {
	if a.cfg.VideoPath == "" {
		return assets.SampleClip
	}
	data, err := a.h.Storage().ReadFile(a.cfg.VideoPath)
	if err != nil {
		log.WriteLineString(fmt.Sprintf("video: %s: %v (using embedded sample)", a.cfg.VideoPath, err))
		return assets.SampleClip
	}
	return data
}

// waitKey blocks until a key-down event and reports whether it was Escape.
// Platforms without a keyboard (nil event channel) fall through immediately.
func (a *app) waitKey() (escape bool) {
	kbd := a.h.Input().Keyboard()
	if kbd == nil {
		return false
	}
	ch := kbd.Events()
	if ch == nil {
		return false
	}
	for ev := range ch {
		if !ev.Press {
			continue
		}
		return ev.Code == hal.KeyEscape
	}
	return false
}
