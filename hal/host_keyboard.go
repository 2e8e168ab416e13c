//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

// poll runs once per ebiten update tick. The player only consumes key-down
// events for its "press any key" prompts, so the mapping stays coarse.
func (k *hostKeyboard) poll() {
	emit := func(ev KeyEvent) {
		select {
		case k.ch <- ev:
		default:
		}
	}

	for _, r := range ebiten.AppendInputChars(nil) {
		emit(KeyEvent{Press: true, Rune: r})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		emit(KeyEvent{Press: true, Code: KeyEnter})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		emit(KeyEvent{Press: true, Rune: ' '})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		emit(KeyEvent{Press: true, Code: KeyEscape})
	}
}
