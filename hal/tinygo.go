//go:build tinygo && baremetal && !picocalc

package hal

import (
	"machine"
)

type tinyGoHAL struct {
	logger  *uartLogger
	fb      Framebuffer
	kbd     Keyboard
	clock   *systemClock
	storage Storage
}

// New returns a bare Pico 2 (RP2350) HAL implementation. Without the PicoCalc
// carrier there is no display or keyboard, so playback only makes sense for
// log output and timing checks.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	return &tinyGoHAL{
		logger:  &uartLogger{uart: uart},
		fb:      &stubFramebuffer{w: 320, h: 320, format: PixelFormatRGB565},
		kbd:     &stubKeyboard{},
		clock:   newSystemClock(),
		storage: nullStorage{},
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Input() Input     { return tinyGoInput{kbd: h.kbd} }
func (h *tinyGoHAL) Clock() Clock     { return h.clock }
func (h *tinyGoHAL) Storage() Storage { return h.storage }
