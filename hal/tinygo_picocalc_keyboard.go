//go:build tinygo && baremetal && picocalc

package hal

import (
	"fmt"
	"machine"
	"time"
)

const (
	picoCalcKbdAddr uint16 = 0x1F
	picoCalcKbdCmd         = 0x09
)

const (
	picoCalcKeyAlt  byte = 0xA1
	picoCalcKeyCtrl byte = 0xA5
	picoCalcKeyEsc  byte = 0xB1
)

type i2cKeyboard struct {
	i2c   *machine.I2C
	write [1]byte
	read  [2]byte
}

func initI2CKeyboard() (*i2cKeyboard, error) {
	write := [1]byte{picoCalcKbdCmd}

	// Prefer I2C1 (original PicoCalc wiring), but some TinyGo targets expose only I2C0.
	for _, bus := range []*machine.I2C{machine.I2C1, machine.I2C0} {
		if bus == nil {
			continue
		}
		for _, freq := range []uint32{100_000, 400_000} {
			if err := bus.Configure(machine.I2CConfig{
				SCL:       machine.GP7,
				SDA:       machine.GP6,
				Frequency: freq,
			}); err != nil {
				continue
			}

			k := &i2cKeyboard{i2c: bus, write: write}

			// Probe the device to ensure the selected I2C instance works.
			// On boot the keyboard MCU can be slow to respond, so retry briefly.
			const probeTries = 50
			for i := 0; i < probeTries; i++ {
				if err := k.i2c.Tx(picoCalcKbdAddr, k.write[:], k.read[:]); err == nil {
					return k, nil
				}
				time.Sleep(10 * time.Millisecond)
			}
		}
	}

	return nil, fmt.Errorf("keyboard: I2C unavailable")
}

// readEvent polls the keyboard MCU once. The player only consumes key-down
// events for "press any key" prompts, so modifiers and key-up reports are
// dropped here.
func (k *i2cKeyboard) readEvent() (KeyEvent, bool) {
	if err := k.i2c.Tx(picoCalcKbdAddr, k.write[:], k.read[:]); err != nil {
		return KeyEvent{}, false
	}
	if k.read[0] == 0 && k.read[1] == 0 {
		return KeyEvent{}, false
	}

	if k.read[0] != 0x01 { // anything but key down
		return KeyEvent{}, false
	}
	return k.translate(k.read[1])
}

func (k *i2cKeyboard) translate(code byte) (KeyEvent, bool) {
	switch code {
	case 0, picoCalcKeyAlt, picoCalcKeyCtrl:
		return KeyEvent{}, false
	case picoCalcKeyEsc:
		return KeyEvent{Press: true, Code: KeyEscape}, true
	case '\r', '\n':
		return KeyEvent{Press: true, Code: KeyEnter}, true
	}
	if code >= 0x80 {
		// Function and cursor keys still count as "a key".
		return KeyEvent{Press: true, Code: KeyUnknown}, true
	}
	return KeyEvent{Press: true, Rune: rune(code)}, true
}
