//go:build tinygo

package main

import (
	"picovid/app"
	"picovid/hal"
)

// The PicoCalc build looks for /video.vid on the SD card and falls back to
// the embedded sample when the card or file is missing.
func main() {
	h := hal.New()
	if err := app.RunWithConfig(h, app.Config{VideoPath: "/video.vid"}); err != nil {
		h.Logger().WriteLineString("picovid: " + err.Error())
	}

	// Keep the final frame on screen.
	select {}
}
