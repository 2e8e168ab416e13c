// Package assets holds the built-in clip used when no video file is
// available (no path given, or no SD card on hardware).
package assets

import _ "embed"

// SampleClip is a short bouncing-box animation: 12 fps, scale 4.
//
//go:embed sample.vid
var SampleClip []byte
