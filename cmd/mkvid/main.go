package main

import (
	"bufio"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"os"
	"strings"

	"picovid/vid84"
)

func main() {
	var (
		inPath    = flag.String("in", "", "Input file (.gif for encode, .vid for decode/info).")
		outPath   = flag.String("out", "", "Output file (.vid for encode, .gif for decode).")
		mode      = flag.String("mode", "encode", "encode|decode|info.")
		rate      = flag.Int("rate", 0, "Frame rate 1..63 (encode mode; 0 derives it from GIF timing).")
		scale     = flag.Int("scale", 4, "Pixel scale 1..6 (encode mode).")
		threshold = flag.Int("threshold", 128, "Ink threshold 0..255: pixels darker than this are drawn (encode mode).")
	)
	flag.Parse()

	switch strings.ToLower(*mode) {
	case "encode":
		if *inPath == "" || *outPath == "" {
			usage()
		}
		if err := encodeGIF(*inPath, *outPath, *rate, *scale, *threshold); err != nil {
			fatalf("encode: %v", err)
		}
	case "decode":
		if *inPath == "" || *outPath == "" {
			usage()
		}
		if err := decodeToGIF(*inPath, *outPath); err != nil {
			fatalf("decode: %v", err)
		}
	case "info":
		if *inPath == "" {
			usage()
		}
		if err := printInfo(*inPath); err != nil {
			fatalf("info: %v", err)
		}
	default:
		fatalf("unknown mode: %s", *mode)
	}
}

func usage() {
	fatalf("usage: mkvid -mode encode -in in.gif -out out.vid [-rate 30] [-scale 4] [-threshold 128]\n" +
		"       mkvid -mode decode -in in.vid -out out.gif\n" +
		"       mkvid -mode info -in in.vid")
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func encodeGIF(inPath, outPath string, rate, scale, threshold int) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	g, err := gif.DecodeAll(in)
	if err != nil {
		return fmt.Errorf("gif: %v", err)
	}
	if len(g.Image) == 0 {
		return fmt.Errorf("gif: no frames")
	}

	if rate == 0 {
		rate = rateFromDelay(g.Delay)
	}
	if threshold < 0 || threshold > 255 {
		return fmt.Errorf("threshold out of range: %d", threshold)
	}

	h := vid84.Header{
		FrameRate: uint8(rate),
		Version:   vid84.Version,
		Scale:     uint8(scale),
	}
	if err := h.Validate(); err != nil {
		return err
	}
	res := h.Resolution()

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	bw := bufio.NewWriterSize(out, 64*1024)

	enc, err := vid84.NewEncoder(bw, h)
	if err != nil {
		return err
	}

	// Accumulate frames over the logical screen: animated GIFs routinely
	// store partial frames against the previous one.
	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, image.White, image.Point{}, draw.Src)

	for _, frame := range g.Image {
		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)

		bm := sampleBitmap(canvas, res, uint8(threshold))
		if err := enc.WriteFrame(vid84.MeshFrame(bm)); err != nil {
			return err
		}
	}
	if err := enc.Close(); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	fmt.Printf("%s: %d frames, %d fps, scale %d (%dx%d)\n",
		outPath, enc.Frames(), h.FrameRate, h.Scale, res, res)
	return nil
}

// rateFromDelay derives a frame rate from the GIF's first frame delay
// (centiseconds), clamped to the format's range.
func rateFromDelay(delays []int) int {
	rate := 30
	if len(delays) > 0 && delays[0] > 0 {
		rate = 100 / delays[0]
	}
	if rate < 1 {
		rate = 1
	}
	if rate > vid84.MaxFrameRate {
		rate = vid84.MaxFrameRate
	}
	return rate
}

// sampleBitmap downsamples the canvas to res x res with nearest-neighbor
// picks and thresholds luma into ink.
func sampleBitmap(canvas *image.RGBA, res int, threshold uint8) *vid84.Bitmap {
	bm := vid84.NewBitmap(res)
	b := canvas.Bounds()
	for y := 0; y < res; y++ {
		sy := b.Min.Y + y*b.Dy()/res
		for x := 0; x < res; x++ {
			sx := b.Min.X + x*b.Dx()/res
			c := canvas.RGBAAt(sx, sy)
			luma := (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
			bm.Set(x, y, luma < int(threshold))
		}
	}
	return bm
}

func decodeToGIF(inPath, outPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}

	fr, h, err := vid84.NewFrameReader(data)
	if err != nil {
		return err
	}
	res := h.Resolution()
	delay := h.FrameInterval() / 10 // ms -> centiseconds
	if delay < 1 {
		delay = 1
	}

	palette := color.Palette{color.White, color.Black}
	var out gif.GIF
	for {
		rects, err := fr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		img := image.NewPaletted(image.Rect(0, 0, res, res), palette)
		for _, r := range rects {
			x, y, w, h := rawBounds(r)
			fillRaw(img, x, y, w, h)
		}
		out.Image = append(out.Image, img)
		out.Delay = append(out.Delay, delay)
	}
	if len(out.Image) == 0 {
		return fmt.Errorf("no frames in %s", inPath)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &out); err != nil {
		return err
	}
	fmt.Printf("%s: %d frames, %d fps, %dx%d\n", outPath, len(out.Image), h.FrameRate, res, res)
	return nil
}

// rawBounds is the rectangle in canvas pixels, before display scaling.
// Degenerate edges cover one pixel, matching how the player renders them.
func rawBounds(r vid84.RawRect) (x, y, w, h int) {
	w = absInt(int(r.X2) - int(r.X))
	h = absInt(int(r.Y2) - int(r.Y))
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	x = int(r.X)
	if int(r.X2) < x {
		x = int(r.X2)
	}
	y = int(r.Y)
	if int(r.Y2) < y {
		y = int(r.Y2)
	}
	return x, y, w, h
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func fillRaw(img *image.Paletted, x, y, w, h int) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			img.SetColorIndex(xx, yy, 1)
		}
	}
}

func printInfo(inPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}

	fr, h, err := vid84.NewFrameReader(data)
	if err != nil {
		return err
	}

	frames := 0
	rects := 0
	for {
		rs, err := fr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		frames++
		rects += len(rs)
	}

	res := h.Resolution()
	fmt.Printf("%s:\n", inPath)
	fmt.Printf("  frame rate: %d fps (%d ms/frame)\n", h.FrameRate, h.FrameInterval())
	fmt.Printf("  scale:      %d (%dx%d canvas)\n", h.Scale, res, res)
	fmt.Printf("  frames:     %d (%d rects, %d bytes)\n", frames, rects, len(data))
	return nil
}
