// Package lab converts between sRGB and 8-bit encoded CIE Lab, measures Lab
// channel statistics and implements the mean/std colour transfer between them.
//
// Lab values handled by this package use the 8-bit encoding
// (L*255/100, a+128, b+128), so every channel lies in [0,255].
package lab

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/jkl1337/go-chromath"
	"golang.org/x/sync/errgroup"

	"github.com/mmuldo/colorlab/image"
)

// ErrInvalidInput is returned for empty frames, frames in the wrong colour
// space and other unusable arguments.
var ErrInvalidInput = errors.New("invalid input")

// Color is a colour triple: normalised RGB or 8-bit encoded Lab depending on
// context.
type Color = [3]float64

var (
	// sRGB (D65) bytes to XYZ, Y in [0,1]
	rgb2Xyz = chromath.NewRGBTransformer(&chromath.SpaceSRGB, nil, nil, &chromath.Scaler8bClamping, 1.0, nil)
	lab2Xyz = chromath.NewLabTransformer(&chromath.IlluminantRefD65)
)

// byteTolerance lets a value that came from byte/255 truncate back to the same byte.
const byteTolerance = 1e-6

// Truncate8 truncates a normalised channel value to a byte, clamping to [0,255].
func Truncate8(v float64) uint8 {
	return clampByte(math.Floor(v*255 + byteTolerance))
}

// RGBToLab converts a normalised RGB colour to 8-bit encoded Lab. The input is
// truncated to 8 bits per channel first.
func RGBToLab(rgb Color) Color {
	in := chromath.RGB{
		float64(Truncate8(rgb[0])),
		float64(Truncate8(rgb[1])),
		float64(Truncate8(rgb[2])),
	}
	return Encode(lab2Xyz.Invert(rgb2Xyz.Convert(in)))
}

// LabToRGB converts an 8-bit encoded Lab colour to normalised RGB. Each Lab
// channel is clamped to [0,255] and truncated to an integer, and the result is
// rounded to 8 bits per channel.
func LabToRGB(lab Color) Color {
	in := Color{
		float64(clampByte(math.Floor(lab[0]))),
		float64(clampByte(math.Floor(lab[1]))),
		float64(clampByte(math.Floor(lab[2]))),
	}
	rgb := rgb2Xyz.Invert(lab2Xyz.Convert(Decode(in)))
	return Color{
		float64(clampByte(math.Round(rgb[0]))) / 255,
		float64(clampByte(math.Round(rgb[1]))) / 255,
		float64(clampByte(math.Round(rgb[2]))) / 255,
	}
}

// Encode maps CIE Lab (L in [0,100]) to the 8-bit encoding, rounded.
func Encode(c chromath.Lab) Color {
	return Color{
		float64(clampByte(math.Round(c.L() * 255 / 100))),
		float64(clampByte(math.Round(c.A() + 128))),
		float64(clampByte(math.Round(c.B() + 128))),
	}
}

// Decode maps an 8-bit encoded Lab colour back to CIE Lab.
func Decode(c Color) chromath.Lab {
	return chromath.Lab{c[0] * 100 / 255, c[1] - 128, c[2] - 128}
}

// FrameToLab converts every pixel of an RGB frame to 8-bit encoded Lab.
func FrameToLab(f *image.Frame) (*image.Frame, error) {
	return convertFrame(f, image.RGB, image.Lab, RGBToLab)
}

// FrameToRGB converts every pixel of a Lab frame back to normalised RGB.
func FrameToRGB(f *image.Frame) (*image.Frame, error) {
	return convertFrame(f, image.Lab, image.RGB, LabToRGB)
}

func convertFrame(f *image.Frame, from, to image.Space, fn func(Color) Color) (*image.Frame, error) {
	if f.Empty() {
		return nil, fmt.Errorf("%w: empty frame", ErrInvalidInput)
	}
	if f.Space != from {
		return nil, fmt.Errorf("%w: %s frame, want %s", ErrInvalidInput, f.Space, from)
	}

	out := image.NewFrame(f.Width, f.Height, to)
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for y := 0; y < f.Height; y++ {
		src, dst := f.Row(y), out.Row(y)
		g.Go(func() error {
			for x, c := range src {
				dst[x] = fn(c)
			}
			return nil
		})
	}
	if e := g.Wait(); e != nil {
		return nil, e
	}
	return out, nil
}

func clampByte(v float64) uint8 {
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
