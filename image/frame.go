package image

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/clone"
)

// Space identifies the colour space a Frame's channel values live in.
type Space int

const (
	// RGB frames hold sRGB values normalised to [0,1].
	RGB Space = iota
	// Lab frames hold Lab values in the 8-bit encoding: L*255/100, a+128, b+128.
	Lab
)

func (s Space) String() string {
	switch s {
	case RGB:
		return "RGB"
	case Lab:
		return "Lab"
	default:
		return "unknown"
	}
}

// Frame is a row-major grid of colour triples that all share one colour space.
type Frame struct {
	Width  int
	Height int
	Space  Space
	Pix    [][3]float64
}

// NewFrame returns a zeroed w x h frame in space s.
func NewFrame(w, h int, s Space) *Frame {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Frame{Width: w, Height: h, Space: s, Pix: make([][3]float64, w*h)}
}

// Empty reports whether the frame holds no pixels.
func (f *Frame) Empty() bool {
	return f == nil || f.Width == 0 || f.Height == 0
}

func (f *Frame) At(x, y int) [3]float64 {
	return f.Pix[y*f.Width+x]
}

func (f *Frame) Set(x, y int, c [3]float64) {
	f.Pix[y*f.Width+x] = c
}

// Row returns the pixels of row y. The slice aliases the frame.
func (f *Frame) Row(y int) [][3]float64 {
	return f.Pix[y*f.Width : (y+1)*f.Width]
}

// Clone returns a deep copy of f.
func (f *Frame) Clone() *Frame {
	c := &Frame{Width: f.Width, Height: f.Height, Space: f.Space, Pix: make([][3]float64, len(f.Pix))}
	copy(c.Pix, f.Pix)
	return c
}

// Fill returns a w x h RGB frame where every pixel is c.
func Fill(w, h int, c [3]float64) *Frame {
	f := NewFrame(w, h, RGB)
	for i := range f.Pix {
		f.Pix[i] = c
	}
	return f
}

// FromImage converts a decoded image to an RGB frame. Alpha is dropped and the
// colour channels are taken un-premultiplied, at 8 bits per channel.
func FromImage(img image.Image) *Frame {
	b := img.Bounds()
	f := NewFrame(b.Dx(), b.Dy(), RGB)

	// fully opaque images skip the un-premultiply step
	if isOpaque(img) {
		rgba := clone.AsRGBA(img)
		for y := 0; y < f.Height; y++ {
			row := rgba.Pix[y*rgba.Stride:]
			for x := 0; x < f.Width; x++ {
				p := row[x*4:]
				f.Pix[y*f.Width+x] = [3]float64{
					float64(p[0]) / 255,
					float64(p[1]) / 255,
					float64(p[2]) / 255,
				}
			}
		}
		return f
	}

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			f.Pix[y*f.Width+x] = [3]float64{
				float64(c.R) / 255,
				float64(c.G) / 255,
				float64(c.B) / 255,
			}
		}
	}
	return f
}

// NRGBA renders an RGB frame as an opaque 8-bit image, clamping every channel
// to [0,1] and rounding to the nearest byte.
func (f *Frame) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := f.Pix[y*f.Width+x]
			i := img.PixOffset(x, y)
			img.Pix[i+0] = ToByte(c[0])
			img.Pix[i+1] = ToByte(c[1])
			img.Pix[i+2] = ToByte(c[2])
			img.Pix[i+3] = 0xff
		}
	}
	return img
}

// ToByte maps a normalised channel value to a byte, clamping to [0,1].
func ToByte(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return false
}
