package image

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/esimov/colorquant"
)

// ColorCount is one colour of a frame and the number of pixels it covers.
type ColorCount struct {
	Color color.NRGBA
	Count int
}

// RGB returns the colour as a normalised triple.
func (cc ColorCount) RGB() [3]float64 {
	return [3]float64{
		float64(cc.Color.R) / 255,
		float64(cc.Color.G) / 255,
		float64(cc.Color.B) / 255,
	}
}

type ColorCountList []ColorCount

func (ccl ColorCountList) Len() int { return len(ccl) }
func (ccl ColorCountList) Less(i, j int) bool {
	if ccl[i].Count != ccl[j].Count {
		return ccl[i].Count > ccl[j].Count
	}
	return rgbKey(ccl[i].Color) < rgbKey(ccl[j].Color)
}
func (ccl ColorCountList) Swap(i, j int) { ccl[i], ccl[j] = ccl[j], ccl[i] }

// GetColors returns a map of an image's colors
// and the number of times each color occurs
func GetColors(img *image.NRGBA) map[color.NRGBA]int {
	m := make(map[color.NRGBA]int)

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			m[img.NRGBAAt(x, y)]++
		}
	}

	return m
}

// RankColors sorts a colour histogram by prevalence, most common first.
func RankColors(m map[color.NRGBA]int) ColorCountList {
	cc := make(ColorCountList, 0, len(m))
	for k, v := range m {
		cc = append(cc, ColorCount{k, v})
	}

	sort.Sort(cc)
	return cc
}

// Dominant quantises an RGB frame to at most n colours and returns them ranked
// by the number of pixels each one covers.
func Dominant(f *Frame, n int) (ColorCountList, error) {
	if f.Empty() {
		return nil, fmt.Errorf("dominant colours: empty frame")
	}
	if f.Space != RGB {
		return nil, fmt.Errorf("dominant colours: %s frame, want RGB", f.Space)
	}
	if n < 1 {
		return nil, fmt.Errorf("dominant colours: invalid colour count %d", n)
	}

	src := f.NRGBA()
	q := image.NewNRGBA(src.Bounds())
	colorquant.NoDither.Quantize(src, q, n, false, true)

	ranked := RankColors(GetColors(q))
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

func rgbKey(c color.NRGBA) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}
