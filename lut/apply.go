package lut

import (
	"fmt"
	"math"

	"github.com/mmuldo/colorlab/image"
	"github.com/mmuldo/colorlab/lab"
)

// NodeIndex returns the nearest node along one axis for a normalised channel
// value.
func NodeIndex(v float64, size int) int {
	i := math.Round(v * float64(size-1))
	switch {
	case i <= 0 || math.IsNaN(i):
		return 0
	case i >= float64(size-1):
		return size - 1
	default:
		return int(i)
	}
}

// Lookup returns the node nearest to an RGB colour. There is no interpolation
// between nodes.
func (g *Grid) Lookup(c lab.Color) lab.Color {
	n := g.nodes[Index(g.size, NodeIndex(c[0], g.size), NodeIndex(c[1], g.size), NodeIndex(c[2], g.size))]
	return lab.Color{clamp01(n[0]), clamp01(n[1]), clamp01(n[2])}
}

// Apply maps every pixel of an RGB frame through the grid by nearest-node
// lookup and returns the result as a new frame.
func Apply(f *image.Frame, g *Grid) (*image.Frame, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: no lookup table", lab.ErrInvalidInput)
	}
	if f.Empty() {
		return nil, fmt.Errorf("%w: empty frame", lab.ErrInvalidInput)
	}
	if f.Space != image.RGB {
		return nil, fmt.Errorf("%w: %s frame, want RGB", lab.ErrInvalidInput, f.Space)
	}

	out := image.NewFrame(f.Width, f.Height, image.RGB)
	for i, c := range f.Pix {
		out.Pix[i] = g.Lookup(c)
	}
	return out, nil
}

func clamp01(v float64) float64 {
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 1:
		return 1
	default:
		return v
	}
}
