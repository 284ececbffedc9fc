// Package lut builds, applies and persists 3D colour lookup tables.
//
// Nodes are always flattened with red varying fastest, then green, then blue,
// which is also the row order of the .cube format. Index is the only place
// that order is spelled out.
package lut

import (
	"fmt"

	"github.com/mmuldo/colorlab/lab"
)

const (
	// DefaultSize is the grid side length used when none is configured.
	DefaultSize = 17
	// MinSize and MaxSize bound the grid side length; MaxSize is the .cube limit.
	MinSize = 2
	MaxSize = 256
)

// Grid is an immutable cubic lattice of RGB output colours.
type Grid struct {
	size  int
	nodes []lab.Color
}

// Index flattens node coordinates (r, g, b) of a grid of the given size.
func Index(size, r, g, b int) int {
	return (b*size+g)*size + r
}

// Coords is the inverse of Index.
func Coords(size, idx int) (r, g, b int) {
	return idx % size, (idx / size) % size, idx / (size * size)
}

// ValidateSize reports whether size is a usable grid side length.
func ValidateSize(size int) error {
	if size < MinSize || size > MaxSize {
		return fmt.Errorf("%w: grid size %d outside [%d, %d]", lab.ErrInvalidInput, size, MinSize, MaxSize)
	}
	return nil
}

// NewGrid wraps nodes, given in Index order, as a grid. The slice is copied.
func NewGrid(size int, nodes []lab.Color) (*Grid, error) {
	if e := ValidateSize(size); e != nil {
		return nil, e
	}
	if want := size * size * size; len(nodes) != want {
		return nil, fmt.Errorf("%w: %d nodes for grid size %d, want %d", lab.ErrInvalidInput, len(nodes), size, want)
	}
	for i, n := range nodes {
		for _, v := range n {
			if !(v >= 0 && v <= 1) {
				return nil, fmt.Errorf("%w: node %d value %g outside [0,1]", lab.ErrInvalidInput, i, v)
			}
		}
	}

	g := &Grid{size: size, nodes: make([]lab.Color, len(nodes))}
	copy(g.nodes, nodes)
	return g, nil
}

// Size returns the side length N.
func (g *Grid) Size() int { return g.size }

// Len returns the number of nodes, N³.
func (g *Grid) Len() int { return len(g.nodes) }

// Node returns the colour stored at flat index i.
func (g *Grid) Node(i int) lab.Color { return g.nodes[i] }

// At returns the colour stored at node (r, g, b).
func (g *Grid) At(r, gr, b int) lab.Color {
	return g.nodes[Index(g.size, r, gr, b)]
}

// Nodes returns a copy of all nodes in Index order.
func (g *Grid) Nodes() []lab.Color {
	out := make([]lab.Color, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Input returns the RGB colour that node (r, g, b) was sampled at.
func (g *Grid) Input(r, gr, b int) lab.Color {
	n := float64(g.size - 1)
	return lab.Color{float64(r) / n, float64(gr) / n, float64(b) / n}
}

// MeanDeltaE is the average CIEDE2000 difference between each node's input
// colour and its output: how far the table moves colours overall.
func (g *Grid) MeanDeltaE() float64 {
	var sum float64
	for i, n := range g.nodes {
		r, gr, b := Coords(g.size, i)
		sum += lab.DeltaE(g.Input(r, gr, b), n)
	}
	return sum / float64(len(g.nodes))
}
