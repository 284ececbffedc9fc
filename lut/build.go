package lut

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/mmuldo/colorlab/lab"
)

// Build samples the colour transfer from source to target statistics at every
// node of a size³ grid. Node (i, j, k) receives the transfer of the input
// colour (i, j, k)/(size-1).
func Build(target, source lab.Stats, size int) (*Grid, error) {
	if e := ValidateSize(size); e != nil {
		return nil, e
	}

	g := &Grid{size: size, nodes: make([]lab.Color, size*size*size)}
	axis := make([]float64, size)
	for i := range axis {
		axis[i] = float64(i) / float64(size-1)
	}

	// one task per blue plane; every task writes a disjoint range of nodes
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for k := 0; k < size; k++ {
		k := k // per-iteration copy; module targets go 1.21 loop semantics
		eg.Go(func() error {
			for j := 0; j < size; j++ {
				for i := 0; i < size; i++ {
					in := lab.Color{axis[i], axis[j], axis[k]}
					g.nodes[Index(size, i, j, k)] = lab.Transfer(in, target, source)
				}
			}
			return nil
		})
	}
	if e := eg.Wait(); e != nil {
		return nil, e
	}
	return g, nil
}
