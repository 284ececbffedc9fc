package lab

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/mmuldo/colorlab/image"
)

// Stats holds the per-channel mean and population standard deviation of a Lab
// frame, channels ordered L, a, b.
type Stats struct {
	Mean [3]float64
	Std  [3]float64
}

// ComputeStats measures the channel statistics of a Lab frame.
func ComputeStats(f *image.Frame) (Stats, error) {
	var s Stats
	if f.Empty() {
		return s, fmt.Errorf("%w: statistics of an empty frame", ErrInvalidInput)
	}
	if f.Space != image.Lab {
		return s, fmt.Errorf("%w: statistics of a %s frame, want Lab", ErrInvalidInput, f.Space)
	}

	ch := make([]float64, len(f.Pix))
	for c := 0; c < 3; c++ {
		for i, p := range f.Pix {
			ch[i] = p[c]
		}
		s.Mean[c], s.Std[c] = stat.PopMeanStdDev(ch, nil)
	}
	return s, nil
}
