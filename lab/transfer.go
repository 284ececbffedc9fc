package lab

import (
	"math"

	"github.com/jkl1337/go-chromath/deltae"
)

// Epsilon keeps the std ratio finite when the source channel has no spread.
const Epsilon = 1e-6

var klch = &deltae.KLChDefault

// Transfer maps one RGB colour from the source distribution onto the target
// distribution. target is the donor appearance, source the image being graded.
func Transfer(rgb Color, target, source Stats) Color {
	return LabToRGB(TransferLab(RGBToLab(rgb), target, source))
}

// TransferLab applies the channel-wise affine remap to an 8-bit encoded Lab
// colour and quantises the result to integers in [0,255].
func TransferLab(c Color, target, source Stats) Color {
	var out Color
	for i := range c {
		v := (c[i]-source.Mean[i])*(target.Std[i]/(source.Std[i]+Epsilon)) + target.Mean[i]
		out[i] = float64(clampByte(math.Floor(v)))
	}
	return out
}

// DeltaE returns the CIEDE2000 difference between two RGB colours.
func DeltaE(a, b Color) float64 {
	return deltae.CIE2000(Decode(RGBToLab(a)), Decode(RGBToLab(b)), klch)
}
