package lab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmuldo/colorlab/image"
)

func rgb8(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255}
}

func TestTruncate8(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{0, 0},
		{1, 255},
		{0.5, 127},
		{200.0 / 255, 200},
		{1.0 / 255, 1},
		{-0.2, 0},
		{1.7, 255},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate8(tt.in), "Truncate8(%v)", tt.in)
	}
}

func TestRGBToLabReferenceColors(t *testing.T) {
	tests := []struct {
		name string
		rgb  Color
		want Color
	}{
		{"black", rgb8(0, 0, 0), Color{0, 128, 128}},
		{"white", rgb8(255, 255, 255), Color{255, 128, 128}},
		{"red", rgb8(255, 0, 0), Color{136, 208, 195}},
		{"green", rgb8(0, 255, 0), Color{224, 42, 211}},
		{"blue", rgb8(0, 0, 255), Color{82, 207, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RGBToLab(tt.rgb)
			for c := range got {
				assert.InDelta(t, tt.want[c], got[c], 1, "channel %d", c)
				assert.Equal(t, got[c], float64(int(got[c])), "channel %d is not an integer", c)
			}
		})
	}
}

func TestLabToRGBRoundTripGreys(t *testing.T) {
	// greys have no chroma to quantise, so only the L step shows up
	for v := 0; v < 256; v++ {
		in := rgb8(uint8(v), uint8(v), uint8(v))
		l := RGBToLab(in)
		assert.Equal(t, 128.0, l[1], "grey %d", v)
		assert.Equal(t, 128.0, l[2], "grey %d", v)

		out := LabToRGB(l)
		for c := range out {
			assert.InDelta(t, in[c], out[c], 2.0/255, "grey %d channel %d", v, c)
		}
	}
}

func TestLabToRGBStaysInRange(t *testing.T) {
	// saturated colours may move by many bytes through 8-bit Lab, but never
	// leave the RGB cube or the byte lattice
	for r := 0; r < 256; r += 51 {
		for g := 0; g < 256; g += 51 {
			for b := 0; b < 256; b += 51 {
				out := LabToRGB(RGBToLab(rgb8(uint8(r), uint8(g), uint8(b))))
				for c := range out {
					assert.GreaterOrEqual(t, out[c], 0.0)
					assert.LessOrEqual(t, out[c], 1.0)
					assert.InDelta(t, out[c]*255, float64(int(out[c]*255+0.5)), 1e-9)
				}
			}
		}
	}
}

func TestRoundTripStableAfterFirstQuantisation(t *testing.T) {
	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 17 {
			for b := 0; b < 256; b += 17 {
				first := RGBToLab(rgb8(uint8(r), uint8(g), uint8(b)))
				second := RGBToLab(LabToRGB(first))
				third := RGBToLab(LabToRGB(second))
				for c := range third {
					assert.InDelta(t, second[c], third[c], 1, "rgb(%d,%d,%d) channel %d", r, g, b, c)
				}
			}
		}
	}
}

func TestLabToRGBClampsAndTruncates(t *testing.T) {
	assert.Equal(t, LabToRGB(Color{255, 128, 128}), LabToRGB(Color{300, 128.9, 128.2}))
	assert.Equal(t, LabToRGB(Color{0, 0, 0}), LabToRGB(Color{-5, -40, -1}))
}

func TestFrameConversion(t *testing.T) {
	f := image.NewFrame(3, 2, image.RGB)
	f.Set(0, 0, rgb8(255, 0, 0))
	f.Set(2, 1, rgb8(10, 200, 30))

	l, e := FrameToLab(f)
	require.NoError(t, e)
	assert.Equal(t, image.Lab, l.Space)
	assert.Equal(t, RGBToLab(rgb8(255, 0, 0)), l.At(0, 0))
	assert.Equal(t, RGBToLab(rgb8(10, 200, 30)), l.At(2, 1))
	assert.Equal(t, rgb8(255, 0, 0), f.At(0, 0), "input must not change")

	back, e := FrameToRGB(l)
	require.NoError(t, e)
	assert.Equal(t, image.RGB, back.Space)
	assert.Equal(t, LabToRGB(l.At(2, 1)), back.At(2, 1))

	_, e = FrameToLab(l)
	assert.ErrorIs(t, e, ErrInvalidInput)
	_, e = FrameToRGB(f)
	assert.ErrorIs(t, e, ErrInvalidInput)
	_, e = FrameToLab(image.NewFrame(0, 4, image.RGB))
	assert.ErrorIs(t, e, ErrInvalidInput)
}

func TestComputeStatsConstantFrame(t *testing.T) {
	c := rgb8(200, 150, 100)
	l, e := FrameToLab(image.Fill(5, 4, c))
	require.NoError(t, e)

	s, e := ComputeStats(l)
	require.NoError(t, e)
	assert.Equal(t, RGBToLab(c), s.Mean)
	for i := range s.Std {
		assert.InDelta(t, 0, s.Std[i], 1e-12)
	}
}

func TestComputeStatsPopulationStd(t *testing.T) {
	f := image.NewFrame(2, 1, image.Lab)
	f.Pix[0] = Color{10, 20, 30}
	f.Pix[1] = Color{30, 40, 70}

	s, e := ComputeStats(f)
	require.NoError(t, e)
	assert.InDeltaSlice(t, []float64{20, 30, 50}, s.Mean[:], 1e-12)
	assert.InDeltaSlice(t, []float64{10, 10, 20}, s.Std[:], 1e-12)
}

func TestComputeStatsInvalid(t *testing.T) {
	_, e := ComputeStats(image.NewFrame(0, 0, image.Lab))
	assert.ErrorIs(t, e, ErrInvalidInput)

	_, e = ComputeStats(image.NewFrame(3, 0, image.Lab))
	assert.ErrorIs(t, e, ErrInvalidInput)

	_, e = ComputeStats(image.Fill(2, 2, Color{0.5, 0.5, 0.5}))
	assert.ErrorIs(t, e, ErrInvalidInput)
}
