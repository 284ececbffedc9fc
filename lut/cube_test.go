package lut

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmuldo/colorlab/lab"
)

func coordGrid(t *testing.T, n int) *Grid {
	t.Helper()
	nodes := make([]lab.Color, n*n*n)
	for i := range nodes {
		r, g, b := Coords(n, i)
		d := float64(n - 1)
		nodes[i] = lab.Color{float64(r) / d, float64(g) / d, float64(b) / d}
	}
	g, e := NewGrid(n, nodes)
	require.NoError(t, e)
	return g
}

func TestWriteCube(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCube(&buf, coordGrid(t, 2)))

	want := `LUT_3D_SIZE 2
0.000000 0.000000 0.000000
1.000000 0.000000 0.000000
0.000000 1.000000 0.000000
1.000000 1.000000 0.000000
0.000000 0.000000 1.000000
1.000000 0.000000 1.000000
0.000000 1.000000 1.000000
1.000000 1.000000 1.000000
`
	assert.Equal(t, want, buf.String())
}

func TestCubeRoundTrip(t *testing.T) {
	g, e := Build(warmTarget, coolSource, DefaultSize)
	require.NoError(t, e)

	path := filepath.Join(t.TempDir(), "warm.cube")
	require.NoError(t, Save(g, path))

	got, e := Load(path)
	require.NoError(t, e)
	assert.Equal(t, g.Size(), got.Size())
	if d := cmp.Diff(g.Nodes(), got.Nodes(), cmpopts.EquateApprox(0, 1e-6)); d != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", d)
	}

	entries, e := os.ReadDir(filepath.Dir(path))
	require.NoError(t, e)
	assert.Len(t, entries, 1, "no temp files may be left behind")
}

func TestSaveErrors(t *testing.T) {
	g := coordGrid(t, 2)

	e := Save(g, filepath.Join(t.TempDir(), "missing", "out.cube"))
	assert.ErrorIs(t, e, ErrIO)

	e = Save(nil, filepath.Join(t.TempDir(), "out.cube"))
	assert.ErrorIs(t, e, lab.ErrInvalidInput)
}

func TestLoadMissingFile(t *testing.T) {
	_, e := Load(filepath.Join(t.TempDir(), "nope.cube"))
	assert.ErrorIs(t, e, ErrIO)
}

func TestReadCubeTolerates(t *testing.T) {
	in := `# written by another grading tool
TITLE "two"
DOMAIN_MIN 0.0 0.0 0.0
DOMAIN_MAX 1.0 1.0 1.0

LUT_3D_SIZE 2
0 0 0
1 0 0
0 1 0
1 1 0
0 0 1
1 0 1
0 1 1
  1.0   1.0   1.0
`
	g, e := ReadCube(strings.NewReader(in))
	require.NoError(t, e)
	assert.Equal(t, coordGrid(t, 2).Nodes(), g.Nodes())
}

func TestReadCubeFormatErrors(t *testing.T) {
	rows := strings.Repeat("0.5 0.5 0.5\n", 8)
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"missing header", rows},
		{"header without size", "LUT_3D_SIZE\n" + rows},
		{"non-numeric size", "LUT_3D_SIZE two\n" + rows},
		{"size too small", "LUT_3D_SIZE 1\n0 0 0\n"},
		{"duplicate header", "LUT_3D_SIZE 2\nLUT_3D_SIZE 2\n" + rows},
		{"too few rows", "LUT_3D_SIZE 2\n" + strings.Repeat("0.5 0.5 0.5\n", 7)},
		{"too many rows", "LUT_3D_SIZE 2\n" + strings.Repeat("0.5 0.5 0.5\n", 9)},
		{"short row", "LUT_3D_SIZE 2\n0.5 0.5\n" + strings.Repeat("0.5 0.5 0.5\n", 7)},
		{"not a number", "LUT_3D_SIZE 2\n0.5 x 0.5\n" + strings.Repeat("0.5 0.5 0.5\n", 7)},
		{"out of range", "LUT_3D_SIZE 2\n0.5 1.2 0.5\n" + strings.Repeat("0.5 0.5 0.5\n", 7)},
		{"nan", "LUT_3D_SIZE 2\n0.5 NaN 0.5\n" + strings.Repeat("0.5 0.5 0.5\n", 7)},
		{"custom domain", "DOMAIN_MAX 2 2 2\nLUT_3D_SIZE 2\n" + rows},
		{"1D table", "LUT_1D_SIZE 2\n0 0 0\n1 1 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, e := ReadCube(strings.NewReader(tt.in))
			assert.ErrorIs(t, e, ErrFormat)
		})
	}
}
