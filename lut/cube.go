package lut

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mmuldo/colorlab/lab"
)

var (
	// ErrIO is returned when a .cube file cannot be read or written.
	ErrIO = errors.New("i/o error")
	// ErrFormat is returned for malformed .cube content.
	ErrFormat = errors.New("format error")
)

const sizeKeyword = "LUT_3D_SIZE"

// WriteCube writes g in .cube format: the size header followed by one
// "r g b" row per node in Index order.
func WriteCube(w io.Writer, g *Grid) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s %d\n", sizeKeyword, g.size)
	for _, n := range g.nodes {
		fmt.Fprintf(bw, "%.6f %.6f %.6f\n", n[0], n[1], n[2])
	}
	return bw.Flush()
}

// ReadCube parses .cube content. Comments, blank lines, TITLE and the default
// unit domain are accepted; anything else outside the size header and the
// node rows is a format error.
func ReadCube(r io.Reader) (*Grid, error) {
	var (
		size  int
		nodes []lab.Color
		line  int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		switch fields[0] {
		case "TITLE":
			continue
		case "DOMAIN_MIN", "DOMAIN_MAX":
			if e := checkDomain(fields, line); e != nil {
				return nil, e
			}
			continue
		case sizeKeyword:
			if size != 0 {
				return nil, fmt.Errorf("%w: line %d: duplicate %s", ErrFormat, line, sizeKeyword)
			}
			if len(nodes) > 0 {
				return nil, fmt.Errorf("%w: line %d: %s after table data", ErrFormat, line, sizeKeyword)
			}
			if len(fields) != 2 {
				return nil, fmt.Errorf("%w: line %d: malformed %s", ErrFormat, line, sizeKeyword)
			}
			n, e := strconv.Atoi(fields[1])
			if e != nil || ValidateSize(n) != nil {
				return nil, fmt.Errorf("%w: line %d: invalid %s %q", ErrFormat, line, sizeKeyword, fields[1])
			}
			size = n
			nodes = make([]lab.Color, 0, n*n*n)
			continue
		}

		if size == 0 {
			return nil, fmt.Errorf("%w: line %d: missing %s header", ErrFormat, line, sizeKeyword)
		}
		c, e := parseRow(fields, line)
		if e != nil {
			return nil, e
		}
		if len(nodes) == size*size*size {
			return nil, fmt.Errorf("%w: line %d: more than %d rows", ErrFormat, line, size*size*size)
		}
		nodes = append(nodes, c)
	}
	if e := sc.Err(); e != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, e)
	}

	if size == 0 {
		return nil, fmt.Errorf("%w: missing %s header", ErrFormat, sizeKeyword)
	}
	if want := size * size * size; len(nodes) != want {
		return nil, fmt.Errorf("%w: %d rows, want %d", ErrFormat, len(nodes), want)
	}
	return &Grid{size: size, nodes: nodes}, nil
}

// Save writes g to path. The file is written next to its destination and
// renamed into place, so a failed save leaves no partial file behind.
func Save(g *Grid, path string) (e error) {
	if g == nil {
		return fmt.Errorf("%w: no lookup table", lab.ErrInvalidInput)
	}

	tmp, e := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if e != nil {
		return fmt.Errorf("%w: %v", ErrIO, e)
	}
	defer func() {
		if e != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if e = WriteCube(tmp, g); e != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrIO, path, e)
	}
	if e = tmp.Close(); e != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrIO, path, e)
	}
	if e = os.Chmod(tmp.Name(), 0644); e != nil {
		return fmt.Errorf("%w: %v", ErrIO, e)
	}
	if e = os.Rename(tmp.Name(), path); e != nil {
		return fmt.Errorf("%w: %v", ErrIO, e)
	}
	return nil
}

// Load reads a .cube file from path.
func Load(path string) (*Grid, error) {
	f, e := os.Open(path)
	if e != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, e)
	}
	defer f.Close()

	g, e := ReadCube(f)
	if e != nil {
		return nil, fmt.Errorf("%s: %w", path, e)
	}
	return g, nil
}

func parseRow(fields []string, line int) (lab.Color, error) {
	var c lab.Color
	if len(fields) != 3 {
		return c, fmt.Errorf("%w: line %d: want 3 values, got %d", ErrFormat, line, len(fields))
	}
	for i, s := range fields {
		v, e := strconv.ParseFloat(s, 64)
		if e != nil {
			return c, fmt.Errorf("%w: line %d: %q is not a number", ErrFormat, line, s)
		}
		if !(v >= 0 && v <= 1) {
			return c, fmt.Errorf("%w: line %d: value %s outside [0,1]", ErrFormat, line, s)
		}
		c[i] = v
	}
	return c, nil
}

func checkDomain(fields []string, line int) error {
	want := 0.0
	if fields[0] == "DOMAIN_MAX" {
		want = 1
	}
	if len(fields) != 4 {
		return fmt.Errorf("%w: line %d: malformed %s", ErrFormat, line, fields[0])
	}
	for _, s := range fields[1:] {
		v, e := strconv.ParseFloat(s, 64)
		if e != nil || v != want {
			return fmt.Errorf("%w: line %d: unsupported %s", ErrFormat, line, strings.Join(fields, " "))
		}
	}
	return nil
}
