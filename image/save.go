package image

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/esimov/colorquant"
)

// ErrSave is returned when a frame cannot be encoded or written.
var ErrSave = errors.New("save error")

const (
	jpegQuality = 95
	gifColors   = 256
)

// Save encodes an RGB frame to path. The format follows the file extension:
// .png, .jpg/.jpeg or .gif.
func Save(f *Frame, path string) (e error) {
	if f.Empty() {
		return fmt.Errorf("%w: empty frame", ErrSave)
	}
	if f.Space != RGB {
		return fmt.Errorf("%w: %s frame, want RGB", ErrSave, f.Space)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif":
	default:
		return fmt.Errorf("%w: unsupported extension %q", ErrSave, ext)
	}

	out, e := os.Create(path)
	if e != nil {
		return fmt.Errorf("%w: %v", ErrSave, e)
	}
	defer func() {
		if ce := out.Close(); ce != nil && e == nil {
			e = fmt.Errorf("%w: %v", ErrSave, ce)
		}
	}()

	img := f.NRGBA()
	switch ext {
	case ".png":
		e = png.Encode(out, img)
	case ".jpg", ".jpeg":
		e = jpeg.Encode(out, img, &jpeg.Options{Quality: jpegQuality})
	case ".gif":
		e = gif.Encode(out, paletted(img, gifColors), nil)
	}
	if e != nil {
		return fmt.Errorf("%w: encoding %s: %v", ErrSave, path, e)
	}
	return nil
}

// paletted quantises img down to at most n colours and returns it as a
// paletted image whose palette holds exactly the colours that remain.
func paletted(img *image.NRGBA, n int) *image.Paletted {
	b := img.Bounds()
	q := image.NewNRGBA(b)
	colorquant.NoDither.Quantize(img, q, n, false, true)

	seen := make(map[color.NRGBA]bool)
	var p color.Palette
	for i := 0; i+3 < len(q.Pix); i += 4 {
		c := color.NRGBA{q.Pix[i], q.Pix[i+1], q.Pix[i+2], 0xff}
		if seen[c] {
			continue
		}
		seen[c] = true
		p = append(p, c)
		if len(p) == n {
			break
		}
	}
	if len(p) == 0 {
		p = color.Palette{color.Black}
	}

	out := image.NewPaletted(b, p)
	draw.Draw(out, b, q, b.Min, draw.Src)
	return out
}
