package image

import (
	"fmt"

	"github.com/anthonynsimon/bild/transform"
)

// Resize resamples f to exactly w x h with a bilinear filter. The result is
// re-quantised to 8 bits per channel, the way a decoded image would be.
func Resize(f *Frame, w, h int) (*Frame, error) {
	if f.Empty() {
		return nil, fmt.Errorf("resize: empty frame")
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("resize: invalid size %dx%d", w, h)
	}
	if f.Space != RGB {
		return nil, fmt.Errorf("resize: %s frame, want RGB", f.Space)
	}
	if w == f.Width && h == f.Height {
		return f.Clone(), nil
	}

	return FromImage(transform.Resize(f.NRGBA(), w, h, transform.Linear)), nil
}
