package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrLoad is returned for image files that cannot be read or decoded.
var ErrLoad = errors.New("load error")

// sniffLen is the header size filetype needs to recognise every format it knows.
const sniffLen = 261

// Load reads the image at path and returns it as an RGB frame normalised to [0,1].
func Load(path string) (*Frame, error) {
	b, e := os.ReadFile(path)
	if e != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, e)
	}

	head := b
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	if !filetype.IsImage(head) {
		return nil, fmt.Errorf("%w: %s is not a recognised image file", ErrLoad, path)
	}

	i, format, e := image.Decode(bytes.NewReader(b))
	if e != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrLoad, path, e)
	}

	f := FromImage(i)
	if f.Empty() {
		return nil, fmt.Errorf("%w: %s image %s has no pixels", ErrLoad, format, path)
	}
	return f, nil
}
