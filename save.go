package offscreen

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// opaquer is implemented by the image types of the standard library.
type opaquer interface {
	Opaque() bool
}

// encoderFor returns a lossless encoder for the extension of path.
// Paths without an extension are written as PNG. BMP has no alpha channel,
// so it only accepts fully opaque images.
func encoderFor(path string, img image.Image) (func(io.Writer, image.Image) error, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "", ".png":
		return png.Encode, nil
	case ".bmp":
		if o, ok := img.(opaquer); !ok || !o.Opaque() {
			return nil, fmt.Errorf("%w: %q cannot store alpha", ErrUnsupportedFormat, ext)
		}
		return bmp.Encode, nil
	case ".tif", ".tiff":
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// SaveImage encodes img to path. The format follows the file extension:
// .png (default), .bmp, .tif or .tiff. Every format round-trips img
// exactly; .bmp returns ErrUnsupportedFormat for images with any
// translucent pixel.
//
// The file is written in place; a failed write may leave a partial file.
func SaveImage(path string, img image.Image) error {
	encode, err := encoderFor(path, img)
	if err != nil {
		return err
	}

	f, err := os.Create(path) //nolint:gosec // output path is chosen by the caller
	if err != nil {
		return err
	}
	if err := encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
