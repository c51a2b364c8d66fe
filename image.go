package bongo

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
)

// Image is a decoded sprite. Pix holds straight (non-premultiplied) RGBA8
// samples in row-major order with the origin at the top-left, so
// len(Pix) == 4*Width*Height. Images are never mutated after decoding and are
// identified by their canonical Path.
type Image struct {
	Path   string
	Width  int
	Height int
	Pix    []byte
}

// DecodeImage reads and decodes the PNG file at path. The path is made
// absolute (and symlinks resolved) before use so it can serve as a cache key.
func DecodeImage(path string) (*Image, error) {
	abs := canonicalPath(path)

	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, missingFile(abs, err)
		}
		return nil, ioError(abs, err)
	}

	if !filetype.Is(data, "png") {
		return nil, parseError(abs, fmt.Errorf("not a png image (detected %s)", sniffType(data)))
	}

	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, parseError(abs, err)
	}
	return NewImageFromImage(abs, src), nil
}

// NewImageFromImage converts any image.Image into an Image with the given
// path. Already-tight *image.NRGBA sources are adopted without copying.
func NewImageFromImage(path string, src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) && n.Stride == 4*w {
		return &Image{Path: path, Width: w, Height: h, Pix: n.Pix[:4*w*h]}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return &Image{Path: path, Width: w, Height: h, Pix: dst.Pix}
}

// NRGBA returns an *image.NRGBA view sharing the image's pixel buffer.
// Callers must not modify the returned pixels.
func (img *Image) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    img.Pix,
		Stride: 4 * img.Width,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
}

// Bounds returns the image rectangle anchored at the origin.
func (img *Image) Bounds() Rect {
	return Rect{Width: float64(img.Width), Height: float64(img.Height)}
}

// valid reports whether the buffer size matches the dimensions.
func (img *Image) valid() bool {
	return img != nil && img.Width >= 0 && img.Height >= 0 && len(img.Pix) == 4*img.Width*img.Height
}

// canonicalPath returns an absolute, symlink-free form of path when the file
// exists, and the cleaned absolute path otherwise.
func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

func sniffType(data []byte) string {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return "unknown"
	}
	return kind.MIME.Value
}
