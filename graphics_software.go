package bongo

import (
	"errors"
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// SoftwareGraphics composites sprites on the CPU into an RGBA canvas. It is
// used for screenshots, the validator's preview and tests.
type SoftwareGraphics struct {
	Canvas *image.RGBA

	// Interp resamples transformed sprites. Defaults to bilinear.
	Interp draw.Interpolator

	created, destroyed int
}

// NewSoftwareGraphics returns a transparent w×h canvas.
func NewSoftwareGraphics(w, h int) *SoftwareGraphics {
	return &SoftwareGraphics{
		Canvas: image.NewRGBA(image.Rect(0, 0, w, h)),
		Interp: draw.BiLinear,
	}
}

type softwareTexture struct {
	img *image.NRGBA
}

func (t *softwareTexture) Size() (int, int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// CreateTexture wraps img's pixels. Images are immutable, so no copy is made.
func (g *SoftwareGraphics) CreateTexture(img *Image) (Texture, error) {
	if !img.valid() {
		return nil, errors.New("bongo: invalid image")
	}
	g.created++
	return &softwareTexture{img: img.NRGBA()}, nil
}

// DestroyTexture drops the texture.
func (g *SoftwareGraphics) DestroyTexture(tex Texture) {
	if t, ok := tex.(*softwareTexture); ok && t.img != nil {
		t.img = nil
		g.destroyed++
	}
}

// Live returns the number of textures created and not yet destroyed.
func (g *SoftwareGraphics) Live() int { return g.created - g.destroyed }

// Clear resets the canvas to transparent.
func (g *SoftwareGraphics) Clear() {
	clear(g.Canvas.Pix)
}

// DrawSprite composites tex over the canvas.
func (g *SoftwareGraphics) DrawSprite(tex Texture, d SpriteDraw) {
	t, ok := tex.(*softwareTexture)
	if !ok || t.img == nil {
		return
	}
	w, h := t.Size()
	m := spriteMatrix(d, w, h)

	if isTranslation(m) && m[4] == math.Trunc(m[4]) && m[5] == math.Trunc(m[5]) {
		dx, dy := int(m[4]), int(m[5])
		r := image.Rect(dx, dy, dx+w, dy+h)
		draw.Draw(g.Canvas, r, t.img, image.Point{}, draw.Over)
		return
	}

	interp := g.Interp
	if interp == nil {
		interp = draw.BiLinear
	}
	s2d := f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}
	interp.Transform(g.Canvas, s2d, t.img, t.img.Bounds(), draw.Over, nil)
}
