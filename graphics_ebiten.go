package bongo

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// EbitenGraphics draws into an ebiten image, typically the screen passed to
// a game's Draw.
type EbitenGraphics struct {
	Target *ebiten.Image

	op ebiten.DrawImageOptions
}

// NewEbitenGraphics returns a Graphics drawing into target.
func NewEbitenGraphics(target *ebiten.Image) *EbitenGraphics {
	return &EbitenGraphics{Target: target}
}

type ebitenTexture struct {
	img *ebiten.Image
}

func (t *ebitenTexture) Size() (int, int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the underlying ebiten image.
func (t *ebitenTexture) Image() *ebiten.Image { return t.img }

// CreateTexture uploads img. Ebiten converts the straight alpha pixels to
// its premultiplied format.
func (g *EbitenGraphics) CreateTexture(img *Image) (Texture, error) {
	if !img.valid() {
		return nil, errors.New("bongo: invalid image")
	}
	return &ebitenTexture{img: ebiten.NewImageFromImage(img.NRGBA())}, nil
}

// DestroyTexture frees the texture's GPU memory.
func (g *EbitenGraphics) DestroyTexture(tex Texture) {
	if t, ok := tex.(*ebitenTexture); ok && t.img != nil {
		t.img.Deallocate()
		t.img = nil
	}
}

// DrawSprite draws tex with DrawImage.
func (g *EbitenGraphics) DrawSprite(tex Texture, d SpriteDraw) {
	t, ok := tex.(*ebitenTexture)
	if !ok || t.img == nil || g.Target == nil {
		return
	}
	w, h := t.Size()
	m := spriteMatrix(d, w, h)

	g.op.GeoM.Reset()
	g.op.GeoM.Concat(affineGeoM(m))
	g.op.Filter = ebiten.FilterNearest
	if !isTranslation(m) {
		g.op.Filter = ebiten.FilterLinear
	}
	g.Target.DrawImage(t.img, &g.op)
}

// affineGeoM converts a [6]float64 transform into an ebiten.GeoM.
func affineGeoM(t [6]float64) ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, t[0])
	m.SetElement(1, 0, t[1])
	m.SetElement(0, 1, t[2])
	m.SetElement(1, 1, t[3])
	m.SetElement(0, 2, t[4])
	m.SetElement(1, 2, t[5])
	return m
}

// isTranslation reports whether m only moves pixels.
func isTranslation(m [6]float64) bool {
	return m[0] == 1 && m[1] == 0 && m[2] == 0 && m[3] == 1
}
