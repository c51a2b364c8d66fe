package bongo

// Texture is a host-side copy of an Image ready to draw.
type Texture interface {
	Size() (w, h int)
}

// SpriteDraw describes one sprite blit. W and H are the destination size;
// a texture of a different size is scaled to fit. FlipV mirrors the sprite
// vertically inside its rectangle. Transform is applied last, in canvas
// space.
type SpriteDraw struct {
	X, Y      float64
	W, H      int
	FlipV     bool
	Transform [6]float64
}

// Graphics is the drawing surface a Source renders into. Calls are made
// from Render only.
type Graphics interface {
	CreateTexture(img *Image) (Texture, error)
	DestroyTexture(tex Texture)
	DrawSprite(tex Texture, d SpriteDraw)
}

// spriteMatrix maps texture pixels of a tw×th texture onto the canvas.
//
//	Scale(W/tw, H/th) -> FlipV -> Translate(X, Y) -> Transform
func spriteMatrix(d SpriteDraw, tw, th int) [6]float64 {
	sx, sy := 1.0, 1.0
	if tw > 0 && d.W > 0 {
		sx = float64(d.W) / float64(tw)
	}
	if th > 0 && d.H > 0 {
		sy = float64(d.H) / float64(th)
	}
	m := [6]float64{sx, 0, 0, sy, 0, 0}
	if d.FlipV {
		m[3] = -sy
		m[5] = sy * float64(th)
	}
	m = translateAffine(m, d.X, d.Y)
	if t := d.Transform; t != ([6]float64{}) && !isIdentity(t) {
		m = multiplyAffine(t, m)
	}
	return m
}
