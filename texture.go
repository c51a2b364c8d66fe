package bongo

// TextureCache uploads each Image once and hands back the same Texture on
// later frames. Entries are keyed by the image's canonical path. All
// textures belong to one Graphics; switching to another clears the cache.
type TextureCache struct {
	owner    Graphics
	textures map[string]Texture
	uploads  int
}

// NewTextureCache returns an empty cache.
func NewTextureCache() *TextureCache {
	return &TextureCache{textures: make(map[string]Texture)}
}

// Get returns the texture for img, creating it with g on first use.
func (c *TextureCache) Get(g Graphics, img *Image) (Texture, error) {
	if c.owner != nil && c.owner != g {
		c.Clear()
	}
	c.owner = g
	if tex, ok := c.textures[img.Path]; ok {
		return tex, nil
	}
	tex, err := g.CreateTexture(img)
	if err != nil {
		return nil, err
	}
	c.textures[img.Path] = tex
	c.uploads++
	return tex, nil
}

// Clear destroys every cached texture.
func (c *TextureCache) Clear() {
	if c.owner != nil {
		for _, tex := range c.textures {
			c.owner.DestroyTexture(tex)
		}
	}
	clear(c.textures)
	c.owner = nil
}

// Len returns the number of cached textures.
func (c *TextureCache) Len() int { return len(c.textures) }

// Uploads returns how many textures have been created since the cache was
// made.
func (c *TextureCache) Uploads() int { return c.uploads }
