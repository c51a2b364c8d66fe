package bongo

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Snapshot composes the current frame on the CPU at the canvas size.
func (s *Source) Snapshot() *image.RGBA {
	g := NewSoftwareGraphics(int(s.settings.Width), int(s.settings.Height))
	for _, cmd := range s.Frame() {
		tex, err := g.CreateTexture(cmd.Image)
		if err != nil {
			continue
		}
		g.DrawSprite(tex, SpriteDraw{
			X:         cmd.X,
			Y:         cmd.Y,
			W:         cmd.Image.Width,
			H:         cmd.Image.Height,
			Transform: cmd.Transform,
		})
	}
	return g.Canvas
}

// Screenshot writes the current frame to ScreenshotDir as a PNG file named
// after the time and label, and returns its path.
func (s *Source) Screenshot(label string) (string, error) {
	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: mkdir %s: %w", s.ScreenshotDir, err)
	}
	stamp := time.Now().Format("20060102_150405")
	path := filepath.Join(s.ScreenshotDir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
	if err := writePNG(path, s.Snapshot()); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	s.log.Info("screenshot written", "path", path)
	return path, nil
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
