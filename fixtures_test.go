package bongo

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestPNG writes a w×h PNG filled with c, creating parent directories.
func writeTestPNG(t testing.TB, path string, w, h int, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

// writeTestFile writes raw bytes, creating parent directories.
func writeTestFile(t testing.TB, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

// writeTestJSON marshals v into path.
func writeTestJSON(t testing.TB, path string, v any) {
	t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatal(err)
	}
	writeTestFile(t, path, data)
}

// Distinct fill colours so decoded images can be told apart.
var (
	colBG    = color.NRGBA{R: 200, G: 200, B: 255, A: 255}
	colCat   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colFace  = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	colFace2 = color.NRGBA{R: 40, G: 0, B: 0, A: 255}
	colHand  = color.NRGBA{R: 250, G: 220, B: 200, A: 255}
	colPose  = color.NRGBA{R: 250, G: 100, B: 100, A: 255}
	colKey   = color.NRGBA{R: 10, G: 10, B: 10, A: 128}
)

const packW, packH = 8, 6

// buildKeyMappingPack writes the cold-load pack: one face, one KeyMapping
// mode with background, cat body, both hand bases and a pose for A.
// Returns the pack root.
func buildKeyMappingPack(t testing.TB) string {
	t.Helper()
	root := t.TempDir()

	writeTestPNG(t, filepath.Join(root, "face", "0.png"), packW, packH, colFace)
	writeTestJSON(t, filepath.Join(root, "face", "config.json"), map[string]any{
		"HotKey":        []string{"f1"},
		"FaceImageName": []string{"0.png"},
	})
	writeTestJSON(t, filepath.Join(root, "mode", "config.json"), map[string]any{
		"ModelPath": []string{"keyboard"},
	})

	mode := filepath.Join(root, "mode", "keyboard")
	writeTestPNG(t, filepath.Join(mode, "bg.png"), packW, packH, colBG)
	writeTestPNG(t, filepath.Join(mode, "cat.png"), packW, packH, colCat)
	writeTestPNG(t, filepath.Join(mode, "lh.png"), packW, packH, colHand)
	writeTestPNG(t, filepath.Join(mode, "rh.png"), packW, packH, colHand)
	writeTestPNG(t, filepath.Join(mode, "keys", "a.png"), packW, packH, colKey)
	writeTestPNG(t, filepath.Join(mode, "lefthand", "a_pose.png"), packW, packH, colPose)
	writeTestJSON(t, filepath.Join(mode, "config.json"), map[string]any{
		"BackgroundImageName":    "bg.png",
		"CatBackgroundImageName": "cat.png",
		"LeftHandUpImageName":    "lh.png",
		"RightHandUpImageName":   "rh.png",
		"KeyMapping": map[string][]string{
			"a": {"keys/a.png", "lefthand/a_pose.png"},
		},
	})
	return root
}

// addLegacyMode adds a positional mode called name to a pack and appends
// it to the mode list.
func addLegacyMode(t testing.TB, root, name string) {
	t.Helper()
	mode := filepath.Join(root, "mode", name)
	writeTestPNG(t, filepath.Join(mode, "bg.png"), packW, packH, colBG)
	writeTestPNG(t, filepath.Join(mode, "cat.png"), packW, packH, colCat)
	writeTestPNG(t, filepath.Join(mode, "keys", "space.png"), packW, packH, colKey)
	writeTestPNG(t, filepath.Join(mode, "lh", "up.png"), packW, packH, colHand)
	writeTestPNG(t, filepath.Join(mode, "lh", "down.png"), packW, packH, colPose)
	writeTestJSON(t, filepath.Join(mode, "config.json"), map[string]any{
		"BackgroundImageName":    "bg.png",
		"CatBackgroundImageName": "cat.png",
		"KeyUse":                 []string{"space"},
		"KeysImagePath":          "keys",
		"KeysImageName":          []string{"space.png"},
		"LeftHandImagePath":      "lh",
		"LeftHandUpImageName":    "up.png",
		"LeftHandImageName":      []string{"down.png"},
	})

	var list modeListManifest
	data, err := os.ReadFile(filepath.Join(root, "mode", "config.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &list); err != nil {
		t.Fatal(err)
	}
	list.ModelPath = append(list.ModelPath, name)
	writeTestJSON(t, filepath.Join(root, "mode", "config.json"), list)
}

// writeAvatarJSON writes avatar.json with the given settings.
func writeAvatarJSON(t testing.TB, root, name string, settings *Settings) string {
	t.Helper()
	path := filepath.Join(root, "avatar.json")
	avatar := map[string]any{"name": name}
	if settings != nil {
		avatar["settings"] = settings
	}
	writeTestJSON(t, path, map[string]any{"avatar": avatar})
	return path
}
