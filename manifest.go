package bongo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Manifest file names inside an asset pack.
const (
	avatarManifestName = "avatar.json"
	configManifestName = "config.json"
	faceDirName        = "face"
	modeDirName        = "mode"
)

// ModeSchema tells which of the two mode manifest shapes a mode was loaded
// from. The shapes index hand frames differently, so the loader keeps them
// apart instead of normalising one into the other.
type ModeSchema uint8

const (
	SchemaKeyMapping ModeSchema = iota // "KeyMapping": name -> [cap, pose]
	SchemaLegacy                       // parallel KeyUse / KeysImageName / hand frame lists
)

// String returns "keymapping" or "legacy".
func (s ModeSchema) String() string {
	if s == SchemaLegacy {
		return "legacy"
	}
	return "keymapping"
}

// Settings are the avatar-wide defaults read from avatar.json.
type Settings struct {
	DefaultMode  string `json:"default_mode"`
	DefaultFace  string `json:"default_face,omitempty"`
	CanvasWidth  uint32 `json:"canvas_width"`
	CanvasHeight uint32 `json:"canvas_height"`
	FPS          uint32 `json:"fps"`
}

// --- JSON structure types ---

// avatarManifest is the consumed subset of avatar.json. Everything else in
// the file (faces, modes, keybindings, rendering, metadata) is ignored.
type avatarManifest struct {
	Avatar *struct {
		Name     string    `json:"name"`
		Settings *Settings `json:"settings"`
	} `json:"avatar"`
}

type faceManifest struct {
	HotKey        []string `json:"HotKey"`
	FaceImageName []string `json:"FaceImageName"`
}

type modeListManifest struct {
	ModelPath []string `json:"ModelPath"`
}

// modeManifest carries the fields of both shapes. Which ones are consulted
// depends on the schema detected by probeModeSchema.
type modeManifest struct {
	BackgroundImageName    string `json:"BackgroundImageName"`
	CatBackgroundImageName string `json:"CatBackgroundImageName"`

	// Live2D references are accepted but never interpreted.
	HasModel     bool   `json:"HasModel"`
	CatModelPath string `json:"CatModelPath"`

	KeyMapping map[string][]string `json:"KeyMapping"`

	KeysImagePath string   `json:"KeysImagePath"`
	KeysImageName []string `json:"KeysImageName"`
	KeyUse        []string `json:"KeyUse"`

	LeftHandImagePath   string   `json:"LeftHandImagePath"`
	LeftHandUpImageName string   `json:"LeftHandUpImageName"`
	LeftHandImageName   []string `json:"LeftHandImageName"`

	RightHandImagePath   string   `json:"RightHandImagePath"`
	RightHandUpImageName string   `json:"RightHandUpImageName"`
	RightHandImageName   []string `json:"RightHandImageName"`
}

// handFields returns the directory, up image and positional frame list for
// one side.
func (m *modeManifest) handFields(h Hand) (dir, up string, frames []string) {
	if h == HandRight {
		return m.RightHandImagePath, m.RightHandUpImageName, m.RightHandImageName
	}
	return m.LeftHandImagePath, m.LeftHandUpImageName, m.LeftHandImageName
}

// probeModeSchema detects the manifest shape from the presence of a
// non-null "KeyMapping" key.
func probeModeSchema(data []byte) (ModeSchema, error) {
	var probe struct {
		KeyMapping json.RawMessage `json:"KeyMapping"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return 0, err
	}
	if probe.KeyMapping != nil && !bytes.Equal(bytes.TrimSpace(probe.KeyMapping), []byte("null")) {
		return SchemaKeyMapping, nil
	}
	return SchemaLegacy, nil
}

// readManifest reads and decodes a JSON manifest, mapping failures onto the
// loader's error kinds.
func readManifest(path string, v any) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, missingFile(path, err)
		}
		return nil, ioError(path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return nil, parseError(path, fmt.Errorf("decode manifest: %w", err))
	}
	return data, nil
}
