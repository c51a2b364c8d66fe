package bongo

import "sort"

// DrawCommand places one image on the canvas. X and Y are always the canvas
// origin for selector output; images carry their own placement in their
// pixels. Transform is applied after placement and is the identity unless a
// Deformer changed it.
type DrawCommand struct {
	Layer     LayerID
	Image     *Image
	X, Y      float64
	Key       string // key cap or hand pose key; empty otherwise
	Code      uint32
	Transform [6]float64
}

// DrawList is the ordered output of one selection, painted first to last.
type DrawList []DrawCommand

// Layers returns the layer of every command in order.
func (l DrawList) Layers() []LayerID {
	out := make([]LayerID, len(l))
	for i, c := range l {
		out[i] = c.Layer
	}
	return out
}

// Find returns the first command on layer, if any.
func (l DrawList) Find(layer LayerID) (DrawCommand, bool) {
	for _, c := range l {
		if c.Layer == layer {
			return c, true
		}
	}
	return DrawCommand{}, false
}

// SelectFrame builds the draw list for one frame. A nil mode yields an empty
// list.
func SelectFrame(mode *Mode, face *Image, pressed PressedSet) DrawList {
	return AppendFrame(nil, mode, face, pressed)
}

// AppendFrame is SelectFrame appending to dst, so a host can reuse one
// buffer across frames.
func AppendFrame(dst DrawList, mode *Mode, face *Image, pressed PressedSet) DrawList {
	if mode == nil {
		return dst
	}
	dst = appendImage(dst, LayerBackground, mode.Background, "", 0)
	dst = appendImage(dst, LayerCatBody, mode.CatBody, "", 0)
	dst = appendImage(dst, LayerFace, face, "", 0)

	for _, kb := range mode.capBindings() {
		if pressed.Has(kb.Code) {
			dst = appendImage(dst, LayerKeyCap, mode.KeyImages[kb.Name], kb.Name, kb.Code)
		}
	}

	dst = appendHand(dst, LayerLeftHand, mode.LeftHand, pressed)
	dst = appendHand(dst, LayerRightHand, mode.RightHand, pressed)
	return dst
}

func appendImage(dst DrawList, layer LayerID, img *Image, key string, code uint32) DrawList {
	if img == nil {
		return dst
	}
	return append(dst, DrawCommand{
		Layer:     layer,
		Image:     img,
		Key:       key,
		Code:      code,
		Transform: identityTransform,
	})
}

// appendHand emits the pose of some held key the hand owns, or its base.
// When several held keys qualify, whichever the pressed set yields first
// wins. A hand without a base image is omitted entirely.
func appendHand(dst DrawList, layer LayerID, hf *HandFrames, pressed PressedSet) DrawList {
	if hf == nil || hf.Base == nil {
		return dst
	}
	for code := range pressed {
		if img := hf.Frames[code]; img != nil {
			return appendImage(dst, layer, img, KeyName(code), code)
		}
	}
	return appendImage(dst, layer, hf.Base, "", 0)
}

// capBindings returns the bindings that have a cap image, ordered by code.
// The order only makes output reproducible; caps are expected not to
// overlap. Loaded modes carry the list precomputed.
func (m *Mode) capBindings() []KeyBinding {
	if m.caps != nil {
		return m.caps
	}
	return sortedCaps(m)
}

func sortedCaps(m *Mode) []KeyBinding {
	caps := make([]KeyBinding, 0, len(m.KeyImages))
	for name := range m.KeyImages {
		kb, ok := m.Keys[name]
		if !ok {
			code, known := KeyCode(name)
			if !known {
				continue
			}
			kb = KeyBinding{Name: name, Code: code, Hand: ClassifyHand("", code)}
		}
		caps = append(caps, kb)
	}
	sort.Slice(caps, func(i, j int) bool {
		if caps[i].Code != caps[j].Code {
			return caps[i].Code < caps[j].Code
		}
		return caps[i].Name < caps[j].Name
	})
	return caps
}
