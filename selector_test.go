package bongo

import (
	"image"
	"reflect"
	"testing"
)

// solidImage returns a 2×2 image tagged with name.
func solidImage(name string) *Image {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return NewImageFromImage(name, img)
}

// testMode mirrors the cold-load pack in memory.
func testMode() *Mode {
	left := newHandFrames()
	left.Base = solidImage("lh.png")
	left.Frames[KeyA] = solidImage("lefthand/a_pose.png")
	left.Frames[KeyS] = solidImage("lefthand/s_pose.png")

	right := newHandFrames()
	right.Base = solidImage("rh.png")
	right.Frames[KeyUp] = solidImage("righthand/up_pose.png")

	return &Mode{
		Name:       "keyboard",
		Background: solidImage("bg.png"),
		CatBody:    solidImage("cat.png"),
		LeftHand:   left,
		RightHand:  right,
		KeyImages: map[string]*Image{
			"a":  solidImage("keys/a.png"),
			"s":  solidImage("keys/s.png"),
			"up": solidImage("keys/up.png"),
		},
		Keys: map[string]KeyBinding{
			"a":  {Name: "a", Code: KeyA, Hand: HandLeft},
			"s":  {Name: "s", Code: KeyS, Hand: HandLeft},
			"up": {Name: "up", Code: KeyUp, Hand: HandRight},
		},
	}
}

func imagePaths(list DrawList) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.Image.Path
	}
	return out
}

func TestSelectFrameNoPress(t *testing.T) {
	m := testMode()
	face := solidImage("0.png")

	list := SelectFrame(m, face, NewPressedSet())
	want := []string{"bg.png", "cat.png", "0.png", "lh.png", "rh.png"}
	if got := imagePaths(list); !reflect.DeepEqual(got, want) {
		t.Errorf("images = %v, want %v", got, want)
	}
	wantLayers := []LayerID{LayerBackground, LayerCatBody, LayerFace, LayerLeftHand, LayerRightHand}
	if got := list.Layers(); !reflect.DeepEqual(got, wantLayers) {
		t.Errorf("layers = %v, want %v", got, wantLayers)
	}
	for _, c := range list {
		if c.X != 0 || c.Y != 0 {
			t.Errorf("%v at %v,%v, want origin", c.Layer, c.X, c.Y)
		}
		if c.Transform != identityTransform {
			t.Errorf("%v transform = %v, want identity", c.Layer, c.Transform)
		}
	}
}

func TestSelectFrameWithA(t *testing.T) {
	list := SelectFrame(testMode(), solidImage("0.png"), NewPressedSet(KeyA))
	want := []string{"bg.png", "cat.png", "0.png", "keys/a.png", "lefthand/a_pose.png", "rh.png"}
	if got := imagePaths(list); !reflect.DeepEqual(got, want) {
		t.Errorf("images = %v, want %v", got, want)
	}
	kc, ok := list.Find(LayerKeyCap)
	if !ok || kc.Key != "a" || kc.Code != KeyA {
		t.Errorf("cap = %+v", kc)
	}
}

func TestSelectFrameRightHandArrow(t *testing.T) {
	list := SelectFrame(testMode(), nil, NewPressedSet(KeyUp))
	want := []string{"bg.png", "cat.png", "keys/up.png", "lh.png", "righthand/up_pose.png"}
	if got := imagePaths(list); !reflect.DeepEqual(got, want) {
		t.Errorf("images = %v, want %v", got, want)
	}
}

func TestSelectFrameHandTieBreak(t *testing.T) {
	m := testMode()
	list := SelectFrame(m, nil, NewPressedSet(KeyA, KeyS))
	lh, ok := list.Find(LayerLeftHand)
	if !ok {
		t.Fatal("left hand missing")
	}
	if lh.Image != m.LeftHand.Frames[KeyA] && lh.Image != m.LeftHand.Frames[KeyS] {
		t.Errorf("left hand = %s, want one of the held poses", lh.Image.Path)
	}
	caps := 0
	for _, c := range list {
		if c.Layer == LayerKeyCap {
			caps++
		}
	}
	if caps != 2 {
		t.Errorf("caps = %d, want 2", caps)
	}
}

func TestSelectFrameCapGating(t *testing.T) {
	m := testMode()
	pressed := NewPressedSet(KeyS, KeyZ)
	list := SelectFrame(m, nil, pressed)
	for _, c := range list {
		if c.Layer == LayerKeyCap && !pressed.Has(c.Code) {
			t.Errorf("cap %q drawn without its key held", c.Key)
		}
	}
	if _, ok := list.Find(LayerKeyCap); !ok {
		t.Error("cap for held s missing")
	}
}

func TestSelectFrameCapsInCodeOrder(t *testing.T) {
	list := SelectFrame(testMode(), nil, NewPressedSet(KeyUp, KeyS, KeyA))
	var keys []string
	for _, c := range list {
		if c.Layer == LayerKeyCap {
			keys = append(keys, c.Key)
		}
	}
	if want := []string{"a", "s", "up"}; !reflect.DeepEqual(keys, want) {
		t.Errorf("caps = %v, want %v", keys, want)
	}
}

func TestSelectFrameNilMode(t *testing.T) {
	if list := SelectFrame(nil, solidImage("0.png"), NewPressedSet(KeyA)); len(list) != 0 {
		t.Errorf("nil mode gave %v", list.Layers())
	}
}

func TestSelectFrameHandWithoutBase(t *testing.T) {
	m := testMode()
	m.LeftHand.Base = nil
	m.RightHand = nil

	list := SelectFrame(m, nil, NewPressedSet(KeyA))
	if _, ok := list.Find(LayerLeftHand); ok {
		t.Error("left hand without base should be omitted even with a held pose")
	}
	if _, ok := list.Find(LayerRightHand); ok {
		t.Error("absent right hand should be omitted")
	}
}

func TestSelectFrameElidesAbsentLayers(t *testing.T) {
	m := testMode()
	m.Background = nil
	m.CatBody = nil

	got := SelectFrame(m, nil, nil).Layers()
	want := []LayerID{LayerLeftHand, LayerRightHand}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("layers = %v, want %v", got, want)
	}
}

func TestAppendFrameReusesBuffer(t *testing.T) {
	m := testMode()
	buf := make(DrawList, 0, 16)
	list := AppendFrame(buf[:0], m, nil, NewPressedSet())
	if &list[0] != &buf[:1][0] {
		t.Error("AppendFrame should write into the provided buffer")
	}
}

func TestCapBindingsUnknownName(t *testing.T) {
	m := testMode()
	m.KeyImages["mystery"] = solidImage("keys/mystery.png")
	for _, kb := range m.capBindings() {
		if kb.Name == "mystery" {
			t.Error("unknown cap name should be skipped")
		}
	}
}

func BenchmarkSelectFrame(b *testing.B) {
	m := testMode()
	face := solidImage("0.png")
	pressed := NewPressedSet(KeyA, KeyUp)
	var buf DrawList
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf = AppendFrame(buf[:0], m, face, pressed)
	}
}
