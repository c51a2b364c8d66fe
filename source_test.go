package bongo

import (
	"path/filepath"
	"reflect"
	"testing"
)

func newTestSource(t *testing.T, settings SourceSettings, opts ...SourceOption) *Source {
	t.Helper()
	opts = append([]SourceOption{WithoutCapture()}, opts...)
	s := NewSource(settings, opts...)
	t.Cleanup(func() { s.Close() })
	return s
}

func settingsFor(path string) SourceSettings {
	s := DefaultSourceSettings()
	s.AvatarPath = path
	return s
}

func baseNames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

// addFace appends a face to the pack's face manifest.
func addFace(t *testing.T, root, hotkey, file string) {
	t.Helper()
	writeTestPNG(t, filepath.Join(root, "face", file), packW, packH, colFace2)
	writeTestJSON(t, filepath.Join(root, "face", "config.json"), map[string]any{
		"HotKey":        []string{"f1", hotkey},
		"FaceImageName": []string{"0.png", file},
	})
}

type eventLog []AvatarEvent

func (l *eventLog) sink() EventSink {
	return EventSinkFunc(func(e AvatarEvent) { *l = append(*l, e) })
}

func (l eventLog) types() []AvatarEventType {
	out := make([]AvatarEventType, len(l))
	for i, e := range l {
		out[i] = e.Type
	}
	return out
}

func TestSourceRenderNoPress(t *testing.T) {
	root := buildKeyMappingPack(t)
	s := newTestSource(t, settingsFor(root))

	if s.Avatar() == nil {
		t.Fatal("avatar not loaded")
	}
	if s.ModeName() != "keyboard" || s.Face() != "f1" {
		t.Errorf("mode %q face %q", s.ModeName(), s.Face())
	}

	g := &recordingGraphics{}
	s.Tick(1.0 / 60)
	s.Render(g)

	want := []string{"bg.png", "cat.png", "0.png", "lh.png", "rh.png"}
	if got := baseNames(g.drawnPaths()); !reflect.DeepEqual(got, want) {
		t.Errorf("drawn = %v, want %v", got, want)
	}
	for _, d := range g.draws {
		if d.X != 0 || d.Y != 0 || d.W != packW || d.H != packH || d.FlipV {
			t.Errorf("draw %s = %+v, want native size at origin", d.Path, d.SpriteDraw)
		}
	}
	st := s.Stats()
	if st.Commands != 5 || st.DrawCalls != 5 || st.Uploads != 5 || st.CachedTextures != 5 {
		t.Errorf("stats = %+v", st)
	}

	g.draws = nil
	s.Render(g)
	if len(g.created) != 5 {
		t.Errorf("second frame uploaded again: %v", g.created)
	}
	if s.Stats().Uploads != 0 || s.Stats().Frame != 1 {
		t.Errorf("second frame stats = %+v", s.Stats())
	}
}

func TestSourceRenderWithInjectedPress(t *testing.T) {
	root := buildKeyMappingPack(t)
	in := NewInjectedInput()
	s := newTestSource(t, settingsFor(root), WithInput(in))

	in.InjectPress(KeyA)
	s.Tick(1.0 / 60)
	g := &recordingGraphics{}
	s.Render(g)

	want := []string{"bg.png", "cat.png", "0.png", "a.png", "a_pose.png", "rh.png"}
	if got := baseNames(g.drawnPaths()); !reflect.DeepEqual(got, want) {
		t.Errorf("drawn = %v, want %v", got, want)
	}

	in.InjectRelease(KeyA)
	s.Tick(1.0 / 60)
	if got := s.Frame().Layers(); len(got) != 5 {
		t.Errorf("after release layers = %v", got)
	}
}

func TestSourceFaceSwitching(t *testing.T) {
	root := buildKeyMappingPack(t)
	addFace(t, root, "f2", "1.png")
	in := NewInjectedInput()
	var events eventLog
	s := newTestSource(t, settingsFor(root), WithInput(in), WithEventSink(events.sink()))

	in.InjectTap(Key2)
	s.Tick(0)
	if s.Face() != "f2" {
		t.Fatalf("face = %q after 2, want f2", s.Face())
	}
	face, ok := s.Frame().Find(LayerFace)
	if !ok || filepath.Base(face.Image.Path) != "1.png" {
		t.Errorf("face layer = %+v", face)
	}

	in.InjectTap(Key0)
	s.Tick(0)
	s.Tick(0)
	if s.Face() != "" {
		t.Errorf("face = %q after 0, want none", s.Face())
	}
	if _, ok := s.Frame().Find(LayerFace); ok {
		t.Error("cleared face should not be drawn")
	}

	// Host key clicks use virtual-key codes.
	s.KeyClick('1', true)
	if s.Face() != "f1" {
		t.Errorf("face = %q after VK 1, want f1", s.Face())
	}
	s.KeyClick('2', false)
	if s.Face() != "f1" {
		t.Error("key release should not switch faces")
	}
	if s.InputState().IsPressed(Key1) {
		t.Error("host key clicks must not feed the pressed set")
	}

	if !s.SetFace("f2") || s.SetFace("f9") {
		t.Error("SetFace should accept known faces only")
	}

	var faces []string
	for _, e := range events {
		if e.Type == EventFaceChanged {
			faces = append(faces, e.Face)
		}
	}
	if want := []string{"f2", "", "f1", "f2"}; !reflect.DeepEqual(faces, want) {
		t.Errorf("face events = %q, want %q", faces, want)
	}
}

func TestSourceSpeechThreshold(t *testing.T) {
	settings := DefaultSourceSettings()
	settings.SpeechThreshold = 0.3
	s := newTestSource(t, settings)

	s.SetAudioLevel(0.5)
	s.Tick(0)
	if !s.IsSpeaking() {
		t.Error("0.5 > 0.3 should be speaking")
	}
	s.SetAudioLevel(0.3)
	s.Tick(0)
	if s.IsSpeaking() {
		t.Error("level equal to the threshold is not speaking")
	}

	s.SetAudioSamples([]float32{0.5, -0.5, 0.25, -0.25})
	if got := s.AudioLevel(); got != 0.375 {
		t.Errorf("AudioLevel = %v, want 0.375", got)
	}
	s.Tick(0)
	if !s.IsSpeaking() {
		t.Error("mean amplitude 0.375 should be speaking")
	}
	s.SetAudioSamples(nil)
	if s.AudioLevel() != 0 {
		t.Error("no samples should mean silence")
	}
}

func TestSourceMissingMode(t *testing.T) {
	root := buildKeyMappingPack(t)
	settings := settingsFor(root)
	settings.Mode = "piano"
	s := newTestSource(t, settings)

	g := &recordingGraphics{}
	s.Render(g)
	s.Render(g)
	if len(g.draws) != 0 || len(g.created) != 0 {
		t.Errorf("missing mode drew %v", g.drawnPaths())
	}
	if !s.missingModeLogged {
		t.Error("missing mode should be logged")
	}

	s.SetMode("")
	if s.ModeName() != "keyboard" || s.missingModeLogged {
		t.Errorf("mode %q logged %v", s.ModeName(), s.missingModeLogged)
	}
	s.Render(g)
	if len(g.draws) != 5 {
		t.Errorf("default mode drew %d commands", len(g.draws))
	}
}

func TestSourceModeSwitch(t *testing.T) {
	root := buildKeyMappingPack(t)
	addLegacyMode(t, root, "legacy")
	var events eventLog
	s := newTestSource(t, settingsFor(root), WithEventSink(events.sink()))

	s.SetMode("legacy")
	if s.ModeName() != "legacy" {
		t.Fatalf("mode = %q", s.ModeName())
	}
	s.SetMode("legacy")

	want := []AvatarEventType{EventAvatarLoaded, EventModeChanged}
	if got := events.types(); !reflect.DeepEqual(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
	if events[1].Mode != "legacy" {
		t.Errorf("mode event = %+v", events[1])
	}
}

func TestSourceFailedLoad(t *testing.T) {
	var events eventLog
	s := newTestSource(t, settingsFor(filepath.Join(t.TempDir(), "missing")), WithEventSink(events.sink()))

	if s.Avatar() != nil {
		t.Fatal("avatar should be nil")
	}
	if len(events) != 1 || events[0].Type != EventAvatarFailed || events[0].Err == nil {
		t.Errorf("events = %+v", events)
	}

	g := &recordingGraphics{}
	s.Render(g)
	s.Tick(0.1)
	s.KeyClick('1', true)
	if len(g.draws) != 0 {
		t.Error("failed source should draw nothing")
	}
	if s.Width() != DefaultWidth || s.Height() != DefaultHeight {
		t.Errorf("size = %dx%d", s.Width(), s.Height())
	}
}

func TestSourceReloadOnPathChange(t *testing.T) {
	first := buildKeyMappingPack(t)
	second := buildKeyMappingPack(t)
	addLegacyMode(t, second, "legacy")

	loader := NewAvatarLoader()
	s := newTestSource(t, settingsFor(first), WithAvatarLoader(loader))
	old := s.Avatar()

	g := &recordingGraphics{}
	s.Render(g)
	if len(g.created) != 5 {
		t.Fatalf("created %d textures", len(g.created))
	}

	s.Update(settingsFor(second))
	if s.Avatar() == old || s.Avatar() == nil {
		t.Fatal("avatar should be replaced")
	}
	if s.Avatar().BaseDir != canonicalPath(second) {
		t.Errorf("BaseDir = %q", s.Avatar().BaseDir)
	}
	if len(g.destroyed) != 5 {
		t.Errorf("destroyed %d textures, want 5", len(g.destroyed))
	}
	if loader.Len() != 1 {
		t.Errorf("loader holds %d avatars, want only the new one", loader.Len())
	}

	s.Render(g)
	if len(g.created) != 10 {
		t.Errorf("new avatar should upload its own textures, created %d", len(g.created))
	}

	// Same path again keeps everything.
	s.Update(settingsFor(second))
	if len(g.destroyed) != 5 {
		t.Error("unchanged path should not clear textures")
	}
}

func TestSourceUpdateSettings(t *testing.T) {
	s := newTestSource(t, DefaultSourceSettings())
	s.Update(SourceSettings{Width: 50, Height: 5000, SpeechThreshold: 2, AnimationSpeed: 0})

	got := s.Settings()
	if got.Width != 100 || got.Height != 2160 {
		t.Errorf("size = %dx%d, want clamped 100x2160", got.Width, got.Height)
	}
	if got.SpeechThreshold != 1 || got.AnimationSpeed != DefaultAnimationSpeed {
		t.Errorf("threshold %v speed %v", got.SpeechThreshold, got.AnimationSpeed)
	}
}

func TestSourceKeyEvents(t *testing.T) {
	root := buildKeyMappingPack(t)
	in := NewInjectedInput()
	var events eventLog
	s := newTestSource(t, settingsFor(root), WithInput(in), WithEventSink(events.sink()))
	events = nil

	in.InjectEvents(KeyPressEvent(KeyA), KeyPressEvent(250), KeyReleaseEvent(KeyA))
	s.Tick(0)

	want := []AvatarEvent{
		{Type: EventKeyPressed, Code: KeyA, Key: "a"},
		{Type: EventKeyPressed, Code: 250},
		{Type: EventKeyReleased, Code: KeyA, Key: "a"},
	}
	if !reflect.DeepEqual([]AvatarEvent(events), want) {
		t.Errorf("events = %+v, want %+v", events, want)
	}
	if got := s.InputState().PressedCodes(); !reflect.DeepEqual(got, []uint32{250}) {
		t.Errorf("pressed = %v", got)
	}
}

func TestSourceDeformation(t *testing.T) {
	root := buildKeyMappingPack(t)
	s := newTestSource(t, settingsFor(root), WithDeformation(true))

	s.MouseMove(1280, 768)
	if s.Mouse() != (Vec2{X: 1280, Y: 768}) {
		t.Errorf("Mouse = %v", s.Mouse())
	}
	s.Tick(0.25)

	g := &recordingGraphics{}
	s.Render(g)
	moved := 0
	for _, d := range g.draws {
		if d.Transform != identityTransform {
			moved++
		}
	}
	if moved != 4 {
		t.Errorf("%d layers deformed, want 4 (all but the background)", moved)
	}

	s.Deformer().SetEnabled(false)
	g.draws = nil
	s.Render(g)
	for _, d := range g.draws {
		if d.Transform != identityTransform {
			t.Errorf("%s deformed while disabled", d.Path)
		}
	}
}

func TestSourceCloseReleasesTextures(t *testing.T) {
	root := buildKeyMappingPack(t)
	s := NewSource(settingsFor(root), WithoutCapture())
	g := &recordingGraphics{}
	s.Render(g)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if len(g.destroyed) != len(g.created) {
		t.Errorf("destroyed %d of %d textures", len(g.destroyed), len(g.created))
	}
}

func TestSourceSnapshot(t *testing.T) {
	root := buildKeyMappingPack(t)
	settings := settingsFor(root)
	settings.Width, settings.Height = 100, 100
	s := newTestSource(t, settings)

	img := s.Snapshot()
	if img.Bounds().Dx() != 100 {
		t.Fatalf("snapshot size %v", img.Bounds())
	}
	// The hands are drawn last and cover the top-left corner.
	if got := img.RGBAAt(0, 0); got.R != colHand.R || got.G != colHand.G || got.A != 255 {
		t.Errorf("corner = %v, want hand colour", got)
	}
	if got := img.RGBAAt(packW+1, packH+1); got.A != 0 {
		t.Errorf("outside sprites = %v, want transparent", got)
	}
}
