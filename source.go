package bongo

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/go-homedir"
)

// Source is one avatar instance embedded in a host. The host serialises all
// calls: Tick, Render, Update and the input callbacks never run
// concurrently.
type Source struct {
	settings SourceSettings
	path     string // expanded AvatarPath

	log    hclog.Logger
	loader *AvatarLoader
	avatar *Avatar

	face     *FaceState
	input    InputSource
	capture  *InputCapture
	state    *InputState
	deformer *Deformer
	textures *TextureCache
	sink     EventSink

	audioLevel float64
	speaking   bool
	mouse      Vec2

	list              DrawList
	frame             uint64
	renderedOnce      bool
	missingModeLogged bool
	stats             RenderStats

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
}

// SourceOption configures NewSource.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	log           hclog.Logger
	input         InputSource
	noCapture     bool
	captureOpts   []CaptureOption
	loader        *AvatarLoader
	sink          EventSink
	deform        bool
	screenshotDir string
}

// WithLogger sets the logger for the source and everything it creates.
func WithLogger(log hclog.Logger) SourceOption {
	return func(c *sourceConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// WithInput makes the source poll in instead of opening an OS capture.
func WithInput(in InputSource) SourceOption {
	return func(c *sourceConfig) { c.input = in }
}

// WithoutCapture disables keyboard capture. Without WithInput the source
// then only reacts to the host callbacks.
func WithoutCapture() SourceOption {
	return func(c *sourceConfig) { c.noCapture = true }
}

// WithCaptureOptions passes opts to NewInputCapture.
func WithCaptureOptions(opts ...CaptureOption) SourceOption {
	return func(c *sourceConfig) { c.captureOpts = append(c.captureOpts, opts...) }
}

// WithAvatarLoader shares an avatar cache between sources.
func WithAvatarLoader(l *AvatarLoader) SourceOption {
	return func(c *sourceConfig) { c.loader = l }
}

// WithEventSink delivers the source's events to sink.
func WithEventSink(sink EventSink) SourceOption {
	return func(c *sourceConfig) { c.sink = sink }
}

// WithDeformation starts the source with the deformation pass enabled.
func WithDeformation(on bool) SourceOption {
	return func(c *sourceConfig) { c.deform = on }
}

// WithScreenshotDir sets Source.ScreenshotDir.
func WithScreenshotDir(dir string) SourceOption {
	return func(c *sourceConfig) { c.screenshotDir = dir }
}

// NewSource creates a source and loads its avatar. A failed load is logged
// and leaves the source drawing nothing until a later Update succeeds.
func NewSource(settings SourceSettings, opts ...SourceOption) *Source {
	cfg := sourceConfig{log: hclog.NewNullLogger(), screenshotDir: "screenshots"}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.loader == nil {
		cfg.loader = NewAvatarLoader(WithLoaderLogger(cfg.log.Named("loader")))
	}

	s := &Source{
		log:           cfg.log,
		loader:        cfg.loader,
		input:         cfg.input,
		state:         NewInputState(),
		deformer:      NewDeformer(),
		textures:      NewTextureCache(),
		sink:          cfg.sink,
		ScreenshotDir: cfg.screenshotDir,
	}
	s.deformer.SetEnabled(cfg.deform)

	if s.input == nil && !cfg.noCapture {
		opts := append([]CaptureOption{WithCaptureLogger(cfg.log.Named("input"))}, cfg.captureOpts...)
		capture, err := NewInputCapture(opts...)
		if err != nil {
			s.log.Warn("keyboard capture unavailable", "error", err)
		} else {
			s.capture = capture
			s.input = capture
		}
	}

	s.settings = settings.normalized()
	s.deformer.SetSpeed(s.settings.AnimationSpeed)
	s.load(s.settings.AvatarPath, false)
	return s
}

// expandPath resolves a leading ~ in an avatar path.
func expandPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

// load (re)loads the avatar at raw, resetting the face to the avatar's
// default.
func (s *Source) load(raw string, reload bool) {
	s.path = expandPath(raw)
	s.avatar = nil
	s.missingModeLogged = false
	s.renderedOnce = false
	if s.path == "" {
		s.face = NewFaceState(nil, "")
		return
	}

	start := time.Now()
	var (
		a   *Avatar
		err error
	)
	if reload {
		a, err = s.loader.Reload(s.path)
	} else {
		a, err = s.loader.Load(s.path)
	}
	if err != nil {
		s.log.Error("failed to load avatar", "path", s.path, "error", err)
		s.face = NewFaceState(nil, "")
		s.emit(AvatarEvent{Type: EventAvatarFailed, Path: s.path, Err: err})
		return
	}

	s.avatar = a
	s.face = NewFaceState(a.Face, initialFace(a))
	s.log.Info("avatar loaded", "name", a.Name, "path", s.path, "modes", a.ModeNames,
		"faces", len(a.Face.Images), "elapsed", time.Since(start))
	s.emit(AvatarEvent{Type: EventAvatarLoaded, Path: s.path, Avatar: a})
}

// initialFace picks the settings' default face, falling back to f1.
func initialFace(a *Avatar) string {
	if f := a.DefaultFace(); a.Face.Has(f) {
		return f
	}
	if a.Face.Has("f1") {
		return "f1"
	}
	return ""
}

// Update applies new settings. A changed avatar path drops every texture
// and reloads the pack from disk.
func (s *Source) Update(settings SourceSettings) {
	settings = settings.normalized()
	prevMode := s.ModeName()

	if expandPath(settings.AvatarPath) != s.path {
		s.textures.Clear()
		if s.path != "" {
			s.loader.Remove(s.path)
		}
		s.settings = settings
		s.load(settings.AvatarPath, true)
	} else {
		s.settings = settings
	}
	s.deformer.SetSpeed(settings.AnimationSpeed)

	if mode := s.ModeName(); mode != prevMode {
		s.missingModeLogged = false
		s.emit(AvatarEvent{Type: EventModeChanged, Mode: mode})
	}
}

// Settings returns the normalised settings in effect.
func (s *Source) Settings() SourceSettings { return s.settings }

// Avatar returns the loaded avatar, or nil.
func (s *Source) Avatar() *Avatar { return s.avatar }

// Width returns the canvas width.
func (s *Source) Width() uint32 { return s.settings.Width }

// Height returns the canvas height.
func (s *Source) Height() uint32 { return s.settings.Height }

// ModeName returns the mode being drawn: the configured one, or the
// avatar's default when none is configured.
func (s *Source) ModeName() string {
	if s.settings.Mode != "" || s.avatar == nil {
		return s.settings.Mode
	}
	return s.avatar.DefaultModeName()
}

// SetMode switches the drawn mode. An empty name selects the default.
func (s *Source) SetMode(name string) {
	settings := s.settings
	settings.Mode = name
	s.Update(settings)
}

// Face returns the active face key.
func (s *Source) Face() string { return s.face.Current() }

// SetFace selects a face by hotkey and reports whether it exists.
func (s *Source) SetFace(key string) bool {
	prev := s.face.Current()
	if !s.face.Set(key) {
		return false
	}
	if prev != key {
		s.emit(AvatarEvent{Type: EventFaceChanged, Face: key})
	}
	return true
}

// InputState returns the pressed-key state.
func (s *Source) InputState() *InputState { return s.state }

// Deformer returns the deformation pass.
func (s *Source) Deformer() *Deformer { return s.deformer }

// Devices lists the capture devices, if the source owns a capture.
func (s *Source) Devices() []DeviceInfo { return s.capture.Devices() }

// Tick polls input and advances time-based state by dt seconds.
func (s *Source) Tick(dt float64) {
	if s.input != nil {
		events := s.input.Poll()
		s.state.Apply(events)
		for _, e := range events {
			s.handleInput(e)
		}
	}
	s.speaking = s.audioLevel > s.settings.SpeechThreshold
	s.deformer.Update(dt)
}

func (s *Source) handleInput(e InputEvent) {
	switch e.Kind {
	case KeyPress:
		name := KeyName(e.Code)
		s.emit(AvatarEvent{Type: EventKeyPressed, Code: e.Code, Key: name})
		s.handleFaceKey(name)
	case KeyRelease:
		s.emit(AvatarEvent{Type: EventKeyReleased, Code: e.Code, Key: KeyName(e.Code)})
	}
}

func (s *Source) handleFaceKey(name string) {
	if name == "" {
		return
	}
	if s.face.HandleKey(name) {
		s.log.Debug("face changed", "face", s.face.Current(), "key", name)
		s.emit(AvatarEvent{Type: EventFaceChanged, Face: s.face.Current()})
	}
}

// KeyClick handles a host key callback. vkey is a Windows virtual-key code.
// Host key events only switch faces; the pressed set comes from capture.
func (s *Source) KeyClick(vkey uint32, pressed bool) {
	if !pressed || s.avatar == nil {
		return
	}
	code, ok := KeyCodeFromVK(vkey)
	if !ok {
		return
	}
	s.handleFaceKey(KeyName(code))
}

// MouseClick records a host mouse click. It has no visible effect.
func (s *Source) MouseClick(button MouseButton, pressed bool) {
	s.log.Trace("mouse click", "button", button, "pressed", pressed)
}

// MouseMove records the cursor position in canvas pixels. Only the
// deformation pass uses it.
func (s *Source) MouseMove(x, y float64) {
	s.mouse = Vec2{X: x, Y: y}
	s.deformer.SetMouse(x, y, float64(s.settings.Width), float64(s.settings.Height))
}

// Mouse returns the last cursor position.
func (s *Source) Mouse() Vec2 { return s.mouse }

// SetAudioLevel records the current audio level in [0,1].
func (s *Source) SetAudioLevel(level float64) { s.audioLevel = level }

// SetAudioSamples derives the audio level from one channel of samples as
// the mean absolute amplitude.
func (s *Source) SetAudioSamples(samples []float32) {
	if len(samples) == 0 {
		s.audioLevel = 0
		return
	}
	var sum float64
	for _, v := range samples {
		if v < 0 {
			v = -v
		}
		sum += float64(v)
	}
	s.audioLevel = sum / float64(len(samples))
}

// AudioLevel returns the recorded audio level.
func (s *Source) AudioLevel() float64 { return s.audioLevel }

// IsSpeaking reports whether the audio level exceeded the speech threshold
// at the last Tick.
func (s *Source) IsSpeaking() bool { return s.speaking }

// Frame returns the current draw list without drawing it. The slice is
// reused by the next Frame or Render.
func (s *Source) Frame() DrawList {
	mode := s.mode()
	if mode == nil {
		return s.list[:0]
	}
	s.list = AppendFrame(s.list[:0], mode, s.face.Image(), s.state.Pressed())
	s.deformer.Apply(s.list)
	return s.list
}

// mode returns the drawn mode, logging once when it is missing.
func (s *Source) mode() *Mode {
	if s.avatar == nil {
		return nil
	}
	name := s.ModeName()
	mode := s.avatar.Mode(name)
	if mode == nil && !s.missingModeLogged {
		s.log.Warn("mode not found", "mode", name, "available", s.avatar.AvailableModes)
		s.missingModeLogged = true
	}
	return mode
}

// Render draws the current frame with g.
func (s *Source) Render(g Graphics) {
	if s.avatar == nil || g == nil {
		return
	}
	if s.mode() == nil {
		return
	}
	start := time.Now()
	list := s.Frame()
	selected := time.Now()

	uploads := s.textures.Uploads()
	drawn := 0
	for i := range list {
		cmd := &list[i]
		tex, err := s.textures.Get(g, cmd.Image)
		if err != nil {
			s.log.Debug("texture upload failed", "path", cmd.Image.Path, "error", err)
			continue
		}
		g.DrawSprite(tex, SpriteDraw{
			X:         cmd.X,
			Y:         cmd.Y,
			W:         cmd.Image.Width,
			H:         cmd.Image.Height,
			Transform: cmd.Transform,
		})
		drawn++
	}

	s.stats = RenderStats{
		Frame:          s.frame,
		Commands:       len(list),
		DrawCalls:      drawn,
		Uploads:        s.textures.Uploads() - uploads,
		CachedTextures: s.textures.Len(),
		SelectTime:     selected.Sub(start),
		SubmitTime:     time.Since(selected),
	}
	if !s.renderedOnce {
		s.renderedOnce = true
		s.debugFirstRender()
	}
	s.debugLog(s.stats)
	s.frame++
}

// Stats returns the metrics of the last Render.
func (s *Source) Stats() RenderStats { return s.stats }

// Close releases every texture and the input capture.
func (s *Source) Close() error {
	s.textures.Clear()
	if s.capture == nil {
		return nil
	}
	err := s.capture.Close()
	s.capture = nil
	s.input = nil
	if err != nil {
		return fmt.Errorf("close input capture: %w", err)
	}
	return nil
}

func (s *Source) emit(e AvatarEvent) {
	if s.sink != nil {
		s.sink.HandleAvatarEvent(e)
	}
}
