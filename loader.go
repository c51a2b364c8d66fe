package bongo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// HandFrames holds one hand's resting pose and the pose shown while each key
// it owns is held, indexed by input-event code.
type HandFrames struct {
	Base   *Image
	Frames map[uint32]*Image

	// Sequence is the positional frame list of a legacy manifest, in
	// manifest order. It is empty for KeyMapping modes.
	Sequence []*Image
}

// Frame returns the pose for code, or nil.
func (h *HandFrames) Frame(code uint32) *Image {
	if h == nil {
		return nil
	}
	return h.Frames[code]
}

func newHandFrames() *HandFrames {
	return &HandFrames{Frames: make(map[uint32]*Image)}
}

// KeyBinding is a key that participates in a mode.
type KeyBinding struct {
	Name string
	Code uint32
	Hand Hand
}

// Mode is one named scene variant of an avatar.
type Mode struct {
	Name   string
	Dir    string
	Schema ModeSchema

	Background *Image // nil when the manifest names none or it failed to decode
	CatBody    *Image

	LeftHand  *HandFrames
	RightHand *HandFrames

	// KeyImages maps key names to the cap sprite drawn while the key is held.
	KeyImages map[string]*Image

	// Keys lists every key name the mode binds, with its code and owning hand.
	Keys map[string]KeyBinding

	caps []KeyBinding
}

// Hand returns the frames for side h, or nil.
func (m *Mode) Hand(h Hand) *HandFrames {
	if h == HandRight {
		return m.RightHand
	}
	return m.LeftHand
}

// KeyNames returns the mode's bound key names sorted by code.
func (m *Mode) KeyNames() []string {
	names := make([]string, 0, len(m.Keys))
	for name := range m.Keys {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := m.Keys[names[i]], m.Keys[names[j]]
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		return a.Name < b.Name
	})
	return names
}

// Face maps face hotkey names to expression images.
type Face struct {
	Images map[string]*Image

	// HotKeys lists the successfully loaded hotkeys in manifest order.
	HotKeys []string
}

// Image returns the face for key, or nil.
func (f *Face) Image(key string) *Image {
	if f == nil {
		return nil
	}
	return f.Images[key]
}

// Has reports whether key names a loaded face.
func (f *Face) Has(key string) bool {
	return f.Image(key) != nil
}

// Avatar is a fully resolved asset pack.
type Avatar struct {
	Name    string
	BaseDir string

	// ConfigPath is the avatar.json the avatar was loaded from, if any.
	ConfigPath string

	Face *Face

	// AvailableModes is the mode list as written in mode/config.json.
	// ModeNames holds the subset that loaded, in the same order.
	AvailableModes []string
	ModeNames      []string
	Modes          map[string]*Mode

	// Settings is nil when the avatar was loaded from a bare directory.
	Settings *Settings
}

// Mode returns the named mode, or nil.
func (a *Avatar) Mode(name string) *Mode {
	if a == nil {
		return nil
	}
	return a.Modes[name]
}

// DefaultModeName returns the settings' default mode when it names a loaded
// mode, and the first loaded mode of the mode list otherwise.
func (a *Avatar) DefaultModeName() string {
	if a.Settings != nil && a.Modes[a.Settings.DefaultMode] != nil {
		return a.Settings.DefaultMode
	}
	if len(a.ModeNames) > 0 {
		return a.ModeNames[0]
	}
	return ""
}

// DefaultMode returns the mode named by DefaultModeName.
func (a *Avatar) DefaultMode() *Mode {
	return a.Mode(a.DefaultModeName())
}

// DefaultFace returns the settings' default face key, or "".
func (a *Avatar) DefaultFace() string {
	if a.Settings == nil {
		return ""
	}
	return a.Settings.DefaultFace
}

// Validate checks the avatar's invariants: at least one loaded mode, a
// default mode that loaded, and a default face present in the face map.
func (a *Avatar) Validate() error {
	var errs []error
	if len(a.Modes) == 0 {
		errs = append(errs, invalidConfig(a.BaseDir, "no modes loaded"))
	}
	if a.Settings != nil {
		if a.Settings.DefaultMode != "" && a.Modes[a.Settings.DefaultMode] == nil {
			errs = append(errs, invalidConfig(a.ConfigPath, "default mode %q is not loaded", a.Settings.DefaultMode))
		}
		if a.Settings.DefaultFace != "" && !a.Face.Has(a.Settings.DefaultFace) {
			errs = append(errs, invalidConfig(a.ConfigPath, "default face %q is not loaded", a.Settings.DefaultFace))
		}
	}
	return errors.Join(errs...)
}

// LoadOption configures LoadFromConfig and LoadFromDirectory.
type LoadOption func(*loader)

// WithLoaderLogger routes skipped-image and skipped-mode diagnostics to log.
func WithLoaderLogger(log hclog.Logger) LoadOption {
	return func(l *loader) {
		if log != nil {
			l.log = log
		}
	}
}

type loader struct {
	log hclog.Logger

	// images shares decoded images between references to the same file.
	images map[string]*Image
	failed map[string]error
}

func newLoader(opts []LoadOption) *loader {
	l := &loader{
		log:    hclog.NewNullLogger(),
		images: make(map[string]*Image),
		failed: make(map[string]error),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFromConfig reads the settings in an avatar.json and loads the asset
// pack in the directory containing it.
func LoadFromConfig(path string, opts ...LoadOption) (*Avatar, error) {
	abs := canonicalPath(path)

	var m avatarManifest
	if _, err := readManifest(abs, &m); err != nil {
		return nil, err
	}
	if m.Avatar == nil {
		return nil, parseError(abs, errors.New(`missing "avatar" object`))
	}

	l := newLoader(opts)
	a, err := l.loadDirectory(filepath.Dir(abs))
	if err != nil {
		return nil, err
	}
	a.ConfigPath = abs
	a.Settings = m.Avatar.Settings
	if m.Avatar.Name != "" {
		a.Name = m.Avatar.Name
	}
	if err := a.Validate(); err != nil {
		l.log.Warn("avatar settings do not match the loaded pack", "path", abs, "error", err)
	}
	return a, nil
}

// LoadFromDirectory loads the asset pack rooted at dir without settings.
func LoadFromDirectory(dir string, opts ...LoadOption) (*Avatar, error) {
	return newLoader(opts).loadDirectory(dir)
}

func (l *loader) loadDirectory(dir string) (*Avatar, error) {
	root := canonicalPath(dir)
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, missingFile(root, err)
		}
		return nil, ioError(root, err)
	}
	if !info.IsDir() {
		return nil, invalidConfig(root, "not a directory")
	}

	face, err := l.loadFace(filepath.Join(root, faceDirName))
	if err != nil {
		return nil, err
	}

	modeRoot := filepath.Join(root, modeDirName)
	var list modeListManifest
	listPath := filepath.Join(modeRoot, configManifestName)
	if _, err := readManifest(listPath, &list); err != nil {
		return nil, err
	}
	if len(list.ModelPath) == 0 {
		return nil, invalidConfig(listPath, "empty mode list")
	}

	a := &Avatar{
		Name:           filepath.Base(root),
		BaseDir:        root,
		Face:           face,
		AvailableModes: list.ModelPath,
		Modes:          make(map[string]*Mode, len(list.ModelPath)),
	}
	for _, name := range list.ModelPath {
		if _, dup := a.Modes[name]; dup {
			l.log.Warn("duplicate mode in mode list", "mode", name)
			continue
		}
		m, err := l.loadMode(filepath.Join(modeRoot, name), name)
		if err != nil {
			l.log.Warn("failed to load mode", "mode", name, "error", err)
			continue
		}
		a.Modes[name] = m
		a.ModeNames = append(a.ModeNames, name)
	}
	if len(a.Modes) == 0 {
		return nil, invalidConfig(modeRoot, "none of %d modes loaded", len(list.ModelPath))
	}

	l.log.Debug("avatar loaded", "name", a.Name, "modes", a.ModeNames,
		"faces", len(face.Images), "images", len(l.images), "skipped_images", len(l.failed))
	return a, nil
}

func (l *loader) loadFace(dir string) (*Face, error) {
	var m faceManifest
	path := filepath.Join(dir, configManifestName)
	if _, err := readManifest(path, &m); err != nil {
		return nil, err
	}
	if len(m.HotKey) != len(m.FaceImageName) {
		l.log.Warn("face manifest arrays differ in length, extra entries ignored",
			"path", path, "hotkeys", len(m.HotKey), "images", len(m.FaceImageName))
	}

	face := &Face{Images: make(map[string]*Image)}
	n := min(len(m.HotKey), len(m.FaceImageName))
	for i := 0; i < n; i++ {
		key := m.HotKey[i]
		img := l.image(dir, m.FaceImageName[i])
		if img == nil {
			continue
		}
		if _, dup := face.Images[key]; !dup {
			face.HotKeys = append(face.HotKeys, key)
		}
		face.Images[key] = img
	}
	return face, nil
}

func (l *loader) loadMode(dir, name string) (*Mode, error) {
	var m modeManifest
	path := filepath.Join(dir, configManifestName)
	data, err := readManifest(path, &m)
	if err != nil {
		return nil, err
	}
	schema, err := probeModeSchema(data)
	if err != nil {
		return nil, parseError(path, err)
	}

	mode := &Mode{
		Name:       name,
		Dir:        dir,
		Schema:     schema,
		Background: l.image(dir, m.BackgroundImageName),
		CatBody:    l.image(dir, m.CatBackgroundImageName),
		KeyImages:  make(map[string]*Image),
		Keys:       make(map[string]KeyBinding),
	}

	switch schema {
	case SchemaKeyMapping:
		l.loadKeyMapping(mode, &m)
	case SchemaLegacy:
		l.loadLegacy(mode, &m)
	}

	l.checkFrameSizes(mode, HandLeft)
	l.checkFrameSizes(mode, HandRight)
	mode.caps = sortedCaps(mode)
	return mode, nil
}

// loadKeyMapping fills a mode from the KeyMapping shape. Each entry's pose is
// filed under the hand chosen by ClassifyHand and indexed by key code. Every
// path is relative to the mode directory and the positional fields are
// ignored.
func (l *loader) loadKeyMapping(mode *Mode, m *modeManifest) {
	for _, h := range [...]Hand{HandLeft, HandRight} {
		_, up, _ := m.handFields(h)
		if base := l.image(mode.Dir, up); base != nil {
			l.ensureHand(mode, h).Base = base
		}
	}

	names := make([]string, 0, len(m.KeyMapping))
	for name := range m.KeyMapping {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		pair := m.KeyMapping[name]
		code, ok := KeyCode(name)
		if !ok {
			l.log.Debug("skipping unknown key name", "mode", mode.Name, "key", name)
			continue
		}
		if len(pair) == 0 {
			l.log.Warn("empty key mapping entry", "mode", mode.Name, "key", name)
			continue
		}

		var pose string
		if len(pair) > 1 {
			pose = pair[1]
		}
		hand := ClassifyHand(pose, code)
		mode.Keys[name] = KeyBinding{Name: name, Code: code, Hand: hand}

		if img := l.image(mode.Dir, pair[0]); img != nil {
			mode.KeyImages[name] = img
		}
		if img := l.image(mode.Dir, pose); img != nil {
			l.ensureHand(mode, hand).Frames[code] = img
		}
	}
}

// loadLegacy fills a mode from the positional shape. Frame i of a hand's
// list belongs to the key named KeyUse[i] when that key is owned by the hand.
func (l *loader) loadLegacy(mode *Mode, m *modeManifest) {
	codes := make([]uint32, len(m.KeyUse))
	known := make([]bool, len(m.KeyUse))
	for i, name := range m.KeyUse {
		code, ok := KeyCode(name)
		if !ok {
			l.log.Debug("skipping unknown key name", "mode", mode.Name, "key", name)
			continue
		}
		codes[i], known[i] = code, true
		mode.Keys[name] = KeyBinding{Name: name, Code: code, Hand: ClassifyHand("", code)}

		if i < len(m.KeysImageName) {
			if img := l.image(mode.Dir, joinRel(m.KeysImagePath, m.KeysImageName[i])); img != nil {
				mode.KeyImages[name] = img
			}
		}
	}
	if len(m.KeysImageName) != len(m.KeyUse) {
		l.log.Debug("legacy key arrays differ in length", "mode", mode.Name,
			"key_use", len(m.KeyUse), "key_images", len(m.KeysImageName))
	}

	for _, h := range [...]Hand{HandLeft, HandRight} {
		handDir, up, frameNames := m.handFields(h)
		if up == "" && len(frameNames) == 0 {
			continue
		}
		hf := l.ensureHand(mode, h)
		hf.Base = l.image(mode.Dir, joinRel(handDir, up))
		if hf.Base == nil {
			l.log.Warn("hand has no usable up image, layer will be omitted", "mode", mode.Name, "hand", h)
		}
		for i, frameName := range frameNames {
			img := l.image(mode.Dir, joinRel(handDir, frameName))
			if img == nil {
				continue
			}
			hf.Sequence = append(hf.Sequence, img)
			if i < len(codes) && known[i] && ClassifyHand("", codes[i]) == h {
				hf.Frames[codes[i]] = img
			}
		}
	}
}

func (l *loader) ensureHand(mode *Mode, h Hand) *HandFrames {
	if h == HandRight {
		if mode.RightHand == nil {
			mode.RightHand = newHandFrames()
		}
		return mode.RightHand
	}
	if mode.LeftHand == nil {
		mode.LeftHand = newHandFrames()
	}
	return mode.LeftHand
}

// checkFrameSizes logs frames whose dimensions differ from the hand's base.
// They are kept: the selector draws every frame at the canvas origin.
func (l *loader) checkFrameSizes(mode *Mode, h Hand) {
	hf := mode.Hand(h)
	if hf == nil || hf.Base == nil {
		return
	}
	for code, img := range hf.Frames {
		if img.Width != hf.Base.Width || img.Height != hf.Base.Height {
			l.log.Debug("hand frame size differs from base", "mode", mode.Name, "hand", h,
				"code", code, "frame", fmt.Sprintf("%dx%d", img.Width, img.Height),
				"base", fmt.Sprintf("%dx%d", hf.Base.Width, hf.Base.Height))
		}
	}
}

// image decodes dir/name once per load. Empty names yield nil silently;
// decode failures are logged and yield nil.
func (l *loader) image(dir, name string) *Image {
	if name == "" {
		return nil
	}
	path := canonicalPath(filepath.Join(dir, filepath.FromSlash(name)))
	if img, ok := l.images[path]; ok {
		return img
	}
	if _, failed := l.failed[path]; failed {
		return nil
	}
	img, err := DecodeImage(path)
	if err != nil {
		l.failed[path] = err
		l.log.Warn("skipping image", "path", path, "error", err)
		return nil
	}
	l.images[path] = img
	return img
}

// joinRel joins a manifest sub-directory and a file name, tolerating an empty
// sub-directory. The name is returned empty when there is nothing to load.
func joinRel(dir, name string) string {
	if name == "" {
		return ""
	}
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

// ClassifyHand decides which hand owns a KeyMapping pose. A pose path
// containing "righthand" wins over one containing "lefthand"; without either
// hint, arrow keys belong to the right hand and everything else to the left.
func ClassifyHand(posePath string, code uint32) Hand {
	switch {
	case strings.Contains(posePath, "righthand"):
		return HandRight
	case strings.Contains(posePath, "lefthand"):
		return HandLeft
	case IsArrowKey(code):
		return HandRight
	default:
		return HandLeft
	}
}
