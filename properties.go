package bongo

import "math"

// Default source settings.
const (
	DefaultWidth           = 1280
	DefaultHeight          = 768
	DefaultSpeechThreshold = 0.15
	DefaultAnimationSpeed  = 1.0
)

// SourceSettings is the host-editable configuration of a Source.
type SourceSettings struct {
	// AvatarPath names an avatar.json or a pack directory. A leading ~ is
	// expanded to the home directory.
	AvatarPath string

	// Mode selects the mode to draw. Empty means the avatar's default.
	Mode string

	Width, Height   uint32
	SpeechThreshold float64
	AnimationSpeed  float64
}

// DefaultSourceSettings returns the settings a new source starts from.
func DefaultSourceSettings() SourceSettings {
	return SourceSettings{
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		SpeechThreshold: DefaultSpeechThreshold,
		AnimationSpeed:  DefaultAnimationSpeed,
	}
}

// PropertyKind is the editor type of a Property.
type PropertyKind uint8

const (
	PropertyPath  PropertyKind = iota // file path
	PropertyText                      // free text
	PropertyInt                       // integer with a range
	PropertyFloat                     // float with a range and step
)

var propertyKindNames = [...]string{
	PropertyPath:  "path",
	PropertyText:  "text",
	PropertyInt:   "int",
	PropertyFloat: "float",
}

func (k PropertyKind) String() string {
	if int(k) < len(propertyKindNames) {
		return propertyKindNames[k]
	}
	return "unknown"
}

// Property declares one setting for the host's editor.
type Property struct {
	Name        string
	Description string
	Kind        PropertyKind

	// Range and step of numeric properties. Slider asks the host for a
	// slider widget.
	Min, Max, Step float64
	Slider         bool
}

// Clamp limits v to the property's range. Non-numeric properties return v
// unchanged.
func (p Property) Clamp(v float64) float64 {
	if p.Kind != PropertyInt && p.Kind != PropertyFloat {
		return v
	}
	v = math.Max(p.Min, math.Min(p.Max, v))
	if p.Kind == PropertyInt {
		v = math.Round(v)
	}
	return v
}

// Property names, as used by hosts to store settings.
const (
	PropAvatarPath      = "avatar_path"
	PropMode            = "mode"
	PropWidth           = "width"
	PropHeight          = "height"
	PropSpeechThreshold = "speech_threshold"
	PropAnimationSpeed  = "animation_speed"
)

var sourceProperties = []Property{
	{Name: PropAvatarPath, Description: "Avatar JSON file", Kind: PropertyPath},
	{Name: PropMode, Description: "Current Mode (e.g., keyboard, standard)", Kind: PropertyText},
	{Name: PropWidth, Description: "Canvas Width", Kind: PropertyInt, Min: 100, Max: 3840, Step: 1},
	{Name: PropHeight, Description: "Canvas Height", Kind: PropertyInt, Min: 100, Max: 2160, Step: 1},
	{Name: PropSpeechThreshold, Description: "Speech Detection Threshold", Kind: PropertyFloat, Min: 0, Max: 1, Step: 0.01, Slider: true},
	{Name: PropAnimationSpeed, Description: "Animation Speed", Kind: PropertyFloat, Min: 0.1, Max: 20, Step: 0.1, Slider: true},
}

// Properties returns the settings a Source exposes, in display order.
func Properties() []Property {
	return append([]Property(nil), sourceProperties...)
}

// LookupProperty returns the property called name.
func LookupProperty(name string) (Property, bool) {
	for _, p := range sourceProperties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// normalized fills zero values with defaults and clamps numbers to their
// property ranges.
func (s SourceSettings) normalized() SourceSettings {
	d := DefaultSourceSettings()
	if s.Width == 0 {
		s.Width = d.Width
	}
	if s.Height == 0 {
		s.Height = d.Height
	}
	if s.AnimationSpeed == 0 {
		s.AnimationSpeed = d.AnimationSpeed
	}
	if math.IsNaN(s.SpeechThreshold) {
		s.SpeechThreshold = d.SpeechThreshold
	}
	w, _ := LookupProperty(PropWidth)
	h, _ := LookupProperty(PropHeight)
	th, _ := LookupProperty(PropSpeechThreshold)
	sp, _ := LookupProperty(PropAnimationSpeed)
	s.Width = uint32(w.Clamp(float64(s.Width)))
	s.Height = uint32(h.Clamp(float64(s.Height)))
	s.SpeechThreshold = th.Clamp(s.SpeechThreshold)
	s.AnimationSpeed = sp.Clamp(s.AnimationSpeed)
	return s
}
