package bongo

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DeformConfig parameterises the rigid motion applied to one layer.
// MaxRotation is in degrees.
type DeformConfig struct {
	Pivot           Vec2
	MaxRotation     float64
	MaxTranslation  Vec2
	BreathAmplitude float64
}

// Transform returns the layer matrix for a mouse influence in [-1,1]² and a
// breathing phase in [-1,1].
func (c DeformConfig) Transform(influence Vec2, breath float64) [6]float64 {
	rot := influence.X * c.MaxRotation * math.Pi / 180
	off := Vec2{
		X: influence.X * c.MaxTranslation.X,
		Y: influence.Y*c.MaxTranslation.Y + breath*c.BreathAmplitude,
	}
	return pivotTransform(c.Pivot, rot, off)
}

// DefaultDeformConfigs returns the stock per-layer configs for a 1280x768
// canvas. The background is not deformed and key caps follow the cat body.
func DefaultDeformConfigs() map[LayerID]DeformConfig {
	return map[LayerID]DeformConfig{
		LayerCatBody: {
			Pivot:           Vec2{X: 640, Y: 400},
			MaxRotation:     3,
			MaxTranslation:  Vec2{X: 10, Y: 5},
			BreathAmplitude: 3,
		},
		LayerFace: {
			Pivot:           Vec2{X: 640, Y: 300},
			MaxRotation:     8,
			MaxTranslation:  Vec2{X: 20, Y: 15},
			BreathAmplitude: 2,
		},
		LayerLeftHand: {
			Pivot:           Vec2{X: 100, Y: 50},
			MaxRotation:     15,
			MaxTranslation:  Vec2{X: 5, Y: 10},
			BreathAmplitude: 1,
		},
		LayerRightHand: {
			Pivot:           Vec2{X: 100, Y: 50},
			MaxRotation:     -15,
			MaxTranslation:  Vec2{X: -5, Y: 10},
			BreathAmplitude: 1,
		},
	}
}

// breathHalfPeriod is the time, in seconds at speed 1, for the breathing
// phase to swing from one extreme to the other.
const breathHalfPeriod = math.Pi / 2

// Deformer is the optional breathing and mouse-tilt pass over a DrawList.
// It starts disabled.
type Deformer struct {
	Configs map[LayerID]DeformConfig

	enabled   bool
	speed     float64
	influence Vec2

	tween  *gween.Tween
	rising bool
	breath float64
}

// NewDeformer returns a disabled deformer using DefaultDeformConfigs.
func NewDeformer() *Deformer {
	d := &Deformer{Configs: DefaultDeformConfigs(), speed: 1}
	d.tween = gween.New(-1, 1, breathHalfPeriod, ease.InOutSine)
	d.rising = true
	// Start mid-swing so the first frames sit at rest.
	val, _ := d.tween.Update(breathHalfPeriod / 2)
	d.breath = float64(val)
	return d
}

// Enabled reports whether Apply changes anything.
func (d *Deformer) Enabled() bool { return d.enabled }

// SetEnabled turns the pass on or off.
func (d *Deformer) SetEnabled(on bool) { d.enabled = on }

// Toggle flips the pass and returns the new state.
func (d *Deformer) Toggle() bool {
	d.enabled = !d.enabled
	return d.enabled
}

// SetSpeed scales breathing time. Non-positive speeds are ignored.
func (d *Deformer) SetSpeed(speed float64) {
	if speed > 0 {
		d.speed = speed
	}
}

// SetInfluence sets the mouse influence, clamped to [-1,1] on each axis.
func (d *Deformer) SetInfluence(v Vec2) {
	d.influence = Vec2{X: clampUnit(v.X), Y: clampUnit(v.Y)}
}

// SetMouse derives the influence from a cursor position on a w×h canvas:
// the offset from the centre divided by the canvas size.
func (d *Deformer) SetMouse(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		d.SetInfluence(Vec2{})
		return
	}
	d.SetInfluence(Vec2{X: (x - w/2) / w, Y: (y - h/2) / h})
}

// Influence returns the current mouse influence.
func (d *Deformer) Influence() Vec2 { return d.influence }

// Breath returns the breathing phase in [-1,1].
func (d *Deformer) Breath() float64 { return d.breath }

// Update advances breathing by dt seconds. The phase keeps running while
// the pass is disabled so enabling it does not jump.
func (d *Deformer) Update(dt float64) {
	val, finished := d.tween.Update(float32(dt * d.speed))
	d.breath = float64(val)
	if finished {
		d.rising = !d.rising
		from, to := float32(-1), float32(1)
		if !d.rising {
			from, to = to, from
		}
		d.tween = gween.New(from, to, breathHalfPeriod, ease.InOutSine)
	}
}

// Apply sets the transform of every command whose layer has a config.
// Key caps use the cat body config. Does nothing while disabled.
func (d *Deformer) Apply(list DrawList) {
	if !d.enabled {
		return
	}
	for i := range list {
		layer := list[i].Layer
		if layer == LayerKeyCap {
			layer = LayerCatBody
		}
		cfg, ok := d.Configs[layer]
		if !ok {
			continue
		}
		list[i].Transform = cfg.Transform(d.influence, d.breath)
	}
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
