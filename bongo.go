package bongo

// Vec2 is a 2D vector used for pivots, offsets and mouse influence.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Hand identifies which of the avatar's hands owns a key.
type Hand uint8

const (
	HandLeft  Hand = iota // default owner of every key without a hint
	HandRight             // arrow keys and poses under a "righthand" path
)

// String returns "left" or "right".
func (h Hand) String() string {
	if h == HandRight {
		return "right"
	}
	return "left"
}

// LayerID identifies a slot in the avatar's fixed Z order. Lower values are
// drawn first.
type LayerID uint8

const (
	LayerBackground LayerID = iota // mode background
	LayerCatBody                   // cat body drawn over the background
	LayerFace                      // current face expression
	LayerKeyCap                    // pressed key cap overlays
	LayerLeftHand                  // left hand base or key pose
	LayerRightHand                 // right hand base or key pose
)

var layerNames = [...]string{
	LayerBackground: "background",
	LayerCatBody:    "cat_body",
	LayerFace:       "face",
	LayerKeyCap:     "key_cap",
	LayerLeftHand:   "left_hand",
	LayerRightHand:  "right_hand",
}

// String returns the layer's snake_case name.
func (l LayerID) String() string {
	if int(l) < len(layerNames) {
		return layerNames[l]
	}
	return "unknown"
}

// MouseButton identifies a mouse button reported by the host.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)
