package bongo

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-hclog"
)

// InputEventKind identifies a kind of raw input transition.
type InputEventKind uint8

const (
	KeyPress           InputEventKind = iota // key went down (Code)
	KeyRelease                               // key went up (Code)
	MouseMove                                // relative motion (DX, DY)
	MouseButtonPress                         // button went down (Code)
	MouseButtonRelease                       // button went up (Code)
	MouseScroll                              // wheel motion (DX horizontal, DY vertical)
)

var inputEventKindNames = [...]string{
	KeyPress:           "KeyPress",
	KeyRelease:         "KeyRelease",
	MouseMove:          "MouseMove",
	MouseButtonPress:   "MouseButtonPress",
	MouseButtonRelease: "MouseButtonRelease",
	MouseScroll:        "MouseScroll",
}

func (k InputEventKind) String() string {
	if int(k) < len(inputEventKindNames) {
		return inputEventKindNames[k]
	}
	return fmt.Sprintf("InputEventKind(%d)", k)
}

// InputEvent is one transition reported by an input source. Key codes use
// the Linux input-event numbering on every platform.
type InputEvent struct {
	Kind   InputEventKind
	Code   uint32
	DX, DY int32
}

// KeyPressEvent returns a KeyPress event for code.
func KeyPressEvent(code uint32) InputEvent { return InputEvent{Kind: KeyPress, Code: code} }

// KeyReleaseEvent returns a KeyRelease event for code.
func KeyReleaseEvent(code uint32) InputEvent { return InputEvent{Kind: KeyRelease, Code: code} }

func (e InputEvent) String() string {
	switch e.Kind {
	case KeyPress, KeyRelease:
		if name := KeyName(e.Code); name != "" {
			return fmt.Sprintf("%s %s(%d)", e.Kind, name, e.Code)
		}
		return fmt.Sprintf("%s %d", e.Kind, e.Code)
	case MouseMove, MouseScroll:
		return fmt.Sprintf("%s %d,%d", e.Kind, e.DX, e.DY)
	default:
		return fmt.Sprintf("%s %d", e.Kind, e.Code)
	}
}

// InputSource is anything that can be polled for input once per tick.
// Poll must return immediately.
type InputSource interface {
	Poll() []InputEvent
}

// DeviceInfo describes an opened input device.
type DeviceInfo struct {
	Path string
	Name string
}

// defaultInputDir is where the evdev backend looks for event devices.
const defaultInputDir = "/dev/input"

// captureBackend is implemented once per platform.
type captureBackend interface {
	poll(dst []InputEvent) []InputEvent
	devices() []DeviceInfo
	close() error
}

// InputCapture reads keyboard transitions from the operating system
// independently of window focus. It has no background goroutines: each Poll
// performs non-blocking reads and returns what has arrived since the last call.
type InputCapture struct {
	backend captureBackend
	log     hclog.Logger
	buf     []InputEvent
}

type captureConfig struct {
	log      hclog.Logger
	inputDir string
}

// CaptureOption configures NewInputCapture.
type CaptureOption func(*captureConfig)

// WithCaptureLogger sets the logger used for device discovery and read errors.
func WithCaptureLogger(log hclog.Logger) CaptureOption {
	return func(c *captureConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// WithInputDir overrides the device directory scanned by the evdev backend
// (default /dev/input). Other backends ignore it.
func WithInputDir(dir string) CaptureOption {
	return func(c *captureConfig) { c.inputDir = dir }
}

// NewInputCapture discovers keyboards and prepares them for polling. Finding
// no keyboards is not an error; Poll then always returns nothing. On
// platforms without a backend the error wraps ErrUnsupportedPlatform.
func NewInputCapture(opts ...CaptureOption) (*InputCapture, error) {
	cfg := captureConfig{log: hclog.NewNullLogger(), inputDir: defaultInputDir}
	for _, opt := range opts {
		opt(&cfg)
	}
	backend, err := newCaptureBackend(cfg)
	if err != nil {
		return nil, err
	}
	return &InputCapture{backend: backend, log: cfg.log}, nil
}

// Poll returns every transition observed since the previous call. Events
// from one device keep their order; devices are visited in discovery order.
// The returned slice is reused by the next Poll.
func (c *InputCapture) Poll() []InputEvent {
	if c == nil || c.backend == nil {
		return nil
	}
	c.buf = c.backend.poll(c.buf[:0])
	return c.buf
}

// Devices lists the devices being read.
func (c *InputCapture) Devices() []DeviceInfo {
	if c == nil || c.backend == nil {
		return nil
	}
	return c.backend.devices()
}

// Close releases every device. Poll returns nothing afterwards.
func (c *InputCapture) Close() error {
	if c == nil || c.backend == nil {
		return nil
	}
	err := c.backend.close()
	c.backend = nil
	return err
}

// emptyBackend is used when discovery finds nothing to read.
type emptyBackend struct{}

func (emptyBackend) poll(dst []InputEvent) []InputEvent { return dst }
func (emptyBackend) devices() []DeviceInfo              { return nil }
func (emptyBackend) close() error                       { return nil }

// --- Pressed-key state ---

// recentEventCap bounds the diagnostic event history.
const recentEventCap = 10

// PressedSet is a set of held key codes.
type PressedSet map[uint32]struct{}

// NewPressedSet returns a set containing codes.
func NewPressedSet(codes ...uint32) PressedSet {
	s := make(PressedSet, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

// Has reports whether code is held.
func (s PressedSet) Has(code uint32) bool {
	_, ok := s[code]
	return ok
}

// Sorted returns the held codes in ascending order.
func (s PressedSet) Sorted() []uint32 {
	codes := make([]uint32, 0, len(s))
	for c := range s {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// InputState tracks which keys are held, plus a short history of recent
// events for diagnostics.
type InputState struct {
	pressed PressedSet
	recent  [recentEventCap]InputEvent
	head    int
	count   int
}

// NewInputState returns an empty state.
func NewInputState() *InputState {
	return &InputState{pressed: make(PressedSet)}
}

// Apply folds events into the pressed set. Key presses of already-held keys
// and releases of keys that are not held are harmless.
func (s *InputState) Apply(events []InputEvent) {
	for _, e := range events {
		switch e.Kind {
		case KeyPress:
			s.pressed[e.Code] = struct{}{}
		case KeyRelease:
			delete(s.pressed, e.Code)
		default:
			continue
		}
		s.record(e)
	}
}

func (s *InputState) record(e InputEvent) {
	s.recent[(s.head+s.count)%recentEventCap] = e
	if s.count < recentEventCap {
		s.count++
	} else {
		s.head = (s.head + 1) % recentEventCap
	}
}

// Pressed returns the live pressed set. Callers must not modify it.
func (s *InputState) Pressed() PressedSet {
	return s.pressed
}

// IsPressed reports whether code is held.
func (s *InputState) IsPressed(code uint32) bool {
	return s.pressed.Has(code)
}

// PressedCodes returns the held codes in ascending order.
func (s *InputState) PressedCodes() []uint32 {
	return s.pressed.Sorted()
}

// Recent returns up to the last ten key events, oldest first.
func (s *InputState) Recent() []InputEvent {
	out := make([]InputEvent, s.count)
	for i := 0; i < s.count; i++ {
		out[i] = s.recent[(s.head+i)%recentEventCap]
	}
	return out
}

// Reset releases every key and clears the history.
func (s *InputState) Reset() {
	clear(s.pressed)
	s.head, s.count = 0, 0
}
