package bongo

// FaceState tracks which face expression is shown.
type FaceState struct {
	face    *Face
	current string
}

// NewFaceState starts on initial when the face map has it, and on no face
// otherwise.
func NewFaceState(face *Face, initial string) *FaceState {
	s := &FaceState{face: face}
	s.Set(initial)
	return s
}

// Current returns the active face key, or "" when no face is shown.
func (s *FaceState) Current() string { return s.current }

// Image returns the active face image, or nil.
func (s *FaceState) Image() *Image { return s.face.Image(s.current) }

// Set selects key if the face map has it and reports whether it did.
func (s *FaceState) Set(key string) bool {
	if !s.face.Has(key) {
		return false
	}
	s.current = key
	return true
}

// Clear hides the face layer.
func (s *FaceState) Clear() { s.current = "" }

// HandleKey applies a key press by name and reports whether the active face
// changed. Digits 1-4 pick f1-f4, 0 and escape clear the face, and a name that
// is itself a hotkey selects that face. Other keys are ignored.
func (s *FaceState) HandleKey(name string) bool {
	prev := s.current
	switch name {
	case "0", "escape":
		s.Clear()
		return prev != ""
	case "1", "2", "3", "4":
		if s.Set("f" + name) {
			return prev != s.current
		}
	}
	if s.Set(name) {
		return prev != s.current
	}
	return false
}
