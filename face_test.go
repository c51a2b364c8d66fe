package bongo

import "testing"

func testFace() *Face {
	return &Face{
		Images: map[string]*Image{
			"f1":    solidImage("0.png"),
			"f2":    solidImage("1.png"),
			"f4":    solidImage("3.png"),
			"smile": solidImage("smile.png"),
		},
		HotKeys: []string{"f1", "f2", "f4", "smile"},
	}
}

func TestNewFaceState(t *testing.T) {
	if s := NewFaceState(testFace(), "f2"); s.Current() != "f2" || s.Image().Path != "1.png" {
		t.Errorf("current = %q", s.Current())
	}
	if s := NewFaceState(testFace(), "f9"); s.Current() != "" || s.Image() != nil {
		t.Errorf("unknown initial face should show none, got %q", s.Current())
	}
	if s := NewFaceState(nil, "f1"); s.Current() != "" {
		t.Error("nil face map should show none")
	}
}

func TestFaceHandleKey(t *testing.T) {
	s := NewFaceState(testFace(), "f1")

	steps := []struct {
		key     string
		changed bool
		current string
	}{
		{"2", true, "f2"},
		{"2", false, "f2"},
		{"3", false, "f2"}, // no f3 in the map
		{"4", true, "f4"},
		{"a", false, "f4"},
		{"smile", true, "smile"},
		{"0", true, ""},
		{"0", false, ""},
		{"1", true, "f1"},
		{"escape", true, ""},
		{"f2", true, "f2"},
	}
	for i, st := range steps {
		changed := s.HandleKey(st.key)
		if changed != st.changed || s.Current() != st.current {
			t.Errorf("step %d key %q: changed=%v current=%q, want %v %q",
				i, st.key, changed, s.Current(), st.changed, st.current)
		}
	}
}
