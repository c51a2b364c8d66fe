package bongo

import "testing"

func TestInjectTap(t *testing.T) {
	in := NewInjectedInput()
	in.InjectTap(KeyA)
	if in.Pending() != 2 {
		t.Fatalf("expected 2 queued frames, got %d", in.Pending())
	}

	state := NewInputState()

	// Frame 1: press
	state.Apply(in.Poll())
	if !state.IsPressed(KeyA) {
		t.Error("A should be held after the press frame")
	}
	if in.Pending() != 1 {
		t.Fatalf("expected 1 remaining frame, got %d", in.Pending())
	}

	// Frame 2: release
	state.Apply(in.Poll())
	if state.IsPressed(KeyA) {
		t.Error("A should be released after the release frame")
	}
	if in.Pending() != 0 {
		t.Fatalf("expected empty queue, got %d", in.Pending())
	}
	if got := in.Poll(); got != nil {
		t.Errorf("Poll on empty queue = %v, want nil", got)
	}
}

func TestInjectEventsSingleFrame(t *testing.T) {
	in := NewInjectedInput()
	in.InjectEvents(KeyPressEvent(KeyA), KeyPressEvent(KeyZ))
	in.InjectEvents()

	got := in.Poll()
	if len(got) != 2 || got[0].Code != KeyA || got[1].Code != KeyZ {
		t.Fatalf("first frame = %v", got)
	}
	if got := in.Poll(); len(got) != 0 {
		t.Errorf("idle frame = %v, want empty", got)
	}
}

func TestMultiSourceOrder(t *testing.T) {
	a, b := NewInjectedInput(), NewInjectedInput()
	a.InjectPress(KeyA)
	b.InjectPress(KeyZ)
	got := MultiInput(a, nil, b).Poll()
	if len(got) != 2 || got[0].Code != KeyA || got[1].Code != KeyZ {
		t.Errorf("Poll = %v, want A then Z", got)
	}
}
