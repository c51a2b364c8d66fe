package bongo

// InjectedInput is an InputSource fed from memory. Each injected call queues
// one frame; each Poll drains exactly one frame, so a tap spans two ticks
// the same way a real key press does.
type InjectedInput struct {
	queue [][]InputEvent
}

// NewInjectedInput returns an empty queue.
func NewInjectedInput() *InjectedInput {
	return &InjectedInput{}
}

// InjectPress queues a frame holding a press of code.
func (in *InjectedInput) InjectPress(code uint32) {
	in.queue = append(in.queue, []InputEvent{KeyPressEvent(code)})
}

// InjectRelease queues a frame holding a release of code.
func (in *InjectedInput) InjectRelease(code uint32) {
	in.queue = append(in.queue, []InputEvent{KeyReleaseEvent(code)})
}

// InjectTap is a convenience that queues a press followed by a release.
// Consumes two frames.
func (in *InjectedInput) InjectTap(code uint32) {
	in.InjectPress(code)
	in.InjectRelease(code)
}

// InjectEvents queues events as a single frame. An empty call queues an idle
// frame.
func (in *InjectedInput) InjectEvents(events ...InputEvent) {
	in.queue = append(in.queue, append([]InputEvent(nil), events...))
}

// Pending returns the number of frames not yet polled.
func (in *InjectedInput) Pending() int {
	return len(in.queue)
}

// Poll pops one frame from the queue.
func (in *InjectedInput) Poll() []InputEvent {
	if len(in.queue) == 0 {
		return nil
	}
	frame := in.queue[0]
	copy(in.queue, in.queue[1:])
	in.queue[len(in.queue)-1] = nil
	in.queue = in.queue[:len(in.queue)-1]
	return frame
}

// MultiInput returns a source that polls each of sources in order and
// concatenates their events. Nil sources are skipped.
func MultiInput(sources ...InputSource) InputSource {
	var m multiSource
	for _, s := range sources {
		if s != nil {
			m = append(m, s)
		}
	}
	return m
}

type multiSource []InputSource

func (m multiSource) Poll() []InputEvent {
	var out []InputEvent
	for _, s := range m {
		out = append(out, s.Poll()...)
	}
	return out
}
