package bongo

import "time"

// debugFrameInterval is how often Render logs a frame counter line.
const debugFrameInterval = 300

// RenderStats holds the metrics of one Render call.
type RenderStats struct {
	Frame          uint64
	Commands       int
	DrawCalls      int
	Uploads        int
	CachedTextures int
	SelectTime     time.Duration
	SubmitTime     time.Duration
}

// debugFirstRender logs what the first frame of an avatar contains.
func (s *Source) debugFirstRender() {
	mode := s.avatar.Mode(s.ModeName())
	if mode == nil {
		return
	}
	s.log.Debug("first render",
		"mode", mode.Name,
		"face", s.face.Current(),
		"background", mode.Background != nil,
		"cat_body", mode.CatBody != nil,
		"left_hand", mode.LeftHand != nil && mode.LeftHand.Base != nil,
		"right_hand", mode.RightHand != nil && mode.RightHand.Base != nil,
		"key_caps", len(mode.KeyImages))
}

// debugLog prints a frame counter and the frame's stats every
// debugFrameInterval frames.
func (s *Source) debugLog(stats RenderStats) {
	if stats.Frame%debugFrameInterval != 0 || !s.log.IsDebug() {
		return
	}
	s.log.Debug("rendered frame",
		"frame", stats.Frame,
		"commands", stats.Commands,
		"draw_calls", stats.DrawCalls,
		"uploads", stats.Uploads,
		"textures", stats.CachedTextures,
		"select", stats.SelectTime,
		"submit", stats.SubmitTime)
}
