//go:build windows

package bongo

import (
	"github.com/hashicorp/go-hclog"
	"golang.org/x/sys/windows"
)

var procGetAsyncKeyState = windows.NewLazySystemDLL("user32.dll").NewProc("GetAsyncKeyState")

// winBackend samples GetAsyncKeyState for every known virtual key and
// reports the changes as evdev codes.
type winBackend struct {
	log  hclog.Logger
	prev [keymapBytes]byte
}

func newCaptureBackend(cfg captureConfig) (captureBackend, error) {
	if err := procGetAsyncKeyState.Find(); err != nil {
		cfg.log.Warn("GetAsyncKeyState unavailable; keyboard capture disabled", "error", err)
		return emptyBackend{}, nil
	}
	return &winBackend{log: cfg.log}, nil
}

func (b *winBackend) poll(dst []InputEvent) []InputEvent {
	var cur [keymapBytes]byte
	for vk, code := range vkKeyCodes {
		r, _, _ := procGetAsyncKeyState.Call(uintptr(vk))
		if r&0x8000 != 0 {
			cur[code/8] |= 1 << (code % 8)
		}
	}
	dst = diffKeymap(b.prev[:], cur[:], 0, dst)
	b.prev = cur
	return dst
}

func (b *winBackend) devices() []DeviceInfo {
	return []DeviceInfo{{Path: "user32", Name: "GetAsyncKeyState"}}
}

func (b *winBackend) close() error { return nil }
