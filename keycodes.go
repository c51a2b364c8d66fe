package bongo

import (
	"sort"
	"strconv"
)

// Linux input-event key codes (linux/input-event-codes.h) for the keys the
// asset packs refer to by name. Every input backend reports codes in this
// numbering.
const (
	KeyEsc        uint32 = 1
	Key1          uint32 = 2
	Key2          uint32 = 3
	Key3          uint32 = 4
	Key4          uint32 = 5
	Key5          uint32 = 6
	Key6          uint32 = 7
	Key7          uint32 = 8
	Key8          uint32 = 9
	Key9          uint32 = 10
	Key0          uint32 = 11
	KeyBackspace  uint32 = 14
	KeyTab        uint32 = 15
	KeyQ          uint32 = 16
	KeyW          uint32 = 17
	KeyE          uint32 = 18
	KeyR          uint32 = 19
	KeyT          uint32 = 20
	KeyY          uint32 = 21
	KeyU          uint32 = 22
	KeyI          uint32 = 23
	KeyO          uint32 = 24
	KeyP          uint32 = 25
	KeyEnter      uint32 = 28
	KeyLeftCtrl   uint32 = 29
	KeyA          uint32 = 30
	KeyS          uint32 = 31
	KeyD          uint32 = 32
	KeyF          uint32 = 33
	KeyG          uint32 = 34
	KeyH          uint32 = 35
	KeyJ          uint32 = 36
	KeyK          uint32 = 37
	KeyL          uint32 = 38
	KeyLeftShift  uint32 = 42
	KeyZ          uint32 = 44
	KeyX          uint32 = 45
	KeyC          uint32 = 46
	KeyV          uint32 = 47
	KeyB          uint32 = 48
	KeyN          uint32 = 49
	KeyM          uint32 = 50
	KeyRightShift uint32 = 54
	KeyLeftAlt    uint32 = 56
	KeySpace      uint32 = 57
	KeyRightCtrl  uint32 = 97
	KeyRightAlt   uint32 = 100
	KeyUp         uint32 = 103
	KeyLeft       uint32 = 105
	KeyRight      uint32 = 106
	KeyDown       uint32 = 108
)

var keyNameTable = map[string]uint32{
	"escape":    KeyEsc,
	"1":         Key1,
	"2":         Key2,
	"3":         Key3,
	"4":         Key4,
	"5":         Key5,
	"6":         Key6,
	"7":         Key7,
	"8":         Key8,
	"9":         Key9,
	"0":         Key0,
	"backspace": KeyBackspace,
	"tab":       KeyTab,
	"q":         KeyQ,
	"w":         KeyW,
	"e":         KeyE,
	"r":         KeyR,
	"t":         KeyT,
	"y":         KeyY,
	"u":         KeyU,
	"i":         KeyI,
	"o":         KeyO,
	"p":         KeyP,
	"enter":     KeyEnter,
	"lctrl":     KeyLeftCtrl,
	"a":         KeyA,
	"s":         KeyS,
	"d":         KeyD,
	"f":         KeyF,
	"g":         KeyG,
	"h":         KeyH,
	"j":         KeyJ,
	"k":         KeyK,
	"l":         KeyL,
	"lshift":    KeyLeftShift,
	"z":         KeyZ,
	"x":         KeyX,
	"c":         KeyC,
	"v":         KeyV,
	"b":         KeyB,
	"n":         KeyN,
	"m":         KeyM,
	"rshift":    KeyRightShift,
	"lalt":      KeyLeftAlt,
	"space":     KeySpace,
	"rctrl":     KeyRightCtrl,
	"ralt":      KeyRightAlt,
	"up":        KeyUp,
	"left":      KeyLeft,
	"right":     KeyRight,
	"down":      KeyDown,
}

// keyCodeNames is the reverse of keyNameTable, built once at init.
var keyCodeNames map[uint32]string

func init() {
	keyCodeNames = make(map[uint32]string, len(keyNameTable))
	for name, code := range keyNameTable {
		keyCodeNames[code] = name
	}
}

// KeyCode resolves a key name from an asset manifest to its input-event code.
// Names outside the built-in table that parse as a decimal integer are taken
// as literal codes. ok is false for anything else.
func KeyCode(name string) (code uint32, ok bool) {
	if c, found := keyNameTable[name]; found {
		return c, true
	}
	n, err := strconv.ParseUint(name, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

// KeyName returns the table name for code, or "" if the code has none.
func KeyName(code uint32) string {
	return keyCodeNames[code]
}

// KeyNames returns every name in the built-in table, sorted by code.
func KeyNames() []string {
	names := make([]string, 0, len(keyNameTable))
	for name := range keyNameTable {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return keyNameTable[names[i]] < keyNameTable[names[j]]
	})
	return names
}

// IsArrowKey reports whether code is one of the four cursor keys.
func IsArrowKey(code uint32) bool {
	switch code {
	case KeyUp, KeyDown, KeyLeft, KeyRight:
		return true
	}
	return false
}
