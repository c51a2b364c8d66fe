package bongo

// Windows virtual-key codes for the named keys. Hosts on every platform
// report key clicks with these, and the Windows capture backend polls them.
var vkKeyCodes = func() map[uint32]uint32 {
	m := map[uint32]uint32{
		0x08: KeyBackspace,
		0x09: KeyTab,
		0x0D: KeyEnter,
		0x1B: KeyEsc,
		0x20: KeySpace,
		0x25: KeyLeft,
		0x26: KeyUp,
		0x27: KeyRight,
		0x28: KeyDown,
		0xA0: KeyLeftShift,
		0xA1: KeyRightShift,
		0xA2: KeyLeftCtrl,
		0xA3: KeyRightCtrl,
		0xA4: KeyLeftAlt,
		0xA5: KeyRightAlt,
	}
	for d := byte('0'); d <= '9'; d++ {
		m[uint32(d)] = keyNameTable[string(d)]
	}
	for c := byte('a'); c <= 'z'; c++ {
		m[uint32(c-'a'+'A')] = keyNameTable[string(c)]
	}
	return m
}()

// KeyCodeFromVK translates a Windows virtual-key code into an input-event
// code. Only keys of the built-in name table are known.
func KeyCodeFromVK(vk uint32) (uint32, bool) {
	code, ok := vkKeyCodes[vk]
	return code, ok
}

// keymapBytes is the size of a 256-key state bitmap.
const keymapBytes = 32

// diffKeymap compares two key state bitmaps and appends a press or release
// for every bit that changed. Bit i maps to code i-offset; bits below offset
// are ignored. Events come out in ascending code order.
func diffKeymap(prev, cur []byte, offset int, dst []InputEvent) []InputEvent {
	n := min(len(prev), len(cur))
	for i := 0; i < n; i++ {
		changed := prev[i] ^ cur[i]
		if changed == 0 {
			continue
		}
		for bit := 0; bit < 8; bit++ {
			mask := byte(1) << bit
			if changed&mask == 0 {
				continue
			}
			idx := i*8 + bit - offset
			if idx < 0 {
				continue
			}
			if cur[i]&mask != 0 {
				dst = append(dst, KeyPressEvent(uint32(idx)))
			} else {
				dst = append(dst, KeyReleaseEvent(uint32(idx)))
			}
		}
	}
	return dst
}
