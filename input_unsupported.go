//go:build !linux && !windows

package bongo

import (
	"fmt"
	"runtime"
)

func newCaptureBackend(captureConfig) (captureBackend, error) {
	return nil, fmt.Errorf("%w: keyboard capture on %s", ErrUnsupportedPlatform, runtime.GOOS)
}
