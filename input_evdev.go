//go:build linux && !x11

package bongo

import (
	"encoding/binary"
	"errors"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unsafe"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sys/unix"
)

// Linux input subsystem constants.
const (
	evKey  = 0x01
	keyMax = 0x2ff

	iocRead      = 2
	iocNrShift   = 0
	iocTypeShift = 8
	iocSizeShift = 16
	iocDirShift  = 30
)

// inputEventSize is sizeof(struct input_event): a timeval of two longs
// followed by type, code and value.
var inputEventSize = int(2*unsafe.Sizeof(uintptr(0))) + 8

// keyboardProbe are the keys a device must report to count as a keyboard.
var keyboardProbe = []uint32{KeyA, KeyZ, KeyEnter}

func ioc(dir, typ, nr, size uintptr) uintptr {
	return dir<<iocDirShift | typ<<iocTypeShift | nr<<iocNrShift | size<<iocSizeShift
}

// eviocgbit is EVIOCGBIT(ev, size).
func eviocgbit(ev, size uintptr) uintptr { return ioc(iocRead, 'E', 0x20+ev, size) }

// eviocgname is EVIOCGNAME(size).
func eviocgname(size uintptr) uintptr { return ioc(iocRead, 'E', 0x06, size) }

// evdevDevice is one opened event node.
type evdevDevice interface {
	read(p []byte) (int, error)
	info() DeviceInfo
	close() error
}

type fdDevice struct {
	fd int
	DeviceInfo
}

func (d *fdDevice) read(p []byte) (int, error) { return unix.Read(d.fd, p) }
func (d *fdDevice) info() DeviceInfo           { return d.DeviceInfo }
func (d *fdDevice) close() error               { return unix.Close(d.fd) }

type evdevBackend struct {
	devs []evdevDevice
	log  hclog.Logger
	buf  []byte
}

func newCaptureBackend(cfg captureConfig) (captureBackend, error) {
	paths, err := filepath.Glob(filepath.Join(cfg.inputDir, "event*"))
	if err != nil {
		return nil, err
	}
	sortEventPaths(paths)

	var devs []evdevDevice
	for _, path := range paths {
		dev, err := openKeyboard(path)
		if err != nil {
			cfg.log.Debug("skipping input device", "path", path, "error", err)
			continue
		}
		if dev == nil {
			continue
		}
		cfg.log.Info("found keyboard", "path", path, "name", dev.Name)
		devs = append(devs, dev)
	}
	if len(devs) == 0 {
		cfg.log.Warn("no readable keyboard devices; keyboard capture disabled", "dir", cfg.inputDir)
		return emptyBackend{}, nil
	}
	return newEvdevBackend(devs, cfg.log), nil
}

func newEvdevBackend(devs []evdevDevice, log hclog.Logger) *evdevBackend {
	return &evdevBackend{
		devs: devs,
		log:  log,
		buf:  make([]byte, 64*inputEventSize),
	}
}

// openKeyboard opens path and returns it ready for non-blocking reads, or
// nil when the device does not report the probe keys.
func openKeyboard(path string) (*fdDevice, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, err
	}
	ok, err := hasKeys(fd, keyboardProbe)
	if err != nil || !ok {
		unix.Close(fd)
		return nil, err
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return nil, err
	}
	return &fdDevice{fd: fd, DeviceInfo: DeviceInfo{Path: path, Name: deviceName(fd)}}, nil
}

func hasKeys(fd int, codes []uint32) (bool, error) {
	var bits [keyMax/8 + 1]byte
	if err := ioctlBuf(fd, eviocgbit(evKey, uintptr(len(bits))), bits[:]); err != nil {
		return false, err
	}
	for _, c := range codes {
		if bits[c/8]&(1<<(c%8)) == 0 {
			return false, nil
		}
	}
	return true, nil
}

func deviceName(fd int) string {
	var name [256]byte
	if err := ioctlBuf(fd, eviocgname(uintptr(len(name))), name[:]); err != nil {
		return ""
	}
	s := string(name[:])
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return s
}

func ioctlBuf(fd int, req uintptr, buf []byte) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 {
		return errno
	}
	return nil
}

// sortEventPaths orders event nodes numerically so event10 follows event9.
func sortEventPaths(paths []string) {
	num := func(p string) int {
		n, err := strconv.Atoi(strings.TrimPrefix(filepath.Base(p), "event"))
		if err != nil {
			return -1
		}
		return n
	}
	sort.SliceStable(paths, func(i, j int) bool { return num(paths[i]) < num(paths[j]) })
}

func (b *evdevBackend) poll(dst []InputEvent) []InputEvent {
	for _, d := range b.devs {
		for {
			n, err := d.read(b.buf)
			if err != nil {
				if errors.Is(err, unix.EINTR) {
					continue
				}
				if !errors.Is(err, unix.EAGAIN) {
					b.log.Debug("read failed", "path", d.info().Path, "error", err)
				}
				break
			}
			if n <= 0 {
				break
			}
			dst = decodeInputEvents(b.buf[:n], dst)
			if n < len(b.buf) {
				break
			}
		}
	}
	return dst
}

// decodeInputEvents appends the key transitions found in raw input_event
// records. Auto-repeat (value 2) and non-key records are dropped, as is any
// trailing partial record.
func decodeInputEvents(raw []byte, dst []InputEvent) []InputEvent {
	typeOff := inputEventSize - 8
	for len(raw) >= inputEventSize {
		rec := raw[:inputEventSize]
		raw = raw[inputEventSize:]
		typ := binary.NativeEndian.Uint16(rec[typeOff:])
		if typ != evKey {
			continue
		}
		code := uint32(binary.NativeEndian.Uint16(rec[typeOff+2:]))
		switch int32(binary.NativeEndian.Uint32(rec[typeOff+4:])) {
		case 1:
			dst = append(dst, KeyPressEvent(code))
		case 0:
			dst = append(dst, KeyReleaseEvent(code))
		}
	}
	return dst
}

func (b *evdevBackend) devices() []DeviceInfo {
	out := make([]DeviceInfo, len(b.devs))
	for i, d := range b.devs {
		out[i] = d.info()
	}
	return out
}

func (b *evdevBackend) close() error {
	var errs []error
	for _, d := range b.devs {
		if err := d.close(); err != nil {
			errs = append(errs, err)
		}
	}
	b.devs = nil
	return errors.Join(errs...)
}
