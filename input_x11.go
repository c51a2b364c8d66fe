//go:build linux && x11

package bongo

import (
	"github.com/hashicorp/go-hclog"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// X keycodes are evdev codes shifted by 8.
const x11KeycodeOffset = 8

// x11Backend polls the server keymap and reports the bits that changed
// since the previous poll.
type x11Backend struct {
	conn *xgb.Conn
	log  hclog.Logger
	prev [keymapBytes]byte
}

func newCaptureBackend(cfg captureConfig) (captureBackend, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		cfg.log.Warn("cannot connect to X server; keyboard capture disabled", "error", err)
		return emptyBackend{}, nil
	}
	cfg.log.Info("capturing keyboard from X server keymap")
	return &x11Backend{conn: conn, log: cfg.log}, nil
}

func (b *x11Backend) poll(dst []InputEvent) []InputEvent {
	reply, err := xproto.QueryKeymap(b.conn).Reply()
	if err != nil {
		b.log.Debug("query keymap failed", "error", err)
		return dst
	}
	var cur [keymapBytes]byte
	copy(cur[:], reply.Keys)
	dst = diffKeymap(b.prev[:], cur[:], x11KeycodeOffset, dst)
	b.prev = cur
	return dst
}

func (b *x11Backend) devices() []DeviceInfo {
	return []DeviceInfo{{Path: "x11", Name: "X server keymap"}}
}

func (b *x11Backend) close() error {
	b.conn.Close()
	return nil
}
