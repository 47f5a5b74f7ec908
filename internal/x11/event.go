package x11

import (
	"encoding/binary"
	"io"
)

// Event is a decoded server event.
type Event interface {
	Code() int
}

// KeyEvent is a key press or release.
type KeyEvent struct {
	Release bool
	Keycode uint8
	State   uint16
}

func (e KeyEvent) Code() int {
	if e.Release {
		return EventKeyRelease
	}
	return EventKeyPress
}

// ExposeEvent asks for part of the window to be redrawn.
type ExposeEvent struct {
	Window        uint32
	Width, Height uint16
	Count         uint16
}

func (ExposeEvent) Code() int { return EventExpose }

// ConfigureEvent reports a new window size or position.
type ConfigureEvent struct {
	Window        uint32
	Width, Height uint16
}

func (ConfigureEvent) Code() int { return EventConfigureNotify }

// ClientMessageEvent carries window manager messages such as
// WM_DELETE_WINDOW.
type ClientMessageEvent struct {
	Window      uint32
	Format      uint8
	MessageType uint32
	Data        [20]byte
}

func (ClientMessageEvent) Code() int { return EventClientMessage }

// ErrorEvent is an asynchronous protocol error for an earlier request.
type ErrorEvent struct {
	ErrorCode uint8
	Sequence  uint16
	Major     uint8
}

func (ErrorEvent) Code() int { return replyError }

// UnknownEvent is anything we do not decode.
type UnknownEvent struct {
	EventCode int
	Raw       [32]byte
}

func (e UnknownEvent) Code() int { return e.EventCode }

// decodeEvent decodes one 32-byte event. The high bit of the code marks
// events sent with SendEvent and is ignored.
func decodeEvent(buf []byte) Event {
	le := binary.LittleEndian
	code := int(buf[0] & 0x7F)
	switch code {
	case replyError:
		return ErrorEvent{ErrorCode: buf[1], Sequence: le.Uint16(buf[2:]), Major: buf[10]}
	case EventKeyPress, EventKeyRelease:
		return KeyEvent{
			Release: code == EventKeyRelease,
			Keycode: buf[1],
			State:   le.Uint16(buf[28:]),
		}
	case EventExpose:
		return ExposeEvent{
			Window: le.Uint32(buf[4:]),
			Width:  le.Uint16(buf[12:]),
			Height: le.Uint16(buf[14:]),
			Count:  le.Uint16(buf[16:]),
		}
	case EventConfigureNotify:
		return ConfigureEvent{
			Window: le.Uint32(buf[4:]),
			Width:  le.Uint16(buf[20:]),
			Height: le.Uint16(buf[22:]),
		}
	case EventClientMessage:
		e := ClientMessageEvent{
			Window:      le.Uint32(buf[4:]),
			Format:      buf[1],
			MessageType: le.Uint32(buf[8:]),
		}
		copy(e.Data[:], buf[12:32])
		return e
	}
	e := UnknownEvent{EventCode: code}
	copy(e.Raw[:], buf)
	return e
}

// NextEvent blocks until the server sends an event. Stray replies are
// skipped along with their trailing data.
func (c *Conn) NextEvent() (Event, error) {
	buf := make([]byte, 32)
	for {
		if _, err := io.ReadFull(c.rw, buf); err != nil {
			return nil, err
		}
		if buf[0] != replyOK {
			return decodeEvent(buf), nil
		}
		if extra := binary.LittleEndian.Uint32(buf[4:]) * 4; extra > 0 {
			if _, err := io.CopyN(io.Discard, c.rw, int64(extra)); err != nil {
				return nil, err
			}
		}
	}
}
