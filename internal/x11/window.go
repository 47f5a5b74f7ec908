package x11

import (
	"encoding/binary"
	"fmt"
)

type atoms struct {
	wmProtocols uint32
	wmDeleteWin uint32
	wmName      uint32
	netWMName   uint32
	str         uint32
	utf8String  uint32
	atom        uint32
}

func (c *Conn) internAtoms() error {
	for _, a := range []struct {
		name string
		dst  *uint32
	}{
		{"WM_PROTOCOLS", &c.atoms.wmProtocols},
		{"WM_DELETE_WINDOW", &c.atoms.wmDeleteWin},
		{"WM_NAME", &c.atoms.wmName},
		{"_NET_WM_NAME", &c.atoms.netWMName},
		{"STRING", &c.atoms.str},
		{"UTF8_STRING", &c.atoms.utf8String},
		{"ATOM", &c.atoms.atom},
	} {
		id, err := c.InternAtom(a.name)
		if err != nil {
			return err
		}
		*a.dst = id
	}
	return nil
}

func internAtomRequest(name string) []byte {
	return newRequest(opInternAtom, 0).
		u16(uint16(len(name))).
		skip(2).
		bytes([]byte(name)).
		encode()
}

// InternAtom returns the atom for name, creating it if needed.
func (c *Conn) InternAtom(name string) (uint32, error) {
	reply, err := c.roundTrip(internAtomRequest(name))
	if err != nil {
		return 0, fmt.Errorf("x11: intern %s: %w", name, err)
	}
	return binary.LittleEndian.Uint32(reply[8:]), nil
}

func createWindowRequest(id, parent, visual uint32, depth uint8, w, h uint16) []byte {
	events := uint32(KeyPressMask | KeyReleaseMask | ExposureMask | StructureNotifyMask)
	return newRequest(opCreateWindow, depth).
		u32(id).
		u32(parent).
		u16(0).u16(0). // x, y
		u16(w).u16(h).
		u16(0). // border
		u16(windowClassInputOutput).
		u32(visual).
		u32(cwBackPixel | cwEventMask).
		u32(0). // black background
		u32(events).
		encode()
}

// CreateWindow creates a top-level window of the root depth and visual.
func (c *Conn) CreateWindow(width, height uint16) (uint32, error) {
	id := c.NewID()
	req := createWindowRequest(id, c.RootWindow, c.RootVisual, c.RootDepth, width, height)
	if err := c.send(req); err != nil {
		return 0, fmt.Errorf("x11: create window: %w", err)
	}
	return id, nil
}

func (c *Conn) MapWindow(id uint32) error {
	return c.send(newRequest(opMapWindow, 0).u32(id).encode())
}

func (c *Conn) DestroyWindow(id uint32) error {
	return c.send(newRequest(opDestroyWindow, 0).u32(id).encode())
}

func changePropertyRequest(window, property, typ uint32, format uint8, data []byte) []byte {
	return newRequest(opChangeProperty, propModeReplace).
		u32(window).
		u32(property).
		u32(typ).
		u8(format).skip(3).
		u32(uint32(len(data) / int(format/8))).
		bytes(data).
		encode()
}

// SetTitle sets both WM_NAME and _NET_WM_NAME.
func (c *Conn) SetTitle(window uint32, title string) error {
	if err := c.send(changePropertyRequest(window, c.atoms.wmName, c.atoms.str, 8, []byte(title))); err != nil {
		return err
	}
	return c.send(changePropertyRequest(window, c.atoms.netWMName, c.atoms.utf8String, 8, []byte(title)))
}

// EnableCloseButton asks the window manager to send WM_DELETE_WINDOW
// instead of killing the connection.
func (c *Conn) EnableCloseButton(window uint32) error {
	data := binary.LittleEndian.AppendUint32(nil, c.atoms.wmDeleteWin)
	return c.send(changePropertyRequest(window, c.atoms.wmProtocols, c.atoms.atom, 32, data))
}

// IsDeleteWindow reports whether e is the window manager's close request.
func (c *Conn) IsDeleteWindow(e ClientMessageEvent) bool {
	return e.Format == 32 &&
		e.MessageType == c.atoms.wmProtocols &&
		binary.LittleEndian.Uint32(e.Data[0:]) == c.atoms.wmDeleteWin
}
