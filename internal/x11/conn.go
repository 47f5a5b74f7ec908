package x11

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"sync"
)

// Setup holds what we keep from the server's connection setup reply.
type Setup struct {
	ResourceIDBase uint32
	ResourceIDMask uint32
	// MaxRequestLen is the largest request the server accepts, in words
	MaxRequestLen uint16
	RootWindow    uint32
	RootVisual    uint32
	RootDepth     uint8
	BitsPerPixel  uint8
	// ScanlinePad is the bit boundary every image row is padded to
	ScanlinePad  uint8
	ScreenWidth  uint16
	ScreenHeight uint16
}

// Conn is a connection to an X server. Requests may be sent from any
// goroutine; replies and events must be read by a single reader.
type Conn struct {
	Setup

	rw     io.ReadWriteCloser
	wmu    sync.Mutex
	nextID uint32
	atoms  atoms
}

// Dial connects to the X server named by display, or $DISPLAY when display
// is empty, authenticating with the matching Xauthority entry if any.
func Dial(display string) (*Conn, error) {
	if display == "" {
		display = os.Getenv("DISPLAY")
	}
	network, addr, num, err := parseDisplay(display)
	if err != nil {
		return nil, err
	}

	nc, err := net.Dial(network, addr)
	if err != nil {
		return nil, fmt.Errorf("x11: dial %s: %w", display, err)
	}

	var name string
	var data []byte
	if entries, err := ReadXauthority(); err == nil {
		if e := FindAuth(entries, num); e != nil {
			name, data = e.Name, e.Data
		}
	}

	c := &Conn{rw: nc}
	if err := c.handshake(name, data); err != nil {
		nc.Close()
		return nil, err
	}
	if err := c.internAtoms(); err != nil {
		nc.Close()
		return nil, fmt.Errorf("x11: intern atoms: %w", err)
	}
	return c, nil
}

// parseDisplay splits "host:N.S" into a dial target and the display number.
// An empty host means the local unix socket.
func parseDisplay(display string) (network, addr, num string, err error) {
	if display == "" {
		display = ":0"
	}
	i := strings.LastIndex(display, ":")
	if i < 0 {
		return "", "", "", fmt.Errorf("x11: bad display %q", display)
	}
	host, num := display[:i], display[i+1:]
	if j := strings.Index(num, "."); j >= 0 {
		num = num[:j]
	}
	if num == "" {
		return "", "", "", fmt.Errorf("x11: bad display %q", display)
	}

	if host == "" || host == "unix" {
		return "unix", "/tmp/.X11-unix/X" + num, num, nil
	}
	var n int
	if _, err := fmt.Sscanf(num, "%d", &n); err != nil {
		return "", "", "", fmt.Errorf("x11: bad display number %q", num)
	}
	return "tcp", net.JoinHostPort(host, fmt.Sprint(6000+n)), num, nil
}

// Close closes the connection. A reader blocked in NextEvent returns an
// error.
func (c *Conn) Close() error {
	return c.rw.Close()
}

func (c *Conn) send(req []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	_, err := c.rw.Write(req)
	return err
}

func (c *Conn) handshake(authName string, authData []byte) error {
	req := []byte{'l', 0}
	req = binary.LittleEndian.AppendUint16(req, 11) // protocol major
	req = binary.LittleEndian.AppendUint16(req, 0)  // minor
	req = binary.LittleEndian.AppendUint16(req, uint16(len(authName)))
	req = binary.LittleEndian.AppendUint16(req, uint16(len(authData)))
	req = append(req, 0, 0)
	req = append(req, authName...)
	req = append(req, make([]byte, pad(len(authName)))...)
	req = append(req, authData...)
	req = append(req, make([]byte, pad(len(authData)))...)
	if err := c.send(req); err != nil {
		return fmt.Errorf("x11: send setup: %w", err)
	}

	var header [8]byte
	if _, err := io.ReadFull(c.rw, header[:]); err != nil {
		return fmt.Errorf("x11: read setup: %w", err)
	}
	body := make([]byte, int(binary.LittleEndian.Uint16(header[6:]))*4)
	if _, err := io.ReadFull(c.rw, body); err != nil {
		return fmt.Errorf("x11: read setup: %w", err)
	}

	switch header[0] {
	case 0:
		reason := body[:min(int(header[1]), len(body))]
		return fmt.Errorf("x11: server refused connection: %s", reason)
	case 1:
		s, err := parseSetup(body)
		if err != nil {
			return err
		}
		c.Setup = s
		c.nextID = 0
		return nil
	case 2:
		return errors.New("x11: server requires further authentication")
	default:
		return fmt.Errorf("x11: unknown setup status %d", header[0])
	}
}

var errShortSetup = errors.New("x11: setup reply truncated")

// parseSetup decodes the body of a successful setup reply (everything after
// the 8-byte header) and picks the first screen.
func parseSetup(data []byte) (Setup, error) {
	var s Setup
	if len(data) < 32 {
		return s, errShortSetup
	}
	le := binary.LittleEndian
	s.ResourceIDBase = le.Uint32(data[4:])
	s.ResourceIDMask = le.Uint32(data[8:])
	vendorLen := int(le.Uint16(data[16:]))
	s.MaxRequestLen = le.Uint16(data[18:])
	numScreens := int(data[20])
	numFormats := int(data[21])
	if numScreens == 0 {
		return s, errors.New("x11: server has no screens")
	}

	formats := 32 + vendorLen + pad(vendorLen)
	screen := formats + numFormats*8
	if len(data) < screen+40 {
		return s, errShortSetup
	}

	scr := data[screen:]
	s.RootWindow = le.Uint32(scr[0:])
	s.ScreenWidth = le.Uint16(scr[20:])
	s.ScreenHeight = le.Uint16(scr[22:])
	s.RootVisual = le.Uint32(scr[32:])
	s.RootDepth = scr[38]

	for i := 0; i < numFormats; i++ {
		f := data[formats+i*8:]
		if f[0] == s.RootDepth {
			s.BitsPerPixel = f[1]
			s.ScanlinePad = f[2]
			break
		}
	}
	if s.BitsPerPixel == 0 {
		s.BitsPerPixel = 32
	}
	if s.ScanlinePad == 0 {
		s.ScanlinePad = 32
	}
	return s, nil
}

// Stride returns the byte length of one ZPixmap row of the given width,
// padded to the server's scanline boundary.
func (s Setup) Stride(width int) int {
	pad := int(s.ScanlinePad)
	if pad == 0 {
		pad = 32
	}
	bits := width * int(s.BitsPerPixel)
	return (bits + pad - 1) / pad * pad / 8
}

// NewID allocates a resource ID from the range the server assigned us.
func (c *Conn) NewID() uint32 {
	id := c.nextID
	c.nextID++
	return (id & c.ResourceIDMask) | c.ResourceIDBase
}

// roundTrip sends a request that has a reply and reads the 32-byte reply
// head. Only usable before an event reader is started.
func (c *Conn) roundTrip(req []byte) ([]byte, error) {
	if err := c.send(req); err != nil {
		return nil, err
	}
	reply := make([]byte, 32)
	if _, err := io.ReadFull(c.rw, reply); err != nil {
		return nil, err
	}
	if reply[0] == replyError {
		return nil, fmt.Errorf("x11: request %d failed with error code %d", req[0], reply[1])
	}
	if extra := binary.LittleEndian.Uint32(reply[4:]) * 4; extra > 0 {
		if _, err := io.CopyN(io.Discard, c.rw, int64(extra)); err != nil {
			return nil, err
		}
	}
	return reply, nil
}

// Sync waits until the server has processed every request sent so far.
func (c *Conn) Sync() error {
	_, err := c.roundTrip(newRequest(opGetInputFocus, 0).encode())
	return err
}
