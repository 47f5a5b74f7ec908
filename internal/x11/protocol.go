// Package x11 speaks just enough of the X11 wire protocol to open a window,
// push frames into it with PutImage and read keyboard and window events.
// Everything is little-endian; the setup request announces 'l'.
package x11

// Request opcodes
const (
	opCreateWindow   = 1
	opDestroyWindow  = 4
	opMapWindow      = 8
	opInternAtom     = 16
	opChangeProperty = 18
	opGetInputFocus  = 43
	opCreateGC       = 55
	opFreeGC         = 60
	opPutImage       = 72
)

// CreateWindow value mask bits
const (
	cwBackPixel = 1 << 1
	cwEventMask = 1 << 11
)

// CreateGC value mask bits
const (
	gcForeground        = 1 << 2
	gcBackground        = 1 << 3
	gcGraphicsExposures = 1 << 16
)

// Event masks selected on our window
const (
	KeyPressMask        = 1 << 0
	KeyReleaseMask      = 1 << 1
	ExposureMask        = 1 << 15
	StructureNotifyMask = 1 << 17
)

// Event codes, the low 7 bits of the first byte of a 32-byte event
const (
	replyError           = 0
	replyOK              = 1
	EventKeyPress        = 2
	EventKeyRelease      = 3
	EventExpose          = 12
	EventConfigureNotify = 22
	EventClientMessage   = 33
)

const (
	windowClassInputOutput = 1
	imageFormatZPixmap     = 2
	propModeReplace        = 0
)
