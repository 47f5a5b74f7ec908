package bounce

import "unicode"

// EventType identifies the type of event
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventKeyDown
	EventKeyUp
	EventResize
	EventExpose
)

func (t EventType) String() string {
	switch t {
	case EventQuit:
		return "quit"
	case EventKeyDown:
		return "keydown"
	case EventKeyUp:
		return "keyup"
	case EventResize:
		return "resize"
	case EventExpose:
		return "expose"
	}
	return "none"
}

// Event is an input or window event from a Display.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int
}

// Key is a backend independent key. Printable keys are their lower-case
// rune; the rest use values from the Unicode private use area.
type Key rune

const (
	KeyUnknown   Key = 0
	KeyBackspace Key = '\b'
	KeyTab       Key = '\t'
	KeyEnter     Key = '\r'
	KeyEscape    Key = 0x1B
	KeySpace     Key = ' '
)

const (
	KeyUp Key = 0xE000 + iota
	KeyDown
	KeyLeft
	KeyRight
)

// KeyFromRune maps a typed character to its Key.
func KeyFromRune(r rune) Key {
	return Key(unicode.ToLower(r))
}

// X11 keycodes for a standard US layout
var x11Keys = map[uint8]Key{
	9:   KeyEscape,
	22:  KeyBackspace,
	23:  KeyTab,
	36:  KeyEnter,
	65:  KeySpace,
	111: KeyUp,
	116: KeyDown,
	113: KeyLeft,
	114: KeyRight,
}

func init() {
	rows := []struct {
		first uint8
		keys  string
	}{
		{10, "1234567890"},
		{24, "qwertyuiop"},
		{38, "asdfghjkl"},
		{52, "zxcvbnm"},
	}
	for _, row := range rows {
		for i, r := range row.keys {
			x11Keys[row.first+uint8(i)] = Key(r)
		}
	}
}

// keyFromX11 translates an X11 keycode.
func keyFromX11(code uint8) Key {
	if k, ok := x11Keys[code]; ok {
		return k
	}
	return KeyUnknown
}
