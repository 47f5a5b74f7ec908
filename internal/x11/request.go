package x11

import "encoding/binary"

// request accumulates one protocol request. The 4-byte header carries the
// opcode, one byte of request specific data and the length in words, which
// encode fills in after padding the body.
type request struct {
	buf []byte
}

func newRequest(opcode, data uint8) *request {
	return &request{buf: []byte{opcode, data, 0, 0}}
}

func (r *request) u8(v uint8) *request {
	r.buf = append(r.buf, v)
	return r
}

func (r *request) u16(v uint16) *request {
	r.buf = binary.LittleEndian.AppendUint16(r.buf, v)
	return r
}

func (r *request) u32(v uint32) *request {
	r.buf = binary.LittleEndian.AppendUint32(r.buf, v)
	return r
}

func (r *request) skip(n int) *request {
	r.buf = append(r.buf, make([]byte, n)...)
	return r
}

// bytes appends b and pads to a word boundary.
func (r *request) bytes(b []byte) *request {
	r.buf = append(r.buf, b...)
	return r.skip(pad(len(b)))
}

func (r *request) encode() []byte {
	r.skip(pad(len(r.buf)))
	binary.LittleEndian.PutUint16(r.buf[2:], uint16(len(r.buf)/4))
	return r.buf
}

func pad(n int) int {
	return (4 - n%4) % 4
}
