package x11

import "fmt"

// CreateGC creates a graphics context on drawable with graphics exposures
// off, so PutImage does not generate Expose events.
func (c *Conn) CreateGC(drawable uint32) (uint32, error) {
	id := c.NewID()
	req := newRequest(opCreateGC, 0).
		u32(id).
		u32(drawable).
		u32(gcForeground | gcBackground | gcGraphicsExposures).
		u32(0xFFFFFF).
		u32(0).
		u32(0).
		encode()
	if err := c.send(req); err != nil {
		return 0, fmt.Errorf("x11: create gc: %w", err)
	}
	return id, nil
}

func (c *Conn) FreeGC(gc uint32) error {
	return c.send(newRequest(opFreeGC, 0).u32(gc).encode())
}

// putImageRequests splits a ZPixmap image into row bands that each fit in
// maxWords, the server's request length limit.
func putImageRequests(drawable, gc uint32, width, height int, depth uint8, data []byte, maxWords int) ([][]byte, error) {
	if height == 0 {
		return nil, nil
	}
	if len(data)%height != 0 {
		return nil, fmt.Errorf("x11: image of %d bytes is not %d rows", len(data), height)
	}
	stride := len(data) / height
	rows := (maxWords - 6) * 4 / stride
	if rows < 1 {
		return nil, fmt.Errorf("x11: image row of %d bytes exceeds request limit", stride)
	}

	var reqs [][]byte
	for y := 0; y < height; y += rows {
		n := min(rows, height-y)
		reqs = append(reqs, newRequest(opPutImage, imageFormatZPixmap).
			u32(drawable).
			u32(gc).
			u16(uint16(width)).u16(uint16(n)).
			u16(0).u16(uint16(y)).
			u8(0). // left pad
			u8(depth).
			skip(2).
			bytes(data[y*stride:(y+n)*stride]).
			encode())
	}
	return reqs, nil
}

// padRows copies height rows that are pitch bytes apart into rows of
// stride bytes, zero filling or cutting the tail of each row.
func padRows(data []byte, height, pitch, stride int) []byte {
	out := make([]byte, height*stride)
	n := min(pitch, stride)
	for y := 0; y < height; y++ {
		copy(out[y*stride:y*stride+n], data[y*pitch:])
	}
	return out
}

// PutImage copies a width x height image to the top-left corner of
// drawable. Rows start pitch bytes apart in data; when that differs from
// the server's padded stride they are repacked first.
func (c *Conn) PutImage(drawable, gc uint32, width, height, pitch int, data []byte) error {
	if height > 0 && len(data) < (height-1)*pitch+width*int(c.BitsPerPixel)/8 {
		return fmt.Errorf("x11: image of %d bytes too short for %d rows of pitch %d", len(data), height, pitch)
	}
	stride := c.Stride(width)
	if pitch != stride || len(data) != height*stride {
		data = padRows(data, height, pitch, stride)
	}

	limit := int(c.MaxRequestLen)
	if limit == 0 {
		limit = 0xFFFF
	}
	reqs, err := putImageRequests(drawable, gc, width, height, c.RootDepth, data, limit)
	if err != nil {
		return err
	}
	for _, req := range reqs {
		if err := c.send(req); err != nil {
			return fmt.Errorf("x11: put image: %w", err)
		}
	}
	return nil
}
