package x11

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Xauthority address families
const (
	familyLocalHost = 252
	familyLocal     = 256
	familyWild      = 65535
)

// AuthEntry is one record of an Xauthority file.
type AuthEntry struct {
	Family  uint16
	Address string
	Display string
	Name    string
	Data    []byte
}

// ReadXauthority reads $XAUTHORITY, falling back to ~/.Xauthority.
func ReadXauthority() ([]AuthEntry, error) {
	path := os.Getenv("XAUTHORITY")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".Xauthority")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseXauthority(f)
}

// ParseXauthority decodes Xauthority records until EOF. Every field is a
// big-endian length-prefixed string after a 2-byte family.
func ParseXauthority(r io.Reader) ([]AuthEntry, error) {
	br := bufio.NewReader(r)
	var entries []AuthEntry
	for {
		var e AuthEntry
		if err := binary.Read(br, binary.BigEndian, &e.Family); err != nil {
			if errors.Is(err, io.EOF) {
				return entries, nil
			}
			return nil, err
		}

		var fields [4][]byte
		for i := range fields {
			b, err := readCounted(br)
			if err != nil {
				return nil, fmt.Errorf("x11: xauthority record %d: %w", len(entries), err)
			}
			fields[i] = b
		}
		e.Address = string(fields[0])
		e.Display = string(fields[1])
		e.Name = string(fields[2])
		e.Data = fields[3]
		entries = append(entries, e)
	}
}

func readCounted(r io.Reader) ([]byte, error) {
	var n uint16
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, io.ErrUnexpectedEOF
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

// FindAuth returns the first entry usable for the local display number, or
// nil.
func FindAuth(entries []AuthEntry, display string) *AuthEntry {
	hostname, _ := os.Hostname()
	for i := range entries {
		e := &entries[i]
		if e.Display != "" && e.Display != display {
			continue
		}
		switch e.Family {
		case familyWild, familyLocalHost:
			return e
		case familyLocal:
			if e.Address == "" || e.Address == hostname {
				return e
			}
		default:
			if e.Address == "" || e.Address == hostname || e.Address == "localhost" {
				return e
			}
		}
	}
	return nil
}
