// Package charset converts UTF-8 text to the single-byte encodings the
// formatter copies verbatim.
package charset

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

var (
	ErrUnsupportedCharset = errors.New("unsupported charset")
	ErrUnencodable        = errors.New("text not representable in charset")
)

// ASCII is 7-bit US-ASCII. x/text has no charmap for it, so it maps to
// [encoding.Nop] and Encode range-checks the bytes itself.
const ASCII = "ascii"

var charsets = map[string]*charmap.Charmap{
	"latin1": charmap.ISO8859_1,
	"cp1252": charmap.Windows1252,
	"cp437":  charmap.CodePage437,
}

// Lookup returns the encoding registered under name.
func Lookup(name string) (encoding.Encoding, error) {
	if name == ASCII {
		return encoding.Nop, nil
	}
	if cm, ok := charsets[name]; ok {
		return cm, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedCharset, name)
}

// Names returns every supported charset name in sorted order.
func Names() []string {
	names := []string{ASCII}
	for name := range charsets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Encode converts s from UTF-8 to the named charset.
func Encode(name, s string) ([]byte, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if name == ASCII {
		for i := 0; i < len(s); i++ {
			if s[i] >= 0x80 {
				return nil, fmt.Errorf("%w: %s: byte 0x%02x at offset %d", ErrUnencodable, name, s[i], i)
			}
		}
		return []byte(s), nil
	}
	out, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnencodable, name, err)
	}
	return out, nil
}

// Decode converts single-byte text in the named charset back to UTF-8.
func Decode(name string, b []byte) (string, error) {
	enc, err := Lookup(name)
	if err != nil {
		return "", err
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
