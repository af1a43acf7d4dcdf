package posprintf

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrBufferTooSmall     = errors.New("buffer too small")
	ErrOutOfRange         = errors.New("value out of range")
	ErrMalformedDirective = errors.New("malformed directive")
	ErrMissingArgument    = errors.New("missing argument")
	ErrArgumentType       = errors.New("wrong argument type")
	ErrExtraArgument      = errors.New("extra argument")
	ErrUnsupportedVerb    = errors.New("unsupported verb")
	ErrUnknownDivider     = errors.New("unknown divider")
)

// Magnitude limits for the integer conversions.
const (
	MaxShort = 65535     // %d accepts [-MaxShort, MaxShort]
	MaxLong  = 1<<29 - 1 // %l accepts [-MaxLong, MaxLong]
	MaxHex   = 1<<32 - 1 // %x and %X accept [0, MaxHex]
	MaxWidth = 9         // widths are a single digit
)

// Verb selects the conversion performed by a directive.
type Verb byte

const (
	VerbPercent  Verb = '%' // literal percent sign, consumes no argument
	VerbString   Verb = 's' // string or []byte, copied up to its first NUL
	VerbShort    Verb = 'd' // 16-bit signed decimal
	VerbLong     Verb = 'l' // 29-bit signed decimal
	VerbHexLower Verb = 'x' // unsigned hexadecimal, digits a-f
	VerbHexUpper Verb = 'X' // unsigned hexadecimal, digits A-F
)

var verbs = []Verb{VerbPercent, VerbString, VerbShort, VerbLong, VerbHexLower, VerbHexUpper}

// String returns the verb character.
func (v Verb) String() string { return string(rune(v)) }

// ConsumesArg reports whether the verb reads the next argument.
func (v Verb) ConsumesArg() bool { return v != VerbPercent }

// Padded reports whether the verb honours the field width.
func (v Verb) Padded() bool {
	switch v {
	case VerbShort, VerbLong, VerbHexLower, VerbHexUpper:
		return true
	default:
		return false
	}
}

func (v Verb) valid() bool {
	for _, known := range verbs {
		if v == known {
			return true
		}
	}
	return false
}

// Verbs returns all supported verbs.
func Verbs() []Verb {
	out := make([]Verb, len(verbs))
	copy(out, verbs)
	return out
}

// ParseVerb parses a single verb character, with or without its leading '%'.
func ParseVerb(s string) (Verb, error) {
	t := strings.TrimPrefix(s, "%")
	if t == "" {
		t = s
	}
	if len(t) == 1 && Verb(t[0]).valid() {
		return Verb(t[0]), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedVerb, s)
}

// Directive is one parsed %-token of a format string.
type Directive struct {
	Offset  int    // byte offset of the '%' in the format string
	Verb    Verb   // conversion
	Width   int    // minimum field width, 0 means none
	ZeroPad bool   // pad with '0' instead of ' '
	Raw     string // token text, e.g. "%05d"
}

// Pad returns the padding byte for the directive.
func (d Directive) Pad() byte {
	if d.ZeroPad {
		return '0'
	}
	return ' '
}

// String returns the directive as written in the format, e.g. "%05d".
func (d Directive) String() string { return d.Raw }
