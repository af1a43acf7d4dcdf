package batch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bjaus/posprintf"
	"github.com/bjaus/posprintf/internal/charset"
)

var (
	ErrArgCount    = errors.New("argument count mismatch")
	ErrBadArgument = errors.New("bad argument")
)

// ConvertArgs turns command-line argument text into typed arguments for
// format. %s arguments are encoded with the named charset, %d and %l parse
// as signed decimal and %x/%X as unsigned decimal or 0x-prefixed hex.
func ConvertArgs(format string, raw []string, charsetName string) ([]any, error) {
	directives, err := posprintf.Parse(format)
	if err != nil {
		return nil, err
	}
	var args []any
	for _, d := range directives {
		if !d.Verb.ConsumesArg() {
			continue
		}
		i := len(args)
		if i >= len(raw) {
			return nil, fmt.Errorf("%w: %s at offset %d has no argument", ErrArgCount, d.Raw, d.Offset)
		}
		v, err := convert(d, raw[i], charsetName)
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d for %s: %w", ErrBadArgument, i+1, d.Raw, err)
		}
		args = append(args, v)
	}
	if len(args) < len(raw) {
		return nil, fmt.Errorf("%w: format takes %d arguments, got %d", ErrArgCount, len(args), len(raw))
	}
	return args, nil
}

func convert(d posprintf.Directive, s, charsetName string) (any, error) {
	switch d.Verb {
	case posprintf.VerbString:
		return charset.Encode(charsetName, s)
	case posprintf.VerbShort, posprintf.VerbLong:
		return strconv.ParseInt(s, 10, 64)
	default:
		if hex, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
			return strconv.ParseUint(hex, 16, 64)
		}
		return strconv.ParseUint(s, 10, 64)
	}
}
