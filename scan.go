package posprintf

import (
	"fmt"
	"iter"
)

// render walks format once, copying literal bytes and dispatching each
// directive to its renderer. A NUL byte ends the format string.
func (p *Printer) render(out sink, format string, args []any) error {
	next := 0
	for i := 0; i < len(format) && format[i] != 0; i++ {
		if format[i] != '%' {
			if err := out.writeByte(format[i]); err != nil {
				return err
			}
			continue
		}
		d, end, err := parseDirective(format, i)
		if err != nil {
			return err
		}
		i = end - 1
		if !d.Verb.ConsumesArg() {
			if err := out.writeByte('%'); err != nil {
				return err
			}
			continue
		}
		if next >= len(args) {
			return fmt.Errorf("%w: %s at offset %d", ErrMissingArgument, d.Raw, d.Offset)
		}
		arg := args[next]
		next++
		if err := p.emit(out, d, arg); err != nil {
			return err
		}
	}
	if next < len(args) {
		return fmt.Errorf("%w: %d of %d arguments unused", ErrExtraArgument, len(args)-next, len(args))
	}
	return nil
}

func (p *Printer) emit(out sink, d Directive, arg any) error {
	switch d.Verb {
	case VerbString:
		return writeString(out, d, arg)
	case VerbShort:
		v, err := signedArg(d, arg, MaxShort)
		if err != nil {
			return err
		}
		return writeDecimal(out, p.short, v, d.Width, d.ZeroPad)
	case VerbLong:
		v, err := signedArg(d, arg, MaxLong)
		if err != nil {
			return err
		}
		return writeDecimal(out, p.long, v, d.Width, d.ZeroPad)
	case VerbHexLower, VerbHexUpper:
		v, err := hexArg(d, arg)
		if err != nil {
			return err
		}
		return writeHex(out, v, d.Width, d.ZeroPad, d.Verb == VerbHexUpper)
	default:
		return fmt.Errorf("%w: %s at offset %d", ErrUnsupportedVerb, d.Raw, d.Offset)
	}
}

// parseDirective parses the directive whose '%' sits at format[at]. The
// grammar is '%' ['0'] ['1'-'9'] verb. It returns the directive and the
// offset just past it.
func parseDirective(format string, at int) (Directive, int, error) {
	d := Directive{Offset: at}
	i := at + 1
	if i < len(format) && format[i] == '0' {
		d.ZeroPad = true
		i++
		if i >= len(format) || !isWidthDigit(format[i]) {
			return d, i, malformed(format, at, i, "zero flag without a width digit")
		}
	}
	if i < len(format) && isWidthDigit(format[i]) {
		d.Width = int(format[i] - '0')
		i++
	}
	if i >= len(format) || format[i] == 0 {
		return d, i, malformed(format, at, i, "missing verb")
	}
	v := Verb(format[i])
	if !v.valid() {
		reason := fmt.Sprintf("unknown verb %q", format[i])
		if format[i] >= '0' && format[i] <= '9' {
			reason = "width must be a single digit"
		}
		return d, i + 1, malformed(format, at, i+1, reason)
	}
	d.Verb = v
	i++
	d.Raw = format[at:i]
	return d, i, nil
}

func isWidthDigit(c byte) bool { return c >= '1' && c <= '9' }

func malformed(format string, at, end int, reason string) error {
	end = min(end, len(format))
	return fmt.Errorf("%w: %q at offset %d: %s", ErrMalformedDirective, format[at:end], at, reason)
}

// Directives yields the directives of format in order without rendering
// anything. Iteration stops after the first malformed directive, which is
// yielded together with its error.
func Directives(format string) iter.Seq2[Directive, error] {
	return func(yield func(Directive, error) bool) {
		for i := 0; i < len(format) && format[i] != 0; i++ {
			if format[i] != '%' {
				continue
			}
			d, end, err := parseDirective(format, i)
			if err != nil {
				yield(d, err)
				return
			}
			if !yield(d, nil) {
				return
			}
			i = end - 1
		}
	}
}

// Parse returns every directive of format, or the first parse error.
func Parse(format string) ([]Directive, error) {
	var out []Directive
	for d, err := range Directives(format) {
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
