package posprintf

import (
	"errors"
	"fmt"
	"io"
)

// Printer renders format strings. The zero value is not usable; call [New].
// A Printer holds no per-call state and may be shared between goroutines
// as long as each call targets its own destination.
type Printer struct {
	short Divider // %d
	long  Divider // %l
}

// Option configures a [Printer].
type Option func(*Printer)

// WithDivider sets the divider for both decimal conversions.
func WithDivider(d Divider) Option {
	return func(p *Printer) {
		if d != nil {
			p.short, p.long = d, d
		}
	}
}

// WithShortDivider sets the divider used by %d.
func WithShortDivider(d Divider) Option {
	return func(p *Printer) {
		if d != nil {
			p.short = d
		}
	}
}

// WithLongDivider sets the divider used by %l.
func WithLongDivider(d Divider) Option {
	return func(p *Printer) {
		if d != nil {
			p.long = d
		}
	}
}

// New returns a Printer. Both conversions default to [NativeDivider].
func New(opts ...Option) *Printer {
	p := &Printer{short: NativeDivider{}, long: NativeDivider{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var std = New()

// Print renders format into dst using the default Printer. See [Printer.Print].
func Print(dst []byte, format string, args ...any) (int, error) {
	return std.Print(dst, format, args...)
}

// Append renders format onto dst using the default Printer.
func Append(dst []byte, format string, args ...any) ([]byte, error) {
	return std.Append(dst, format, args...)
}

// Fprint renders format to w using the default Printer.
func Fprint(w io.Writer, format string, args ...any) (int, error) {
	return std.Fprint(w, format, args...)
}

// Render returns the rendered text using the default Printer.
func Render(format string, args ...any) (string, error) {
	return std.Render(format, args...)
}

// Size reports the destination length [Print] needs, terminator included.
func Size(format string, args ...any) (int, error) {
	return std.Size(format, args...)
}

// Print renders format into dst and writes a zero terminator after the last
// rendered byte. The capacity is len(dst) and must leave room for the
// terminator. It returns the number of bytes written, excluding the
// terminator.
//
// When rendering fails dst still holds the output produced up to the
// failure, zero-terminated. Output that would not fit is reported as
// [ErrBufferTooSmall] rather than written.
func (p *Printer) Print(dst []byte, format string, args ...any) (int, error) {
	if len(dst) == 0 {
		return 0, fmt.Errorf("%w: capacity 0 leaves no room for the terminator", ErrBufferTooSmall)
	}
	out := &fixedSink{buf: dst}
	err := p.render(out, format, args)
	dst[out.n] = 0
	return out.n, err
}

// Append renders format onto the end of dst and returns the extended slice.
// No terminator is written. On error the returned slice holds the output
// produced up to the failure.
func (p *Printer) Append(dst []byte, format string, args ...any) ([]byte, error) {
	out := &growSink{buf: dst}
	err := p.render(out, format, args)
	return out.buf, err
}

// Fprint renders format and writes the result to w. Nothing is written when
// rendering fails, except for [ErrExtraArgument] where the complete output is
// written and the error is still returned.
func (p *Printer) Fprint(w io.Writer, format string, args ...any) (int, error) {
	buf, err := p.Append(nil, format, args...)
	if err != nil && !errors.Is(err, ErrExtraArgument) {
		return 0, err
	}
	n, werr := w.Write(buf)
	if werr != nil {
		return n, werr
	}
	return n, err
}

// Render returns the rendered text.
func (p *Printer) Render(format string, args ...any) (string, error) {
	buf, err := p.Append(nil, format, args...)
	return string(buf), err
}

// Size reports the destination length [Printer.Print] needs for the given
// arguments, terminator included.
func (p *Printer) Size(format string, args ...any) (int, error) {
	out := &countSink{}
	if err := p.render(out, format, args); err != nil && !errors.Is(err, ErrExtraArgument) {
		return 0, err
	}
	return out.n + 1, nil
}

// sink is the write cursor. It only ever moves forward.
type sink interface {
	writeByte(c byte) error
}

// fixedSink writes into a caller-owned buffer and keeps the last slot free
// for the terminator.
type fixedSink struct {
	buf []byte
	n   int
}

func (s *fixedSink) writeByte(c byte) error {
	if s.n >= len(s.buf)-1 {
		return fmt.Errorf("%w: capacity %d", ErrBufferTooSmall, len(s.buf))
	}
	s.buf[s.n] = c
	s.n++
	return nil
}

type growSink struct {
	buf []byte
}

func (s *growSink) writeByte(c byte) error {
	s.buf = append(s.buf, c)
	return nil
}

type countSink struct {
	n int
}

func (s *countSink) writeByte(byte) error {
	s.n++
	return nil
}
