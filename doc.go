// Package posprintf is a condensed sprintf for memory- and cycle-constrained
// targets.
//
// It understands a small, fixed grammar:
//
//	%%  a literal '%'
//	%s  a string or []byte, copied up to its first NUL byte
//	%d  a 16-bit signed integer in [-65535, 65535]
//	%l  a 29-bit signed integer in [-536870911, 536870911]
//	%x  an unsigned 32-bit integer in lowercase hexadecimal
//	%X  an unsigned 32-bit integer in uppercase hexadecimal
//
// The integer verbs take an optional single-digit width. A leading 0 pads
// with zeros instead of spaces:
//
//	%5d   123    -> "  123"
//	%5l   123456 -> "123456"
//	%05d  123    -> "00123"
//	%05d  -123   -> "-0123"
//	%5d   -123   -> " -123"
//
// The width is a minimum and never truncates. The sign counts toward the
// width. Hexadecimal values are unsigned. Widths on %s and %% are accepted
// and ignored.
//
// Values outside a verb's range are rejected with [ErrOutOfRange] rather
// than rendered: %5d with 123456 fails because 123456 does not fit in 16
// bits. Use %l for wider values.
//
// # Entry Points
//
// [Print] writes into a caller-sized buffer and zero-terminates it, the way
// the classic embedded routine does, but checks capacity:
//
//	var buf [32]byte
//	n, err := posprintf.Print(buf[:], "HP %03d/%03d", hp, maxHP)
//
// [Append], [Fprint] and [Render] are growable variants for hosted code.
// [Size] reports the buffer length Print would need.
//
// # Division
//
// Decimal conversion divides by ten once per digit. The [Divider] used for
// %d and %l is injectable so targets without a fast divide instruction can
// supply their own primitive. [NativeDivider], [LongDivider] and
// [SubtractDivider] are provided.
//
// # Errors
//
// Failures are reported through sentinel errors:
//
//   - [ErrBufferTooSmall]: output plus terminator exceeds the buffer
//   - [ErrOutOfRange]: integer magnitude outside the verb's range
//   - [ErrMalformedDirective]: unknown verb, two-digit width, dangling %
//   - [ErrMissingArgument]: fewer arguments than directives
//   - [ErrArgumentType]: argument kind does not match its directive
//   - [ErrExtraArgument]: arguments left over after a complete render
package posprintf
