package posprintf

import (
	"fmt"

	"fortio.org/safecast"
)

const (
	lowerHex = "0123456789abcdef"
	upperHex = "0123456789ABCDEF"
)

// writeDecimal renders v in base 10. Digits are produced least significant
// first into scratch and emitted reversed. |v| never exceeds MaxLong, so ten
// digits always suffice.
func writeDecimal(out sink, div Divider, v int32, width int, zero bool) error {
	var scratch [10]byte
	neg := v < 0
	mag := uint32(v)
	if neg {
		mag = uint32(-v)
	}
	n := 0
	for {
		q, r := div.DivMod(mag, 10)
		scratch[n] = '0' + byte(r)
		n++
		mag = q
		if mag == 0 {
			break
		}
	}
	return writeField(out, scratch[:n], neg, width, zero)
}

// writeHex renders v in base 16 by shifting out one nibble at a time.
func writeHex(out sink, v uint32, width int, zero, upper bool) error {
	digits := lowerHex
	if upper {
		digits = upperHex
	}
	var scratch [8]byte
	n := 0
	for {
		scratch[n] = digits[v&0xF]
		n++
		v >>= 4
		if v == 0 {
			break
		}
	}
	return writeField(out, scratch[:n], false, width, zero)
}

// writeField emits reversed digits left-padded to width. The sign takes one
// column of the width. Spaces go before the sign, zeros between the sign and
// the digits.
func writeField(out sink, reversed []byte, neg bool, width int, zero bool) error {
	fill := width - len(reversed)
	if neg {
		fill--
	}
	if !zero {
		if err := repeat(out, ' ', fill); err != nil {
			return err
		}
	}
	if neg {
		if err := out.writeByte('-'); err != nil {
			return err
		}
	}
	if zero {
		if err := repeat(out, '0', fill); err != nil {
			return err
		}
	}
	for i := len(reversed) - 1; i >= 0; i-- {
		if err := out.writeByte(reversed[i]); err != nil {
			return err
		}
	}
	return nil
}

func repeat(out sink, c byte, count int) error {
	for range count {
		if err := out.writeByte(c); err != nil {
			return err
		}
	}
	return nil
}

func writeString(out sink, d Directive, arg any) error {
	switch s := arg.(type) {
	case string:
		return copyText(out, s)
	case []byte:
		return copyText(out, s)
	default:
		return fmt.Errorf("%w: %s at offset %d wants a string, got %T", ErrArgumentType, d.Raw, d.Offset, arg)
	}
}

// copyText copies s up to its end or its first NUL byte.
func copyText[T string | []byte](out sink, s T) error {
	for i := 0; i < len(s) && s[i] != 0; i++ {
		if err := out.writeByte(s[i]); err != nil {
			return err
		}
	}
	return nil
}

// signedArg narrows an integer argument to int32 and checks it against
// [-limit, limit].
func signedArg(d Directive, arg any, limit int32) (int32, error) {
	var (
		v   int32
		err error
	)
	switch n := arg.(type) {
	case int:
		v, err = safecast.Conv[int32](n)
	case int8:
		v = int32(n)
	case int16:
		v = int32(n)
	case int32:
		v = n
	case int64:
		v, err = safecast.Conv[int32](n)
	case uint:
		v, err = safecast.Conv[int32](n)
	case uint8:
		v = int32(n)
	case uint16:
		v = int32(n)
	case uint32:
		v, err = safecast.Conv[int32](n)
	case uint64:
		v, err = safecast.Conv[int32](n)
	default:
		return 0, fmt.Errorf("%w: %s at offset %d wants an integer, got %T", ErrArgumentType, d.Raw, d.Offset, arg)
	}
	if err != nil || v < -limit || v > limit {
		return 0, fmt.Errorf("%w: %s at offset %d: %v outside [-%d, %d]", ErrOutOfRange, d.Raw, d.Offset, arg, limit, limit)
	}
	return v, nil
}

// hexArg narrows an integer argument to uint32. Negative signed values that
// fit in 32 bits are taken as their two's complement bit pattern.
func hexArg(d Directive, arg any) (uint32, error) {
	var (
		v   uint32
		err error
	)
	switch n := arg.(type) {
	case int:
		v, err = twosComplement(int64(n))
	case int8:
		v = uint32(int32(n))
	case int16:
		v = uint32(int32(n))
	case int32:
		v = uint32(n)
	case int64:
		v, err = twosComplement(n)
	case uint:
		v, err = safecast.Conv[uint32](n)
	case uint8:
		v = uint32(n)
	case uint16:
		v = uint32(n)
	case uint32:
		v = n
	case uint64:
		v, err = safecast.Conv[uint32](n)
	default:
		return 0, fmt.Errorf("%w: %s at offset %d wants an integer, got %T", ErrArgumentType, d.Raw, d.Offset, arg)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %s at offset %d: %v does not fit in 32 bits", ErrOutOfRange, d.Raw, d.Offset, arg)
	}
	return v, nil
}

func twosComplement(n int64) (uint32, error) {
	if n >= 0 {
		return safecast.Conv[uint32](n)
	}
	s, err := safecast.Conv[int32](n)
	return uint32(s), err
}
