package posprintf

import (
	"errors"
	"fmt"
	"slices"
)

// Divider is the divide-with-remainder primitive used by the decimal
// renderers. A Printer only ever divides by ten. Every provided divider
// panics when d is zero, the same way Go's integer division does.
type Divider interface {
	DivMod(n, d uint32) (q, r uint32)
}

// NativeDivider uses the machine's integer divide instruction.
type NativeDivider struct{}

// DivMod returns n / d and n % d.
func (NativeDivider) DivMod(n, d uint32) (q, r uint32) {
	return n / d, n % d
}

// LongDivider is a software restoring divider built from shifts, compares
// and subtraction. Use it on processors without an integer divide
// instruction. Each call costs 32 iterations regardless of operand size.
type LongDivider struct{}

// DivMod returns n / d and n % d using shift-subtract long division.
func (LongDivider) DivMod(n, d uint32) (q, r uint32) {
	if d == 0 {
		panic(errDivideByZero)
	}
	var rem uint64
	den := uint64(d)
	for i := 31; i >= 0; i-- {
		rem = rem<<1 | uint64(n>>uint(i)&1)
		if rem >= den {
			rem -= den
			q |= 1 << uint(i)
		}
	}
	return q, uint32(rem)
}

// SubtractDivider divides by repeated subtraction. Cost grows with the
// quotient, so it is only practical for 16-bit operands.
type SubtractDivider struct{}

// DivMod returns n / d and n % d by subtracting d until n drops below it.
func (SubtractDivider) DivMod(n, d uint32) (q, r uint32) {
	if d == 0 {
		panic(errDivideByZero)
	}
	for n >= d {
		n -= d
		q++
	}
	return q, n
}

var errDivideByZero = errors.New("posprintf: integer divide by zero")

var dividers = map[string]Divider{
	"native":   NativeDivider{},
	"long":     LongDivider{},
	"subtract": SubtractDivider{},
}

// DividerByName returns the divider registered under name: "native",
// "long" or "subtract".
func DividerByName(name string) (Divider, error) {
	if d, ok := dividers[name]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDivider, name)
}

// DividerNames returns the registered divider names in sorted order.
func DividerNames() []string {
	names := make([]string, 0, len(dividers))
	for name := range dividers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
