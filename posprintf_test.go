package posprintf_test

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/bjaus/posprintf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Helpers ---

type errWriter struct{}

func (e *errWriter) Write([]byte) (int, error) {
	return 0, errWriteFailed
}

var errWriteFailed = errors.New("write failed")

// cstring returns the bytes of buf up to its first zero byte.
func cstring(t *testing.T, buf []byte) string {
	t.Helper()
	i := bytes.IndexByte(buf, 0)
	require.GreaterOrEqual(t, i, 0, "buffer is not zero-terminated")
	return string(buf[:i])
}

// ============================================================
// Tests
// ============================================================

func TestRender(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format string
		args   []any
		want   string
	}{
		"greeting":           {format: "Hello, %s! You have %d gold.", args: []any{"World", 42}, want: "Hello, World! You have 42 gold."},
		"literal only":       {format: "no directives here", want: "no directives here"},
		"empty":              {format: "", want: ""},
		"percent":            {format: "100%%", want: "100%"},
		"percent between":    {format: "%d%%%d", args: []any{1, 2}, want: "1%2"},
		"space pad":          {format: "%5d", args: []any{123}, want: "  123"},
		"space pad too long": {format: "%3d", args: []any{12345}, want: "12345"},
		"zero pad":           {format: "%05d", args: []any{123}, want: "00123"},
		"zero pad too long":  {format: "%04d", args: []any{12345}, want: "12345"},
		"negative zero pad":  {format: "%05d", args: []any{-123}, want: "-0123"},
		"negative space pad": {format: "%5d", args: []any{-123}, want: " -123"},
		"negative no width":  {format: "%d", args: []any{-7}, want: "-7"},
		"negative exact":     {format: "%4d", args: []any{-123}, want: "-123"},
		"zero":               {format: "%d", args: []any{0}, want: "0"},
		"zero padded zero":   {format: "%03d", args: []any{0}, want: "000"},
		"short max":          {format: "%d", args: []any{posprintf.MaxShort}, want: "65535"},
		"short min":          {format: "%d", args: []any{-posprintf.MaxShort}, want: "-65535"},
		"long wide":          {format: "%5l", args: []any{123456}, want: "123456"},
		"long max":           {format: "%l", args: []any{posprintf.MaxLong}, want: "536870911"},
		"long min":           {format: "%l", args: []any{-posprintf.MaxLong}, want: "-536870911"},
		"long zero pad":      {format: "%09l", args: []any{-42}, want: "-00000042"},
		"hex lower":          {format: "%x", args: []any{255}, want: "ff"},
		"hex upper":          {format: "%X", args: []any{255}, want: "FF"},
		"hex zero pad":       {format: "%08X", args: []any{uint32(0xBEEF)}, want: "0000BEEF"},
		"hex space pad":      {format: "%4x", args: []any{10}, want: "   a"},
		"hex zero":           {format: "%x", args: []any{0}, want: "0"},
		"hex max":            {format: "%x", args: []any{uint32(posprintf.MaxHex)}, want: "ffffffff"},
		"hex negative":       {format: "%x", args: []any{-1}, want: "ffffffff"},
		"hex negative int16": {format: "%X", args: []any{int16(-2)}, want: "FFFFFFFE"},
		"string width":       {format: "[%9s]", args: []any{"ab"}, want: "[ab]"},
		"bytes":              {format: "%s", args: []any{[]byte("raw")}, want: "raw"},
		"nul in string":      {format: "<%s>", args: []any{"abc\x00def"}, want: "<abc>"},
		"nul in format":      {format: "ab\x00%d", want: "ab"},
		"percent width":      {format: "%5%", want: "%"},
		"mixed": {
			format: "%s:%03d:%l:%x:%X",
			args:   []any{"id", 7, int64(-100000), uint8(171), uint16(0xCAFE)},
			want:   "id:007:-100000:ab:CAFE",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := posprintf.Render(tc.format, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPrintTerminates(t *testing.T) {
	t.Parallel()
	buf := bytes.Repeat([]byte{0xAA}, 64)
	n, err := posprintf.Print(buf, "Hello, %s! You have %d gold.", "World", 42)
	require.NoError(t, err)
	assert.Equal(t, len("Hello, World! You have 42 gold."), n)
	assert.Equal(t, "Hello, World! You have 42 gold.", string(buf[:n]))
	assert.Equal(t, byte(0), buf[n])
	assert.Equal(t, byte(0xAA), buf[n+1], "bytes past the terminator are untouched")
}

func TestPrintLiteralIdentity(t *testing.T) {
	t.Parallel()
	inputs := []string{"", "a", "plain text", "tabs\tand\nnewlines", strings.Repeat("x", 100)}
	for _, in := range inputs {
		buf := make([]byte, len(in)+1)
		n, err := posprintf.Print(buf, in)
		require.NoError(t, err)
		assert.Equal(t, len(in), n)
		assert.Equal(t, in+"\x00", string(buf))
	}
}

func TestPrintExactFit(t *testing.T) {
	t.Parallel()
	buf := make([]byte, 6)
	n, err := posprintf.Print(buf, "%05d", -123)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "-0123", cstring(t, buf))
}

func TestPrintBufferTooSmall(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		size   int
		format string
		args   []any
		want   string
	}{
		"literal":       {size: 4, format: "abcdef", want: "abc"},
		"no terminator": {size: 5, format: "%05d", args: []any{-123}, want: "-012"},
		"padding":       {size: 3, format: "%9x", args: []any{1}, want: "  "},
		"string":        {size: 2, format: "%s", args: []any{"xyz"}, want: "x"},
		"one byte":      {size: 1, format: "a", want: ""},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			buf := make([]byte, tc.size)
			n, err := posprintf.Print(buf, tc.format, tc.args...)
			require.ErrorIs(t, err, posprintf.ErrBufferTooSmall)
			assert.Equal(t, len(tc.want), n)
			assert.Equal(t, tc.want, cstring(t, buf))
		})
	}
}

func TestPrintEmptyBuffer(t *testing.T) {
	t.Parallel()
	n, err := posprintf.Print(nil, "")
	require.ErrorIs(t, err, posprintf.ErrBufferTooSmall)
	assert.Zero(t, n)
}

func TestRenderErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format  string
		args    []any
		wantErr error
	}{
		"unknown verb":        {format: "%q", wantErr: posprintf.ErrMalformedDirective},
		"dangling percent":    {format: "abc%", wantErr: posprintf.ErrMalformedDirective},
		"dangling width":      {format: "%5", wantErr: posprintf.ErrMalformedDirective},
		"two digit width":     {format: "%12d", args: []any{1}, wantErr: posprintf.ErrMalformedDirective},
		"zero without width":  {format: "%0d", args: []any{1}, wantErr: posprintf.ErrMalformedDirective},
		"double zero":         {format: "%00d", args: []any{1}, wantErr: posprintf.ErrMalformedDirective},
		"percent then nul":    {format: "%\x00d", wantErr: posprintf.ErrMalformedDirective},
		"missing argument":    {format: "%d %d", args: []any{1}, wantErr: posprintf.ErrMissingArgument},
		"extra argument":      {format: "%d", args: []any{1, 2}, wantErr: posprintf.ErrExtraArgument},
		"string for int":      {format: "%d", args: []any{"1"}, wantErr: posprintf.ErrArgumentType},
		"int for string":      {format: "%s", args: []any{1}, wantErr: posprintf.ErrArgumentType},
		"float for hex":       {format: "%x", args: []any{1.5}, wantErr: posprintf.ErrArgumentType},
		"short too big":       {format: "%d", args: []any{posprintf.MaxShort + 1}, wantErr: posprintf.ErrOutOfRange},
		"short too small":     {format: "%d", args: []any{-posprintf.MaxShort - 1}, wantErr: posprintf.ErrOutOfRange},
		"long too big":        {format: "%l", args: []any{posprintf.MaxLong + 1}, wantErr: posprintf.ErrOutOfRange},
		"long too small":      {format: "%l", args: []any{int64(-posprintf.MaxLong - 1)}, wantErr: posprintf.ErrOutOfRange},
		"long beyond int32":   {format: "%l", args: []any{uint64(1) << 40}, wantErr: posprintf.ErrOutOfRange},
		"hex beyond 32 bits":  {format: "%x", args: []any{uint64(1) << 32}, wantErr: posprintf.ErrOutOfRange},
		"hex negative 64 bit": {format: "%x", args: []any{int64(-1) << 40}, wantErr: posprintf.ErrOutOfRange},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := posprintf.Render(tc.format, tc.args...)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestShortRejectsWideValue(t *testing.T) {
	t.Parallel()
	got, err := posprintf.Render("%5d", 123456)
	require.ErrorIs(t, err, posprintf.ErrOutOfRange)
	assert.Empty(t, got)

	got, err = posprintf.Render("%5l", 123456)
	require.NoError(t, err)
	assert.Equal(t, "123456", got)
}

func TestRenderPartialOutputOnError(t *testing.T) {
	t.Parallel()
	got, err := posprintf.Render("ok %d then %d", 1, 70000)
	require.ErrorIs(t, err, posprintf.ErrOutOfRange)
	assert.Equal(t, "ok 1 then ", got)
}

func TestPrintTerminatesOnError(t *testing.T) {
	t.Parallel()
	buf := bytes.Repeat([]byte{'#'}, 16)
	n, err := posprintf.Print(buf, "ab%q")
	require.ErrorIs(t, err, posprintf.ErrMalformedDirective)
	assert.Equal(t, 2, n)
	assert.Equal(t, "ab", cstring(t, buf))
}

func TestExtraArgumentKeepsOutput(t *testing.T) {
	t.Parallel()
	buf := make([]byte, 8)
	n, err := posprintf.Print(buf, "%d", 5, 6)
	require.ErrorIs(t, err, posprintf.ErrExtraArgument)
	assert.Equal(t, "5", cstring(t, buf[:n+1]))
}

func TestErrorMessageNamesDirective(t *testing.T) {
	t.Parallel()
	_, err := posprintf.Render("x=%05d", 99999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "%05d")
	assert.Contains(t, err.Error(), "offset 2")
}

func TestWidthProperty(t *testing.T) {
	t.Parallel()
	values := []int{0, 1, 9, 10, 99, 100, 4095, 9999, 10000, 65535}
	for width := 0; width <= posprintf.MaxWidth; width++ {
		for _, zero := range []bool{false, true} {
			if zero && width == 0 {
				continue
			}
			for _, v := range values {
				for _, signed := range []int{v, -v} {
					format := "%" + widthSpec(width, zero) + "d"
					got, err := posprintf.Render(format, signed)
					require.NoError(t, err, format)

					natural := len(strconv.Itoa(signed))
					assert.Equal(t, max(natural, width), len(got), "%s of %d", format, signed)

					back, err := strconv.Atoi(strings.TrimLeft(got, " "))
					require.NoError(t, err, "%q", got)
					assert.Equal(t, signed, back)

					pad := " "
					if zero {
						pad = "0"
					}
					gap := len(got) - natural
					if gap > 0 {
						if zero && signed < 0 {
							assert.Equal(t, strings.Repeat(pad, gap), got[1:1+gap])
						} else {
							assert.Equal(t, strings.Repeat(pad, gap), got[:gap])
						}
					}
				}
			}
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	t.Parallel()
	values := []uint32{0, 1, 0xF, 0x10, 0xFF, 0x1234, 0xABCDEF, 0x7FFFFFFF, 0xFFFFFFFF}
	for _, v := range values {
		for width := 0; width <= posprintf.MaxWidth; width++ {
			lower, err := posprintf.Render("%"+widthSpec(width, width > 0)+"x", v)
			require.NoError(t, err)
			upper, err := posprintf.Render("%"+widthSpec(width, false)+"X", v)
			require.NoError(t, err)

			natural := len(strconv.FormatUint(uint64(v), 16))
			assert.Equal(t, max(natural, width), len(lower))
			assert.Equal(t, max(natural, width), len(upper))
			assert.Equal(t, strings.ToLower(lower), lower)
			assert.Equal(t, strings.ToUpper(upper), upper)

			back, err := strconv.ParseUint(strings.TrimLeft(upper, " "), 16, 32)
			require.NoError(t, err)
			assert.Equal(t, uint64(v), back)
		}
	}
}

func TestLongRoundTrip(t *testing.T) {
	t.Parallel()
	values := []int64{0, 7, 65536, 999999, 10000000, 123456789, 500000000, posprintf.MaxLong}
	for _, v := range values {
		for _, signed := range []int64{v, -v} {
			got, err := posprintf.Render("%l", signed)
			require.NoError(t, err)
			assert.Equal(t, strconv.FormatInt(signed, 10), got)
		}
	}
}

func TestDividersAgree(t *testing.T) {
	t.Parallel()
	values := []int{0, 5, 10, 65535, 100000, 7654321, posprintf.MaxLong, -posprintf.MaxLong}
	native := posprintf.New()
	long := posprintf.New(posprintf.WithLongDivider(posprintf.LongDivider{}))
	for _, v := range values {
		want, err := native.Render("%09l", v)
		require.NoError(t, err)
		got, err := long.Render("%09l", v)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	sub := posprintf.New(posprintf.WithDivider(posprintf.SubtractDivider{}))
	for _, v := range []int{0, 9, 10, 12345, posprintf.MaxShort, -posprintf.MaxShort} {
		want, err := native.Render("%6d", v)
		require.NoError(t, err)
		got, err := sub.Render("%6d", v)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

type countingDivider struct {
	mu    sync.Mutex
	calls int
}

func (c *countingDivider) DivMod(n, d uint32) (uint32, uint32) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return n / d, n % d
}

func TestInjectedDividerPerPath(t *testing.T) {
	t.Parallel()
	short := &countingDivider{}
	long := &countingDivider{}
	p := posprintf.New(posprintf.WithShortDivider(short), posprintf.WithLongDivider(long))

	got, err := p.Render("%d %l %x", 123, 45678, 255)
	require.NoError(t, err)
	assert.Equal(t, "123 45678 ff", got)
	assert.Equal(t, 3, short.calls, "one divide per decimal digit")
	assert.Equal(t, 5, long.calls)
}

func TestNilDividerOptionIgnored(t *testing.T) {
	t.Parallel()
	p := posprintf.New(posprintf.WithDivider(nil), posprintf.WithShortDivider(nil), posprintf.WithLongDivider(nil))
	got, err := p.Render("%d/%l", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "1/2", got)
}

func TestSizeMatchesPrint(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format string
		args   []any
	}{
		"empty":    {format: ""},
		"greeting": {format: "Hello, %s! You have %d gold.", args: []any{"World", 42}},
		"padded":   {format: "%09l|%8X|%5d", args: []any{-1, 3, -4}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			size, err := posprintf.Size(tc.format, tc.args...)
			require.NoError(t, err)
			buf := make([]byte, size)
			n, err := posprintf.Print(buf, tc.format, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, size, n+1)

			_, err = posprintf.Print(buf[:size-1], tc.format, tc.args...)
			if size > 1 {
				assert.ErrorIs(t, err, posprintf.ErrBufferTooSmall)
			}
		})
	}
}

func TestSizeError(t *testing.T) {
	t.Parallel()
	_, err := posprintf.Size("%z")
	assert.ErrorIs(t, err, posprintf.ErrMalformedDirective)
}

func TestAppend(t *testing.T) {
	t.Parallel()
	out, err := posprintf.Append([]byte("> "), "%s=%04x", "reg", 0x1F)
	require.NoError(t, err)
	assert.Equal(t, "> reg=001f", string(out))
}

func TestFprint(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	n, err := posprintf.Fprint(&buf, "[%3d]", 7)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "[  7]", buf.String())
}

func TestFprintErrors(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	_, err := posprintf.Fprint(&buf, "%d", "nope")
	require.ErrorIs(t, err, posprintf.ErrArgumentType)
	assert.Empty(t, buf.String(), "nothing written on render failure")

	_, err = posprintf.Fprint(&buf, "%d", 1, 2)
	require.ErrorIs(t, err, posprintf.ErrExtraArgument)
	assert.Equal(t, "1", buf.String())

	_, err = posprintf.Fprint(&errWriter{}, "x")
	assert.ErrorIs(t, err, errWriteFailed)
}

func TestConcurrentDistinctBuffers(t *testing.T) {
	t.Parallel()
	p := posprintf.New(posprintf.WithLongDivider(posprintf.LongDivider{}))
	var wg sync.WaitGroup
	results := make([]string, 64)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := make([]byte, 32)
			n, err := p.Print(buf, "#%02d=%l", i, i*1000003)
			if err == nil {
				results[i] = string(buf[:n])
			}
		}()
	}
	wg.Wait()
	for i, got := range results {
		assert.Equal(t, "#"+twoDigits(i)+"="+strconv.Itoa(i*1000003), got)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()
	ds, err := posprintf.Parse("a%%b%s%5d%07l%x%9X")
	require.NoError(t, err)
	require.Len(t, ds, 6)

	assert.Equal(t, posprintf.Directive{Offset: 1, Verb: posprintf.VerbPercent, Raw: "%%"}, ds[0])
	assert.Equal(t, posprintf.Directive{Offset: 4, Verb: posprintf.VerbString, Raw: "%s"}, ds[1])
	assert.Equal(t, posprintf.Directive{Offset: 6, Verb: posprintf.VerbShort, Width: 5, Raw: "%5d"}, ds[2])
	assert.Equal(t, posprintf.Directive{Offset: 9, Verb: posprintf.VerbLong, Width: 7, ZeroPad: true, Raw: "%07l"}, ds[3])
	assert.Equal(t, posprintf.Directive{Offset: 13, Verb: posprintf.VerbHexLower, Raw: "%x"}, ds[4])
	assert.Equal(t, posprintf.Directive{Offset: 15, Verb: posprintf.VerbHexUpper, Width: 9, Raw: "%9X"}, ds[5])
	assert.Equal(t, byte('0'), ds[3].Pad())
	assert.Equal(t, byte(' '), ds[2].Pad())
}

func TestParseError(t *testing.T) {
	t.Parallel()
	ds, err := posprintf.Parse("%d %10d")
	require.ErrorIs(t, err, posprintf.ErrMalformedDirective)
	assert.Nil(t, ds)
	assert.Contains(t, err.Error(), "single digit")
}

func TestDirectivesStopsEarly(t *testing.T) {
	t.Parallel()
	var seen []string
	for d, err := range posprintf.Directives("%d%s%x%X") {
		require.NoError(t, err)
		seen = append(seen, d.Raw)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"%d", "%s"}, seen)
}

func TestParseVerb(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    posprintf.Verb
		wantErr require.ErrorAssertionFunc
	}{
		"d":            {input: "d", want: posprintf.VerbShort, wantErr: require.NoError},
		"percent d":    {input: "%l", want: posprintf.VerbLong, wantErr: require.NoError},
		"upper X":      {input: "X", want: posprintf.VerbHexUpper, wantErr: require.NoError},
		"bare percent": {input: "%", want: posprintf.VerbPercent, wantErr: require.NoError},
		"percent pair": {input: "%%", want: posprintf.VerbPercent, wantErr: require.NoError},
		"unknown":      {input: "f", wantErr: require.Error},
		"too long":     {input: "dd", wantErr: require.Error},
		"empty":        {input: "", wantErr: require.Error},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := posprintf.ParseVerb(tc.input)
			tc.wantErr(t, err)
			if err != nil {
				assert.ErrorIs(t, err, posprintf.ErrUnsupportedVerb)
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestVerbs(t *testing.T) {
	t.Parallel()
	vs := posprintf.Verbs()
	assert.Len(t, vs, 6)
	vs[0] = 'z'
	assert.Equal(t, posprintf.VerbPercent, posprintf.Verbs()[0], "Verbs returns a copy")

	assert.Equal(t, "d", posprintf.VerbShort.String())
	assert.False(t, posprintf.VerbPercent.ConsumesArg())
	assert.True(t, posprintf.VerbString.ConsumesArg())
	assert.False(t, posprintf.VerbString.Padded())
	assert.True(t, posprintf.VerbHexUpper.Padded())
}

func TestDividerByName(t *testing.T) {
	t.Parallel()
	for _, name := range posprintf.DividerNames() {
		d, err := posprintf.DividerByName(name)
		require.NoError(t, err)
		q, r := d.DivMod(1234, 10)
		assert.Equal(t, uint32(123), q, name)
		assert.Equal(t, uint32(4), r, name)
	}
	assert.Equal(t, []string{"long", "native", "subtract"}, posprintf.DividerNames())

	_, err := posprintf.DividerByName("swi")
	assert.ErrorIs(t, err, posprintf.ErrUnknownDivider)
}

func widthSpec(width int, zero bool) string {
	if width == 0 {
		return ""
	}
	if zero {
		return "0" + strconv.Itoa(width)
	}
	return strconv.Itoa(width)
}

func twoDigits(i int) string {
	if i < 10 {
		return "0" + strconv.Itoa(i)
	}
	return strconv.Itoa(i)
}
