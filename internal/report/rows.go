package report

import (
	"encoding/hex"
	"strconv"

	"github.com/bjaus/posprintf"
)

// Result describes one render.
type Result struct {
	Format   string `json:"format" yaml:"format"`
	Text     string `json:"text" yaml:"text"`
	Length   int    `json:"length" yaml:"length"`
	Capacity int    `json:"capacity,omitempty" yaml:"capacity,omitempty"`
	Hex      string `json:"hex" yaml:"hex"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewResult builds a Result from rendered bytes and the render error, if any.
func NewResult(format string, out []byte, capacity int, err error) Result {
	r := Result{
		Format:   format,
		Text:     string(out),
		Length:   len(out),
		Capacity: capacity,
		Hex:      hex.EncodeToString(out),
	}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// Line returns the rendered text, or the error for failed renders.
func (r Result) Line() string {
	if r.Error != "" {
		return "error: " + r.Error
	}
	return r.Text
}

// Header names the table columns.
func (r Result) Header() []string { return []string{"Format", "Text", "Length", "Error"} }

// Row returns the table cells.
func (r Result) Row() []string {
	return []string{r.Format, r.Text, strconv.Itoa(r.Length), r.Error}
}

// Alignments right-aligns the length column.
func (r Result) Alignments() []Alignment {
	return []Alignment{AlignLeft, AlignLeft, AlignRight, AlignLeft}
}

// DirectiveRow describes one parsed directive.
type DirectiveRow struct {
	Index  int    `json:"index" yaml:"index"`
	Offset int    `json:"offset" yaml:"offset"`
	Token  string `json:"token" yaml:"token"`
	Verb   string `json:"verb" yaml:"verb"`
	Kind   string `json:"kind" yaml:"kind"`
	Width  int    `json:"width" yaml:"width"`
	Pad    string `json:"pad" yaml:"pad"`
	Arg    int    `json:"arg" yaml:"arg"` // argument position, -1 when none is consumed
}

var verbKinds = map[posprintf.Verb]string{
	posprintf.VerbPercent:  "literal percent",
	posprintf.VerbString:   "string",
	posprintf.VerbShort:    "16-bit decimal",
	posprintf.VerbLong:     "29-bit decimal",
	posprintf.VerbHexLower: "hex lowercase",
	posprintf.VerbHexUpper: "hex uppercase",
}

// NewDirectiveRow describes d, the index-th directive. arg is the argument
// position it consumes, or -1.
func NewDirectiveRow(index, arg int, d posprintf.Directive) DirectiveRow {
	pad := "none"
	if d.Verb.Padded() && d.Width > 0 {
		pad = "space"
		if d.ZeroPad {
			pad = "zero"
		}
	}
	return DirectiveRow{
		Index:  index,
		Offset: d.Offset,
		Token:  d.Raw,
		Verb:   d.Verb.String(),
		Kind:   verbKinds[d.Verb],
		Width:  d.Width,
		Pad:    pad,
		Arg:    arg,
	}
}

// Line returns the token and its kind, tab separated.
func (d DirectiveRow) Line() string {
	return d.Token + "\t" + d.Kind
}

// Header names the table columns.
func (d DirectiveRow) Header() []string {
	return []string{"#", "Offset", "Token", "Kind", "Width", "Pad", "Arg"}
}

// Row returns the table cells. Arg shows "-" when no argument is consumed.
func (d DirectiveRow) Row() []string {
	arg := "-"
	if d.Arg >= 0 {
		arg = strconv.Itoa(d.Arg)
	}
	return []string{
		strconv.Itoa(d.Index),
		strconv.Itoa(d.Offset),
		d.Token,
		d.Kind,
		strconv.Itoa(d.Width),
		d.Pad,
		arg,
	}
}

// Alignments right-aligns the numeric columns.
func (d DirectiveRow) Alignments() []Alignment {
	return []Alignment{AlignRight, AlignRight, AlignLeft, AlignLeft, AlignRight, AlignLeft, AlignRight}
}
