// Package report renders render results and parsed directives for the CLI
// in one of several output formats.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrMissingInterface  = errors.New("missing required interface")
)

// Format represents an output format.
type Format string

const (
	Plain    Format = "plain"
	JSON     Format = "json"
	JSONL    Format = "jsonl"
	YAML     Format = "yaml"
	Table    Format = "table"
	Markdown Format = "markdown"
	CSV      Format = "csv"
	MsgPack  Format = "msgpack"
)

var formats = []Format{Plain, JSON, JSONL, YAML, Table, Markdown, CSV, MsgPack}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Rower provides row data. Required for Table, Markdown and CSV.
type Rower interface {
	Row() []string
}

// Headed provides column headers for Table, Markdown and CSV.
type Headed interface {
	Header() []string
}

// Aligned sets per-column alignment for Table and Markdown.
type Aligned interface {
	Alignments() []Alignment
}

// Alignment controls column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Write formats items and writes them to w.
func Write[T any](w io.Writer, f Format, items ...T) error {
	switch f {
	case Plain:
		return writePlain(w, items)
	case JSON:
		return writeJSON(w, items)
	case JSONL:
		return writeJSONL(w, items)
	case YAML:
		return writeYAML(w, items)
	case Table:
		return writeTable(w, items)
	case Markdown:
		return writeMarkdown(w, items)
	case CSV:
		return writeCSV(w, items)
	case MsgPack:
		return writeMsgPack(w, items)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Marshal formats items and returns the bytes.
func Marshal[T any](f Format, items ...T) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, items...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func rowsOf[T any](f Format, items []T) ([]string, [][]string, error) {
	first := any(items[0])
	if _, ok := first.(Rower); !ok {
		return nil, nil, fmt.Errorf("%w: format %q requires Rower, not implemented by %T", ErrMissingInterface, f, items[0])
	}
	var header []string
	if h, ok := first.(Headed); ok {
		header = h.Header()
	}
	rows := make([][]string, len(items))
	for i, item := range items {
		rows[i] = any(item).(Rower).Row()
	}
	return header, rows, nil
}
