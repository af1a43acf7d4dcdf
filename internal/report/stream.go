package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"iter"
)

// WriteIter formats items from an iterator and writes them to w as they
// arrive. Plain, JSONL and CSV items are independent and written
// immediately. The other formats need every item before rendering (column
// widths, a single document) so items are collected first.
func WriteIter[T any](w io.Writer, f Format, seq iter.Seq[T]) error {
	switch f {
	case Plain:
		return streamPlain(w, seq)
	case JSONL:
		return streamJSONL(w, seq)
	case CSV:
		return streamCSV(w, seq)
	case JSON, YAML, Table, Markdown, MsgPack:
		return streamCollect(w, f, seq)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

func streamCollect[T any](w io.Writer, f Format, seq iter.Seq[T]) error {
	var items []T
	for item := range seq {
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil
	}
	return Write(w, f, items...)
}

func streamPlain[T any](w io.Writer, seq iter.Seq[T]) error {
	for item := range seq {
		if _, err := fmt.Fprintln(w, plainLine(item)); err != nil {
			return err
		}
	}
	return nil
}

func streamJSONL[T any](w io.Writer, seq iter.Seq[T]) error {
	enc := json.NewEncoder(w)
	for item := range seq {
		if err := enc.Encode(item); err != nil {
			return err
		}
	}
	return nil
}

func streamCSV[T any](w io.Writer, seq iter.Seq[T]) error {
	cw := csv.NewWriter(w)
	first := true
	for item := range seq {
		r, ok := any(item).(Rower)
		if !ok {
			return fmt.Errorf("%w: format %q requires Rower, not implemented by %T", ErrMissingInterface, CSV, item)
		}
		if first {
			first = false
			if h, ok := any(item).(Headed); ok {
				if err := cw.Write(h.Header()); err != nil {
					return err
				}
			}
		}
		if err := cw.Write(r.Row()); err != nil {
			return err
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return err
		}
	}
	return nil
}
