package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Liner supplies the line written by the Plain format. Items without it
// are printed with %v.
type Liner interface {
	Line() string
}

func plainLine(item any) string {
	switch v := item.(type) {
	case Liner:
		return v.Line()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", item)
	}
}

func writePlain[T any](w io.Writer, items []T) error {
	for _, item := range items {
		if _, err := fmt.Fprintln(w, plainLine(item)); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(items) == 1 {
		return enc.Encode(items[0])
	}
	return enc.Encode(items)
}

func writeJSONL[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return err
		}
	}
	return nil
}

func writeYAML[T any](w io.Writer, items []T) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	var err error
	if len(items) == 1 {
		err = enc.Encode(items[0])
	} else {
		err = enc.Encode(items)
	}
	if err != nil {
		return err
	}
	return enc.Close()
}

func writeMsgPack[T any](w io.Writer, items []T) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	if len(items) == 1 {
		return enc.Encode(items[0])
	}
	return enc.Encode(items)
}

func writeCSV[T any](w io.Writer, items []T) error {
	if len(items) == 0 {
		return nil
	}
	header, rows, err := rowsOf(CSV, items)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if header != nil {
		if err := cw.Write(header); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
