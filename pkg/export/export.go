// Package export renders production plans for files and terminals.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/kilianp07/prodplan/core/model"
)

// Format names accepted by Write.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Write renders entries in the named format.
func Write(w io.Writer, format string, entries []model.PlanEntry) error {
	switch format {
	case FormatJSON, "":
		return WriteJSON(w, entries)
	case FormatCSV:
		return WriteCSV(w, entries)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// WriteJSON writes the plan to w as an indented JSON array.
func WriteJSON(w io.Writer, entries []model.PlanEntry) error {
	if entries == nil {
		entries = []model.PlanEntry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// WriteCSV writes the plan to w with a name,p header.
func WriteCSV(w io.Writer, entries []model.PlanEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "p"}); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.Name, strconv.FormatFloat(e.P, 'f', 1, 64)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
