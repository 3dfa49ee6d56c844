package sheet

import (
	"math"
	"strconv"

	"relationship-dashboard/model"
)

// Table is the "table" object of a Google Visualization (gviz) response.
type Table struct {
	Cols []Column `json:"cols"`
	Rows []Row    `json:"rows"`
}

type Column struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

type Row struct {
	C []*Cell `json:"c"`
}

// Cell holds a raw value and, for dates and numbers, a formatted one.
type Cell struct {
	V interface{} `json:"v"`
	F *string     `json:"f,omitempty"`
}

// Normalize turns a table into one record per row keyed by column label.
// A cell's formatted value wins over its raw value; null cells become "".
// Cells beyond the end of a short row are left out entirely.
func Normalize(t *Table) []model.Record {
	if t == nil {
		return nil
	}

	labels := make([]string, len(t.Cols))
	for i, col := range t.Cols {
		labels[i] = col.Label
		if labels[i] == "" {
			labels[i] = col.ID
		}
	}

	records := make([]model.Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(model.Record, len(labels))
		for i, label := range labels {
			if i >= len(row.C) {
				break
			}
			rec[label] = cellString(row.C[i])
		}
		records = append(records, rec)
	}
	return records
}

func cellString(c *Cell) string {
	if c == nil {
		return ""
	}
	if c.F != nil {
		return *c.F
	}
	switch v := c.V.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
