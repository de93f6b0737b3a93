package medstat

import (
	"bytes"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Render writes the table out with one row per period and one column per
// category. NoData cells print as "-".
func (t Table) Render(w io.Writer) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetOutputMirror(w)

	header := table.Row{"Period"}
	for _, category := range t.categories {
		header = append(header, category)
	}
	tw.AppendHeader(header)

	for _, period := range t.periods {
		row := table.Row{period.String()}
		for _, category := range t.categories {
			value := t.Value(period, category)
			if !value.Valid {
				row = append(row, "-")
				continue
			}
			row = append(row, strconv.FormatFloat(value.Num, 'f', -1, 64))
		}
		tw.AppendRow(row)
	}

	tw.Render()
}

func (t Table) String() string {
	var buf bytes.Buffer
	t.Render(&buf)
	return buf.String()
}
