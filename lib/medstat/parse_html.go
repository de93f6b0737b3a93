package medstat

import (
	"bytes"
	"fmt"
	"strings"

	"medstat/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// HTMLDataTable is the statistical table embedded in the portal's
// interactive viewer page: one row per classification code, one column
// per period, plus the setting and unit labels the page prints above it.
type HTMLDataTable struct {
	// Setting is the sector/region description, e.g. "Primary Sector".
	Setting string
	// Unit is "DDD" when the table carries defined-daily-dose figures,
	// "Sales" otherwise.
	Unit    string
	Records []Record
}

// ParseHTMLTable scrapes the viewer page variant of a data table. The
// page must contain a table.statistical-data-table with a period header
// row, a setting row and at least one data row; "-" and empty cells map
// to NoData.
func ParseHTMLTable(raw RawResponse) (*HTMLDataTable, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw.Body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	table := doc.Find("table.statistical-data-table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf(
			"%w: no statistical data table in the document",
			ErrMalformedResponse,
		)
	}

	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := htmlutil.RowCells(tr)
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})
	if len(rows) < 3 {
		return nil, fmt.Errorf(
			"%w: data table must contain at least 3 rows, got %d",
			ErrMalformedResponse, len(rows),
		)
	}

	periods := make([]Period, len(rows[0]))
	for i, token := range rows[0] {
		period, err := ParsePeriod(token)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		periods[i] = period
	}

	setting := rows[1][0]

	// DDD tables carry the unit as an extra leading cell on every data row
	unit := "Sales"
	offset := 1
	if len(rows) > 3 && rowMentionsDDD(rows[3]) {
		unit = "DDD"
		offset = 2
	}

	var records []Record
	for _, row := range rows[2:] {
		category := row[0]
		if len(row) < offset {
			continue
		}
		for i, cell := range row[offset:] {
			if i >= len(periods) {
				break
			}
			value, err := parseValue(cell)
			if err != nil {
				return nil, err
			}
			records = append(records, Record{
				Period:   periods[i],
				Category: category,
				Value:    value,
			})
		}
	}

	return &HTMLDataTable{
		Setting: setting,
		Unit:    unit,
		Records: records,
	}, nil
}

func rowMentionsDDD(row []string) bool {
	for _, cell := range row {
		if strings.Contains(cell, "DDD") {
			return true
		}
	}
	return false
}
