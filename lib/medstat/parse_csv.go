package medstat

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// ParseCSV reads a csv export. The header row must name a "period" and a
// "value" column; a "category" column is optional (single-code exports
// leave it out and the fetch layer labels the records with the queried
// code instead).
func ParseCSV(raw RawResponse) ([]Record, error) {
	reader := csv.NewReader(bytes.NewReader(raw.Body))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty csv payload", ErrMalformedResponse)
	}

	periodIdx, categoryIdx, valueIdx := -1, -1, -1
	for i, name := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "period":
			periodIdx = i
		case "category":
			categoryIdx = i
		case "value":
			valueIdx = i
		}
	}
	if periodIdx < 0 || valueIdx < 0 {
		return nil, fmt.Errorf(
			"%w: csv header %v is missing the period/value columns",
			ErrMalformedResponse, rows[0],
		)
	}

	var records []Record
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		if periodIdx >= len(row) || valueIdx >= len(row) {
			return nil, fmt.Errorf("%w: truncated csv row %v", ErrMalformedResponse, row)
		}

		period, err := ParsePeriod(strings.TrimSpace(row[periodIdx]))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		category := ""
		if categoryIdx >= 0 && categoryIdx < len(row) {
			category = strings.TrimSpace(row[categoryIdx])
		}
		value, err := parseValue(strings.TrimSpace(row[valueIdx]))
		if err != nil {
			return nil, err
		}

		records = append(records, Record{
			Period:   period,
			Category: category,
			Value:    value,
		})
	}
	return records, nil
}
