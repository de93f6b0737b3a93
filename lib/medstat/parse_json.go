package medstat

import (
	"encoding/json"
	"fmt"
)

type jsonRow struct {
	Period   string   `json:"period"`
	Category string   `json:"category"`
	Value    *float64 `json:"value"`
}

// ParseJSON reads a json export of the shape
// {"rows": [{"period": "202001", "category": "N06AB", "value": 10.5}, ...]}.
// A null value is the no-data marker. A payload without the top level
// "rows" key is malformed.
func ParseJSON(raw RawResponse) ([]Record, error) {
	var payload struct {
		Rows *[]jsonRow `json:"rows"`
	}
	err := json.Unmarshal(raw.Body, &payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if payload.Rows == nil {
		return nil, fmt.Errorf("%w: payload has no \"rows\" key", ErrMalformedResponse)
	}

	var records []Record
	for _, row := range *payload.Rows {
		period, err := ParsePeriod(row.Period)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		value := NoData
		if row.Value != nil {
			value = SomeValue(*row.Value)
		}
		records = append(records, Record{
			Period:   period,
			Category: row.Category,
			Value:    value,
		})
	}
	return records, nil
}
