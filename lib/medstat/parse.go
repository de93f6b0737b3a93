package medstat

import (
	"fmt"
	"regexp"
	"strconv"
)

// RawResponse is the payload of one fetch, handed straight to a parser
// and not retained afterwards.
type RawResponse struct {
	StatusCode int
	Body       []byte
}

// Parse interprets a raw payload in the given export format into records,
// in source order.
func Parse(raw RawResponse, format Format) ([]Record, error) {
	switch format {
	case FormatCSV:
		return ParseCSV(raw)
	case FormatJSON:
		return ParseJSON(raw)
	}
	return nil, fmt.Errorf("%w: unknown export format %q", ErrInvalidQuery, format)
}

// the portal renders figures with locale noise (thousand separators,
// unit suffixes); everything but digits and the decimal point goes
var numericNoise = regexp.MustCompile(`[^0-9.]`)

// parseValue maps one cell to a Value. Empty cells and the portal's "-"
// sentinel (or a literal "missing") become NoData; anything else must
// clean up to a number.
func parseValue(cell string) (Value, error) {
	switch cell {
	case "", "-", "missing":
		return NoData, nil
	}
	cleaned := numericNoise.ReplaceAllString(cell, "")
	num, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return NoData, fmt.Errorf(
			"%w: non-numeric value %q in a numeric field",
			ErrMalformedResponse, cell,
		)
	}
	return SomeValue(num), nil
}
