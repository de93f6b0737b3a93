package medstat

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// DefaultBaseURL is the public statistics portal.
const DefaultBaseURL = "https://medstat.dk"

const (
	exportPath = "/en/viewDataTables/exportDataTable"
	viewPath   = "/en/viewDataTables/medicineAndMedicalGroups/"
)

// Format selects the export payload shape.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// every field the export endpoint requires
var requiredParams = []string{
	"atcCode",
	"fromPeriod",
	"toPeriod",
	"region",
	"sector",
	"gender",
	"ageGroup",
	"searchVariable",
	"groupBy",
}

// BuildExportURL composes the export endpoint with encoded query fields
// and a format selector. Deterministic: identical inputs produce an
// identical url (url.Values encodes in sorted key order).
func BuildExportURL(base string, values url.Values, format Format) (string, error) {
	switch format {
	case FormatCSV, FormatJSON:
	default:
		return "", fmt.Errorf("%w: unknown export format %q", ErrInvalidQuery, format)
	}
	for _, key := range requiredParams {
		if values.Get(key) == "" {
			return "", fmt.Errorf("%w: %s", ErrMissingParameter, key)
		}
	}

	link, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("%w: bad base url: %v", ErrInvalidQuery, err)
	}
	link = link.JoinPath(exportPath)

	query := url.Values{}
	for key, vals := range values {
		query[key] = vals
	}
	query.Set("format", string(format))
	link.RawQuery = query.Encode()

	return link.String(), nil
}

// viewParams is the parameter document the interactive data table page
// takes percent-escaped in its path.
type viewParams struct {
	Year           []string `json:"year"`
	Region         []string `json:"region"`
	Gender         []string `json:"gender"`
	AgeGroup       []string `json:"ageGroup"`
	SearchVariable []string `json:"searchVariable"`
	ErrorMessages  []string `json:"errorMessages"`
	AtcCode        []string `json:"atcCode"`
	Sector         []string `json:"sector"`
}

// BuildViewURL builds the address of the portal's interactive data table
// for the same query, with the parameters JSON-encoded into the path the
// way the viewer page expects them.
func BuildViewURL(base string, q Query) (string, error) {
	q = q.withDefaults()
	if err := q.validate(); err != nil {
		return "", err
	}
	if base == "" {
		base = DefaultBaseURL
	}

	var years []string
	for year := q.From.Year; year <= q.To.Year; year++ {
		years = append(years, fmt.Sprintf("%04d", year))
	}

	params := viewParams{
		Year:           years,
		Region:         []string{string(q.Region)},
		Gender:         []string{string(q.Gender)},
		AgeGroup:       q.AgeGroup.codes(),
		SearchVariable: []string{string(q.SearchVariable)},
		ErrorMessages:  []string{},
		AtcCode:        q.AtcCodes,
		Sector:         []string{string(q.Sector)},
	}
	blob, err := json.Marshal(params)
	if err != nil {
		return "", err
	}

	return base + viewPath + url.PathEscape(string(blob)), nil
}
