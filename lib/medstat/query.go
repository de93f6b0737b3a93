package medstat

import (
	"fmt"
	"net/url"
	"strings"

	"medstat/lib/atc"
)

type Region string

const (
	RegionDenmark         Region = "0"
	RegionCapital         Region = "1"
	RegionZealand         Region = "2"
	RegionSouthernDenmark Region = "3"
	RegionCentralDenmark  Region = "4"
	RegionNorthDenmark    Region = "5"
)

type Sector string

const (
	SectorPrimary  Sector = "0"
	SectorHospital Sector = "1"
	SectorTotal    Sector = "2"
)

type Gender string

const (
	GenderAll   Gender = "A"
	GenderMen   Gender = "1"
	GenderWomen Gender = "2"
)

type SearchVariable string

const (
	PeopleCount             SearchVariable = "people_count"
	PeopleCountPer1000      SearchVariable = "people_count_1000"
	SoldVolume              SearchVariable = "sold_volume"
	SoldVolumePer1000PerDay SearchVariable = "sold_volume_1000_day"
)

// IsVolume reports whether the variable measures sold volume rather than
// user counts. Non-primary sectors only publish volume figures.
func (v SearchVariable) IsVolume() bool {
	return v == SoldVolume || v == SoldVolumePer1000PerDay
}

// Grouping selects the axis the portal aggregates returned values along.
type Grouping string

const (
	GroupByTime     Grouping = "time"
	GroupByRegion   Grouping = "region"
	GroupByCategory Grouping = "category"
)

// AgeGroup is either every age (the zero value) or an explicit list of
// ages, each encoded as a zero padded three digit code.
type AgeGroup struct {
	Ages []int
}

func (a AgeGroup) All() bool {
	return len(a.Ages) == 0
}

func (a AgeGroup) codes() []string {
	if a.All() {
		return []string{"A"}
	}
	codes := make([]string, len(a.Ages))
	for i, age := range a.Ages {
		codes[i] = fmt.Sprintf("%03d", age)
	}
	return codes
}

// the portal publishes no figures from before 1996
const earliestYear = 1996

// Query describes one request against the portal's medicine statistics.
// The zero value of every optional field falls back to the portal
// default: whole country, primary sector, all genders and ages, sold
// volume, grouped by time.
type Query struct {
	AtcCodes []string
	From, To Period

	Region         Region
	Sector         Sector
	Gender         Gender
	AgeGroup       AgeGroup
	SearchVariable SearchVariable
	GroupBy        Grouping
}

func (q Query) withDefaults() Query {
	if q.Region == "" {
		q.Region = RegionDenmark
	}
	if q.Sector == "" {
		q.Sector = SectorPrimary
	}
	if q.Gender == "" {
		q.Gender = GenderAll
	}
	if q.SearchVariable == "" {
		q.SearchVariable = SoldVolume
	}
	if q.GroupBy == "" {
		q.GroupBy = GroupByTime
	}
	return q
}

func (q Query) validate() error {
	if len(q.AtcCodes) == 0 {
		return fmt.Errorf("%w: no atc codes given", ErrInvalidQuery)
	}
	for _, code := range q.AtcCodes {
		if err := atc.ValidateCode(code); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidQuery, err)
		}
	}

	if q.From.Year < earliestYear || q.To.Year < earliestYear {
		return fmt.Errorf(
			"%w: the portal has no data before %d",
			ErrInvalidQuery, earliestYear,
		)
	}
	if q.From.After(q.To) {
		return fmt.Errorf(
			"%w: period range %s..%s is inverted",
			ErrInvalidQuery, q.From, q.To,
		)
	}

	switch q.Region {
	case RegionDenmark, RegionCapital, RegionZealand,
		RegionSouthernDenmark, RegionCentralDenmark, RegionNorthDenmark:
	default:
		return fmt.Errorf("%w: unknown region %q", ErrInvalidQuery, q.Region)
	}
	switch q.Sector {
	case SectorPrimary, SectorHospital, SectorTotal:
	default:
		return fmt.Errorf("%w: unknown sector %q", ErrInvalidQuery, q.Sector)
	}
	switch q.Gender {
	case GenderAll, GenderMen, GenderWomen:
	default:
		return fmt.Errorf("%w: unknown gender %q", ErrInvalidQuery, q.Gender)
	}
	switch q.SearchVariable {
	case PeopleCount, PeopleCountPer1000, SoldVolume, SoldVolumePer1000PerDay:
	default:
		return fmt.Errorf(
			"%w: unknown search variable %q",
			ErrInvalidQuery, q.SearchVariable,
		)
	}
	switch q.GroupBy {
	case GroupByTime, GroupByRegion, GroupByCategory:
	default:
		return fmt.Errorf("%w: unknown grouping %q", ErrInvalidQuery, q.GroupBy)
	}
	for _, age := range q.AgeGroup.Ages {
		if age < 0 || age > 125 {
			return fmt.Errorf("%w: age %d out of range", ErrInvalidQuery, age)
		}
	}

	// non-primary sectors only publish volume figures and cannot filter
	// by gender or age group
	if q.Sector != SectorPrimary {
		if q.Gender != GenderAll || !q.AgeGroup.All() || !q.SearchVariable.IsVolume() {
			return fmt.Errorf(
				"%w: sector %q only supports volume measurements without gender or age filters",
				ErrInvalidQuery, q.Sector,
			)
		}
	}

	return nil
}

// Encode validates the query and translates it into the portal's query
// string fields. Codes keep their input order; periods render as YYYY or
// YYYYMM. Performs no I/O.
func (q Query) Encode() (url.Values, error) {
	q = q.withDefaults()
	if err := q.validate(); err != nil {
		return nil, err
	}

	values := url.Values{}
	values.Set("atcCode", strings.Join(q.AtcCodes, ","))
	values.Set("fromPeriod", q.From.String())
	values.Set("toPeriod", q.To.String())
	values.Set("region", string(q.Region))
	values.Set("sector", string(q.Sector))
	values.Set("gender", string(q.Gender))
	values.Set("ageGroup", strings.Join(q.AgeGroup.codes(), ","))
	values.Set("searchVariable", string(q.SearchVariable))
	values.Set("groupBy", string(q.GroupBy))
	return values, nil
}
