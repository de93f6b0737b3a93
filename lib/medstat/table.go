package medstat

import (
	"slices"
)

// Value is one numeric cell. The zero value is the explicit no-data
// marker, which is distinct from a present value of zero.
type Value struct {
	Num   float64
	Valid bool
}

// NoData is the sentinel for a cell the portal has no figure for.
var NoData = Value{}

func SomeValue(num float64) Value {
	return Value{Num: num, Valid: true}
}

// Record is one parsed observation.
type Record struct {
	Period   Period
	Category string
	Value    Value
}

type cellKey struct {
	period   Period
	category string
}

// Table is the assembled result set: periods ascending, categories in
// first-seen order, and a value (possibly NoData) for every
// (period, category) combination. Once returned it is owned by the
// caller; nothing in this package keeps a reference.
type Table struct {
	periods    []Period
	categories []string
	cells      map[cellKey]Value
}

func (t Table) Periods() []Period {
	return t.periods
}

func (t Table) Categories() []string {
	return t.categories
}

// Value looks up one cell. Unknown combinations read as NoData.
func (t Table) Value(period Period, category string) Value {
	return t.cells[cellKey{period, category}]
}

// Series returns the values of one category aligned with Periods(), the
// shape a plotting collaborator consumes as a single line.
func (t Table) Series(category string) []Value {
	series := make([]Value, len(t.periods))
	for i, period := range t.periods {
		series[i] = t.Value(period, category)
	}
	return series
}

// Rows flattens the table back into records, period-major, categories in
// column order.
func (t Table) Rows() []Record {
	var rows []Record
	for _, period := range t.periods {
		for _, category := range t.categories {
			rows = append(rows, Record{
				Period:   period,
				Category: category,
				Value:    t.Value(period, category),
			})
		}
	}
	return rows
}

func (t Table) Len() int {
	return len(t.periods) * len(t.categories)
}

// Assemble merges record sets into one table, aligning on
// (period, category). When the same cell appears more than once the
// later record wins; across sets that means the later set in argument
// order overwrites the earlier one. Missing combinations are filled with
// NoData rather than omitted.
func Assemble(sets ...[]Record) Table {
	table, _ := assemble(sets, false)
	return table
}

// AssembleStrict is Assemble with the overwrite policy replaced by a
// *DuplicateKeyError on the first cell claimed twice.
func AssembleStrict(sets ...[]Record) (Table, error) {
	return assemble(sets, true)
}

func assemble(sets [][]Record, strict bool) (Table, error) {
	cells := map[cellKey]Value{}
	var periods []Period
	var categories []string
	seenCategory := map[string]bool{}

	for _, set := range sets {
		for _, record := range set {
			key := cellKey{record.Period, record.Category}
			if _, taken := cells[key]; taken {
				if strict {
					return Table{}, &DuplicateKeyError{
						Period:   record.Period,
						Category: record.Category,
					}
				}
			} else {
				if !seenCategory[record.Category] {
					seenCategory[record.Category] = true
					categories = append(categories, record.Category)
				}
				if !slices.ContainsFunc(periods, func(p Period) bool {
					return p.Compare(record.Period) == 0
				}) {
					periods = append(periods, record.Period)
				}
			}
			cells[key] = record.Value
		}
	}

	slices.SortFunc(periods, Period.Compare)

	// a single consistent column schema: every combination present
	for _, period := range periods {
		for _, category := range categories {
			key := cellKey{period, category}
			if _, ok := cells[key]; !ok {
				cells[key] = NoData
			}
		}
	}

	return Table{
		periods:    periods,
		categories: categories,
		cells:      cells,
	}, nil
}
