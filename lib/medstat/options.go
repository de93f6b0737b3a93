package medstat

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

type option struct {
	code  string
	label string
}

var regionOptions = []option{
	{string(RegionDenmark), "Denmark"},
	{string(RegionCapital), "Capital Region"},
	{string(RegionZealand), "Region Zealand"},
	{string(RegionSouthernDenmark), "Region of Southern Denmark"},
	{string(RegionCentralDenmark), "Central Denmark Region"},
	{string(RegionNorthDenmark), "North Denmark Region"},
}

var sectorOptions = []option{
	{string(SectorPrimary), "Primary Sector"},
	{string(SectorHospital), "Hospital Sector"},
	{string(SectorTotal), "Total"},
}

var genderOptions = []option{
	{string(GenderAll), "All"},
	{string(GenderMen), "Men"},
	{string(GenderWomen), "Women"},
}

var searchVariableOptions = []option{
	{string(PeopleCount), "Number of users"},
	{string(PeopleCountPer1000), "Number of users per 1000 inhabitants"},
	{string(SoldVolume), "Sold volume"},
	{string(SoldVolumePer1000PerDay), "Sold volume per 1,000 inhabitants per day"},
}

// WriteOptions renders every recognized parameter value with its portal
// label, for interactive discovery of what a Query can carry. Remember
// that non-primary sectors only publish volume figures and cannot filter
// by gender or age group.
func WriteOptions(w io.Writer) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Parameter", "Code", "Label"})

	groups := []struct {
		name    string
		options []option
	}{
		{"region", regionOptions},
		{"sector", sectorOptions},
		{"gender", genderOptions},
		{"search_variable", searchVariableOptions},
	}
	for _, group := range groups {
		for _, opt := range group.options {
			tw.AppendRow(table.Row{group.name, opt.code, opt.label})
		}
		tw.AppendSeparator()
	}

	tw.Render()
}
