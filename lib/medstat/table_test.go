package medstat

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAssembleRoundTrip(t *testing.T) {
	records, err := ParseCSV(RawResponse{
		StatusCode: 200,
		Body: []byte(
			"period,category,value\n" +
				"2021,N06AB,10\n" +
				"2022,N06AB,11\n" +
				"2023,N06AB,12\n",
		),
	})
	require.NoError(t, err)

	table := Assemble(records)
	require.Equal(t, 3, table.Len())
	for _, row := range table.Rows() {
		require.True(t, row.Value.Valid, "period %s", row.Period)
	}
}

func TestAssembleLastWriteWins(t *testing.T) {
	a := []Record{
		{Period: MonthlyPeriod(2020, time.January), Category: "N06AB", Value: SomeValue(10)},
	}
	b := []Record{
		{Period: MonthlyPeriod(2020, time.January), Category: "N06AB", Value: SomeValue(99)},
	}

	table := Assemble(a, b)
	got := table.Value(MonthlyPeriod(2020, time.January), "N06AB")
	require.Equal(t, SomeValue(99), got)

	// order matters: flipping the sets flips the winner
	flipped := Assemble(b, a)
	require.Equal(
		t,
		SomeValue(10),
		flipped.Value(MonthlyPeriod(2020, time.January), "N06AB"),
	)
}

func TestAssembleStrictConflict(t *testing.T) {
	a := []Record{
		{Period: AnnualPeriod(2022), Category: "N06AB", Value: SomeValue(1)},
	}
	b := []Record{
		{Period: AnnualPeriod(2022), Category: "N06AB", Value: SomeValue(2)},
	}

	_, err := AssembleStrict(a, b)
	var conflict *DuplicateKeyError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, AnnualPeriod(2022), conflict.Period)
	require.Equal(t, "N06AB", conflict.Category)

	// no conflict when cells do not overlap
	c := []Record{
		{Period: AnnualPeriod(2023), Category: "N06AB", Value: SomeValue(2)},
	}
	table, err := AssembleStrict(a, c)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
}

func TestAssembleFillsMissingCombinations(t *testing.T) {
	a := []Record{
		{Period: AnnualPeriod(2022), Category: "N06AB", Value: SomeValue(1)},
	}
	b := []Record{
		{Period: AnnualPeriod(2023), Category: "N06AX", Value: SomeValue(2)},
	}

	table := Assemble(a, b)

	require.Equal(t, []Period{AnnualPeriod(2022), AnnualPeriod(2023)}, table.Periods())
	require.Equal(t, []string{"N06AB", "N06AX"}, table.Categories())
	// the schema is rectangular: absent combinations read as NoData
	require.Equal(t, 4, table.Len())
	require.Equal(t, NoData, table.Value(AnnualPeriod(2023), "N06AB"))
	require.Equal(t, NoData, table.Value(AnnualPeriod(2022), "N06AX"))
}

func TestAssemblePeriodsSorted(t *testing.T) {
	records := []Record{
		{Period: AnnualPeriod(2023), Category: "N06AB", Value: SomeValue(3)},
		{Period: AnnualPeriod(2021), Category: "N06AB", Value: SomeValue(1)},
		{Period: AnnualPeriod(2022), Category: "N06AB", Value: SomeValue(2)},
	}

	table := Assemble(records)
	require.Equal(
		t,
		[]Period{AnnualPeriod(2021), AnnualPeriod(2022), AnnualPeriod(2023)},
		table.Periods(),
	)
}

func TestTableSeries(t *testing.T) {
	table := Assemble([]Record{
		{Period: AnnualPeriod(2021), Category: "N06AB", Value: SomeValue(1)},
		{Period: AnnualPeriod(2022), Category: "N06AB", Value: NoData},
		{Period: AnnualPeriod(2023), Category: "N06AB", Value: SomeValue(3)},
	})

	series := table.Series("N06AB")
	require.Equal(t, []Value{SomeValue(1), NoData, SomeValue(3)}, series)
}

func TestTableRender(t *testing.T) {
	table := Assemble([]Record{
		{Period: AnnualPeriod(2022), Category: "N06AB", Value: SomeValue(12.5)},
		{Period: AnnualPeriod(2023), Category: "N06AB", Value: NoData},
	})

	rendered := table.String()
	require.Contains(t, rendered, "N06AB")
	require.Contains(t, rendered, "2022")
	require.Contains(t, rendered, "12.5")

	lines := strings.Split(strings.TrimSpace(rendered), "\n")
	require.Greater(t, len(lines), 2)
}
