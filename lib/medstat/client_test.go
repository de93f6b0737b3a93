package medstat_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"medstat/lib/medstat"
	"medstat/lib/restyutil"
	"medstat/lib/testutil"

	"github.com/stretchr/testify/require"
)

// a fake portal serving one csv export per classification code
func exportHandler(t *testing.T, exports map[string]string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/en/viewDataTables/exportDataTable", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("atcCode")
		body, ok := exports[code]
		if !ok {
			t.Errorf("unexpected atcCode %q", code)
			http.NotFound(w, r)
			return
		}
		if format := r.URL.Query().Get("format"); format != "csv" {
			t.Errorf("unexpected format %q", format)
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(body))
	})
	return mux
}

func TestFetchTable(t *testing.T) {
	portal, cleanup := testutil.SetupPortal(t, testutil.PortalParams{
		Name: "medstat",
		Handler: exportHandler(t, map[string]string{
			"N06AB": "period,value\n202001,10\n202002,missing\n202003,7\n",
		}),
	})
	defer cleanup()

	client, err := medstat.NewClient(medstat.ClientOptions{BaseUrl: portal.BaseUrl})
	require.NoError(t, err)

	table, err := client.FetchTable(context.Background(), medstat.Query{
		AtcCodes: []string{"N06AB"},
		From:     medstat.MonthlyPeriod(2020, time.January),
		To:       medstat.MonthlyPeriod(2020, time.March),
		GroupBy:  medstat.GroupByTime,
	}, medstat.FormatCSV)
	require.NoError(t, err)

	require.Equal(t, []medstat.Period{
		medstat.MonthlyPeriod(2020, time.January),
		medstat.MonthlyPeriod(2020, time.February),
		medstat.MonthlyPeriod(2020, time.March),
	}, table.Periods())
	require.Equal(t, []string{"N06AB"}, table.Categories())

	require.Equal(
		t,
		medstat.SomeValue(10),
		table.Value(medstat.MonthlyPeriod(2020, time.January), "N06AB"),
	)
	require.Equal(
		t,
		medstat.NoData,
		table.Value(medstat.MonthlyPeriod(2020, time.February), "N06AB"),
	)
	require.Equal(
		t,
		medstat.SomeValue(7),
		table.Value(medstat.MonthlyPeriod(2020, time.March), "N06AB"),
	)
}

func TestFetchTableMultipleCodes(t *testing.T) {
	portal, cleanup := testutil.SetupPortal(t, testutil.PortalParams{
		Name: "medstat",
		Handler: exportHandler(t, map[string]string{
			"N06AB": "period,value\n2022,10\n2023,11\n",
			"N06AX": "period,value\n2022,3\n2023,4\n",
		}),
	})
	defer cleanup()

	client, err := medstat.NewClient(medstat.ClientOptions{BaseUrl: portal.BaseUrl})
	require.NoError(t, err)

	table, err := client.FetchTable(context.Background(), medstat.Query{
		AtcCodes: []string{"N06AB", "N06AX"},
		From:     medstat.AnnualPeriod(2022),
		To:       medstat.AnnualPeriod(2023),
	}, medstat.FormatCSV)
	require.NoError(t, err)

	// categories stay in query order even though fetches run concurrently
	require.Equal(t, []string{"N06AB", "N06AX"}, table.Categories())
	require.Equal(t, medstat.SomeValue(10), table.Value(medstat.AnnualPeriod(2022), "N06AB"))
	require.Equal(t, medstat.SomeValue(4), table.Value(medstat.AnnualPeriod(2023), "N06AX"))
}

func TestFetchTableDropsOutOfRangePeriods(t *testing.T) {
	portal, cleanup := testutil.SetupPortal(t, testutil.PortalParams{
		Name: "medstat",
		Handler: exportHandler(t, map[string]string{
			"N06AB": "period,value\n2021,9\n2022,10\n2023,11\n2024,12\n",
		}),
	})
	defer cleanup()

	client, err := medstat.NewClient(medstat.ClientOptions{BaseUrl: portal.BaseUrl})
	require.NoError(t, err)

	table, err := client.FetchTable(context.Background(), medstat.Query{
		AtcCodes: []string{"N06AB"},
		From:     medstat.AnnualPeriod(2022),
		To:       medstat.AnnualPeriod(2023),
	}, medstat.FormatCSV)
	require.NoError(t, err)

	require.Equal(
		t,
		[]medstat.Period{medstat.AnnualPeriod(2022), medstat.AnnualPeriod(2023)},
		table.Periods(),
	)
}

func TestFetchTableInvalidQueryBeforeNetwork(t *testing.T) {
	// never started: an invalid query must fail before any request
	client, err := medstat.NewClient(medstat.ClientOptions{BaseUrl: "http://127.0.0.1:1"})
	require.NoError(t, err)

	_, err = client.FetchTable(context.Background(), medstat.Query{
		AtcCodes: []string{"N06AB"},
		From:     medstat.AnnualPeriod(2023),
		To:       medstat.AnnualPeriod(2021),
	}, medstat.FormatCSV)
	require.ErrorIs(t, err, medstat.ErrInvalidQuery)
}

func TestFetchHttpStatusError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "portal down", http.StatusServiceUnavailable)
	})
	portal, cleanup := testutil.SetupPortal(t, testutil.PortalParams{
		Name:    "medstat",
		Handler: mux,
	})
	defer cleanup()

	client, err := medstat.NewClient(medstat.ClientOptions{BaseUrl: portal.BaseUrl})
	require.NoError(t, err)

	_, err = client.FetchTable(context.Background(), medstat.Query{
		AtcCodes: []string{"N06AB"},
		From:     medstat.AnnualPeriod(2022),
		To:       medstat.AnnualPeriod(2023),
	}, medstat.FormatCSV)

	var statusErr *medstat.HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
}

func TestFetchNetworkError(t *testing.T) {
	portal, cleanup := testutil.SetupPortal(t, testutil.PortalParams{
		Name:    "medstat",
		Handler: http.NotFoundHandler(),
	})
	baseUrl := portal.BaseUrl
	cleanup()

	client, err := medstat.NewClient(medstat.ClientOptions{
		BaseUrl: baseUrl,
		Timeout: time.Second,
	})
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), baseUrl+"/en/viewDataTables/exportDataTable")
	require.ErrorIs(t, err, medstat.ErrNetwork)
}

func TestClientInstrumentOutput(t *testing.T) {
	portal, cleanup := testutil.SetupPortal(t, testutil.PortalParams{
		Name: "medstat",
		Handler: exportHandler(t, map[string]string{
			"N06AB": "period,value\n2022,10\n2023,11\n",
		}),
	})
	defer cleanup()

	client, err := medstat.NewClient(medstat.ClientOptions{BaseUrl: portal.BaseUrl})
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "transcripts")
	client.SetInstrumentOutput(restyutil.NewFilesystemOutput(dir))

	_, err = client.FetchTable(context.Background(), medstat.Query{
		AtcCodes: []string{"N06AB"},
		From:     medstat.AnnualPeriod(2022),
		To:       medstat.AnnualPeriod(2023),
	}, medstat.FormatCSV)
	require.NoError(t, err)

	// one transcript per exchange
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestFetchViewTable(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/en/viewDataTables/medicineAndMedicalGroups/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`
<html><body>
<table class="statistical-data-table">
	<tr><th></th><th>2022</th><th>2023</th></tr>
	<tr><td>Primary Sector</td></tr>
	<tr><td>N06AB</td><td>12.1</td><td>-</td></tr>
</table>
</body></html>`))
	})
	portal, cleanup := testutil.SetupPortal(t, testutil.PortalParams{
		Name:    "medstat",
		Handler: mux,
	})
	defer cleanup()

	client, err := medstat.NewClient(medstat.ClientOptions{BaseUrl: portal.BaseUrl})
	require.NoError(t, err)

	result, err := client.FetchViewTable(context.Background(), medstat.Query{
		AtcCodes: []string{"N06AB"},
		From:     medstat.AnnualPeriod(2022),
		To:       medstat.AnnualPeriod(2023),
	})
	require.NoError(t, err)

	require.Equal(t, "Primary Sector", result.Setting)
	table := medstat.Assemble(result.Records)
	require.Equal(t, medstat.SomeValue(12.1), table.Value(medstat.AnnualPeriod(2022), "N06AB"))
	require.Equal(t, medstat.NoData, table.Value(medstat.AnnualPeriod(2023), "N06AB"))
}
