package medstat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"medstat/lib/restyutil"
	"medstat/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

type ClientOptions struct {
	// BaseUrl defaults to the public portal.
	BaseUrl string
	// Timeout bounds every request; defaults to 30s.
	Timeout time.Duration
}

// Client fetches exports from the statistics portal. It performs exactly
// one GET per fetch: no retries, no caching.
type Client struct {
	baseUrl string
	http    *resty.Client
}

func NewClient(opts ClientOptions) (*Client, error) {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseURL
	}
	parsed, err := url.Parse(baseUrl)
	if err != nil {
		return nil, err
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}

	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(parsed.Hostname()))
	client.SetTimeout(timeout)

	telemetry.InstrumentResty(client, "medstat/http")

	return &Client{
		baseUrl: baseUrl,
		http:    client,
	}, nil
}

// SetInstrumentOutput dumps every request/response transcript into the
// given output sink for debugging.
func (c *Client) SetInstrumentOutput(out restyutil.InstrumentOutput) {
	restyutil.InstrumentClient(c.http, tracer, out)
}

// Fetch performs one GET against the given locator. A transport failure
// wraps ErrNetwork; a response outside 2xx returns *HTTPStatusError
// along with the raw payload.
func (c *Client) Fetch(ctx context.Context, locator string) (RawResponse, error) {
	ctx, span := tracer.Start(ctx, "client:Fetch")
	defer span.End()

	slog.DebugContext(ctx, "fetching", "url", locator)

	res, err := c.http.R().
		SetContext(ctx).
		Get(locator)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		return RawResponse{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	raw := RawResponse{
		StatusCode: res.StatusCode(),
		Body:       res.Body(),
	}
	if !res.IsSuccess() {
		span.SetStatus(codes.Error, "unexpected http status")
		return raw, &HTTPStatusError{StatusCode: res.StatusCode()}
	}
	return raw, nil
}

// FetchTable runs the whole pipeline for one query: one export request
// per classification code, fetched concurrently, results re-sequenced
// into the query's code order and assembled into a single table so the
// assembler's last-write-wins policy stays deterministic.
func (c *Client) FetchTable(ctx context.Context, query Query, format Format) (Table, error) {
	ctx, span := tracer.Start(ctx, "client:FetchTable")
	defer span.End()

	query = query.withDefaults()
	if err := query.validate(); err != nil {
		return Table{}, err
	}

	sets := make([][]Record, len(query.AtcCodes))
	errs := make([]error, len(query.AtcCodes))
	wg := sync.WaitGroup{}

	for i, code := range query.AtcCodes {
		sub := query
		sub.AtcCodes = []string{code}

		wg.Add(1)
		go func(i int, code string, sub Query) {
			defer wg.Done()

			records, err := c.fetchRecords(ctx, sub, format)
			if err != nil {
				errs[i] = fmt.Errorf("code %s: %w", code, err)
				return
			}
			sets[i] = labelRecords(records, code)
		}(i, code, sub)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return Table{}, err
	}

	for i, set := range sets {
		sets[i] = keepInRange(ctx, set, query.From, query.To)
	}
	return Assemble(sets...), nil
}

// FetchViewTable scrapes the interactive viewer page for the query
// instead of the export endpoint, keeping the page's setting and unit
// labels.
func (c *Client) FetchViewTable(ctx context.Context, query Query) (*HTMLDataTable, error) {
	ctx, span := tracer.Start(ctx, "client:FetchViewTable")
	defer span.End()

	locator, err := BuildViewURL(c.baseUrl, query)
	if err != nil {
		return nil, err
	}
	raw, err := c.Fetch(ctx, locator)
	if err != nil {
		return nil, err
	}
	return ParseHTMLTable(raw)
}

func (c *Client) fetchRecords(ctx context.Context, query Query, format Format) ([]Record, error) {
	values, err := query.Encode()
	if err != nil {
		return nil, err
	}
	locator, err := BuildExportURL(c.baseUrl, values, format)
	if err != nil {
		return nil, err
	}
	raw, err := c.Fetch(ctx, locator)
	if err != nil {
		return nil, err
	}
	return Parse(raw, format)
}

// labelRecords fills the queried code in for records the export left
// uncategorized, so each sub-query contributes one named series.
func labelRecords(records []Record, code string) []Record {
	for i, record := range records {
		if record.Category == "" {
			records[i].Category = code
		}
	}
	return records
}

// keepInRange drops records outside the requested period range; the
// portal pads exports with adjacent periods.
func keepInRange(ctx context.Context, records []Record, from, to Period) []Record {
	kept := records[:0]
	for _, record := range records {
		if record.Period.Before(from) || record.Period.After(to) {
			slog.DebugContext(
				ctx, "dropping out-of-range record",
				"period", record.Period.String(),
				"category", record.Category,
			)
			continue
		}
		kept = append(kept, record)
	}
	return kept
}
