package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"medstat/lib/telemetry"
)

type PortalParams struct {
	Name string
	// Handler serves the fake portal's responses.
	Handler http.Handler
}

type PortalResult struct {
	BaseUrl string
}

// SetupPortal starts a local stand-in for the statistics portal and
// bootstraps test telemetry.
func SetupPortal(t testing.TB, params PortalParams) (PortalResult, func()) {
	cleanupTelemetry := telemetry.SetupForTesting(t, fmt.Sprintf("test:%s", params.Name))

	server := httptest.NewServer(params.Handler)

	return PortalResult{
			BaseUrl: server.URL,
		}, func() {
			server.Close()
			cleanupTelemetry()
		}
}
