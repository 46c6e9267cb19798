package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bonsplans/internal/adapters/observability"
	"bonsplans/internal/domain"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record samples so the vectors have children to export
	observability.ObserveHTTP("/deals", "GET", 200, 12*time.Millisecond)
	observability.ObserveExternal("amadeus", "flight-offers", 200, 40*time.Millisecond)
	observability.ObserveDeals(domain.SourceFallback)

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, want := range []string{
		"bonsplans_http_requests_total",
		"bonsplans_external_requests_total",
		`bonsplans_deals_served_total{source="fallback"}`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output", want)
		}
	}
}

func TestNewLogger_ConsoleInDev(t *testing.T) {
	l := observability.NewLogger("dev")
	l.Info().Msg("console logger works")
	l = observability.NewLogger("prod")
	l.Info().Msg("json logger works")
}
