//go:build integration || !unit

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"bonsplans/internal/adapters/amadeus"
	server "bonsplans/internal/adapters/http_server"
	"bonsplans/internal/adapters/observability"
	redisad "bonsplans/internal/adapters/redis"
	"bonsplans/internal/app"
	"bonsplans/internal/domain"
)

// ---------- fake Amadeus ----------
type fakeAmadeus struct {
	inspirationHits int32
}

func (f *fakeAmadeus) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "e2e", "expires_in": 1799})
	})
	mux.HandleFunc("/v1/shopping/flight-destinations", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.inspirationHits, 1)
		_, _ = io.WriteString(w, `{"data":[
			{"destination":"LIS","departureDate":"2026-11-06","returnDate":"2026-11-09","price":{"total":"120.00"}},
			{"destination":"BCN","departureDate":"2026-11-06","returnDate":"2026-11-08","price":{"total":"95.00"}}
		]}`)
	})
	mux.HandleFunc("/v2/shopping/flight-offers", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("destinationLocationCode") {
		case "LIS":
			_, _ = io.WriteString(w, `{"data":[{"price":{"currency":"EUR","total":"100.00","grandTotal":"100.00"}}]}`)
		case "BCN":
			_, _ = io.WriteString(w, `{"data":[{"price":{"currency":"EUR","total":"80.00"}}]}`)
		default:
			_, _ = io.WriteString(w, `{"data":[]}`)
		}
	})
	mux.HandleFunc("/v1/reference-data/locations/hotels/by-city", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("cityCode") != "LIS" {
			_, _ = io.WriteString(w, `{"data":[]}`)
			return
		}
		_, _ = io.WriteString(w, `{"data":[{"hotelId":"HLLIS001"},{"hotelId":"HLLIS002"}]}`)
	})
	mux.HandleFunc("/v3/shopping/hotel-offers", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":[
			{"available":true,"hotel":{"hotelId":"HLLIS001","rating":"4"},"offers":[{"checkInDate":"2026-11-06","checkOutDate":"2026-11-09","price":{"total":"150.00"}}]},
			{"available":true,"hotel":{"hotelId":"HLLIS002","rating":"3"},"offers":[{"checkInDate":"2026-11-06","checkOutDate":"2026-11-09","price":{"total":"210.00"}}]}
		]}`)
	})
	return mux
}

// ---------- wiring ----------
type stack struct {
	api   *httptest.Server
	redis *miniredis.Miniredis
}

func newStack(t *testing.T, amadeusBase, id, secret string) *stack {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cl := amadeus.New(amadeusBase, id, secret, 100)
	q := app.NewDealQueryService(app.NewAggregator(cl, cl), redisad.NewFromClient(rdb), 6*time.Hour)

	srv := server.New([]string{"http://localhost:3000"})
	srv.Mount("/metrics", observability.MetricsHandler(observability.InitRegistry()))
	srv.MountHandlers(&server.Handlers{
		Deals:       q,
		Contact:     app.NewContactService(nil, nil),
		DealsBudget: 5 * time.Second,
	})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return &stack{api: ts, redis: mr}
}

func getDeals(t *testing.T, base, origin string) ([]domain.Deal, *http.Response) {
	t.Helper()
	res, err := http.Get(fmt.Sprintf("%s/deals?origin=%s", base, origin))
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	var deals []domain.Deal
	if err := json.NewDecoder(res.Body).Decode(&deals); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return deals, res
}

// ---------- the tests ----------
func TestHTTP_EndToEnd_LiveDealsAreCached(t *testing.T) {
	fa := &fakeAmadeus{}
	upstream := httptest.NewServer(fa.handler())
	t.Cleanup(upstream.Close)
	st := newStack(t, upstream.URL, "id", "secret")

	deals, res := getDeals(t, st.api.URL, "cdg")
	if res.Header.Get("X-Deals-Source") != "live" {
		t.Fatalf("source = %q", res.Header.Get("X-Deals-Source"))
	}
	if len(deals) != 2 {
		t.Fatalf("expected 2 deals, got %+v", deals)
	}

	bcn, lis := deals[0], deals[1]
	if bcn.Destination != "Barcelone" || bcn.Price != 80 || bcn.Category != domain.CategoryFlightOnly || bcn.Nights != 2 {
		t.Fatalf("unexpected first deal: %+v", bcn)
	}
	// 100 + 150/3 * 3
	if lis.Destination != "Lisbonne" || lis.Price != 250 || lis.OriginalPrice != 380 || lis.HotelStars != 4 || lis.Category != domain.CategoryFlightHotel {
		t.Fatalf("unexpected second deal: %+v", lis)
	}
	if !st.redis.Exists("deals:CDG") {
		t.Fatalf("expected deals:CDG in redis")
	}
	if ttl := st.redis.TTL("deals:CDG"); ttl != 6*time.Hour {
		t.Fatalf("ttl = %s", ttl)
	}

	again, _ := getDeals(t, st.api.URL, "CDG")
	if n := atomic.LoadInt32(&fa.inspirationHits); n != 1 {
		t.Fatalf("expected the second request to hit the cache, upstream called %d times", n)
	}
	if len(again) != 2 || again[1].Price != 250 {
		t.Fatalf("cached deals differ: %+v", again)
	}
}

func TestHTTP_EndToEnd_MissingCredentialsServesCatalog(t *testing.T) {
	st := newStack(t, "http://127.0.0.1:1", "", "")

	deals, res := getDeals(t, st.api.URL, "CDG")
	if len(deals) != 6 || deals[0].Destination != app.FallbackDeals()[0].Destination {
		t.Fatalf("expected the static catalog, got %+v", deals)
	}
	if res.Header.Get("X-Deals-Source") != "fallback" {
		t.Fatalf("source = %q", res.Header.Get("X-Deals-Source"))
	}
	if !strings.Contains(res.Header.Get("Cache-Control"), "s-maxage=21600") {
		t.Fatalf("Cache-Control = %q", res.Header.Get("Cache-Control"))
	}
	if st.redis.Exists("deals:CDG") {
		t.Fatalf("fallback catalog must not be cached")
	}

	mres, err := http.Get(st.api.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer mres.Body.Close()
	body, _ := io.ReadAll(mres.Body)
	if !strings.Contains(string(body), `bonsplans_deals_served_total{source="fallback"}`) {
		t.Fatalf("deals metric missing from /metrics")
	}
}

func TestHTTP_EndToEnd_UpstreamDownServesCatalog(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(upstream.Close)
	st := newStack(t, upstream.URL, "id", "secret")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, st.api.URL+"/deals?origin=ORY", nil)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	var deals []domain.Deal
	if err := json.NewDecoder(res.Body).Decode(&deals); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.StatusCode != http.StatusOK || len(deals) != 6 {
		t.Fatalf("got %d with %d deals", res.StatusCode, len(deals))
	}
}
