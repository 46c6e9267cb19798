package amadeus_test

import (
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"bonsplans/internal/adapters/amadeus"
)

func TestCheapest(t *testing.T) {
	tests := []struct {
		name      string
		offers    []amadeus.HotelOffer
		wantNil   bool
		wantPrice float64
		wantStars int
	}{
		{name: "none", wantNil: true},
		{
			name: "per night wins over total",
			offers: []amadeus.HotelOffer{
				{HotelID: "A", Stars: 3, Total: 200, CheckIn: "2026-11-06", CheckOut: "2026-11-08"}, // 100/night
				{HotelID: "B", Stars: 4, Total: 270, CheckIn: "2026-11-06", CheckOut: "2026-11-09"}, // 90/night
			},
			wantPrice: 90, wantStars: 4,
		},
		{
			name: "first minimum wins ties",
			offers: []amadeus.HotelOffer{
				{HotelID: "A", Stars: 3, Total: 180, CheckIn: "2026-11-06", CheckOut: "2026-11-09"},
				{HotelID: "B", Stars: 4, Total: 180, CheckIn: "2026-11-06", CheckOut: "2026-11-09"},
			},
			wantPrice: 60, wantStars: 3,
		},
		{
			name: "same day stay counts one night",
			offers: []amadeus.HotelOffer{
				{HotelID: "A", Stars: 3, Total: 75, CheckIn: "2026-11-06", CheckOut: "2026-11-06"},
			},
			wantPrice: 75, wantStars: 3,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := amadeus.Cheapest(tc.offers)
			if tc.wantNil {
				if got != nil {
					t.Fatalf("expected nil, got %+v", got)
				}
				return
			}
			if got == nil || got.PricePerNight != tc.wantPrice || got.Stars != tc.wantStars {
				t.Fatalf("got %+v, want %v/%d", got, tc.wantPrice, tc.wantStars)
			}
		})
	}
}

func TestCheapestHotel_TwoSteps(t *testing.T) {
	var tokenHits int32
	ts := fakeAmadeus(t, &tokenHits, map[string]http.HandlerFunc{
		"/v1/reference-data/locations/hotels/by-city": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("cityCode") != "LIS" || q.Get("ratings") != "3,4" || q.Get("radius") != "10" {
				t.Errorf("unexpected query %s", r.URL.RawQuery)
			}
			var rows []string
			for i := 0; i < 25; i++ {
				rows = append(rows, fmt.Sprintf(`{"hotelId":"H%02d","name":"Hotel %d"}`, i, i))
			}
			_, _ = w.Write([]byte(`{"data":[` + strings.Join(rows, ",") + `]}`))
		},
		"/v3/shopping/hotel-offers": func(w http.ResponseWriter, r *http.Request) {
			ids := strings.Split(r.URL.Query().Get("hotelIds"), ",")
			if len(ids) != 20 {
				t.Errorf("expected 20 hotel ids, got %d", len(ids))
			}
			_, _ = w.Write([]byte(`{"data":[
				{"available":false,"hotel":{"hotelId":"H00","rating":"4"},"offers":[{"checkInDate":"2026-11-06","checkOutDate":"2026-11-09","price":{"total":"30"}}]},
				{"available":true,"hotel":{"hotelId":"H01","rating":"4"},"offers":[]},
				{"available":true,"hotel":{"hotelId":"H02","rating":"4"},"offers":[{"checkInDate":"2026-11-06","checkOutDate":"2026-11-09","price":{"total":"240"}}]},
				{"available":true,"hotel":{"hotelId":"H03"},"offers":[{"checkInDate":"2026-11-06","checkOutDate":"2026-11-09","price":{"total":"210"}}]}
			]}`))
		},
	})

	got, err := amadeus.New(ts.URL, "id", "secret", 100).CheapestHotel(ctx(t), "LIS", "2026-11-06", "2026-11-09")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got == nil || got.PricePerNight != 70 || got.Stars != 3 {
		t.Fatalf("unexpected quote: %+v", got)
	}
}

func TestCheapestHotel_NoHotels(t *testing.T) {
	var tokenHits, offerHits int32
	ts := fakeAmadeus(t, &tokenHits, map[string]http.HandlerFunc{
		"/v1/reference-data/locations/hotels/by-city": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":[]}`))
		},
		"/v3/shopping/hotel-offers": func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&offerHits, 1)
		},
	})
	got, err := amadeus.New(ts.URL, "id", "secret", 100).CheapestHotel(ctx(t), "RAK", "2026-11-06", "2026-11-09")
	if err != nil || got != nil {
		t.Fatalf("expected nil, nil; got %+v, %v", got, err)
	}
	if atomic.LoadInt32(&offerHits) != 0 {
		t.Fatalf("offers must not be searched without hotel ids")
	}
}
