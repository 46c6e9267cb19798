// Package kiwi searches round trips on the Kiwi Tequila API.
package kiwi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"bonsplans/internal/adapters/observability"
	"bonsplans/internal/domain"
)

var ErrMissingKey = errors.New("kiwi: missing KIWI_API_KEY")

// Destinations searched from every origin.
var Destinations = []string{
	"RAK", "LIS", "SVQ", "BCN", "NAP", "IST", "FCO", "OPO", "ATH",
	"PRG", "BUD", "AMS", "DUB", "BER", "CPH", "VIE", "MXP", "KRK",
}

type Client struct {
	base string
	key  string
	hc   *http.Client
	rl   *rate.Limiter
	now  func() time.Time
}

func New(base, key string, rps int) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		key:  key,
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
		now:  time.Now,
	}
}

type searchResponse struct {
	Data []struct {
		FlyFrom   string `json:"flyFrom"`
		FlyTo     string `json:"flyTo"`
		CityFrom  string `json:"cityFrom"`
		CityTo    string `json:"cityTo"`
		CountryTo struct {
			Code string `json:"code"`
			Name string `json:"name"`
		} `json:"countryTo"`
		Price        float64 `json:"price"`
		DeepLink     string  `json:"deep_link"`
		NightsInDest int     `json:"nightsInDest"`
	} `json:"data"`
}

// SearchWindow returns the dd/mm/yyyy date range 2 to 8 weeks after now.
func SearchWindow(now time.Time) (from, to string) {
	return now.AddDate(0, 0, 14).Format("02/01/2006"), now.AddDate(0, 0, 56).Format("02/01/2006")
}

// SearchRoundTrips returns up to 9 round trips from origin, one per city,
// cheapest first.
func (c *Client) SearchRoundTrips(ctx context.Context, origin string) ([]domain.RoundTrip, error) {
	if c.key == "" {
		return nil, ErrMissingKey
	}
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	from, to := SearchWindow(c.now())
	q := url.Values{}
	q.Set("fly_from", origin)
	q.Set("fly_to", strings.Join(Destinations, ","))
	q.Set("date_from", from)
	q.Set("date_to", to)
	q.Set("nights_in_dst_from", "2")
	q.Set("nights_in_dst_to", "5")
	q.Set("flight_type", "round")
	q.Set("one_for_city", "1")
	q.Set("max_stopovers", "1")
	q.Set("curr", "EUR")
	q.Set("locale", "fr")
	q.Set("sort", "price")
	q.Set("limit", "9")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/v2/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.key)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("kiwi", "search", 0, time.Since(start))
		return nil, fmt.Errorf("kiwi search: %w", err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("kiwi", "search", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("kiwi search: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var res searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("kiwi search: decode: %w", err)
	}

	out := make([]domain.RoundTrip, 0, len(res.Data))
	for _, d := range res.Data {
		if d.CityTo == "" || d.Price <= 0 {
			continue
		}
		out = append(out, domain.RoundTrip{
			FlyFrom:       d.FlyFrom,
			FlyTo:         d.FlyTo,
			CityFrom:      d.CityFrom,
			CityTo:        d.CityTo,
			CountryToCode: d.CountryTo.Code,
			CountryToName: d.CountryTo.Name,
			Price:         d.Price,
			DeepLink:      d.DeepLink,
			NightsInDest:  d.NightsInDest,
		})
	}
	return out, nil
}
