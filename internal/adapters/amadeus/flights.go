package amadeus

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"bonsplans/internal/domain"
)

// Fixed search parameters.
const (
	inspirationMaxPrice = "500"
	offerCurrency       = "EUR"
	offerAdults         = "1"
)

// ErrNoOffer means the offer search succeeded but priced nothing.
var ErrNoOffer = errors.New("amadeus: no flight offer")

type inspirationResponse struct {
	Data []struct {
		Destination   string `json:"destination"`
		DepartureDate string `json:"departureDate"`
		ReturnDate    string `json:"returnDate"`
		Price         struct {
			Total string `json:"total"`
		} `json:"price"`
	} `json:"data"`
}

type offersResponse struct {
	Data []struct {
		Price struct {
			Currency   string `json:"currency"`
			Total      string `json:"total"`
			GrandTotal string `json:"grandTotal"`
		} `json:"price"`
	} `json:"data"`
}

// SearchInspirations lists the cheapest round-trip destinations from origin.
// Rows without a destination or a parseable price are skipped.
func (c *Client) SearchInspirations(ctx context.Context, origin string) ([]domain.Inspiration, error) {
	q := url.Values{}
	q.Set("origin", origin)
	q.Set("oneWay", "false")
	q.Set("nonStop", "false")
	q.Set("maxPrice", inspirationMaxPrice)
	q.Set("viewBy", "DESTINATION")

	var res inspirationResponse
	if err := c.get(ctx, "flight-destinations", "/v1/shopping/flight-destinations", q, &res); err != nil {
		return nil, err
	}

	out := make([]domain.Inspiration, 0, len(res.Data))
	for _, d := range res.Data {
		price, err := strconv.ParseFloat(strings.TrimSpace(d.Price.Total), 64)
		if d.Destination == "" || err != nil || price <= 0 {
			continue
		}
		out = append(out, domain.Inspiration{
			Destination:   d.Destination,
			DepartureDate: d.DepartureDate,
			ReturnDate:    d.ReturnDate,
			Price:         price,
		})
	}
	return out, nil
}

// SearchOffer prices one round trip and returns the best offer grand total.
func (c *Client) SearchOffer(ctx context.Context, origin, destination, departureDate, returnDate string) (float64, error) {
	q := url.Values{}
	q.Set("originLocationCode", origin)
	q.Set("destinationLocationCode", destination)
	q.Set("departureDate", departureDate)
	q.Set("returnDate", returnDate)
	q.Set("adults", offerAdults)
	q.Set("nonStop", "false")
	q.Set("currencyCode", offerCurrency)
	q.Set("max", "1")

	var res offersResponse
	if err := c.get(ctx, "flight-offers", "/v2/shopping/flight-offers", q, &res); err != nil {
		return 0, err
	}
	if len(res.Data) == 0 {
		return 0, ErrNoOffer
	}
	p := res.Data[0].Price
	raw := p.GrandTotal
	if raw == "" {
		raw = p.Total
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || price <= 0 {
		return 0, ErrNoOffer
	}
	return price, nil
}
