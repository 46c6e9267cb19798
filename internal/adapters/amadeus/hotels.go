package amadeus

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"bonsplans/internal/domain"
)

const (
	hotelSearchRadiusKM = "10"
	hotelRatings        = "3,4"
	maxHotelIDs         = 20
	defaultHotelStars   = 3
)

type hotelListResponse struct {
	Data []struct {
		HotelID string `json:"hotelId"`
		Name    string `json:"name"`
	} `json:"data"`
}

type hotelOffersResponse struct {
	Data []struct {
		Available bool `json:"available"`
		Hotel     struct {
			HotelID string `json:"hotelId"`
			Rating  string `json:"rating"`
		} `json:"hotel"`
		Offers []struct {
			CheckInDate  string `json:"checkInDate"`
			CheckOutDate string `json:"checkOutDate"`
			Price        struct {
				Total string `json:"total"`
			} `json:"price"`
		} `json:"offers"`
	} `json:"data"`
}

// HotelOffer is the first (best rate) offer of one available hotel.
type HotelOffer struct {
	HotelID  string
	Stars    int
	Total    float64
	CheckIn  string
	CheckOut string
}

// ListHotelsByCity returns up to 20 hotel ids rated 3 or 4 stars around cityCode.
func (c *Client) ListHotelsByCity(ctx context.Context, cityCode string) ([]string, error) {
	q := url.Values{}
	q.Set("cityCode", cityCode)
	q.Set("radius", hotelSearchRadiusKM)
	q.Set("radiusUnit", "KM")
	q.Set("ratings", hotelRatings)
	q.Set("hotelSource", "ALL")

	var res hotelListResponse
	if err := c.get(ctx, "hotels-by-city", "/v1/reference-data/locations/hotels/by-city", q, &res); err != nil {
		return nil, err
	}
	ids := make([]string, 0, maxHotelIDs)
	for _, h := range res.Data {
		if h.HotelID == "" {
			continue
		}
		ids = append(ids, h.HotelID)
		if len(ids) == maxHotelIDs {
			break
		}
	}
	return ids, nil
}

// SearchHotelOffers returns the best rate of every available hotel that has one.
func (c *Client) SearchHotelOffers(ctx context.Context, hotelIDs []string, checkIn, checkOut string) ([]HotelOffer, error) {
	q := url.Values{}
	q.Set("hotelIds", strings.Join(hotelIDs, ","))
	q.Set("checkInDate", checkIn)
	q.Set("checkOutDate", checkOut)
	q.Set("adults", offerAdults)
	q.Set("currency", offerCurrency)
	q.Set("bestRateOnly", "true")

	var res hotelOffersResponse
	if err := c.get(ctx, "hotel-offers", "/v3/shopping/hotel-offers", q, &res); err != nil {
		return nil, err
	}

	out := make([]HotelOffer, 0, len(res.Data))
	for _, h := range res.Data {
		if !h.Available || len(h.Offers) == 0 {
			continue
		}
		o := h.Offers[0]
		total, err := strconv.ParseFloat(strings.TrimSpace(o.Price.Total), 64)
		if err != nil {
			continue
		}
		stars := defaultHotelStars
		if n, err := strconv.Atoi(strings.TrimSpace(h.Hotel.Rating)); err == nil {
			stars = n
		}
		out = append(out, HotelOffer{
			HotelID:  h.Hotel.HotelID,
			Stars:    stars,
			Total:    total,
			CheckIn:  o.CheckInDate,
			CheckOut: o.CheckOutDate,
		})
	}
	return out, nil
}

// CheapestHotel runs the two-step hotel lookup and keeps the lowest nightly
// rate; the first minimum wins ties. It returns nil, nil when nothing is bookable.
func (c *Client) CheapestHotel(ctx context.Context, cityCode, checkIn, checkOut string) (*domain.HotelQuote, error) {
	ids, err := c.ListHotelsByCity(ctx, cityCode)
	if err != nil || len(ids) == 0 {
		return nil, err
	}
	offers, err := c.SearchHotelOffers(ctx, ids, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	return Cheapest(offers), nil
}

// Cheapest picks the offer with the lowest total/nights.
func Cheapest(offers []HotelOffer) *domain.HotelQuote {
	var best *domain.HotelQuote
	for _, o := range offers {
		perNight := o.Total / float64(domain.Nights(o.CheckIn, o.CheckOut))
		if best == nil || perNight < best.PricePerNight {
			best = &domain.HotelQuote{PricePerNight: perNight, Stars: o.Stars}
		}
	}
	return best
}
