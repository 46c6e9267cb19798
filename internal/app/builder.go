package app

import (
	"context"
	"math"

	"github.com/rs/zerolog/log"

	"bonsplans/internal/domain"
)

const defaultHotelStars = 3

// Candidate is one destination to price. CoarsePrice is the inspiration
// price, or 0 when the destination comes from the popular list.
type Candidate struct {
	Destination   string
	DepartureDate string
	ReturnDate    string
	CoarsePrice   float64
}

// DealBuilder turns a candidate into a Deal: precise flight price, optional
// hotel, generated copy and links.
type DealBuilder struct {
	flights domain.FlightSearcher
	hotels  domain.HotelSearcher // nil disables hotel enrichment
}

func NewDealBuilder(f domain.FlightSearcher, h domain.HotelSearcher) *DealBuilder {
	return &DealBuilder{flights: f, hotels: h}
}

// Build returns false when no flight price can be obtained for the candidate.
func (b *DealBuilder) Build(ctx context.Context, origin string, c Candidate) (domain.Deal, bool) {
	originCity, ok := CityName(origin)
	if !ok {
		originCity = "Paris"
	}
	cityName, ok := CityName(c.Destination)
	if !ok {
		cityName = c.Destination
	}
	countryName, countryCode := Country(c.Destination)
	nights := domain.Nights(c.DepartureDate, c.ReturnDate)

	flightPrice := c.CoarsePrice
	offer, err := b.flights.SearchOffer(ctx, origin, c.Destination, c.DepartureDate, c.ReturnDate)
	switch {
	case err == nil && offer > 0:
		flightPrice = offer
	case flightPrice <= 0:
		log.Debug().Err(err).Str("origin", origin).Str("dest", c.Destination).Msg("no flight price, candidate dropped")
		return domain.Deal{}, false
	default:
		log.Debug().Err(err).Str("dest", c.Destination).Float64("coarse", flightPrice).Msg("offer refinement failed, keeping inspiration price")
	}

	hotelPerNight := 0.0
	stars := defaultHotelStars
	category := domain.CategoryFlightOnly
	if b.hotels != nil {
		q, err := b.hotels.CheapestHotel(ctx, c.Destination, c.DepartureDate, c.ReturnDate)
		switch {
		case err != nil:
			log.Debug().Err(err).Str("dest", c.Destination).Msg("hotel search failed, flight only")
		case q != nil:
			hotelPerNight = q.PricePerNight
			stars = q.Stars
			category = domain.CategoryFlightHotel
		}
	}

	total := int(math.Round(flightPrice + hotelPerNight*float64(nights)))
	return domain.Deal{
		Destination:   cityName,
		Country:       countryName,
		CountryCode:   countryCode,
		Title:         GenerateTitle(cityName),
		Description:   GenerateDescription(cityName, originCity, nights, stars),
		Price:         total,
		OriginalPrice: domain.OriginalPrice(total),
		Category:      category,
		Href:          SkyscannerLink(origin, c.Destination),
		Image:         DestinationImage(cityName),
		DepartureCity: originCity,
		Nights:        nights,
		HotelStars:    stars,
	}, true
}
