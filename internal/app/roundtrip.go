package app

import (
	"context"
	"math"
	"sort"

	"github.com/rs/zerolog/log"

	"bonsplans/internal/domain"
)

const defaultRoundTripNights = 3

// RoundTripAggregator builds flight-only deals from a single round-trip
// search. Like Aggregator it falls back to the static catalog and never fails.
type RoundTripAggregator struct {
	search domain.RoundTripSearcher
}

func NewRoundTripAggregator(s domain.RoundTripSearcher) *RoundTripAggregator {
	return &RoundTripAggregator{search: s}
}

func (a *RoundTripAggregator) FetchDeals(ctx context.Context, origin string) []domain.Deal {
	deals, _ := a.Collect(ctx, origin)
	return deals
}

func (a *RoundTripAggregator) Collect(ctx context.Context, origin string) (deals []domain.Deal, src domain.DealSource) {
	origin = NormalizeOrigin(origin)
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("origin", origin).Interface("panic", r).Msg("round trip aggregation panicked, serving fallback catalog")
			deals, src = FallbackDeals(), domain.SourceFallback
		}
	}()

	trips, err := a.search.SearchRoundTrips(ctx, origin)
	if err != nil {
		log.Warn().Err(err).Str("origin", origin).Msg("round trip search failed, serving fallback catalog")
		return FallbackDeals(), domain.SourceFallback
	}
	if len(trips) == 0 {
		log.Warn().Str("origin", origin).Msg("round trip search empty, serving fallback catalog")
		return FallbackDeals(), domain.SourceFallback
	}

	originCity := frenchCity(trips[0].CityFrom)
	if originCity == "" {
		originCity = "Paris"
	}

	deals = make([]domain.Deal, 0, len(trips))
	for _, t := range trips {
		city := frenchCity(t.CityTo)
		countryName, ok := countryNameFR[t.CountryToCode]
		if !ok {
			countryName = t.CountryToName
		}
		nights := t.NightsInDest
		if nights < 1 {
			nights = defaultRoundTripNights
		}
		price := int(math.Round(t.Price))
		deals = append(deals, domain.Deal{
			Destination:   city,
			Country:       countryName,
			CountryCode:   t.CountryToCode,
			Title:         GenerateTitle(city),
			Description:   GenerateDescription(city, originCity, nights, defaultHotelStars),
			Price:         price,
			OriginalPrice: domain.OriginalPrice(price),
			Category:      domain.CategoryRoundTrip,
			Href:          t.DeepLink,
			Image:         DestinationImage(city),
			DepartureCity: originCity,
			Nights:        nights,
			HotelStars:    defaultHotelStars,
		})
	}
	sort.SliceStable(deals, func(i, j int) bool { return deals[i].Price < deals[j].Price })
	return deals, domain.SourceLive
}

func frenchCity(name string) string {
	if fr, ok := cityNameFR[name]; ok {
		return fr
	}
	return name
}
