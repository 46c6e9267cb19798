package domain

import "context"

// Inspiration is one "cheapest destination from origin" result.
type Inspiration struct {
	Destination   string
	DepartureDate string
	ReturnDate    string
	Price         float64
}

// HotelQuote is the cheapest hotel found for a stay.
type HotelQuote struct {
	PricePerNight float64
	Stars         int
}

// RoundTrip is a priced round trip returned by a one-shot search provider.
type RoundTrip struct {
	FlyFrom       string
	FlyTo         string
	CityFrom      string
	CityTo        string
	CountryToCode string
	CountryToName string
	Price         float64
	DeepLink      string
	NightsInDest  int
}

type FlightSearcher interface {
	// SearchInspirations may return an empty slice with a nil error.
	SearchInspirations(ctx context.Context, origin string) ([]Inspiration, error)
	SearchOffer(ctx context.Context, origin, destination, departureDate, returnDate string) (float64, error)
}

type HotelSearcher interface {
	// CheapestHotel returns nil, nil when no hotel is available.
	CheapestHotel(ctx context.Context, cityCode, checkIn, checkOut string) (*HotelQuote, error)
}

type RoundTripSearcher interface {
	SearchRoundTrips(ctx context.Context, origin string) ([]RoundTrip, error)
}

// DealProvider always returns a renderable list and reports where it came from.
type DealProvider interface {
	Collect(ctx context.Context, origin string) ([]Deal, DealSource)
}

type CuratedSource interface {
	CuratedDeals(ctx context.Context) ([]CuratedDeal, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type InquiryRepository interface {
	SaveInquiry(ctx context.Context, in Inquiry) error
	MarkDelivery(ctx context.Context, id string, delivered bool, detail string) error
}

type Mailer interface {
	SendInquiry(ctx context.Context, in Inquiry) error
}
