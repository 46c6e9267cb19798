package domain

import (
	"math"
	"time"
)

// Deal categories, as displayed on the cards.
const (
	CategoryFlightHotel = "Vol + Hôtel"
	CategoryFlightOnly  = "Vol seul"
	CategoryRoundTrip   = "Vol A/R"
)

// Deal is one rendered travel offer. It is built fresh on every aggregation
// and never mutated afterwards.
type Deal struct {
	Destination   string `json:"destination"`
	Country       string `json:"country"`
	CountryCode   string `json:"countryCode"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Price         int    `json:"price"`
	OriginalPrice int    `json:"originalPrice"`
	Category      string `json:"category"`
	Href          string `json:"href"`
	Image         string `json:"image"`
	DepartureCity string `json:"departureCity"`
	Nights        int    `json:"nights"`
	HotelStars    int    `json:"hotelStars"`
}

// DealSource tells where a deal list came from.
type DealSource string

const (
	SourceLive     DealSource = "live"
	SourcePopular  DealSource = "popular"
	SourceFallback DealSource = "fallback"
)

// CuratedDeal is a hand-maintained row of the curated sheet.
type CuratedDeal struct {
	Destination   string `json:"destination"`
	Country       string `json:"country"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Price         string `json:"price"`
	OriginalPrice string `json:"originalPrice"`
	Category      string `json:"category"`
	Href          string `json:"href"`
	Image         string `json:"image"`
}

// OriginalPrice is the synthetic "was" price: price * 1.5 rounded to the nearest 10.
func OriginalPrice(price int) int {
	return int(math.Round(float64(price)*1.5/10)) * 10
}

// Nights returns the whole number of days between two YYYY-MM-DD dates,
// never less than 1.
func Nights(checkIn, checkOut string) int {
	in, err1 := time.Parse(time.DateOnly, checkIn)
	out, err2 := time.Parse(time.DateOnly, checkOut)
	if err1 != nil || err2 != nil {
		return 1
	}
	n := int(math.Round(out.Sub(in).Hours() / 24))
	if n < 1 {
		return 1
	}
	return n
}
