package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"bonsplans/internal/domain"
)

const (
	DefaultOrigin = "CDG"
	maxCandidates = 9
)

// Aggregator produces the deal list for an origin from the flight and hotel
// searches, falling back to the popular destinations and then to the static
// catalog. It never fails.
type Aggregator struct {
	flights domain.FlightSearcher
	builder *DealBuilder
	now     func() time.Time
}

func NewAggregator(f domain.FlightSearcher, h domain.HotelSearcher) *Aggregator {
	return &Aggregator{flights: f, builder: NewDealBuilder(f, h), now: time.Now}
}

// WithClock overrides the clock used for the popular-destination dates.
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// FetchDeals returns deals sorted by ascending price, never an empty list.
func (a *Aggregator) FetchDeals(ctx context.Context, origin string) []domain.Deal {
	deals, _ := a.Collect(ctx, origin)
	return deals
}

func (a *Aggregator) Collect(ctx context.Context, origin string) (deals []domain.Deal, src domain.DealSource) {
	origin = NormalizeOrigin(origin)
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("origin", origin).Interface("panic", r).Msg("deal aggregation panicked, serving fallback catalog")
			deals, src = FallbackDeals(), domain.SourceFallback
		}
	}()

	inspirations, err := a.flights.SearchInspirations(ctx, origin)
	if err != nil {
		log.Warn().Err(err).Str("origin", origin).Msg("inspiration search failed")
		inspirations = nil
	}

	var candidates []Candidate
	if len(inspirations) > 0 {
		src = domain.SourceLive
		if len(inspirations) > maxCandidates {
			inspirations = inspirations[:maxCandidates]
		}
		for _, in := range inspirations {
			candidates = append(candidates, Candidate{
				Destination:   in.Destination,
				DepartureDate: in.DepartureDate,
				ReturnDate:    in.ReturnDate,
				CoarsePrice:   in.Price,
			})
		}
	} else {
		src = domain.SourcePopular
		dep, ret := NextWeekendWindow(a.now())
		log.Warn().Str("origin", origin).Str("departure", dep).Msg("no inspirations, pricing popular destinations")
		for _, iata := range popularDestinations {
			candidates = append(candidates, Candidate{Destination: iata, DepartureDate: dep, ReturnDate: ret})
		}
	}

	deals = a.buildAll(ctx, origin, candidates)
	if len(deals) == 0 {
		log.Warn().Str("origin", origin).Int("candidates", len(candidates)).Msg("no deal could be built, serving fallback catalog")
		return FallbackDeals(), domain.SourceFallback
	}

	sort.SliceStable(deals, func(i, j int) bool { return deals[i].Price < deals[j].Price })
	return deals, src
}

// buildAll prices every candidate concurrently and keeps the ones that succeed.
func (a *Aggregator) buildAll(ctx context.Context, origin string, cs []Candidate) []domain.Deal {
	results := make([]*domain.Deal, len(cs))
	var g errgroup.Group
	for i, c := range cs {
		i, c := i, c
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error().Str("dest", c.Destination).Interface("panic", r).Msg("deal build panicked")
					err = fmt.Errorf("build %s: panic: %v", c.Destination, r)
				}
			}()
			if d, ok := a.builder.Build(ctx, origin, c); ok {
				results[i] = &d
			}
			return nil
		})
	}
	_ = g.Wait() // a failed candidate is simply absent

	out := make([]domain.Deal, 0, len(cs))
	for _, d := range results {
		if d != nil {
			out = append(out, *d)
		}
	}
	return out
}

// NextWeekendWindow returns the Friday two weeks after the next Friday and
// the following Monday, as YYYY-MM-DD. A Friday "now" counts as the
// following week's Friday.
func NextWeekendWindow(now time.Time) (departure, ret string) {
	now = now.UTC()
	days := (int(time.Friday) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	friday := now.AddDate(0, 0, days+14)
	monday := friday.AddDate(0, 0, 3)
	return friday.Format(time.DateOnly), monday.Format(time.DateOnly)
}

// NormalizeOrigin upper-cases an IATA code; anything else becomes CDG.
func NormalizeOrigin(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 3 {
		return DefaultOrigin
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return DefaultOrigin
		}
	}
	return s
}
