package app_test

import (
	"context"
	"errors"
	"sync"

	"bonsplans/internal/domain"
)

var errUpstream = errors.New("upstream 500")

// fakeFlights is safe for the concurrent candidate builds.
type fakeFlights struct {
	inspirations []domain.Inspiration
	inspireErr   error
	offers       map[string]float64 // destination -> price; missing = error
	panicOn      string

	mu     sync.Mutex
	offerN int
	seen   []string
}

func (f *fakeFlights) SearchInspirations(ctx context.Context, origin string) ([]domain.Inspiration, error) {
	if f.inspireErr != nil {
		return nil, f.inspireErr
	}
	return f.inspirations, nil
}

func (f *fakeFlights) SearchOffer(ctx context.Context, origin, dest, dep, ret string) (float64, error) {
	f.mu.Lock()
	f.offerN++
	f.seen = append(f.seen, dest+" "+dep+" "+ret)
	f.mu.Unlock()
	if dest == f.panicOn {
		panic("boom")
	}
	if p, ok := f.offers[dest]; ok {
		return p, nil
	}
	return 0, errUpstream
}

type fakeHotels struct {
	quotes map[string]*domain.HotelQuote
	fail   map[string]bool
}

func (h *fakeHotels) CheapestHotel(ctx context.Context, city, in, out string) (*domain.HotelQuote, error) {
	if h.fail[city] {
		return nil, errUpstream
	}
	return h.quotes[city], nil
}

type fakeCache struct {
	mu    sync.Mutex
	store map[string][]domain.Deal
	sets  int
	err   error
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return false, c.err
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if d, ok := dst.(*[]domain.Deal); ok {
		*d = append([]domain.Deal(nil), v...)
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	if c.store == nil {
		c.store = map[string][]domain.Deal{}
	}
	c.store[key] = append([]domain.Deal(nil), v.([]domain.Deal)...)
	c.sets++
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}
