package scheduler_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"bonsplans/internal/domain"
	"bonsplans/internal/scheduler"
)

type fakeRefresher struct {
	mu       sync.Mutex
	seen     []string
	inFlight int32
	peak     int32
	results  map[string]domain.DealSource
	fail     map[string]bool
}

func (f *fakeRefresher) Refresh(ctx context.Context, origin string) (int, domain.DealSource, error) {
	cur := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		p := atomic.LoadInt32(&f.peak)
		if cur <= p || atomic.CompareAndSwapInt32(&f.peak, p, cur) {
			break
		}
	}
	time.Sleep(10 * time.Millisecond)

	f.mu.Lock()
	f.seen = append(f.seen, origin)
	f.mu.Unlock()
	if f.fail[origin] {
		return 0, domain.SourceLive, errors.New("redis down")
	}
	src, ok := f.results[origin]
	if !ok {
		src = domain.SourceLive
	}
	return 3, src, nil
}

func TestRunOnce_RefreshesEveryOriginWithBoundedConcurrency(t *testing.T) {
	r := &fakeRefresher{
		results: map[string]domain.DealSource{"NCE": domain.SourceFallback, "LYS": domain.SourcePopular},
		fail:    map[string]bool{"BOD": true},
	}
	s := scheduler.New(r, []string{"CDG", "ORY", "LYS", "NCE", "BOD"}, "@every 6h", 2)

	got := s.RunOnce(context.Background())
	if got != 3 {
		t.Fatalf("RunOnce = %d, want 3", got)
	}
	if len(r.seen) != 5 {
		t.Fatalf("expected 5 refreshes, got %v", r.seen)
	}
	if r.peak > 2 {
		t.Fatalf("concurrency exceeded: %d", r.peak)
	}
}

func TestRunOnce_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &fakeRefresher{}
	if got := scheduler.New(r, []string{"CDG", "ORY"}, "@every 6h", 1).RunOnce(ctx); got != 0 {
		t.Fatalf("RunOnce on cancelled ctx = %d", got)
	}
}

func TestStart_RejectsBadSpec(t *testing.T) {
	s := scheduler.New(&fakeRefresher{}, []string{"CDG"}, "every now and then", 1)
	if err := s.Start(context.Background()); err == nil {
		t.Fatalf("expected invalid spec error")
	}
}
