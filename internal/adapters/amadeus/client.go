// Package amadeus talks to the Amadeus self-service travel APIs:
// flight inspiration, flight offers, hotel list and hotel offers.
package amadeus

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
)

var (
	ErrNotFound     = errors.New("amadeus: not found")
	ErrUnauthorized = errors.New("amadeus: unauthorized")
	ErrForbidden    = errors.New("amadeus: forbidden")
)

type Client struct {
	base  string
	hc    *http.Client
	rl    *rate.Limiter
	token *TokenProvider
}

// New builds a client. Missing credentials are not an error here: every call
// then fails with ErrAuth, which callers turn into the static catalog.
func New(base, clientID, clientSecret string, rps int) *Client {
	if rps <= 0 {
		rps = 8
	}
	base = strings.TrimRight(base, "/")
	hc := &http.Client{Timeout: 20 * time.Second}
	return &Client{
		base:  base,
		hc:    hc,
		rl:    rate.NewLimiter(rate.Limit(rps), rps),
		token: NewTokenProvider(base, clientID, clientSecret, hc),
	}
}

// get performs an authenticated GET with client-side rate limiting and
// decodes the JSON body into out. Failures are not retried; the caller owns
// the fallback.
func (c *Client) get(ctx context.Context, endpoint, path string, q url.Values, out any) error {
	tok, err := c.token.Token(ctx)
	if err != nil {
		return err
	}
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "bonsplans/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("amadeus", endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("amadeus %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("amadeus", endpoint, resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("amadeus %s: decode: %w", endpoint, err)
		}
		return nil

	case http.StatusNotFound:
		return ErrNotFound

	case http.StatusUnauthorized:
		// token revoked or expired early; next call exchanges again
		c.token.Invalidate()
		return ErrUnauthorized

	case http.StatusForbidden:
		return ErrForbidden

	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("amadeus %s: bad status %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(b)))
	}
}
