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
	"sync"
	"time"

	"bonsplans/internal/adapters/observability"
)

// ErrAuth is returned when credentials are missing or the exchange is refused.
var ErrAuth = errors.New("amadeus: auth failed")

// tokenMargin is how long before expiry a cached token stops being served.
const tokenMargin = 60 * time.Second

// TokenProvider exchanges client credentials for a bearer token and caches it
// for the life of the process. Concurrent misses may each run an exchange;
// the last one wins.
type TokenProvider struct {
	base, id, secret string
	hc               *http.Client
	now              func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func NewTokenProvider(base, clientID, clientSecret string, hc *http.Client) *TokenProvider {
	return &TokenProvider{base: base, id: clientID, secret: clientSecret, hc: hc, now: time.Now}
}

// Token returns the cached token or performs a client-credentials exchange.
func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	tok, exp := p.token, p.expiresAt
	p.mu.Unlock()
	if tok != "" && p.now().Before(exp) {
		return tok, nil
	}

	if p.id == "" || p.secret == "" {
		return "", fmt.Errorf("%w: missing AMADEUS_CLIENT_ID or AMADEUS_CLIENT_SECRET", ErrAuth)
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", p.id)
	form.Set("client_secret", p.secret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.base+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	start := p.now()
	resp, err := p.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("amadeus", "oauth2-token", 0, time.Since(start))
		return "", fmt.Errorf("%w: %v", ErrAuth, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("amadeus", "oauth2-token", resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: status %d: %s", ErrAuth, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode token: %v", ErrAuth, err)
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access_token", ErrAuth)
	}

	p.mu.Lock()
	p.token = out.AccessToken
	p.expiresAt = p.now().Add(time.Duration(out.ExpiresIn)*time.Second - tokenMargin)
	p.mu.Unlock()
	return out.AccessToken, nil
}

// Invalidate drops the cached token so the next call exchanges again.
func (p *TokenProvider) Invalidate() {
	p.mu.Lock()
	p.token = ""
	p.expiresAt = time.Time{}
	p.mu.Unlock()
}
