// Package sheets reads the curated deals maintained in a public Google Sheet.
package sheets

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bonsplans/internal/adapters/observability"
	"bonsplans/internal/domain"
)

var ErrNotConfigured = errors.New("sheets: GOOGLE_SHEET_ID is not configured")

type Client struct {
	base    string
	sheetID string
	hc      *http.Client
}

// New reads from docs.google.com; base is overridable for tests.
func New(base, sheetID string) *Client {
	if base == "" {
		base = "https://docs.google.com"
	}
	return &Client{base: strings.TrimRight(base, "/"), sheetID: sheetID, hc: &http.Client{Timeout: 10 * time.Second}}
}

func (c *Client) CuratedDeals(ctx context.Context) ([]domain.CuratedDeal, error) {
	if c.sheetID == "" {
		return nil, ErrNotConfigured
	}
	u := fmt.Sprintf("%s/spreadsheets/d/%s/export?format=csv&gid=0", c.base, c.sheetID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("sheets", "export-csv", 0, time.Since(start))
		return nil, fmt.Errorf("sheets: %w", err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("sheets", "export-csv", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheets: bad status %d", resp.StatusCode)
	}
	return Parse(resp.Body)
}

// Parse reads the sheet export. Columns, after a header row:
// destination, country, title, description, price, originalPrice, category, href, image.
// Rows without a destination or a title are dropped.
func Parse(r io.Reader) ([]domain.CuratedDeal, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("sheets: parse csv: %w", err)
	}
	if len(rows) == 0 {
		return []domain.CuratedDeal{}, nil
	}

	out := make([]domain.CuratedDeal, 0, len(rows)-1)
	for _, row := range rows[1:] {
		col := func(i int) string {
			if i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}
		d := domain.CuratedDeal{
			Destination:   col(0),
			Country:       col(1),
			Title:         col(2),
			Description:   col(3),
			Price:         col(4),
			OriginalPrice: col(5),
			Category:      col(6),
			Href:          col(7),
			Image:         col(8),
		}
		if d.Destination == "" || d.Title == "" {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}
