package sheets_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bonsplans/internal/adapters/sheets"
)

const sample = `destination,country,title,description,price,originalPrice,category,href,image
Porto,Portugal,Week-end à Porto,"Vin, azulejos et Douro",149,229,Vol + Hôtel,https://example.com/porto,https://img/porto.jpg
,Espagne,Sans destination,desc,99,150,Vol seul,,
Rome,Italie,,pas de titre,120,180,Vol seul,,
Prague,Tchéquie,Escapade à Prague,Bière et ponts,139,210
`

func TestParse(t *testing.T) {
	got, err := sheets.Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d: %+v", len(got), got)
	}
	if got[0].Description != "Vin, azulejos et Douro" || got[0].Price != "149" {
		t.Fatalf("quoted field mishandled: %+v", got[0])
	}
	if got[1].Destination != "Prague" || got[1].Category != "" || got[1].Image != "" {
		t.Fatalf("short row mishandled: %+v", got[1])
	}
}

func TestCuratedDeals(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/spreadsheets/d/sheet-1/export" || r.URL.Query().Get("format") != "csv" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(sample))
	}))
	defer ts.Close()

	got, err := sheets.New(ts.URL, "sheet-1").CuratedDeals(context.Background())
	if err != nil || len(got) != 2 {
		t.Fatalf("got %d rows, err %v", len(got), err)
	}

	if _, err := sheets.New(ts.URL, "").CuratedDeals(context.Background()); !errors.Is(err, sheets.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if _, err := sheets.New(ts.URL, "missing").CuratedDeals(context.Background()); err == nil {
		t.Fatalf("expected error on 404")
	}
}
