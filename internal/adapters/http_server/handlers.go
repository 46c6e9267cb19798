package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"bonsplans/internal/adapters/observability"
	"bonsplans/internal/app"
	"bonsplans/internal/domain"
)

const (
	dealsCacheControl   = "public, s-maxage=21600, stale-while-revalidate=600"
	curatedCacheControl = "s-maxage=3600, stale-while-revalidate=60"
	maxContactBody      = 64 << 10
	defaultDealsBudget  = 10 * time.Second
)

type Handlers struct {
	Deals   *app.DealQueryService
	Contact *app.ContactService
	Curated domain.CuratedSource

	// DealsBudget caps the aggregation behind GET /deals so the handler can
	// still answer before the router timeout fires.
	DealsBudget time.Duration
}

type contactResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/deals", h.listDeals)
	s.mux.Get("/deals/curated", h.listCurated)
	s.mux.Post("/contact", h.submitContact)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// listDeals always answers 200 with a non-empty list; aggregation failures
// are absorbed into the static catalog upstream.
func (h *Handlers) listDeals(w http.ResponseWriter, r *http.Request) {
	budget := h.DealsBudget
	if budget <= 0 {
		budget = defaultDealsBudget
	}
	ctx, cancel := context.WithTimeout(r.Context(), budget)
	defer cancel()

	origin := app.NormalizeOrigin(r.URL.Query().Get("origin"))
	deals, src := h.Deals.Deals(ctx, origin)
	if len(deals) == 0 {
		deals, src = app.FallbackDeals(), domain.SourceFallback
	}
	observability.ObserveDeals(src)

	etag, body := calcETagAndBody(deals)
	w.Header().Set("Cache-Control", dealsCacheControl)
	w.Header().Set("X-Deals-Source", string(src))
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write deals body")
	}
}

func (h *Handlers) listCurated(w http.ResponseWriter, r *http.Request) {
	if h.Curated == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "GOOGLE_SHEET_ID non configuré"})
		return
	}
	deals, err := h.Curated.CuratedDeals(r.Context())
	if err != nil {
		log.Warn().Err(err).Msg("curated deals unavailable")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if deals == nil {
		deals = []domain.CuratedDeal{}
	}
	w.Header().Set("Cache-Control", curatedCacheControl)
	writeJSON(w, http.StatusOK, deals)
}

func (h *Handlers) submitContact(w http.ResponseWriter, r *http.Request) {
	var req app.ContactRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxContactBody))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, contactResponse{Error: "invalid JSON body"})
		return
	}

	if _, err := h.Contact.Submit(r.Context(), req); err != nil {
		if errors.Is(err, app.ErrInvalidInquiry) {
			writeJSON(w, http.StatusBadRequest, contactResponse{Error: err.Error()})
			return
		}
		log.Error().Err(err).Msg("contact relay failed")
		writeJSON(w, http.StatusInternalServerError, contactResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, contactResponse{Success: true})
}
