package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"roamvista/internal/adapters/observability"
	"roamvista/internal/app"
	"roamvista/internal/domain"
)

// Handlers holds the wired services. Nil services mean the record store is
// not configured; every data endpoint then reports a 500 instead of
// attempting a call.
type Handlers struct {
	Inquiries *app.InquiryService
	Stats     *app.StatsService
	Reviews   *app.ReviewService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/inquiries", h.submitInquiry)
	s.mux.Get("/inquiries", h.listInquiries)
	s.mux.Get("/inquiries/{id}", h.getInquiry)
	s.mux.Patch("/inquiries/{id}", h.updateInquiry)
	s.mux.Get("/admin/stats", h.dashboardStats)
	s.mux.Post("/reviews", h.submitReview)
	s.mux.Get("/reviews", h.listReviews)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// writeError maps service errors to the wire: validation detail goes to the
// client, everything else is an opaque 500 with the cause logged server-side.
func writeError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeProblem(w, http.StatusBadRequest, "Invalid Payload", ve.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "")
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func notConfigured(w http.ResponseWriter) {
	writeProblem(w, http.StatusInternalServerError, "Not Configured", "record store is not configured")
}

// ---- inquiries ----

func (h *Handlers) submitInquiry(w http.ResponseWriter, r *http.Request) {
	if h.Inquiries == nil {
		notConfigured(w)
		return
	}
	var in app.SubmitInquiryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Payload", "malformed JSON body")
		return
	}
	res, err := h.Inquiries.Submit(r.Context(), in)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			observability.ObserveInquiry("rejected")
		}
		writeError(w, err)
		return
	}

	resp := struct {
		Success        bool   `json:"success"`
		VerificationID string `json:"verificationId"`
		Message        string `json:"message,omitempty"`
	}{Success: true, VerificationID: res.VerificationID}
	if res.Duplicate {
		observability.ObserveInquiry("duplicate")
		resp.Message = "Duplicate inquiry detected; using existing verification."
	} else {
		observability.ObserveInquiry("created")
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) listInquiries(w http.ResponseWriter, r *http.Request) {
	if h.Inquiries == nil {
		notConfigured(w)
		return
	}
	f := domain.InquiryFilter{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
	}
	out, err := h.Inquiries.List(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	if out == nil {
		out = []domain.Inquiry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"inquiries": out})
}

func (h *Handlers) getInquiry(w http.ResponseWriter, r *http.Request) {
	if h.Inquiries == nil {
		notConfigured(w)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	q, err := h.Inquiries.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"inquiry": q})
}

func (h *Handlers) updateInquiry(w http.ResponseWriter, r *http.Request) {
	if h.Inquiries == nil {
		notConfigured(w)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	var body struct {
		AdminNotes   *string `json:"admin_notes"`
		QuotedAmount *int64  `json:"quoted_amount"`
		Status       *string `json:"inquiry_status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Payload", "malformed JSON body")
		return
	}
	u := domain.InquiryUpdate{AdminNotes: body.AdminNotes, QuotedAmount: body.QuotedAmount, Status: body.Status}
	if err := h.Inquiries.Update(r.Context(), id, u); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// ---- admin stats ----

func (h *Handlers) dashboardStats(w http.ResponseWriter, r *http.Request) {
	if h.Stats == nil {
		notConfigured(w)
		return
	}
	stats, err := h.Stats.Dashboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ---- reviews ----

func (h *Handlers) submitReview(w http.ResponseWriter, r *http.Request) {
	if h.Reviews == nil {
		notConfigured(w)
		return
	}
	var in app.SubmitReviewInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Payload", "malformed JSON body")
		return
	}
	created, err := h.Reviews.Submit(r.Context(), in)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			observability.ObserveReview("rejected")
		}
		writeError(w, err)
		return
	}
	observability.ObserveReview("created")
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Review submitted successfully and is pending approval",
		"review":  created,
	})
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	if h.Reviews == nil {
		notConfigured(w)
		return
	}
	var f domain.ReviewFilter
	if pkg := r.URL.Query().Get("package_id"); pkg != "" {
		f.PackageID = &pkg
	}
	f.FeaturedOnly = r.URL.Query().Get("featured") == "true"
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		f.Limit = l
	}
	out, err := h.Reviews.ListApproved(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reviews": out})
}
