package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	server "roamvista/internal/adapters/http_server"
	"roamvista/internal/app"
	"roamvista/internal/domain"
)

// memRepo implements the inquiry, review, and notification ports in memory so
// handlers can be exercised over real services.
type memRepo struct {
	inquiries []domain.Inquiry
	reviews   []domain.Review
	nextID    int64
}

func (m *memRepo) InsertInquiry(ctx context.Context, q domain.Inquiry) (int64, error) {
	m.nextID++
	q.ID = m.nextID
	m.inquiries = append(m.inquiries, q)
	return q.ID, nil
}

func (m *memRepo) FindDuplicateSince(ctx context.Context, email, packageID string, since time.Time) (string, bool, error) {
	for i := len(m.inquiries) - 1; i >= 0; i-- {
		q := m.inquiries[i]
		if q.CustomerEmail == email && q.PackageID == packageID && !q.CreatedAt.Before(since) {
			return q.VerificationID, true, nil
		}
	}
	return "", false, nil
}

func (m *memRepo) GetInquiry(ctx context.Context, id int64) (domain.Inquiry, error) {
	for _, q := range m.inquiries {
		if q.ID == id {
			return q, nil
		}
	}
	return domain.Inquiry{}, domain.ErrNotFound
}

func (m *memRepo) ListInquiries(ctx context.Context, f domain.InquiryFilter) ([]domain.Inquiry, error) {
	var out []domain.Inquiry
	for _, q := range m.inquiries {
		if f.Status != "" && q.Status != f.Status {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func (m *memRepo) UpdateInquiry(ctx context.Context, id int64, u domain.InquiryUpdate) error {
	for i, q := range m.inquiries {
		if q.ID != id {
			continue
		}
		if u.Status != nil {
			q.Status = *u.Status
		}
		if u.QuotedAmount != nil {
			q.QuotedAmount = u.QuotedAmount
		}
		if u.AdminNotes != nil {
			q.AdminNotes = u.AdminNotes
		}
		m.inquiries[i] = q
		return nil
	}
	return domain.ErrNotFound
}

func (m *memRepo) CountInquiries(ctx context.Context) (int, error) { return len(m.inquiries), nil }

func (m *memRepo) CountInquiriesByStatus(ctx context.Context, status string) (int, error) {
	n := 0
	for _, q := range m.inquiries {
		if q.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *memRepo) CountInquiriesSince(ctx context.Context, since time.Time) (int, error) {
	n := 0
	for _, q := range m.inquiries {
		if !q.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (m *memRepo) CountInquiriesBetween(ctx context.Context, from, to time.Time) (int, error) {
	n := 0
	for _, q := range m.inquiries {
		if !q.CreatedAt.Before(from) && q.CreatedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

func (m *memRepo) ConfirmedQuotes(ctx context.Context) ([]*int64, error) {
	out := []*int64{}
	for _, q := range m.inquiries {
		if q.Status == domain.StatusConfirmed {
			out = append(out, q.QuotedAmount)
		}
	}
	return out, nil
}

func (m *memRepo) RecentInquiries(ctx context.Context, limit int) ([]domain.Inquiry, error) {
	out := append([]domain.Inquiry(nil), m.inquiries...)
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (m *memRepo) InsertReview(ctx context.Context, r domain.Review) (domain.Review, error) {
	m.nextID++
	r.ID = m.nextID
	r.CreatedAt = time.Now()
	m.reviews = append(m.reviews, r)
	return r, nil
}

func (m *memRepo) ListApprovedReviews(ctx context.Context, f domain.ReviewFilter) ([]domain.Review, error) {
	var out []domain.Review
	for _, r := range m.reviews {
		if !r.AdminApproved {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *memRepo) EnqueueNotification(ctx context.Context, n domain.Notification) error { return nil }
func (m *memRepo) PendingNotifications(ctx context.Context, limit int) ([]domain.Notification, error) {
	return nil, nil
}
func (m *memRepo) MarkNotificationSent(ctx context.Context, id int64) error   { return nil }
func (m *memRepo) MarkNotificationFailed(ctx context.Context, id int64) error { return nil }

func newTestServer(repo *memRepo) http.Handler {
	srv := server.New()
	srv.MountHandlers(&server.Handlers{
		Inquiries: app.NewInquiryService(repo, nil),
		Stats:     app.NewStatsService(repo),
		Reviews:   app.NewReviewService(repo, repo, nil, time.Minute, "admin@example.com"),
	})
	return srv.Mux()
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

const validInquiryBody = `{
	"packageId": "pkg-mara-7d",
	"packageName": "Masai Mara Classic",
	"packagePrice": 2450,
	"name": "Asha Njeri",
	"email": "asha@example.com",
	"phone": "+254700111222"
}`

func TestSubmitInquiryEndpoint(t *testing.T) {
	repo := &memRepo{}
	h := newTestServer(repo)

	rec := doJSON(t, h, http.MethodPost, "/inquiries", validInquiryBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Success        bool   `json:"success"`
		VerificationID string `json:"verificationId"`
		Message        string `json:"message"`
	}
	decodeBody(t, rec, &resp)
	if !resp.Success {
		t.Fatal("expected success=true")
	}
	if !regexp.MustCompile(`^RVD-\d{8}-\d{4}$`).MatchString(resp.VerificationID) {
		t.Fatalf("bad verification id %q", resp.VerificationID)
	}
	if resp.Message != "" {
		t.Fatalf("unexpected message on first submit: %q", resp.Message)
	}

	// Resubmitting inside the window echoes the existing verification id.
	rec = doJSON(t, h, http.MethodPost, "/inquiries", validInquiryBody)
	var dup struct {
		VerificationID string `json:"verificationId"`
		Message        string `json:"message"`
	}
	decodeBody(t, rec, &dup)
	if dup.VerificationID != resp.VerificationID || dup.Message == "" {
		t.Fatalf("expected duplicate echo of %s, got %+v", resp.VerificationID, dup)
	}
	if len(repo.inquiries) != 1 {
		t.Fatalf("duplicate submit must not insert, have %d rows", len(repo.inquiries))
	}
}

func TestSubmitInquiryEndpoint_BadInput(t *testing.T) {
	h := newTestServer(&memRepo{})

	rec := doJSON(t, h, http.MethodPost, "/inquiries", `{"packageId":"p","packageName":"P","packagePrice":10,"name":"Asha Njeri","email":"nope","phone":"+254700111222"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content type %q", ct)
	}

	rec = doJSON(t, h, http.MethodPost, "/inquiries", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed body: expected 400, got %d", rec.Code)
	}
}

func TestGetInquiryEndpoint(t *testing.T) {
	repo := &memRepo{}
	h := newTestServer(repo)
	doJSON(t, h, http.MethodPost, "/inquiries", validInquiryBody)

	rec := doJSON(t, h, http.MethodGet, "/inquiries/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var resp struct {
		Inquiry domain.Inquiry `json:"inquiry"`
	}
	decodeBody(t, rec, &resp)
	if resp.Inquiry.CustomerEmail != "asha@example.com" {
		t.Fatalf("unexpected inquiry: %+v", resp.Inquiry)
	}

	if rec := doJSON(t, h, http.MethodGet, "/inquiries/999", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("missing id: expected 404, got %d", rec.Code)
	}
	if rec := doJSON(t, h, http.MethodGet, "/inquiries/abc", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("non-numeric id: expected 400, got %d", rec.Code)
	}
}

func TestUpdateInquiryEndpoint(t *testing.T) {
	repo := &memRepo{}
	h := newTestServer(repo)
	doJSON(t, h, http.MethodPost, "/inquiries", validInquiryBody)

	rec := doJSON(t, h, http.MethodPatch, "/inquiries/1", `{"inquiry_status":"quoted","quoted_amount":3200}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if got := repo.inquiries[0]; got.Status != domain.StatusQuoted || *got.QuotedAmount != 3200 {
		t.Fatalf("update not applied: %+v", got)
	}

	if rec := doJSON(t, h, http.MethodPatch, "/inquiries/1", `{"inquiry_status":"archived"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown status: expected 400, got %d", rec.Code)
	}
	if rec := doJSON(t, h, http.MethodPatch, "/inquiries/999", `{"inquiry_status":"contacted"}`); rec.Code != http.StatusNotFound {
		t.Fatalf("missing id: expected 404, got %d", rec.Code)
	}
}

func TestDashboardStatsEndpoint(t *testing.T) {
	repo := &memRepo{}
	h := newTestServer(repo)
	doJSON(t, h, http.MethodPost, "/inquiries", validInquiryBody)

	rec := doJSON(t, h, http.MethodGet, "/admin/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var resp map[string]json.RawMessage
	decodeBody(t, rec, &resp)
	for _, key := range []string{"totalInquiries", "pendingInquiries", "confirmedBookings", "totalRevenue", "monthlyGrowth", "recentInquiries"} {
		if _, ok := resp[key]; !ok {
			t.Fatalf("stats payload missing %q: %s", key, rec.Body.String())
		}
	}
}

func TestReviewEndpoints(t *testing.T) {
	repo := &memRepo{}
	h := newTestServer(repo)

	rec := doJSON(t, h, http.MethodPost, "/reviews", `{
		"customer_name": "Daniel Mwangi",
		"customer_email": "daniel@example.com",
		"title": "Great trip",
		"content": "Loved every day of it.",
		"rating": 5
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Message string        `json:"message"`
		Review  domain.Review `json:"review"`
	}
	decodeBody(t, rec, &created)
	if created.Review.AdminApproved {
		t.Fatal("new review must be unapproved")
	}
	if created.Message == "" {
		t.Fatal("expected a confirmation message")
	}

	// Unapproved review is invisible on the public listing.
	rec = doJSON(t, h, http.MethodGet, "/reviews", "")
	var listed struct {
		Reviews []domain.Review `json:"reviews"`
	}
	decodeBody(t, rec, &listed)
	if len(listed.Reviews) != 0 {
		t.Fatalf("unapproved review leaked: %+v", listed.Reviews)
	}

	repo.reviews[0].AdminApproved = true
	rec = doJSON(t, h, http.MethodGet, "/reviews", "")
	decodeBody(t, rec, &listed)
	if len(listed.Reviews) != 1 {
		t.Fatalf("expected 1 approved review, got %d", len(listed.Reviews))
	}

	if rec := doJSON(t, h, http.MethodPost, "/reviews", `{"customer_name":"D","customer_email":"d@example.com","title":"t","content":"c","rating":6}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("rating 6: expected 400, got %d", rec.Code)
	}
	if rec := doJSON(t, h, http.MethodGet, "/reviews?limit=0", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("limit 0: expected 400, got %d", rec.Code)
	}
}

func TestNotConfiguredStore(t *testing.T) {
	srv := server.New()
	srv.MountHandlers(&server.Handlers{})
	h := srv.Mux()

	paths := []struct{ method, path, body string }{
		{http.MethodPost, "/inquiries", validInquiryBody},
		{http.MethodGet, "/inquiries", ""},
		{http.MethodGet, "/inquiries/1", ""},
		{http.MethodPatch, "/inquiries/1", `{"inquiry_status":"contacted"}`},
		{http.MethodGet, "/admin/stats", ""},
		{http.MethodPost, "/reviews", `{}`},
		{http.MethodGet, "/reviews", ""},
	}
	for _, p := range paths {
		rec := doJSON(t, h, p.method, p.path, p.body)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("%s %s: expected 500, got %d", p.method, p.path, rec.Code)
		}
		var prob struct {
			Detail string `json:"detail"`
		}
		decodeBody(t, rec, &prob)
		if !strings.Contains(prob.Detail, "not configured") {
			t.Fatalf("%s %s: detail %q", p.method, p.path, prob.Detail)
		}
	}

	// Health stays up regardless of store configuration.
	if rec := doJSON(t, h, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Fatalf("healthz: %d", rec.Code)
	}
}
