package notify_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"roamvista/internal/adapters/notify"
	"roamvista/internal/domain"
)

func TestDispatcher_PostsNotification(t *testing.T) {
	var (
		mu       sync.Mutex
		received []domain.InquiryNotification
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var n domain.InquiryNotification
		if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
			t.Errorf("decode webhook body: %v", err)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type %q", ct)
		}
		mu.Lock()
		received = append(received, n)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	d := notify.NewDispatcher(ts.URL, 100, 8)
	d.Start()
	d.Dispatch(domain.InquiryNotification{
		VerificationID: "RVD-20260831-1234",
		CustomerName:   "Asha Njeri",
		PackageName:    "Masai Mara Classic",
	})
	d.Close() // drains the buffer before returning

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(received))
	}
	if received[0].VerificationID != "RVD-20260831-1234" {
		t.Fatalf("unexpected payload: %+v", received[0])
	}
}

func TestDispatcher_EndpointFailureIsSwallowed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	d := notify.NewDispatcher(ts.URL, 100, 8)
	d.Start()
	d.Dispatch(domain.InquiryNotification{VerificationID: "RVD-20260831-2222"})
	d.Close()
	// No panic and no error surfaced: delivery is fire-and-forget.
}

func TestDispatcher_DisabledWithoutURL(t *testing.T) {
	d := notify.NewDispatcher("", 5, 2)
	d.Start()
	// More dispatches than the buffer holds; all must be dropped silently.
	for i := 0; i < 10; i++ {
		d.Dispatch(domain.InquiryNotification{VerificationID: "RVD-20260831-3333"})
	}
	d.Close()
}
