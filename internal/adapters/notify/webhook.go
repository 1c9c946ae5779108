// Package notify delivers best-effort inquiry notifications to an outbound
// webhook. Delivery is fire-and-forget: failures are logged and counted but
// never propagate to the request that produced them.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"roamvista/internal/adapters/observability"
	"roamvista/internal/domain"
)

const sendTimeout = 10 * time.Second

type Dispatcher struct {
	url  string
	hc   *http.Client
	rl   *rate.Limiter
	ch   chan domain.InquiryNotification
	done chan struct{}
}

// NewDispatcher returns a dispatcher posting to url. An empty url disables
// dispatch entirely; Dispatch becomes a no-op.
func NewDispatcher(url string, rps, buffer int) *Dispatcher {
	if rps <= 0 {
		rps = 5
	}
	if buffer <= 0 {
		buffer = 64
	}
	return &Dispatcher{
		url:  url,
		hc:   &http.Client{Timeout: sendTimeout},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
		ch:   make(chan domain.InquiryNotification, buffer),
		done: make(chan struct{}),
	}
}

// Start launches the consumer goroutine. Close stops it after draining the
// buffered notifications.
func (d *Dispatcher) Start() {
	go func() {
		defer close(d.done)
		for n := range d.ch {
			d.send(n)
		}
	}()
}

func (d *Dispatcher) Close() {
	close(d.ch)
	<-d.done
}

// Dispatch enqueues a notification without blocking. When the buffer is full
// the notification is dropped and logged; the caller is never held up.
func (d *Dispatcher) Dispatch(n domain.InquiryNotification) {
	if d.url == "" {
		return
	}
	select {
	case d.ch <- n:
	default:
		observability.ObserveNotification("webhook", "dropped")
		log.Warn().Str("verification_id", n.VerificationID).Msg("notification buffer full, dropping")
	}
}

func (d *Dispatcher) send(n domain.InquiryNotification) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := d.rl.Wait(ctx); err != nil {
		observability.ObserveNotification("webhook", "error")
		log.Warn().Err(err).Msg("notification rate wait failed")
		return
	}

	body, err := json.Marshal(n)
	if err != nil {
		observability.ObserveNotification("webhook", "error")
		log.Error().Err(err).Msg("marshal notification failed")
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		observability.ObserveNotification("webhook", "error")
		log.Error().Err(err).Msg("build notification request failed")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.hc.Do(req)
	if err != nil {
		observability.ObserveNotification("webhook", "error")
		log.Warn().Err(err).Str("verification_id", n.VerificationID).Msg("notification dispatch failed")
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode >= 300 {
		observability.ObserveNotification("webhook", "error")
		log.Warn().Int("status", resp.StatusCode).Str("verification_id", n.VerificationID).Msg("notification endpoint returned error")
		return
	}
	observability.ObserveNotification("webhook", "ok")
}
