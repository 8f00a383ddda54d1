// Package httpx holds retry helpers shared by outbound HTTP clients.
package httpx

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type HTTPStatusCoder interface {
	HTTPStatusCode() int
}

func IsRetryableHTTPStatus(code int) bool {
	switch {
	case code == http.StatusRequestTimeout, code == http.StatusTooManyRequests:
		return true
	case code == http.StatusNotImplemented, code == http.StatusHTTPVersionNotSupported:
		return false
	}
	return code >= 500 && code <= 599
}

// IsRetryableError reports whether err is worth another attempt. A
// cancelled caller context is never retried.
func IsRetryableError(err error) bool {
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return false
	case errors.Is(err, context.DeadlineExceeded):
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var sc HTTPStatusCoder
	if errors.As(err, &sc) {
		return IsRetryableHTTPStatus(sc.HTTPStatusCode())
	}
	return false
}

// Backoff computes retry sleeps: Base doubled per attempt, replaced by the
// server's Retry-After when present, capped at Max, then spread by Jitter.
type Backoff struct {
	Base   time.Duration
	Max    time.Duration
	Jitter float64 // fraction of the delay, e.g. 0.2 for ±20%

	now  func() time.Time
	rand func() float64
}

// Delay returns the sleep before retry number attempt (0-based).
func (b Backoff) Delay(attempt int, resp *http.Response) time.Duration {
	d := b.Base
	if d <= 0 {
		d = time.Second
	}
	if attempt > 0 {
		d = time.Duration(float64(d) * math.Pow(2, float64(min(attempt, 30))))
	}
	if ra, ok := b.retryAfter(resp); ok {
		d = ra
	}
	if b.Max > 0 && d > b.Max {
		d = b.Max
	}
	return b.spread(d)
}

func (b Backoff) retryAfter(resp *http.Response) (time.Duration, bool) {
	if resp == nil {
		return 0, false
	}
	raw := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if raw == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, secs > 0
	}
	at, err := http.ParseTime(raw)
	if err != nil {
		return 0, false
	}
	now := time.Now
	if b.now != nil {
		now = b.now
	}
	d := at.Sub(now())
	return d, d > 0
}

func (b Backoff) spread(d time.Duration) time.Duration {
	if d <= 0 || b.Jitter <= 0 {
		return max(d, 0)
	}
	r := rand.Float64
	if b.rand != nil {
		r = b.rand
	}
	f := 1 + b.Jitter*(2*r()-1)
	return time.Duration(float64(d) * max(f, 0))
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
