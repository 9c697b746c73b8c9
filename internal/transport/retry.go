package transport

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// maxRetryInterval caps the exponential schedule.
const maxRetryInterval = 30 * time.Second

// retryableStatus is the set of transient status codes worth retrying.
// Every other 4xx/5xx is terminal on first occurrence.
var retryableStatus = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

func retryable(status int) bool {
	return retryableStatus[status]
}

// newBackOff builds the delay schedule for one logical call: retryDelay,
// retryDelay*2, retryDelay*4, ... capped at maxRetryInterval. No jitter, so
// the schedule is exactly base * 2^attempt. The attempt counter bounds the
// loop, so elapsed-time limiting is disabled.
func (c *Client) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryDelay
	b.RandomizationFactor = 0
	b.Multiplier = 2
	b.MaxInterval = maxRetryInterval
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// retryDelay returns how long to wait before the next attempt. A numeric
// Retry-After header is honored exactly; otherwise the exponential schedule
// applies. The schedule is advanced either way so a later fallback picks up
// where the attempt count left off.
func retryDelay(h http.Header, bo backoff.BackOff) time.Duration {
	next := bo.NextBackOff()
	if next == backoff.Stop {
		next = maxRetryInterval
	}
	if ra := h.Get("Retry-After"); ra != "" {
		if secs, err := strconv.ParseFloat(ra, 64); err == nil && secs >= 0 {
			return time.Duration(secs * float64(time.Second))
		}
	}
	return next
}
