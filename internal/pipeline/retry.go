package pipeline

import (
	"math/rand"
	"time"

	"github.com/dgallion1/serialform/internal/docerr"
)

// IsRetryable checks if a page generation error is worth retrying. Only
// document output failures are; model and message errors repeat identically.
func IsRetryable(err error) bool {
	return docerr.IsRetryable(err)
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int63n(int64(base) / 2))
	return base + jitter
}
