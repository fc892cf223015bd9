// Package rqc looks up the externally supplied reputation/quality score
// (RQC) for a user. Scores are keyed by display name; the feed is
// authoritative and this package never writes to it.
package rqc

import (
	"context"
	"time"
)

// Provider resolves the current authoritative RQC score for a display name.
// With a date range the result is the average of all scores timestamped
// within it; without one, the most recent score. A missing score resolves to
// 0, never to an error.
type Provider interface {
	Score(ctx context.Context, displayName string, from, to *time.Time) (float64, error)
}
