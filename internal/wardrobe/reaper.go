package wardrobe

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/erazemk/garderoba/internal/store"
)

// Expired reports whether a staging record created at the given time has
// outlived the TTL. This is the staleness predicate; scheduling the sweep is
// the caller's concern.
func Expired(createdAt time.Time, ttl time.Duration, now time.Time) bool {
	return now.Sub(createdAt) > ttl
}

// ReapStale discards pending staging records older than ttl, along with
// their staged images, and returns how many were removed. Abandoned records
// (the user never confirmed or discarded) would otherwise accumulate forever.
func (e *Engine) ReapStale(ctx context.Context, ttl time.Duration) (int, error) {
	cutoff := time.Now().Add(-ttl)
	stale, err := store.ListStagingBefore(ctx, e.db, cutoff)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, rec := range stale {
		deleted, err := store.DeleteStaging(ctx, e.db, rec.Token)
		if err != nil {
			return removed, err
		}
		if !deleted {
			// Confirmed or discarded between the listing and now.
			continue
		}
		if err := e.blobs.DeleteStaging(rec.Token); err != nil {
			e.log.Warn("failed to delete reaped image", zap.String("token", rec.Token), zap.Error(err))
		}
		removed++
		e.log.Info("reaped stale staging record",
			zap.String("token", rec.Token),
			zap.Time("created_at", rec.CreatedAt))
	}
	return removed, nil
}
