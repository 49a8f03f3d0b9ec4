package service

import (
	"context"
	"time"

	"github.com/damon-houk/ecb-exchange-rates/internal/domain/entity"
	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/logger"
)

// DefaultMaxAttempts bounds the backward search for a published date. A full
// week covers the longest run of publisher holidays.
const DefaultMaxAttempts = 7

// DataProbe reports whether the publisher has data for a calendar date.
// Implementations treat any failure as "no data".
type DataProbe interface {
	HasData(ctx context.Context, date time.Time) bool
}

// DateResolver computes the calendar date a quote request is served from
type DateResolver struct {
	probe       DataProbe
	updateHour  int
	maxAttempts int
	logger      logger.Logger
}

// NewDateResolver creates a resolver using the publisher's update hour and the default search bound
func NewDateResolver(probe DataProbe, log logger.Logger) *DateResolver {
	return &DateResolver{
		probe:       probe,
		updateHour:  PublisherUpdateHour,
		maxAttempts: DefaultMaxAttempts,
		logger:      logger.OrDefault(log),
	}
}

// Resolve never fails. When no probed date has data the date produced by the
// publication-time and weekend rules is returned unchanged, and the fetch that
// follows reports the absence.
//
// The returned time's calendar day, in its own location, is the effective date.
func (r *DateResolver) Resolve(ctx context.Context, date time.Time, updatedAfter *time.Time) time.Time {
	candidate := StartOfDay(date)

	if updatedAfter != nil {
		// only the constraint's timezone matters here, not the instant itself
		candidate = candidate.In(updatedAfter.Location())
		if candidate.Hour() < r.updateHour {
			candidate = PreviousWorkingDay(candidate)
		}
	}

	if IsWeekend(candidate) {
		candidate = PreviousWorkingDay(candidate)
	}

	original := candidate
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		if r.probe.HasData(ctx, candidate) {
			if attempt > 1 {
				r.logger.Debug("Resolved effective date after backward search", map[string]interface{}{
					"requested": date.Format(entity.DateLayout),
					"effective": candidate.Format(entity.DateLayout),
					"attempts":  attempt,
				})
			}
			return candidate
		}

		r.logger.Debug("No data published for date", map[string]interface{}{
			"date":    candidate.Format(entity.DateLayout),
			"attempt": attempt,
		})
		candidate = PreviousWorkingDay(candidate)
	}

	r.logger.Warn("No published date found within search bound", map[string]interface{}{
		"requested":    date.Format(entity.DateLayout),
		"fallback":     original.Format(entity.DateLayout),
		"max_attempts": r.maxAttempts,
	})
	return original
}
