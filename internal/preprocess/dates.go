package preprocess

import (
	"fmt"
	"time"

	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/dataset"
	"github.com/Avicci-b/Analytics-for-fintech-apps/pkg/coerce"
)

// normalizeDates parses review dates, drops rows whose date cannot be
// parsed, truncates survivors to calendar-date granularity and derives
// review_year and review_month. Without a review_date column the stage is
// a no-op.
func (p *Pipeline) normalizeDates() {
	p.log.Info("[3/6] Normalizing dates...")

	if !p.ds.HasColumn(ColReviewDate) {
		p.log.Info("No review_date column found; skipping normalization")

		return
	}

	p.ds.Apply(ColReviewDate, func(v any) any {
		t, ok := coerce.ToDate(v)
		if !ok {
			return nil
		}

		return truncateToDay(t)
	})

	// Dates are never guessed or defaulted; unparsable means removed.
	removed := p.ds.Filter(func(row dataset.Row) bool {
		return !dataset.IsNull(row[ColReviewDate])
	})

	p.stats.UnparsableDatesRemoved = removed

	if removed > 0 {
		p.log.Info(fmt.Sprintf("Removed %d rows with unparsable dates", removed))
	}

	p.ds.Derive(ColReviewYear, func(row dataset.Row) any {
		return row[ColReviewDate].(time.Time).Year()
	})

	p.ds.Derive(ColReviewMonth, func(row dataset.Row) any {
		return int(row[ColReviewDate].(time.Time).Month())
	})

	if minDate, maxDate, ok := p.dateRange(); ok {
		p.log.Info(fmt.Sprintf("Date range: %s to %s",
			minDate.Format(dataset.DateLayout), maxDate.Format(dataset.DateLayout)))
	}
}

func (p *Pipeline) dateRange() (minDate, maxDate time.Time, ok bool) {
	for _, row := range p.ds.Rows() {
		t, isTime := row[ColReviewDate].(time.Time)
		if !isTime {
			continue
		}

		if !ok {
			minDate, maxDate = t, t
			ok = true

			continue
		}

		if t.Before(minDate) {
			minDate = t
		}

		if t.After(maxDate) {
			maxDate = t
		}
	}

	return minDate, maxDate, ok
}

// truncateToDay discards the time-of-day component.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
