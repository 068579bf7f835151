package preprocess

import (
	"fmt"

	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/dataset"
	"github.com/Avicci-b/Analytics-for-fintech-apps/pkg/coerce"
)

// validateRatings coerces every rating to an integer and removes rows
// outside the closed range [1, 5]. Values that fail coercion become 0,
// which the range filter then removes; those defaults are tracked
// separately so a failed coercion is distinguishable from a genuine zero.
// Without a rating column the stage is a no-op.
func (p *Pipeline) validateRatings() {
	p.log.Info("[5/6] Validating ratings...")

	if !p.ds.HasColumn(ColRating) {
		p.log.Info("No rating column; skipping validation")

		return
	}

	failures := 0

	p.ds.Apply(ColRating, func(v any) any {
		res := coerce.ToInt(v)
		if res.Defaulted {
			failures++
		}

		return res.Value
	})

	p.stats.RatingCoercionFailures = failures

	removed := p.ds.Filter(func(row dataset.Row) bool {
		rating := row[ColRating].(int)

		return rating >= 1 && rating <= 5
	})

	p.stats.InvalidRatingsRemoved = removed

	if removed > 0 {
		p.log.Warn(fmt.Sprintf("Found %d reviews with invalid ratings; removing", removed))
	} else {
		p.log.Info("All ratings are valid (1-5)")
	}
}
