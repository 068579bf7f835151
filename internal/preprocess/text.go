package preprocess

import (
	"fmt"
	"unicode/utf8"

	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/dataset"
	"github.com/Avicci-b/Analytics-for-fintech-apps/pkg/coerce"
	"github.com/Avicci-b/Analytics-for-fintech-apps/pkg/utils"
)

// sanitizeText whitespace-normalizes every review text, drops rows that
// end up empty and derives text_length (in characters). Content is never
// truncated, only whitespace-collapsed. Without a review_text column the
// stage is a no-op.
func (p *Pipeline) sanitizeText() {
	p.log.Info("[4/6] Cleaning text...")

	if !p.ds.HasColumn(ColReviewText) {
		p.log.Info("No review_text column found; skipping text cleaning")

		return
	}

	helper := utils.NewStringHelper()

	p.ds.Apply(ColReviewText, func(v any) any {
		if dataset.IsNull(v) {
			return ""
		}

		return helper.NormalizeWhitespace(coerce.ToString(v).Value)
	})

	removed := p.ds.Filter(func(row dataset.Row) bool {
		return row[ColReviewText].(string) != ""
	})

	p.stats.EmptyReviewsRemoved = removed

	if removed > 0 {
		p.log.Info(fmt.Sprintf("Removed %d reviews with empty text", removed))
	}

	p.ds.Derive(ColTextLength, func(row dataset.Row) any {
		return utf8.RuneCountInString(row[ColReviewText].(string))
	})
}
