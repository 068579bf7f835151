package preprocess

import (
	"fmt"

	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/dataset"
)

// auditMissing counts null cells per column before any repair happens.
// Diagnostic only; no rows are touched here.
func (p *Pipeline) auditMissing() {
	p.log.Info("[1/6] Checking for missing data...")

	p.stats.MissingBefore = make(map[string]int)

	total := p.ds.Len()

	for _, col := range p.ds.Columns() {
		missing := p.ds.NullCount(col)
		p.stats.MissingBefore[col] = missing

		if missing > 0 && total > 0 {
			pct := float64(missing) / float64(total) * 100
			p.log.Info(fmt.Sprintf("  %s: %d (%.2f%%)", col, missing, pct))
		}
	}

	for _, col := range criticalColumns {
		if p.ds.HasColumn(col) && p.stats.MissingBefore[col] > 0 {
			p.log.Warn(fmt.Sprintf("Missing values in critical column %s: %d", col, p.stats.MissingBefore[col]))
		}
	}
}

// repairMissing drops rows with nulls in whichever critical columns exist
// and fills the documented defaults into the optional columns. When only a
// bank_name column survived collection, bank_code is derived first by
// inverse lookup against the canonical name table so the critical-column
// filter can see it.
func (p *Pipeline) repairMissing() {
	p.log.Info("[2/6] Handling missing values...")

	if !p.ds.HasColumn(ColBankCode) && p.ds.HasColumn(ColBankName) {
		p.ds.Derive(ColBankCode, func(row dataset.Row) any {
			name, ok := row[ColBankName].(string)
			if !ok {
				return nil
			}

			code, ok := p.cfg.CodeForName(name)
			if !ok {
				return nil
			}

			return code
		})
	}

	var present []string

	for _, col := range criticalColumns {
		if p.ds.HasColumn(col) {
			present = append(present, col)
		}
	}

	// If none of the critical columns exist, nothing is dropped here;
	// later stages each guard their own column.
	if len(present) > 0 {
		removed := p.ds.Filter(func(row dataset.Row) bool {
			for _, col := range present {
				if dataset.IsNull(row[col]) {
					return false
				}
			}

			return true
		})

		p.stats.RowsRemovedMissing = removed

		if removed > 0 {
			p.log.Info(fmt.Sprintf("Removed %d rows with missing critical values", removed))
		}
	}

	// Optional columns are fill-ins, never row-dropping conditions. They
	// are created with their defaults when the input lacks them so the
	// output schema always carries them.
	p.ds.FillNulls(ColUserName, "Anonymous")
	p.ds.FillNulls(ColThumbsUp, 0)
	p.ds.FillNulls(ColReplyContent, "")
}
