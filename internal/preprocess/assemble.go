package preprocess

import (
	"fmt"
	"strings"
	"time"

	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/dataset"
)

// assemble computes the final projection: the fixed required columns plus
// whichever optional derived columns exist, in preferred order. It derives
// bank_name from bank_code where still missing, applies the authoritative
// bank allow-list filter, synthesizes any absent selected column with
// nulls so the output schema is always structurally complete, and sorts
// the rows.
func (p *Pipeline) assemble() {
	p.log.Info("[6/6] Preparing final output...")

	// Optional column presence is decided before synthesis: a column the
	// pipeline never populated is not promoted into the output.
	hadDate := p.ds.HasColumn(ColReviewDate)

	output := make([]string, 0, len(requiredColumns)+len(optionalColumns))
	output = append(output, requiredColumns...)

	for _, col := range optionalColumns {
		if p.ds.HasColumn(col) {
			output = append(output, col)
		}
	}

	if !p.ds.HasColumn(ColBankName) && p.ds.HasColumn(ColBankCode) {
		p.ds.Derive(ColBankName, func(row dataset.Row) any {
			code, ok := row[ColBankCode].(string)
			if !ok {
				return nil
			}

			// Unknown codes pass through as their own code, never null.
			return p.cfg.NameForCode(code)
		})
	}

	// Final authoritative bank filter. Applies only when the column is
	// structurally present; earlier stages may have let unknown banks
	// through.
	if p.ds.HasColumn(ColBankCode) {
		allowed := p.cfg.AllowedCodes()

		removed := p.ds.Filter(func(row dataset.Row) bool {
			code, ok := row[ColBankCode].(string)

			return ok && allowed[code]
		})

		p.stats.UnknownBanksRemoved = removed

		if removed > 0 {
			p.log.Info(fmt.Sprintf("Removed %d reviews from unknown banks", removed))
		}
	}

	hadCode := p.ds.HasColumn(ColBankCode)

	for _, col := range output {
		p.ds.EnsureColumn(col, nil)
	}

	p.ds.Select(output)
	p.sortRows(hadCode, hadDate)

	p.stats.FinalCount = p.ds.Len()
	p.log.Info(fmt.Sprintf("Final dataset: %d reviews", p.ds.Len()))
}

// sortRows orders the table by bank_code ascending then review_date
// descending when both keys were populated; with a single populated key
// the order is ascending. Nulls sort last either way.
func (p *Pipeline) sortRows(hasCode, hasDate bool) {
	switch {
	case hasCode && hasDate:
		p.ds.SortStable(func(a, b dataset.Row) bool {
			if c := compareStringCells(a[ColBankCode], b[ColBankCode]); c != 0 {
				return c < 0
			}

			return dateCellAfter(a[ColReviewDate], b[ColReviewDate])
		})
	case hasCode:
		p.ds.SortStable(func(a, b dataset.Row) bool {
			return compareStringCells(a[ColBankCode], b[ColBankCode]) < 0
		})
	case hasDate:
		p.ds.SortStable(func(a, b dataset.Row) bool {
			return dateCellBefore(a[ColReviewDate], b[ColReviewDate])
		})
	}
}

// compareStringCells orders string cells ascending with nulls last.
func compareStringCells(a, b any) int {
	sa, aok := a.(string)
	sb, bok := b.(string)

	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	default:
		return strings.Compare(sa, sb)
	}
}

// dateCellAfter reports whether a sorts before b in descending date order,
// nulls last.
func dateCellAfter(a, b any) bool {
	ta, aok := a.(time.Time)
	tb, bok := b.(time.Time)

	switch {
	case !aok:
		return false
	case !bok:
		return true
	default:
		return ta.After(tb)
	}
}

// dateCellBefore reports whether a sorts before b in ascending date order,
// nulls last.
func dateCellBefore(a, b any) bool {
	ta, aok := a.(time.Time)
	tb, bok := b.(time.Time)

	switch {
	case !aok:
		return false
	case !bok:
		return true
	default:
		return ta.Before(tb)
	}
}
