package preprocess

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/dataset"
	"github.com/Avicci-b/Analytics-for-fintech-apps/pkg/coerce"
)

const reportDivider = "============================================================"

// report prints the preprocessing summary for human inspection. Nothing
// here feeds back into the data.
func (p *Pipeline) report() {
	fmt.Println()
	fmt.Println(reportDivider)
	fmt.Println("PREPROCESSING REPORT")
	fmt.Println(reportDivider)
	fmt.Printf("Original records: %d\n", p.stats.OriginalCount)
	fmt.Printf("Records with missing critical data: %d\n", p.stats.RowsRemovedMissing)
	fmt.Printf("Unparsable dates removed: %d\n", p.stats.UnparsableDatesRemoved)
	fmt.Printf("Empty reviews removed: %d\n", p.stats.EmptyReviewsRemoved)
	fmt.Printf("Invalid ratings removed: %d\n", p.stats.InvalidRatingsRemoved)
	fmt.Printf("Unknown banks removed: %d\n", p.stats.UnknownBanksRemoved)
	fmt.Printf("Final records: %d\n", p.stats.FinalCount)

	if p.stats.OriginalCount > 0 {
		retention := p.stats.RetentionRate() * 100
		fmt.Printf("\nData retention rate: %.2f%%\n", retention)
		fmt.Printf("Data error rate: %.2f%%\n", 100-retention)
	}

	p.reportBankCounts()
	p.reportRatingDistribution()
	p.reportTextStats()
}

// reportBankCounts prints reviews per bank, most reviewed first, with the
// name column padded by display width so non-ASCII names stay aligned.
func (p *Pipeline) reportBankCounts() {
	if !p.ds.HasColumn(ColBankName) {
		return
	}

	counts := make(map[string]int)

	for _, row := range p.ds.Rows() {
		if name, ok := row[ColBankName].(string); ok {
			counts[name]++
		}
	}

	if len(counts) == 0 {
		return
	}

	names := make([]string, 0, len(counts))
	width := 0

	for name := range counts {
		names = append(names, name)

		if w := runewidth.StringWidth(name); w > width {
			width = w
		}
	}

	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}

		return names[i] < names[j]
	})

	fmt.Println("\nReviews per bank:")

	for _, name := range names {
		fmt.Printf("  %s  %d\n", runewidth.FillRight(name, width), counts[name])
	}
}

// reportRatingDistribution prints the rating histogram, five stars first.
func (p *Pipeline) reportRatingDistribution() {
	if !p.ds.HasColumn(ColRating) || p.ds.Len() == 0 {
		return
	}

	counts := make(map[int]int)

	for _, row := range p.ds.Rows() {
		if rating, ok := row[ColRating].(int); ok {
			counts[rating]++
		}
	}

	if len(counts) == 0 {
		return
	}

	fmt.Println("\nRating distribution:")

	for rating := 5; rating >= 1; rating-- {
		count, ok := counts[rating]
		if !ok {
			continue
		}

		pct := float64(count) / float64(p.ds.Len()) * 100
		fmt.Printf("  %s: %d (%.1f%%)\n", strings.Repeat("⭐", rating), count, pct)
	}
}

// reportTextStats prints mean and median review length.
func (p *Pipeline) reportTextStats() {
	if !p.ds.HasColumn(ColTextLength) {
		return
	}

	var lengths []int

	for _, row := range p.ds.Rows() {
		if dataset.IsNull(row[ColTextLength]) {
			continue
		}

		if res := coerce.ToInt(row[ColTextLength]); !res.Defaulted {
			lengths = append(lengths, res.Value)
		}
	}

	if len(lengths) == 0 {
		return
	}

	sum := 0
	for _, l := range lengths {
		sum += l
	}

	mean := float64(sum) / float64(len(lengths))

	sort.Ints(lengths)

	var median float64

	mid := len(lengths) / 2
	if len(lengths)%2 == 0 {
		median = float64(lengths[mid-1]+lengths[mid]) / 2
	} else {
		median = float64(lengths[mid])
	}

	fmt.Printf("\nText statistics: avg=%.0f, median=%.0f\n", mean, median)
}
