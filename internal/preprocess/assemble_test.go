package preprocess

import (
	"reflect"
	"testing"
	"time"

	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/dataset"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAssemble_SchemaAndSort(t *testing.T) {
	ds := dataset.FromRows(
		[]string{ColReviewText, ColRating, ColReviewDate, ColBankCode, ColUserName},
		[]dataset.Row{
			{ColReviewText: "old cbe", ColRating: 4, ColReviewDate: day(2023, 1, 10), ColBankCode: "CBE", ColUserName: "a"},
			{ColReviewText: "boa", ColRating: 5, ColReviewDate: day(2024, 2, 2), ColBankCode: "BOA", ColUserName: "b"},
			{ColReviewText: "new cbe", ColRating: 3, ColReviewDate: day(2024, 6, 1), ColBankCode: "CBE", ColUserName: "c"},
		},
	)

	p := newTestPipeline(t, ds)
	p.assemble()

	// Required columns lead in fixed order; only populated optionals follow.
	wantCols := []string{
		ColReviewID, ColReviewText, ColRating, ColReviewDate,
		ColBankCode, ColBankName, ColSource, ColUserName,
	}
	if !reflect.DeepEqual(ds.Columns(), wantCols) {
		t.Fatalf("Columns = %v, want %v", ds.Columns(), wantCols)
	}

	// bank_code ascending, review_date descending within a bank
	rows := ds.Rows()
	if rows[0][ColReviewText] != "boa" ||
		rows[1][ColReviewText] != "new cbe" ||
		rows[2][ColReviewText] != "old cbe" {
		t.Errorf("unexpected order: %v, %v, %v",
			rows[0][ColReviewText], rows[1][ColReviewText], rows[2][ColReviewText])
	}

	// Absent required columns are synthesized with nulls
	if !dataset.IsNull(rows[0][ColReviewID]) {
		t.Errorf("review_id = %v, want null", rows[0][ColReviewID])
	}

	if !dataset.IsNull(rows[0][ColSource]) {
		t.Errorf("source = %v, want null", rows[0][ColSource])
	}

	// bank_name is derived from bank_code
	if rows[0][ColBankName] != "Bank of Abyssinia" {
		t.Errorf("bank_name = %v, want Bank of Abyssinia", rows[0][ColBankName])
	}
}

func TestAssemble_FiltersUnknownBanks(t *testing.T) {
	ds := dataset.FromRows(
		[]string{ColReviewText, ColBankCode},
		[]dataset.Row{
			{ColReviewText: "keep", ColBankCode: "CBE"},
			{ColReviewText: "drop", ColBankCode: "XYZ"},
			{ColReviewText: "drop too", ColBankCode: nil},
		},
	)

	p := newTestPipeline(t, ds)
	p.assemble()

	if ds.Len() != 1 {
		t.Fatalf("Len = %d, want 1", ds.Len())
	}

	if p.stats.UnknownBanksRemoved != 2 {
		t.Errorf("UnknownBanksRemoved = %d, want 2", p.stats.UnknownBanksRemoved)
	}

	if ds.Rows()[0][ColReviewText] != "keep" {
		t.Errorf("survivor = %v, want keep", ds.Rows()[0][ColReviewText])
	}
}

func TestAssemble_NoBankColumnSkipsFilter(t *testing.T) {
	ds := dataset.FromRows(
		[]string{ColReviewText},
		[]dataset.Row{
			{ColReviewText: "one"},
			{ColReviewText: "two"},
		},
	)

	p := newTestPipeline(t, ds)
	p.assemble()

	// The allow-list only applies when bank_code is structurally present;
	// synthesis still completes the schema afterwards.
	if ds.Len() != 2 {
		t.Fatalf("Len = %d, want 2", ds.Len())
	}

	if p.stats.UnknownBanksRemoved != 0 {
		t.Errorf("UnknownBanksRemoved = %d, want 0", p.stats.UnknownBanksRemoved)
	}

	if !ds.HasColumn(ColBankCode) {
		t.Error("bank_code should be synthesized")
	}

	// Input order preserved when no sort key was populated
	if ds.Rows()[0][ColReviewText] != "one" {
		t.Errorf("first row = %v, want one", ds.Rows()[0][ColReviewText])
	}
}

func TestAssemble_SingleKeySortsAscending(t *testing.T) {
	ds := dataset.FromRows(
		[]string{ColReviewText, ColReviewDate},
		[]dataset.Row{
			{ColReviewText: "newer", ColReviewDate: day(2024, 6, 1)},
			{ColReviewText: "older", ColReviewDate: day(2023, 1, 1)},
		},
	)

	p := newTestPipeline(t, ds)
	p.assemble()

	if ds.Rows()[0][ColReviewText] != "older" {
		t.Errorf("first row = %v, want older", ds.Rows()[0][ColReviewText])
	}
}
