package dataset

import (
	"testing"
)

func testTable() *Dataset {
	return FromRows(
		[]string{"review_id", "rating"},
		[]Row{
			{"review_id": "a", "rating": "5"},
			{"review_id": "b", "rating": nil},
			{"review_id": "c", "rating": "3"},
		},
	)
}

func TestDataset_HasColumn(t *testing.T) {
	d := testTable()

	if !d.HasColumn("rating") {
		t.Error("HasColumn(rating) = false, want true")
	}

	if d.HasColumn("bank_code") {
		t.Error("HasColumn(bank_code) = true, want false")
	}
}

func TestDataset_NullCount(t *testing.T) {
	d := testTable()

	if got := d.NullCount("rating"); got != 1 {
		t.Errorf("NullCount(rating) = %d, want 1", got)
	}

	if got := d.NullCount("review_id"); got != 0 {
		t.Errorf("NullCount(review_id) = %d, want 0", got)
	}
}

func TestDataset_Filter(t *testing.T) {
	d := testTable()

	removed := d.Filter(func(r Row) bool { return !IsNull(r["rating"]) })
	if removed != 1 {
		t.Errorf("Filter removed = %d, want 1", removed)
	}

	if d.Len() != 2 {
		t.Errorf("Len = %d, want 2", d.Len())
	}

	// Order preserved
	if d.Rows()[0]["review_id"] != "a" || d.Rows()[1]["review_id"] != "c" {
		t.Errorf("Filter did not preserve order: %v", d.Rows())
	}
}

func TestDataset_Derive(t *testing.T) {
	d := testTable()

	d.Derive("bank_code", func(r Row) any { return "CBE" })

	if !d.HasColumn("bank_code") {
		t.Fatal("Derive did not create column")
	}

	for _, row := range d.Rows() {
		if row["bank_code"] != "CBE" {
			t.Errorf("Derived cell = %v, want CBE", row["bank_code"])
		}
	}

	// Deriving an existing column overwrites its cells
	d.Derive("rating", func(r Row) any { return 1 })

	cols := d.Columns()
	if len(cols) != 3 {
		t.Errorf("Columns = %v, want 3 entries", cols)
	}

	if d.Rows()[1]["rating"] != 1 {
		t.Errorf("Derive overwrite = %v, want 1", d.Rows()[1]["rating"])
	}
}

func TestDataset_EnsureColumn(t *testing.T) {
	d := testTable()

	d.EnsureColumn("source", nil)

	if !d.HasColumn("source") {
		t.Fatal("EnsureColumn did not create column")
	}

	// Existing columns are left untouched
	d.EnsureColumn("rating", "x")

	if d.Rows()[0]["rating"] != "5" {
		t.Errorf("EnsureColumn overwrote existing cell: %v", d.Rows()[0]["rating"])
	}
}

func TestDataset_FillNulls(t *testing.T) {
	d := testTable()

	d.FillNulls("rating", 0)

	if d.Rows()[1]["rating"] != 0 {
		t.Errorf("FillNulls cell = %v, want 0", d.Rows()[1]["rating"])
	}

	if d.Rows()[0]["rating"] != "5" {
		t.Errorf("FillNulls overwrote non-null cell: %v", d.Rows()[0]["rating"])
	}

	// Absent columns are created and fully filled
	d.FillNulls("user_name", "Anonymous")

	if !d.HasColumn("user_name") {
		t.Fatal("FillNulls did not create absent column")
	}

	if d.Rows()[2]["user_name"] != "Anonymous" {
		t.Errorf("FillNulls created cell = %v, want Anonymous", d.Rows()[2]["user_name"])
	}
}

func TestDataset_Select(t *testing.T) {
	d := testTable()

	d.Select([]string{"rating", "review_id"})

	cols := d.Columns()
	if len(cols) != 2 || cols[0] != "rating" || cols[1] != "review_id" {
		t.Errorf("Select columns = %v", cols)
	}
}

func TestDataset_SortStable(t *testing.T) {
	d := FromRows(
		[]string{"bank_code", "review_id"},
		[]Row{
			{"bank_code": "Dashen", "review_id": "1"},
			{"bank_code": "CBE", "review_id": "2"},
			{"bank_code": "CBE", "review_id": "3"},
			{"bank_code": "BOA", "review_id": "4"},
		},
	)

	d.SortStable(func(a, b Row) bool {
		return a["bank_code"].(string) < b["bank_code"].(string)
	})

	want := []string{"4", "2", "3", "1"}
	for i, row := range d.Rows() {
		if row["review_id"] != want[i] {
			t.Errorf("row %d = %v, want %s", i, row["review_id"], want[i])
		}
	}
}
