package record_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/grcledger/grcledger/pkg/record"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedNotes(t *testing.T, svc *record.Service[note], count int) []note {
	t.Helper()
	items := make([]note, count)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := range items {
		items[i] = note{
			No:      float64(i + 1),
			Process: fmt.Sprintf("Process %02d", i+1),
			Date:    base.Add(time.Duration(i) * time.Hour),
			Remarks: "seed",
		}
	}
	out, err := svc.CreateMany(context.Background(), items)
	if err != nil {
		t.Fatalf("seeding: %v", err)
	}
	return out
}

func TestServiceListPaging(t *testing.T) {
	svc, _ := newTestService(t)
	seedNotes(t, svc, 25)
	ctx := context.Background()

	page1, err := svc.List(ctx, record.ListParams{Page: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page1.TotalItems != 25 || page1.TotalPages != 3 || page1.PageSize != 10 {
		t.Errorf("envelope = %+v", page1)
	}
	if len(page1.Items) != 10 {
		t.Errorf("page 1 has %d items, want 10", len(page1.Items))
	}

	page3, err := svc.List(ctx, record.ListParams{Page: 3})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page3.Items) != 5 {
		t.Errorf("page 3 has %d items, want 5", len(page3.Items))
	}

	// Pages must not overlap and must cover everything.
	seen := map[float64]bool{}
	for p := 1; p <= 3; p++ {
		result, err := svc.List(ctx, record.ListParams{Page: p})
		if err != nil {
			t.Fatal(err)
		}
		for _, item := range result.Items {
			if seen[item.No] {
				t.Errorf("key %v appeared on two pages", item.No)
			}
			seen[item.No] = true
		}
	}
	if len(seen) != 25 {
		t.Errorf("pages covered %d of 25 records", len(seen))
	}
}

func TestServiceListBeyondLastPage(t *testing.T) {
	svc, _ := newTestService(t)
	seedNotes(t, svc, 5)

	result, err := svc.List(context.Background(), record.ListParams{Page: 40})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(result.Items) != 0 {
		t.Errorf("got %d items beyond the last page, want empty", len(result.Items))
	}
	if result.Items == nil {
		t.Error("empty page must be an empty array, not null")
	}
	if result.TotalItems != 5 {
		t.Errorf("TotalItems = %d, want 5", result.TotalItems)
	}
}

func TestServiceListDefaultOrder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	input := []note{
		{No: 1, Date: day.AddDate(0, 0, 1)},
		{No: 2, Date: day.AddDate(0, 0, 3)},
		{No: 3, Date: day.AddDate(0, 0, 2)},
		{No: 4, Date: day.AddDate(0, 0, 2)}, // same date as No 3
	}
	if _, err := svc.CreateMany(ctx, input); err != nil {
		t.Fatal(err)
	}

	result, err := svc.List(ctx, record.ListParams{})
	if err != nil {
		t.Fatal(err)
	}
	var order []float64
	for _, item := range result.Items {
		order = append(order, item.No)
	}
	// Newest first; equal dates fall back to key descending.
	want := []float64{2, 4, 3, 1}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestServiceListSortByNoAscending(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	input := []note{
		{No: 3, Date: day.AddDate(0, 0, 9)},
		{No: 1, Date: day},
		{No: 2, Date: day.AddDate(0, 0, 5)},
	}
	if _, err := svc.CreateMany(ctx, input); err != nil {
		t.Fatal(err)
	}

	result, err := svc.List(ctx, record.ListParams{SortByNoAsc: true})
	if err != nil {
		t.Fatal(err)
	}
	for i, item := range result.Items {
		if item.No != float64(i+1) {
			t.Fatalf("position %d holds key %v, want ascending keys", i, item.No)
		}
	}
}

func TestServiceListSearch(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	input := []note{
		{No: 5.1, Process: "Treasury Operations"},
		{No: 5.12, Process: "Lending"},
		{No: 15.1, Process: "treasury reconciliation"},
		{No: 7, Process: "Payroll"},
	}
	if _, err := svc.CreateMany(ctx, input); err != nil {
		t.Fatal(err)
	}

	t.Run("case-insensitive substring", func(t *testing.T) {
		result, err := svc.List(ctx, record.ListParams{Search: "TREASURY"})
		if err != nil {
			t.Fatal(err)
		}
		if result.TotalItems != 2 {
			t.Errorf("TotalItems = %d, want 2", result.TotalItems)
		}
	})

	t.Run("key prefix", func(t *testing.T) {
		result, err := svc.List(ctx, record.ListParams{Search: "5.1"})
		if err != nil {
			t.Fatal(err)
		}
		// 5.1 and 5.12 match the prefix; 15.1 does not.
		if result.TotalItems != 2 {
			t.Errorf("TotalItems = %d, want 2", result.TotalItems)
		}
		for _, item := range result.Items {
			if item.No == 15.1 {
				t.Error("15.1 matched prefix 5.1")
			}
		}
	})

	t.Run("count matches fetch under filter", func(t *testing.T) {
		result, err := svc.List(ctx, record.ListParams{Search: "Payroll"})
		if err != nil {
			t.Fatal(err)
		}
		if result.TotalItems != int64(len(result.Items)) {
			t.Errorf("TotalItems = %d but fetched %d", result.TotalItems, len(result.Items))
		}
	})
}

func TestServiceCreateStampsDate(t *testing.T) {
	svc, _ := newTestService(t)

	n := note{No: 1, Date: time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)}
	if err := svc.Create(context.Background(), &n); err != nil {
		t.Fatal(err)
	}
	if n.Date.Year() == 1999 {
		t.Error("caller-supplied creation date survived; Create must stamp it")
	}
	if n.ID.IsZero() {
		t.Error("Create did not assign an identity")
	}
}

func TestServiceCreateManyStampsOnlyMissingDates(t *testing.T) {
	svc, _ := newTestService(t)

	kept := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	items := []note{{No: 1, Date: kept}, {No: 2}}
	out, err := svc.CreateMany(context.Background(), items)
	if err != nil {
		t.Fatal(err)
	}
	if !out[0].Date.Equal(kept) {
		t.Errorf("explicit date was overwritten: %v", out[0].Date)
	}
	if out[1].Date.IsZero() {
		t.Error("missing date was not stamped")
	}
}

func TestServiceUpdate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	n := note{No: 1, Process: "A"}
	if err := svc.Create(ctx, &n); err != nil {
		t.Fatal(err)
	}

	t.Run("unknown id", func(t *testing.T) {
		err := svc.Update(ctx, primitive.NewObjectID(), &note{No: 1})
		if !errors.Is(err, record.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("replaces document", func(t *testing.T) {
		updated := note{No: 1, Process: "B", Date: n.Date}
		if err := svc.Update(ctx, n.ID, &updated); err != nil {
			t.Fatalf("Update: %v", err)
		}
		got, err := svc.Get(ctx, n.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.Process != "B" {
			t.Errorf("Process = %q after update", got.Process)
		}
	})

	t.Run("identical replacement reports failure", func(t *testing.T) {
		got, err := svc.Get(ctx, n.ID)
		if err != nil {
			t.Fatal(err)
		}
		err = svc.Update(ctx, n.ID, got)
		if !errors.Is(err, record.ErrUpdateFailed) {
			t.Errorf("err = %v, want ErrUpdateFailed", err)
		}
	})
}

func TestServiceUpdateManySkipsMissingIdentities(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	existing := seedNotes(t, svc, 2)
	existing[0].Process = "changed"
	batch := []note{existing[0], {No: 99, Process: "no identity"}}

	updated, err := svc.UpdateMany(ctx, batch)
	if err != nil {
		t.Fatal(err)
	}
	if updated != 1 {
		t.Errorf("updated = %d, want 1", updated)
	}
}

func TestServiceDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	n := note{No: 1}
	if err := svc.Create(ctx, &n); err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(ctx, n.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, n.ID); !errors.Is(err, record.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestServiceUpdateByNo(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	n := note{No: 5.1, Process: "A", Remarks: "r"}
	if err := svc.Create(ctx, &n); err != nil {
		t.Fatal(err)
	}

	outcome, err := svc.UpdateByNo(ctx, 5.1, &note{Process: "B", Remarks: "r"})
	if err != nil {
		t.Fatal(err)
	}
	if outcome != record.OutcomeModified {
		t.Errorf("outcome = %v, want OutcomeModified", outcome)
	}

	outcome, err = svc.UpdateByNo(ctx, 404, &note{Process: "B"})
	if err != nil {
		t.Fatal(err)
	}
	if outcome != record.OutcomeNotFound {
		t.Errorf("outcome = %v, want OutcomeNotFound", outcome)
	}
}

func TestServiceBulkUpdateByNo(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	input := []note{{No: 1, Process: "A"}, {No: 2, Process: "B"}}
	if _, err := svc.CreateMany(ctx, input); err != nil {
		t.Fatal(err)
	}

	batch := []note{
		{No: 1, Process: "A2"},
		{No: 404, Process: "missing"}, // unknown key contributes zero
		{No: 2, Process: "B"},         // identical contributes zero
	}
	modified, err := svc.BulkUpdateByNo(ctx, batch)
	if err != nil {
		t.Fatal(err)
	}
	if modified != 1 {
		t.Errorf("modified = %d, want 1", modified)
	}
}
