package record_test

import (
	"testing"

	"github.com/grcledger/grcledger/pkg/record"
)

func TestPageSizingResolve(t *testing.T) {
	tests := []struct {
		name      string
		sizing    record.PageSizing
		requested int
		want      int
	}{
		{"zero config falls back to default", record.PageSizing{}, 0, record.DefaultPageSize},
		{"zero config honors caller", record.PageSizing{}, 25, 25},
		{"negative request falls back", record.PageSizing{}, -3, record.DefaultPageSize},
		{"configured default", record.PageSizing{Default: 20}, 0, 20},
		{"configured default honors caller", record.PageSizing{Default: 20}, 5, 5},
		{"fixed ignores caller", record.PageSizing{Fixed: 10}, 500, 10},
		{"fixed ignores zero", record.PageSizing{Fixed: 10}, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sizing.Resolve(tt.requested); got != tt.want {
				t.Errorf("Resolve(%d) = %d, want %d", tt.requested, got, tt.want)
			}
		})
	}
}

func TestNormalizePage(t *testing.T) {
	for _, in := range []int{-10, -1, 0} {
		if got := record.NormalizePage(in); got != 1 {
			t.Errorf("NormalizePage(%d) = %d, want 1", in, got)
		}
	}
	if got := record.NormalizePage(7); got != 7 {
		t.Errorf("NormalizePage(7) = %d, want 7", got)
	}
}

func TestAssemblePage(t *testing.T) {
	t.Run("rounds pages up", func(t *testing.T) {
		result := record.AssemblePage(1, 10, 25, []string{"a"})
		if result.TotalPages != 3 {
			t.Errorf("TotalPages = %d, want 3", result.TotalPages)
		}
		if result.TotalItems != 25 {
			t.Errorf("TotalItems = %d, want 25", result.TotalItems)
		}
	})

	t.Run("empty result has zero pages", func(t *testing.T) {
		result := record.AssemblePage[string](3, 10, 0, nil)
		if result.TotalPages != 0 {
			t.Errorf("TotalPages = %d, want 0", result.TotalPages)
		}
		if result.Items == nil {
			t.Error("Items must serialize as an empty array, not null")
		}
		if len(result.Items) != 0 {
			t.Errorf("Items has %d elements, want 0", len(result.Items))
		}
	})

	t.Run("exact multiple", func(t *testing.T) {
		result := record.AssemblePage[string](1, 10, 30, nil)
		if result.TotalPages != 3 {
			t.Errorf("TotalPages = %d, want 3", result.TotalPages)
		}
	})

	t.Run("page echoes clamped request", func(t *testing.T) {
		result := record.AssemblePage[string](-4, 10, 5, nil)
		if result.Page != 1 {
			t.Errorf("Page = %d, want 1", result.Page)
		}
	})
}
