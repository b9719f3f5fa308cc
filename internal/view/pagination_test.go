package view

import "testing"

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		pageSize   int
		total      int64
		wantPage   int
		wantPages  int
		wantPrev   bool
		wantNext   bool
		wantOffset int
	}{
		{"empty set still has one page", 1, 9, 0, 1, 1, false, false, 0},
		{"first of two pages", 1, 9, 10, 1, 2, false, true, 0},
		{"last of two pages", 2, 9, 10, 2, 2, true, false, 9},
		{"page zero clamps to first", 0, 9, 10, 1, 2, false, true, 0},
		{"negative page clamps to first", -3, 9, 10, 1, 2, false, true, 0},
		{"page beyond last clamps to last", 99, 9, 10, 2, 2, true, false, 9},
		{"exact multiple of page size", 3, 6, 18, 3, 3, true, false, 12},
		{"middle page has both neighbours", 2, 6, 18, 2, 3, true, true, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.pageSize, tt.total)
			if p.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", p.Page, tt.wantPage)
			}
			if p.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.wantPages)
			}
			if p.HasPrev != tt.wantPrev {
				t.Errorf("HasPrev = %v, want %v", p.HasPrev, tt.wantPrev)
			}
			if p.HasNext != tt.wantNext {
				t.Errorf("HasNext = %v, want %v", p.HasNext, tt.wantNext)
			}
			if p.Offset() != tt.wantOffset {
				t.Errorf("Offset() = %d, want %d", p.Offset(), tt.wantOffset)
			}
		})
	}
}
