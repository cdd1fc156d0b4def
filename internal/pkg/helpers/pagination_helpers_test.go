package helpers

import "testing"

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		size       int
		wantOffset uint64
		wantLimit  int
	}{
		{name: "first page", page: 1, size: 20, wantOffset: 0, wantLimit: 20},
		{name: "third page", page: 3, size: 10, wantOffset: 20, wantLimit: 10},
		{name: "zero page defaults to first", page: 0, size: 10, wantOffset: 0, wantLimit: 10},
		{name: "negative page defaults to first", page: -5, size: 10, wantOffset: 0, wantLimit: 10},
		{name: "zero size uses default", page: 2, size: 0, wantOffset: 10, wantLimit: DefaultPageSize},
		{name: "oversized uses default", page: 1, size: MaxPageSize + 1, wantOffset: 0, wantLimit: DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			if offset != tt.wantOffset || limit != tt.wantLimit {
				t.Errorf("CalculateOffsetLimit(%d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.size, offset, limit, tt.wantOffset, tt.wantLimit)
			}
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	tests := []struct {
		name           string
		totalItems     int64
		page           int
		size           int
		wantTotalPages int
	}{
		{name: "exact fit", totalItems: 30, page: 1, size: 10, wantTotalPages: 3},
		{name: "partial last page", totalItems: 31, page: 1, size: 10, wantTotalPages: 4},
		{name: "empty result", totalItems: 0, page: 1, size: 10, wantTotalPages: 1},
		{name: "single item", totalItems: 1, page: 1, size: 10, wantTotalPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewPaginationInfo(tt.totalItems, tt.page, tt.size)
			if info.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", info.TotalPages, tt.wantTotalPages)
			}
			if info.TotalItems != tt.totalItems {
				t.Errorf("TotalItems = %d, want %d", info.TotalItems, tt.totalItems)
			}
			if info.CurrentPage != tt.page {
				t.Errorf("CurrentPage = %d, want %d", info.CurrentPage, tt.page)
			}
		})
	}
}
