package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListParamsNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   ListParams
		want ListParams
	}{
		{
			"defaults",
			ListParams{},
			ListParams{Page: 1, PageSize: 20, SortBy: "created_at", SortOrder: "desc"},
		},
		{
			"negative page",
			ListParams{Page: -3, PageSize: 10},
			ListParams{Page: 1, PageSize: 10, SortBy: "created_at", SortOrder: "desc"},
		},
		{
			"page size clamped to max",
			ListParams{Page: 2, PageSize: 500},
			ListParams{Page: 2, PageSize: 100, SortBy: "created_at", SortOrder: "desc"},
		},
		{
			"asc preserved",
			ListParams{Page: 1, PageSize: 20, SortBy: "name", SortOrder: "asc"},
			ListParams{Page: 1, PageSize: 20, SortBy: "name", SortOrder: "asc"},
		},
		{
			"unknown order becomes desc",
			ListParams{Page: 1, PageSize: 20, SortOrder: "ASCENDING"},
			ListParams{Page: 1, PageSize: 20, SortBy: "created_at", SortOrder: "desc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Normalize()
			assert.Equal(t, tt.want, tt.in)
		})
	}
}

func TestListParamsOffset(t *testing.T) {
	p := ListParams{Page: 3, PageSize: 20}
	assert.Equal(t, 40, p.Offset())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(1, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 2, TotalPages(21, 20))
	assert.Equal(t, 0, TotalPages(100, 0))
}

func TestNewPaginatedResponse(t *testing.T) {
	params := ListParams{Page: 2, PageSize: 10, SortBy: "name", SortOrder: "asc"}

	resp := NewPaginatedResponse([]Team{{ID: 1, Name: "platform"}}, 11, params)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 10, resp.PageSize)
	assert.Equal(t, int64(11), resp.Total)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Equal(t, "name", resp.SortBy)
	assert.Len(t, resp.Items, 1)
}

func TestNewPaginatedResponseNilItems(t *testing.T) {
	params := ListParams{Page: 1, PageSize: 20, SortBy: "created_at", SortOrder: "desc"}

	resp := NewPaginatedResponse[Team](nil, 0, params)
	assert.NotNil(t, resp.Items)
	assert.Empty(t, resp.Items)
}
