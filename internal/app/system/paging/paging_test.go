package paging_test

import (
	"net/http/httptest"
	"testing"

	"github.com/mcrowe/grouphub/internal/app/system/paging"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		target string
		want   int
	}{
		{"/members", 1},
		{"/members?page=3", 3},
		{"/members?page=0", 1},
		{"/members?page=-2", 1},
		{"/members?page=abc", 1},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", tt.target, nil)
		if got := paging.ParsePage(r); got != tt.want {
			t.Errorf("ParsePage(%q) = %d, want %d", tt.target, got, tt.want)
		}
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		target string
		want   int
	}{
		{"/members", paging.DefaultPageSize},
		{"/members?size=25", 25},
		{"/members?size=0", paging.DefaultPageSize},
		{"/members?size=99999", paging.MaxPageSize},
		{"/members?size=nope", paging.DefaultPageSize},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", tt.target, nil)
		if got := paging.ParseSize(r); got != tt.want {
			t.Errorf("ParseSize(%q) = %d, want %d", tt.target, got, tt.want)
		}
	}
}

func TestClampSize(t *testing.T) {
	if got := paging.ClampSize(paging.MaxPageSize + 1); got != paging.MaxPageSize {
		t.Errorf("ClampSize above max = %d", got)
	}
	if got := paging.ClampSize(0); got != paging.DefaultPageSize {
		t.Errorf("ClampSize(0) = %d", got)
	}
	if got := paging.ClampSize(7); got != 7 {
		t.Errorf("ClampSize(7) = %d", got)
	}
}
