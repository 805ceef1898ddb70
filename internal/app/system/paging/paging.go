// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"
)

// DefaultPageSize is the number of members shown per page when the caller
// does not specify a size.
const DefaultPageSize = 50

// MaxPageSize caps the per-request page size so a single request cannot
// pull an unbounded member list.
const MaxPageSize = 200

// ParsePage extracts the 1-based "page" query parameter.
// Returns 1 if not present or invalid.
func ParsePage(r *http.Request) int {
	return parsePositive(r, "page", 1)
}

// ParseSize extracts the "size" query parameter, clamped to
// [1, MaxPageSize]. Returns DefaultPageSize if not present or invalid.
func ParseSize(r *http.Request) int {
	n := parsePositive(r, "size", DefaultPageSize)
	return ClampSize(n)
}

// ClampSize bounds a page size to [1, MaxPageSize].
func ClampSize(n int) int {
	if n < 1 {
		return DefaultPageSize
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

func parsePositive(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
