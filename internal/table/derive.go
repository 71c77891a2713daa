package table

import (
	"sort"
	"strings"

	"github.com/rosterhq/roster/pkg/types"
)

// PageSize is the fixed number of rows per page.
const PageSize = 8

// Filter keeps the records whose name, email, and role concatenation
// contains the query, case-insensitively. An empty query matches
// everything. Original order is preserved.
func Filter(records []types.Record, query string) []types.Record {
	q := strings.ToLower(query)
	out := make([]types.Record, 0, len(records))
	for _, r := range records {
		text := strings.ToLower(r.Name + " " + r.Email + " " + r.Role)
		if strings.Contains(text, q) {
			out = append(out, r)
		}
	}
	return out
}

// Sort returns a copy of records stable-sorted by the given key,
// case-insensitively. Ties keep their incoming relative order. An empty
// key returns the input order unchanged.
func Sort(records []types.Record, key SortKey, order SortOrder) []types.Record {
	out := make([]types.Record, len(records))
	copy(out, records)
	if key == "" {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		a := strings.ToLower(sortField(out[i], key))
		b := strings.ToLower(sortField(out[j], key))
		if order == Descending {
			return a > b
		}
		return a < b
	})
	return out
}

// sortField returns the comparable value for the given key. Only the name
// column is sortable.
func sortField(r types.Record, key SortKey) string {
	switch key {
	case SortByName:
		return r.Name
	default:
		return ""
	}
}

// TotalPages returns the page count for n records: ceil(n/size), minimum 1.
// An empty collection still has one (empty) page.
func TotalPages(n, size int) int {
	if n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// Paginate slices the given page (1-based) out of records. Pages beyond the
// end are empty, not an error.
func Paginate(records []types.Record, page, size int) []types.Record {
	start := (page - 1) * size
	if start < 0 || start >= len(records) {
		return nil
	}
	end := start + size
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}

// clampPage restricts page to [1, TotalPages(n, size)].
func clampPage(page, n, size int) int {
	total := TotalPages(n, size)
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}
