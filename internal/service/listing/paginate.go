package listing

import (
	"strconv"
	"strings"

	"github.com/navinbhat12/api-about-nothing/internal/constants"
)

// Values is the read side of url.Values.
type Values interface {
	Get(key string) string
}

// Info is the navigation metadata of a page envelope.
type Info struct {
	Count    int     `json:"count"`
	Pages    int     `json:"pages"`
	NextPage *string `json:"next_page"`
	PrevPage *string `json:"prev_page"`
}

// Page is the {info, results} envelope returned by collection endpoints.
type Page[T any] struct {
	Info    Info `json:"info"`
	Results []T  `json:"results"`
}

// ParsePage returns the 1-based page number in raw, or the default page when
// raw is absent, non-numeric or not positive.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return constants.Pagination.DefaultPage
	}
	return page
}

// PageCount is ceil(count/size), zero for an empty collection.
func PageCount(count, size int) int {
	if count <= 0 || size <= 0 {
		return 0
	}
	return (count + size - 1) / size
}

// Slice returns the items of the given 1-based page. Pages past the end yield
// an empty, non-nil slice.
func Slice[T any](items []T, page, size int) []T {
	if page < 1 || page > PageCount(len(items), size) {
		return []T{}
	}
	start := (page - 1) * size
	end := min(start+size, len(items))
	return items[start:end]
}

// List runs the whole contract for one request: filter, paginate and build
// navigation links carrying the active filters.
func List[T any](r Resource[T], items []T, values Values, links LinkBuilder) Page[T] {
	size := constants.Pagination.PageSize
	filtered := r.Apply(items, values)
	page := ParsePage(values.Get("page"))

	count := len(filtered)
	pages := PageCount(count, size)

	info := Info{Count: count, Pages: pages}
	if page < pages {
		next := links.Page(page+1, r.Params(), values)
		info.NextPage = &next
	}
	if page > 1 {
		// past the end, step back to the last real page
		prev := links.Page(min(page-1, max(pages, 1)), r.Params(), values)
		info.PrevPage = &prev
	}

	return Page[T]{
		Info:    info,
		Results: Slice(filtered, page, size),
	}
}
