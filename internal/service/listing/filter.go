// Package listing implements the filter, paginate and link-navigation
// contract shared by every collection endpoint.
package listing

import (
	"strings"

	"github.com/navinbhat12/api-about-nothing/internal/domain"
	"github.com/navinbhat12/api-about-nothing/internal/util"
)

// Filter narrows a collection by one query parameter.
type Filter[T any] struct {
	Param string
	Match func(item T, value string) bool
}

// Resource is the ordered filter list of one collection. The order is also
// the order in which filter values are serialized into navigation links.
type Resource[T any] struct {
	Filters []Filter[T]
}

// Params returns the filter parameter names in serialization order.
func (r Resource[T]) Params() []string {
	params := make([]string, 0, len(r.Filters))
	for _, f := range r.Filters {
		params = append(params, f.Param)
	}
	return params
}

// Apply keeps the items that satisfy every filter with a non-empty value.
// Original order is preserved; with no active filter the input is returned as is.
func (r Resource[T]) Apply(items []T, values Values) []T {
	active := make([]Filter[T], 0, len(r.Filters))
	for _, f := range r.Filters {
		if values.Get(f.Param) != "" {
			active = append(active, f)
		}
	}
	if len(active) == 0 {
		return items
	}

	result := make([]T, 0, len(items))
	for _, item := range items {
		if matchesAll(item, active, values) {
			result = append(result, item)
		}
	}
	return result
}

func matchesAll[T any](item T, filters []Filter[T], values Values) bool {
	for _, f := range filters {
		if !f.Match(item, values.Get(f.Param)) {
			return false
		}
	}
	return true
}

// Contains is the case-insensitive substring match used by text filters.
func Contains(field, value string) bool {
	return util.ContainsFold(field, value)
}

// HasSeasonPrefix matches an episode code such as "S2E05" against a season
// filter. It is a literal, case-sensitive prefix test on "S"+season, so "1"
// also matches "S10E01".
func HasSeasonPrefix(code, season string) bool {
	return strings.HasPrefix(code, "S"+season)
}

var Characters = Resource[domain.Character]{
	Filters: []Filter[domain.Character]{
		{Param: "name", Match: func(c domain.Character, v string) bool { return Contains(c.Name, v) }},
	},
}

var Episodes = Resource[domain.Episode]{
	Filters: []Filter[domain.Episode]{
		{Param: "name", Match: func(e domain.Episode, v string) bool { return Contains(e.Name, v) }},
		{Param: "season", Match: func(e domain.Episode, v string) bool { return HasSeasonPrefix(e.Episode, v) }},
	},
}

var Quotes = Resource[domain.Quote]{
	Filters: []Filter[domain.Quote]{
		{Param: "author", Match: func(q domain.Quote, v string) bool { return Contains(q.Character.Name, v) }},
		{Param: "episode", Match: func(q domain.Quote, v string) bool { return Contains(q.Episode.Name, v) }},
		{Param: "quote", Match: func(q domain.Quote, v string) bool { return Contains(q.Quote, v) }},
	},
}
