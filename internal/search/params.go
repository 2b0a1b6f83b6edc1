package search

import (
	"sort"
	"strings"
)

const (
	SortByName      = "name"
	SortByRating    = "rating"
	SortByRelevance = "relevance"

	SortAsc  = "asc"
	SortDesc = "desc"
)

type Params struct {
	Query     string   `json:"query,omitempty" form:"query"`
	Location  string   `json:"location,omitempty" form:"location"`
	Services  []string `json:"services,omitempty" form:"services"`
	Size      []string `json:"size,omitempty" form:"size"`
	Budget    []string `json:"budget,omitempty" form:"budget"`
	Industry  string   `json:"industry,omitempty" form:"industry"`
	ABN       string   `json:"abn,omitempty" form:"abn"`
	SortBy    string   `json:"sort_by,omitempty" form:"sort_by"`
	SortOrder string   `json:"sort_order,omitempty" form:"sort_order"`
}

// Normalize folds case and ordering differences so that equivalent searches
// produce the same cache key.
func (p Params) Normalize() Params {
	out := Params{
		Query:     strings.ToLower(strings.TrimSpace(p.Query)),
		Location:  strings.ToLower(strings.TrimSpace(p.Location)),
		Services:  normalizeList(p.Services, true),
		Size:      normalizeList(p.Size, false),
		Budget:    normalizeList(p.Budget, false),
		Industry:  strings.ToLower(strings.TrimSpace(p.Industry)),
		ABN:       strings.TrimSpace(p.ABN),
		SortBy:    strings.ToLower(strings.TrimSpace(p.SortBy)),
		SortOrder: strings.ToLower(strings.TrimSpace(p.SortOrder)),
	}
	switch out.SortBy {
	case SortByName, SortByRating:
	default:
		out.SortBy = SortByRelevance
	}
	if out.SortOrder != SortAsc {
		out.SortOrder = SortDesc
	}
	return out
}

func (p Params) IsEmpty() bool {
	return p.Query == "" && p.Location == "" && len(p.Services) == 0 && len(p.Size) == 0 &&
		len(p.Budget) == 0 && p.Industry == "" && p.ABN == ""
}

func normalizeList(items []string, lower bool) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if lower {
			item = strings.ToLower(item)
		}
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}
