package search

import (
	"sort"
	"strings"

	"github.com/xxxsen/bizdir/internal/model"
	"github.com/xxxsen/bizdir/internal/pkg/abn"
)

type wordIndex map[string][]int

func (w wordIndex) add(text string, pos int) {
	for _, word := range strings.Fields(strings.ToLower(text)) {
		list := w[word]
		if n := len(list); n > 0 && list[n-1] == pos {
			continue
		}
		w[word] = append(list, pos)
	}
}

func (w wordIndex) sortedKeys() []string {
	keys := make([]string, 0, len(w))
	for k := range w {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Index is an immutable snapshot of the catalogue. Postings hold positions in
// companies.
type Index struct {
	companies   []model.Company
	locations   []string
	name        wordIndex
	location    wordIndex
	services    wordIndex
	industry    wordIndex
	abn         map[string]int
	nameKeys    []string
	serviceKeys []string

	// gen increases with every Replace.
	gen uint64
}

func NewIndex(companies []model.Company) *Index {
	idx := &Index{
		companies: companies,
		locations: make([]string, len(companies)),
		name:      wordIndex{},
		location:  wordIndex{},
		services:  wordIndex{},
		industry:  wordIndex{},
		abn:       make(map[string]int),
	}
	for i := range companies {
		c := &companies[i]
		idx.name.add(c.DisplayName(), i)
		if c.NameEn != "" && c.NameEn != c.Name {
			idx.name.add(c.NameEn, i)
		}
		loc := strings.ToLower(c.Location())
		idx.locations[i] = loc
		idx.location.add(loc, i)
		for _, s := range c.Services {
			idx.services.add(s, i)
		}
		if c.Industry != "" {
			idx.industry.add(c.Industry, i)
		}
		if digits := abn.Clean(c.ABN); digits != "" {
			idx.abn[digits] = i
		}
	}
	idx.nameKeys = idx.name.sortedKeys()
	idx.serviceKeys = idx.services.sortedKeys()
	return idx
}

func (idx *Index) Len() int {
	return len(idx.companies)
}
