package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/xxxsen/bizdir/internal/model"
	"github.com/xxxsen/bizdir/internal/pkg/abn"
	appErr "github.com/xxxsen/bizdir/internal/pkg/errors"
)

const (
	MaxCompareCompanies = 4

	CompareAll          = "all"
	CompareBasic        = "basic"
	CompareServices     = "services"
	CompareDifferences  = "differences"
	CompareSimilarities = "similarities"

	notSpecified = "Not specified"
)

type CompanyGetter interface {
	Get(ctx context.Context, idOrSlug string) (*model.Company, error)
}

type CompareCompany struct {
	ID          string  `json:"id"`
	Slug        string  `json:"slug"`
	DisplayName string  `json:"display_name"`
	Logo        string  `json:"logo"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
}

type FeatureRow struct {
	ID     string   `json:"id"`
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

type ServiceRow struct {
	Service string `json:"service"`
	Offered []bool `json:"offered"`
}

type Comparison struct {
	Category  string           `json:"category"`
	Companies []CompareCompany `json:"companies"`
	Features  []FeatureRow     `json:"features"`
	Services  []ServiceRow     `json:"services"`
}

type feature struct {
	id    string
	label string
	value func(c *model.Company) string
}

var basicFeatures = []feature{
	{id: "state", label: "State", value: func(c *model.Company) string { return strings.Join(c.States(), ", ") }},
	{id: "industry", label: "Industry", value: func(c *model.Company) string { return c.Industry }},
	{id: "team_size", label: "Team Size", value: func(c *model.Company) string { return c.TeamSize }},
	{id: "founded", label: "Founded", value: func(c *model.Company) string {
		if c.FoundedYear <= 0 {
			return ""
		}
		return strconv.Itoa(c.FoundedYear)
	}},
	{id: "abn", label: "ABN", value: func(c *model.Company) string { return abn.Format(c.ABN) }},
}

// CompareCategories lists the accepted comparison views.
func CompareCategories() []string {
	return []string{CompareAll, CompareBasic, CompareServices, CompareDifferences, CompareSimilarities}
}

func validCategory(category string) bool {
	for _, item := range CompareCategories() {
		if item == category {
			return true
		}
	}
	return false
}

type CompareService struct {
	companies CompanyGetter
}

func NewCompareService(companies CompanyGetter) *CompareService {
	return &CompareService{companies: companies}
}

func (s *CompareService) Compare(ctx context.Context, ids []string, category string) (*Comparison, error) {
	ids = compactStrings(ids)
	if len(ids) == 0 {
		return nil, appErr.ErrInvalid
	}
	if len(ids) > MaxCompareCompanies {
		return nil, appErr.ErrCompareLimit
	}
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		category = CompareAll
	}
	if !validCategory(category) {
		return nil, appErr.ErrInvalid
	}
	companies := make([]*model.Company, 0, len(ids))
	for _, id := range ids {
		c, err := s.companies.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return buildComparison(companies, category), nil
}

func buildComparison(companies []*model.Company, category string) *Comparison {
	out := &Comparison{
		Category:  category,
		Companies: make([]CompareCompany, 0, len(companies)),
		Features:  []FeatureRow{},
		Services:  []ServiceRow{},
	}
	for _, c := range companies {
		out.Companies = append(out.Companies, CompareCompany{
			ID:          c.ID,
			Slug:        c.Slug,
			DisplayName: c.DisplayName(),
			Logo:        c.Logo,
			Rating:      c.Rating(),
			ReviewCount: len(c.Reviews),
		})
	}
	if category != CompareServices {
		for _, f := range basicFeatures {
			row := FeatureRow{ID: f.id, Label: f.label, Values: make([]string, 0, len(companies))}
			for _, c := range companies {
				v := f.value(c)
				if v == "" {
					v = notSpecified
				}
				row.Values = append(row.Values, v)
			}
			if keepRow(category, allEqual(row.Values)) {
				out.Features = append(out.Features, row)
			}
		}
	}
	if category == CompareBasic {
		return out
	}
	for _, service := range unionServices(companies) {
		row := ServiceRow{Service: service, Offered: make([]bool, 0, len(companies))}
		count := 0
		for _, c := range companies {
			has := offers(c, service)
			if has {
				count++
			}
			row.Offered = append(row.Offered, has)
		}
		if keepRow(category, count == len(companies)) {
			out.Services = append(out.Services, row)
		}
	}
	return out
}

func keepRow(category string, same bool) bool {
	switch category {
	case CompareDifferences:
		return !same
	case CompareSimilarities:
		return same
	default:
		return true
	}
}

func allEqual(values []string) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}

// unionServices keeps first-seen order and spelling.
func unionServices(companies []*model.Company) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, c := range companies {
		for _, service := range c.Services {
			key := strings.ToLower(strings.TrimSpace(service))
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, service)
		}
	}
	return out
}

func offers(c *model.Company, service string) bool {
	for _, item := range c.Services {
		if strings.EqualFold(strings.TrimSpace(item), strings.TrimSpace(service)) {
			return true
		}
	}
	return false
}
