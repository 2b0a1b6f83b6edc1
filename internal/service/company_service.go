package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/bizdir/internal/model"
	"github.com/xxxsen/bizdir/internal/pkg/abn"
	appErr "github.com/xxxsen/bizdir/internal/pkg/errors"
	"github.com/xxxsen/bizdir/internal/pkg/slug"
	"github.com/xxxsen/bizdir/internal/pkg/timeutil"
	"github.com/xxxsen/bizdir/internal/repo"
)

const (
	MinRating = 1
	MaxRating = 5
)

type CompanyInput struct {
	Slug             string            `json:"slug"`
	Name             string            `json:"name"`
	NameEn           string            `json:"name_en"`
	ABN              string            `json:"abn"`
	Logo             string            `json:"logo"`
	FoundedYear      int               `json:"founded_year"`
	Industry         string            `json:"industry"`
	TeamSize         string            `json:"team_size"`
	Website          string            `json:"website"`
	Email            string            `json:"email"`
	Phone            string            `json:"phone"`
	Languages        []string          `json:"languages"`
	ShortDescription string            `json:"short_description"`
	FullDescription  string            `json:"full_description"`
	Social           map[string]string `json:"social"`
	Verified         bool              `json:"verified"`
	Services         []string          `json:"services"`
	Offices          []OfficeInput     `json:"offices,omitempty"`
}

type ReviewInput struct {
	Author  string  `json:"author"`
	Company string  `json:"company"`
	Rating  float64 `json:"rating"`
	Text    string  `json:"text"`
}

type CompanyService struct {
	companies *repo.CompanyRepo
	offices   *repo.OfficeRepo
	reviews   *repo.ReviewRepo
	catalog   *Catalog
	refresher SearchRefresher
}

func NewCompanyService(companies *repo.CompanyRepo, offices *repo.OfficeRepo, reviews *repo.ReviewRepo, catalog *Catalog, refresher SearchRefresher) *CompanyService {
	return &CompanyService{
		companies: companies,
		offices:   offices,
		reviews:   reviews,
		catalog:   catalog,
		refresher: refresher,
	}
}

func (s *CompanyService) List(ctx context.Context, filter repo.CompanyFilter) ([]model.Company, int, error) {
	items, err := s.companies.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.companies.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if err := s.catalog.Attach(ctx, items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Get resolves a company by id, falling back to its slug.
func (s *CompanyService) Get(ctx context.Context, idOrSlug string) (*model.Company, error) {
	item, err := s.companies.GetByID(ctx, idOrSlug)
	if appErr.IsNotFound(err) {
		item, err = s.companies.GetBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, err
	}
	list := []model.Company{*item}
	if err := s.catalog.Attach(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

func (s *CompanyService) Create(ctx context.Context, input CompanyInput) (*model.Company, error) {
	item, err := s.create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.refresh(ctx)
	return item, nil
}

// Import creates every company and refreshes the search snapshot once.
func (s *CompanyService) Import(ctx context.Context, inputs []CompanyInput) (int, error) {
	created := 0
	for i, input := range inputs {
		if _, err := s.create(ctx, input); err != nil {
			if created > 0 {
				s.refresh(ctx)
			}
			return created, fmt.Errorf("import company #%d %q: %w", i, input.Name, err)
		}
		created++
	}
	if created > 0 {
		s.refresh(ctx)
	}
	return created, nil
}

func (s *CompanyService) create(ctx context.Context, input CompanyInput) (*model.Company, error) {
	input = normalizeCompanyInput(input)
	if err := validateCompanyInput(input); err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	item := &model.Company{ID: newID(), Ctime: now}
	applyCompanyInput(item, input, now)
	uniq, err := s.uniqueSlug(ctx, input.Slug, item.DisplayName(), "", now)
	if err != nil {
		return nil, err
	}
	item.Slug = uniq
	if err := s.companies.Create(ctx, item); err != nil {
		return nil, err
	}
	for _, officeInput := range input.Offices {
		office, err := createOffice(ctx, s.offices, item.ID, officeInput)
		if err != nil {
			return nil, err
		}
		item.Offices = append(item.Offices, *office)
	}
	return item, nil
}

func (s *CompanyService) Update(ctx context.Context, id string, input CompanyInput) (*model.Company, error) {
	input = normalizeCompanyInput(input)
	if err := validateCompanyInput(input); err != nil {
		return nil, err
	}
	item, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	applyCompanyInput(item, input, now)
	if (input.Slug != "" && input.Slug != item.Slug) || item.Slug == "" {
		uniq, err := s.uniqueSlug(ctx, input.Slug, item.DisplayName(), item.ID, now)
		if err != nil {
			return nil, err
		}
		item.Slug = uniq
	}
	if err := s.companies.Update(ctx, item); err != nil {
		return nil, err
	}
	s.refresh(ctx)
	return s.Get(ctx, item.ID)
}

func (s *CompanyService) Delete(ctx context.Context, id string) error {
	if _, err := s.companies.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.offices.DeleteByCompany(ctx, id); err != nil {
		return err
	}
	if err := s.reviews.DeleteByCompany(ctx, id); err != nil {
		return err
	}
	if err := s.companies.Delete(ctx, id); err != nil {
		return err
	}
	s.refresh(ctx)
	return nil
}

func (s *CompanyService) AddReview(ctx context.Context, companyID string, input ReviewInput) (*model.Review, error) {
	input.Author = strings.TrimSpace(input.Author)
	input.Text = strings.TrimSpace(input.Text)
	if input.Author == "" || input.Text == "" {
		return nil, appErr.ErrInvalid
	}
	if input.Rating < MinRating || input.Rating > MaxRating {
		return nil, appErr.ErrInvalid
	}
	if _, err := s.companies.GetByID(ctx, companyID); err != nil {
		return nil, err
	}
	review := &model.Review{
		ID:        newID(),
		CompanyID: companyID,
		Author:    input.Author,
		Company:   strings.TrimSpace(input.Company),
		Rating:    input.Rating,
		Text:      input.Text,
		Ctime:     timeutil.NowUnix(),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	s.refresh(ctx)
	return review, nil
}

func (s *CompanyService) uniqueSlug(ctx context.Context, requested, name, excludeID string, now int64) (string, error) {
	base := slug.Make(requested)
	if base == "" {
		base = slug.Make(name)
	}
	if base == "" {
		base = fmt.Sprintf("company-%d", now)
	}
	return slug.Unique(base, func(candidate string) (bool, error) {
		return s.companies.SlugExists(ctx, candidate, excludeID)
	})
}

func (s *CompanyService) refresh(ctx context.Context) {
	refreshSearch(ctx, s.refresher)
}

// refreshSearch only logs failures, the cron refresh picks up missed writes.
func refreshSearch(ctx context.Context, refresher SearchRefresher) {
	if refresher == nil {
		return
	}
	if err := refresher.Refresh(ctx); err != nil {
		logutil.GetLogger(ctx).Error("refresh search index failed", zap.Error(err))
	}
}

func normalizeCompanyInput(input CompanyInput) CompanyInput {
	input.Name = strings.TrimSpace(input.Name)
	input.NameEn = strings.TrimSpace(input.NameEn)
	input.Slug = strings.TrimSpace(input.Slug)
	input.Industry = strings.TrimSpace(input.Industry)
	input.ABN = abn.Clean(input.ABN)
	input.Services = compactStrings(input.Services)
	input.Languages = compactStrings(input.Languages)
	return input
}

func validateCompanyInput(input CompanyInput) error {
	if input.Name == "" && input.NameEn == "" {
		return appErr.ErrInvalid
	}
	if input.ABN != "" && !abn.IsValid(input.ABN) {
		return appErr.ErrInvalidABN
	}
	return nil
}

func applyCompanyInput(item *model.Company, input CompanyInput, now int64) {
	item.Name = input.Name
	item.NameEn = input.NameEn
	item.ABN = input.ABN
	item.Logo = input.Logo
	item.FoundedYear = input.FoundedYear
	item.Industry = input.Industry
	item.TeamSize = input.TeamSize
	item.Website = input.Website
	item.Email = input.Email
	item.Phone = input.Phone
	item.Languages = input.Languages
	item.ShortDescription = input.ShortDescription
	item.FullDescription = input.FullDescription
	item.Social = input.Social
	item.Verified = input.Verified
	item.Services = input.Services
	item.Mtime = now
}

func compactStrings(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
