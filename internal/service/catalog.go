package service

import (
	"context"

	"github.com/xxxsen/bizdir/internal/model"
	"github.com/xxxsen/bizdir/internal/repo"
)

// Catalog assembles companies with their offices and reviews.
type Catalog struct {
	companies *repo.CompanyRepo
	offices   *repo.OfficeRepo
	reviews   *repo.ReviewRepo
}

func NewCatalog(companies *repo.CompanyRepo, offices *repo.OfficeRepo, reviews *repo.ReviewRepo) *Catalog {
	return &Catalog{companies: companies, offices: offices, reviews: reviews}
}

func (c *Catalog) LoadAll(ctx context.Context) ([]model.Company, error) {
	companies, err := c.companies.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	offices, err := c.offices.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	reviews, err := c.reviews.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	attach(companies, offices, reviews)
	return companies, nil
}

// Attach fills offices and reviews for the given companies in place.
func (c *Catalog) Attach(ctx context.Context, companies []model.Company) error {
	if len(companies) == 0 {
		return nil
	}
	ids := make([]string, 0, len(companies))
	for _, item := range companies {
		ids = append(ids, item.ID)
	}
	offices, err := c.offices.ListByCompanyIDs(ctx, ids)
	if err != nil {
		return err
	}
	reviews, err := c.reviews.ListByCompanyIDs(ctx, ids)
	if err != nil {
		return err
	}
	attach(companies, offices, reviews)
	return nil
}

func attach(companies []model.Company, offices []model.Office, reviews []model.Review) {
	officeMap := make(map[string][]model.Office)
	for _, o := range offices {
		officeMap[o.CompanyID] = append(officeMap[o.CompanyID], o)
	}
	reviewMap := make(map[string][]model.Review)
	for _, r := range reviews {
		reviewMap[r.CompanyID] = append(reviewMap[r.CompanyID], r)
	}
	for i := range companies {
		companies[i].Offices = officeMap[companies[i].ID]
		companies[i].Reviews = reviewMap[companies[i].ID]
		if companies[i].Services == nil {
			companies[i].Services = []string{}
		}
	}
}
