package service

import (
	"context"
	"strings"

	"github.com/xxxsen/bizdir/internal/model"
	appErr "github.com/xxxsen/bizdir/internal/pkg/errors"
	"github.com/xxxsen/bizdir/internal/pkg/timeutil"
	"github.com/xxxsen/bizdir/internal/repo"
)

const officeIDRetries = 3

type OfficeInput struct {
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	Postcode      string  `json:"postcode"`
	Country       string  `json:"country"`
	ContactPerson string  `json:"contact_person"`
	Phone         string  `json:"phone"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	IsHeadquarter bool    `json:"is_headquarter"`
}

type OfficeService struct {
	companies *repo.CompanyRepo
	offices   *repo.OfficeRepo
	refresher SearchRefresher
}

func NewOfficeService(companies *repo.CompanyRepo, offices *repo.OfficeRepo, refresher SearchRefresher) *OfficeService {
	return &OfficeService{companies: companies, offices: offices, refresher: refresher}
}

func (s *OfficeService) List(ctx context.Context, companyID string) ([]model.Office, error) {
	if _, err := s.companies.GetByID(ctx, companyID); err != nil {
		return nil, err
	}
	return s.offices.ListByCompany(ctx, companyID)
}

func (s *OfficeService) Create(ctx context.Context, companyID string, input OfficeInput) (*model.Office, error) {
	if _, err := s.companies.GetByID(ctx, companyID); err != nil {
		return nil, err
	}
	office, err := createOffice(ctx, s.offices, companyID, input)
	if err != nil {
		return nil, err
	}
	refreshSearch(ctx, s.refresher)
	return office, nil
}

func (s *OfficeService) Update(ctx context.Context, companyID, id string, input OfficeInput) (*model.Office, error) {
	input = normalizeOfficeInput(input)
	if err := validateOfficeInput(input); err != nil {
		return nil, err
	}
	office, err := s.offices.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	applyOfficeInput(office, input, timeutil.NowUnix())
	if err := s.offices.Update(ctx, office); err != nil {
		return nil, err
	}
	refreshSearch(ctx, s.refresher)
	return office, nil
}

func (s *OfficeService) Delete(ctx context.Context, companyID, id string) error {
	if err := s.offices.Delete(ctx, companyID, id); err != nil {
		return err
	}
	refreshSearch(ctx, s.refresher)
	return nil
}

func (s *OfficeService) StateCounts(ctx context.Context) ([]model.StateCount, error) {
	return s.offices.StateCounts(ctx)
}

func createOffice(ctx context.Context, offices *repo.OfficeRepo, companyID string, input OfficeInput) (*model.Office, error) {
	input = normalizeOfficeInput(input)
	if err := validateOfficeInput(input); err != nil {
		return nil, err
	}
	existing, err := offices.ListIDsByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	office := &model.Office{CompanyID: companyID, Ctime: now}
	applyOfficeInput(office, input, now)
	seq := nextOfficeSeq(companyID, input.City, existing)
	for attempt := 0; ; attempt++ {
		office.ID = newOfficeID(companyID, input.City, seq)
		err = offices.Create(ctx, office)
		if err == nil {
			return office, nil
		}
		if !appErr.IsConflict(err) || attempt >= officeIDRetries {
			return nil, err
		}
		seq++
	}
}

func normalizeOfficeInput(input OfficeInput) OfficeInput {
	input.Name = strings.TrimSpace(input.Name)
	input.Address = strings.TrimSpace(input.Address)
	input.City = strings.TrimSpace(input.City)
	input.State = strings.ToUpper(strings.TrimSpace(input.State))
	input.Postcode = strings.TrimSpace(input.Postcode)
	input.Country = strings.TrimSpace(input.Country)
	if input.Country == "" {
		input.Country = "Australia"
	}
	return input
}

func validateOfficeInput(input OfficeInput) error {
	if input.City == "" || input.State == "" {
		return appErr.ErrInvalid
	}
	return nil
}

func applyOfficeInput(office *model.Office, input OfficeInput, now int64) {
	office.Name = input.Name
	office.Address = input.Address
	office.City = input.City
	office.State = input.State
	office.Postcode = input.Postcode
	office.Country = input.Country
	office.ContactPerson = input.ContactPerson
	office.Phone = input.Phone
	office.Latitude = input.Latitude
	office.Longitude = input.Longitude
	office.IsHeadquarter = input.IsHeadquarter
	office.Mtime = now
}
