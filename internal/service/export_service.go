package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/xxxsen/bizdir/internal/model"
	"github.com/xxxsen/bizdir/internal/pkg/timeutil"
)

// ExportPayload is the catalogue dump accepted back by Import.
type ExportPayload struct {
	ExportedAt int64          `json:"exported_at"`
	Companies  []CompanyInput `json:"companies"`
}

type ExportService struct {
	loader CompanyLoader
}

func NewExportService(loader CompanyLoader) *ExportService {
	return &ExportService{loader: loader}
}

func (s *ExportService) Export(ctx context.Context) (*ExportPayload, error) {
	companies, err := s.loader.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	out := &ExportPayload{
		ExportedAt: timeutil.NowUnix(),
		Companies:  make([]CompanyInput, 0, len(companies)),
	}
	for _, c := range companies {
		out.Companies = append(out.Companies, companyToInput(c))
	}
	return out, nil
}

func companyToInput(c model.Company) CompanyInput {
	input := CompanyInput{
		Slug:             c.Slug,
		Name:             c.Name,
		NameEn:           c.NameEn,
		ABN:              c.ABN,
		Logo:             c.Logo,
		FoundedYear:      c.FoundedYear,
		Industry:         c.Industry,
		TeamSize:         c.TeamSize,
		Website:          c.Website,
		Email:            c.Email,
		Phone:            c.Phone,
		Languages:        c.Languages,
		ShortDescription: c.ShortDescription,
		FullDescription:  c.FullDescription,
		Social:           c.Social,
		Verified:         c.Verified,
		Services:         c.Services,
	}
	for _, o := range c.Offices {
		input.Offices = append(input.Offices, OfficeInput{
			Name:          o.Name,
			Address:       o.Address,
			City:          o.City,
			State:         o.State,
			Postcode:      o.Postcode,
			Country:       o.Country,
			ContactPerson: o.ContactPerson,
			Phone:         o.Phone,
			Latitude:      o.Latitude,
			Longitude:     o.Longitude,
			IsHeadquarter: o.IsHeadquarter,
		})
	}
	return input
}

// DecodeCompanies reads either a bare array of companies or an export payload.
func DecodeCompanies(raw []byte) ([]CompanyInput, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty company file")
	}
	if raw[0] == '[' {
		var inputs []CompanyInput
		if err := json.Unmarshal(raw, &inputs); err != nil {
			return nil, fmt.Errorf("decode company list: %w", err)
		}
		return inputs, nil
	}
	var payload ExportPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode export payload: %w", err)
	}
	return payload.Companies, nil
}
