package model

import (
	"sort"
	"strings"
)

type Company struct {
	ID               string            `json:"id"`
	Slug             string            `json:"slug"`
	Name             string            `json:"name"`
	NameEn           string            `json:"name_en,omitempty"`
	ABN              string            `json:"abn,omitempty"`
	Logo             string            `json:"logo"`
	FoundedYear      int               `json:"founded_year,omitempty"`
	Industry         string            `json:"industry"`
	TeamSize         string            `json:"team_size,omitempty"`
	Website          string            `json:"website,omitempty"`
	Email            string            `json:"email,omitempty"`
	Phone            string            `json:"phone,omitempty"`
	Languages        []string          `json:"languages,omitempty"`
	ShortDescription string            `json:"short_description"`
	FullDescription  string            `json:"full_description,omitempty"`
	Social           map[string]string `json:"social,omitempty"`
	Verified         bool              `json:"verified"`
	Services         []string          `json:"services"`
	Offices          []Office          `json:"offices,omitempty"`
	Reviews          []Review          `json:"reviews,omitempty"`
	Ctime            int64             `json:"ctime"`
	Mtime            int64             `json:"mtime"`
}

func (c *Company) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.NameEn
}

func (c *Company) Description() string {
	if c.ShortDescription != "" {
		return c.ShortDescription
	}
	return c.FullDescription
}

// Location joins the city and state of every office, headquarters first.
func (c *Company) Location() string {
	parts := make([]string, 0, len(c.Offices)*2)
	for _, office := range c.sortedOffices() {
		if office.City != "" {
			parts = append(parts, office.City)
		}
		if office.State != "" {
			parts = append(parts, office.State)
		}
	}
	return strings.Join(parts, " ")
}

func (c *Company) States() []string {
	seen := make(map[string]struct{}, len(c.Offices))
	states := make([]string, 0, len(c.Offices))
	for _, office := range c.sortedOffices() {
		if office.State == "" {
			continue
		}
		if _, ok := seen[office.State]; ok {
			continue
		}
		seen[office.State] = struct{}{}
		states = append(states, office.State)
	}
	return states
}

// Rating is the mean review rating, 0 without reviews.
func (c *Company) Rating() float64 {
	if len(c.Reviews) == 0 {
		return 0
	}
	total := 0.0
	for _, r := range c.Reviews {
		total += r.Rating
	}
	return total / float64(len(c.Reviews))
}

func (c *Company) sortedOffices() []Office {
	offices := make([]Office, len(c.Offices))
	copy(offices, c.Offices)
	sort.SliceStable(offices, func(i, j int) bool {
		return offices[i].IsHeadquarter && !offices[j].IsHeadquarter
	})
	return offices
}
