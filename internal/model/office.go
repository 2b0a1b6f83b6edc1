package model

type Office struct {
	ID            string  `json:"id"`
	CompanyID     string  `json:"company_id"`
	Name          string  `json:"name,omitempty"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	Postcode      string  `json:"postcode,omitempty"`
	Country       string  `json:"country,omitempty"`
	ContactPerson string  `json:"contact_person,omitempty"`
	Phone         string  `json:"phone,omitempty"`
	Latitude      float64 `json:"latitude,omitempty"`
	Longitude     float64 `json:"longitude,omitempty"`
	IsHeadquarter bool    `json:"is_headquarter"`
	Ctime         int64   `json:"ctime"`
	Mtime         int64   `json:"mtime"`
}

type StateCount struct {
	State string `json:"state"`
	Count int    `json:"count"`
}
