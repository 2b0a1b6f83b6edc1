package model

type Review struct {
	ID        string  `json:"id"`
	CompanyID string  `json:"company_id"`
	Author    string  `json:"author"`
	Company   string  `json:"company,omitempty"`
	Rating    float64 `json:"rating"`
	Text      string  `json:"text"`
	Ctime     int64   `json:"ctime"`
}
