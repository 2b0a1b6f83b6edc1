package model

type EventLocation struct {
	State    string `json:"state"`
	Venue    string `json:"venue"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
}

type EventOrganizer struct {
	Name        string `json:"name"`
	Logo        string `json:"logo"`
	Description string `json:"description"`
}

type EventSession struct {
	Title       string `json:"title"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Description string `json:"description"`
	Speaker     string `json:"speaker,omitempty"`
}

type Event struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Date        int64          `json:"date"`
	Location    EventLocation  `json:"location"`
	Organizer   EventOrganizer `json:"organizer"`
	Theme       string         `json:"theme"`
	Summary     string         `json:"summary"`
	Description string         `json:"description"`
	Schedule    []EventSession `json:"schedule"`
	Ctime       int64          `json:"ctime"`
	Mtime       int64          `json:"mtime"`
}
