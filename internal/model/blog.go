package model

const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"
)

type BlogPost struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Slug            string   `json:"slug"`
	Content         string   `json:"content"`
	ContentHTML     string   `json:"content_html,omitempty"`
	Excerpt         string   `json:"excerpt"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	Author          string   `json:"author"`
	Image           string   `json:"image"`
	ReadTime        int      `json:"read_time"`
	Status          string   `json:"status"`
	MetaTitle       string   `json:"meta_title"`
	MetaDescription string   `json:"meta_description"`
	Views           int64    `json:"views"`
	PublishedAt     int64    `json:"published_at"`
	Ctime           int64    `json:"ctime"`
	Mtime           int64    `json:"mtime"`
}
