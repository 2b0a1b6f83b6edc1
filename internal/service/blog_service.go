package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/bizdir/internal/model"
	appErr "github.com/xxxsen/bizdir/internal/pkg/errors"
	"github.com/xxxsen/bizdir/internal/pkg/slug"
	"github.com/xxxsen/bizdir/internal/pkg/timeutil"
	"github.com/xxxsen/bizdir/internal/repo"
)

const (
	wordsPerMinute = 200
	excerptLength  = 160
)

var markdownSyntaxRe = regexp.MustCompile("[#*_`>\\[\\]()!~|-]+")

type BlogInput struct {
	Title           string   `json:"title"`
	Slug            string   `json:"slug"`
	Content         string   `json:"content"`
	Excerpt         string   `json:"excerpt"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	Author          string   `json:"author"`
	Image           string   `json:"image"`
	Status          string   `json:"status"`
	MetaTitle       string   `json:"meta_title"`
	MetaDescription string   `json:"meta_description"`
}

type BlogService struct {
	posts    *repo.BlogRepo
	renderer *markdownRenderer
}

func NewBlogService(posts *repo.BlogRepo) *BlogService {
	return &BlogService{posts: posts, renderer: newMarkdownRenderer()}
}

// ListPublished returns published posts only; status filters are ignored.
func (s *BlogService) ListPublished(ctx context.Context, filter repo.BlogFilter) ([]model.BlogPost, int, error) {
	filter.Status = model.BlogStatusPublished
	return s.List(ctx, filter)
}

func (s *BlogService) List(ctx context.Context, filter repo.BlogFilter) ([]model.BlogPost, int, error) {
	items, err := s.posts.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.posts.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetPublished loads a published post by slug, bumps its view counter and
// renders the markdown body.
func (s *BlogService) GetPublished(ctx context.Context, postSlug string) (*model.BlogPost, error) {
	post, err := s.posts.GetBySlug(ctx, postSlug)
	if err != nil {
		return nil, err
	}
	if post.Status != model.BlogStatusPublished {
		return nil, appErr.ErrNotFound
	}
	if err := s.posts.IncrementViews(ctx, post.ID); err != nil {
		logutil.GetLogger(ctx).Warn("increment blog views failed", zap.String("post", post.ID), zap.Error(err))
	} else {
		post.Views++
	}
	html, err := s.renderer.Render(post.Content)
	if err != nil {
		return nil, err
	}
	post.ContentHTML = html
	return post, nil
}

func (s *BlogService) Get(ctx context.Context, id string) (*model.BlogPost, error) {
	return s.posts.GetByID(ctx, id)
}

func (s *BlogService) Create(ctx context.Context, input BlogInput) (*model.BlogPost, error) {
	input = normalizeBlogInput(input)
	if err := validateBlogInput(input); err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	post := &model.BlogPost{ID: newID(), Ctime: now}
	applyBlogInput(post, input, now)
	uniq, err := s.uniqueSlug(ctx, input.Slug, input.Title, "", now)
	if err != nil {
		return nil, err
	}
	post.Slug = uniq
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *BlogService) Update(ctx context.Context, id string, input BlogInput) (*model.BlogPost, error) {
	input = normalizeBlogInput(input)
	if err := validateBlogInput(input); err != nil {
		return nil, err
	}
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	applyBlogInput(post, input, now)
	if input.Slug != "" && input.Slug != post.Slug {
		uniq, err := s.uniqueSlug(ctx, input.Slug, input.Title, post.ID, now)
		if err != nil {
			return nil, err
		}
		post.Slug = uniq
	}
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *BlogService) Delete(ctx context.Context, id string) error {
	return s.posts.Delete(ctx, id)
}

func (s *BlogService) uniqueSlug(ctx context.Context, requested, title, excludeID string, now int64) (string, error) {
	base := slug.Make(requested)
	if base == "" {
		base = slug.Make(title)
	}
	if base == "" {
		base = fmt.Sprintf("post-%d", now)
	}
	return slug.Unique(base, func(candidate string) (bool, error) {
		return s.posts.SlugExists(ctx, candidate, excludeID)
	})
}

func normalizeBlogInput(input BlogInput) BlogInput {
	input.Title = strings.TrimSpace(input.Title)
	input.Slug = strings.TrimSpace(input.Slug)
	input.Category = strings.TrimSpace(input.Category)
	input.Author = strings.TrimSpace(input.Author)
	input.Status = strings.ToLower(strings.TrimSpace(input.Status))
	if input.Status == "" {
		input.Status = model.BlogStatusDraft
	}
	input.Tags = compactStrings(input.Tags)
	return input
}

func validateBlogInput(input BlogInput) error {
	if input.Title == "" || strings.TrimSpace(input.Content) == "" {
		return appErr.ErrInvalid
	}
	if input.Status != model.BlogStatusDraft && input.Status != model.BlogStatusPublished {
		return appErr.ErrInvalid
	}
	return nil
}

func applyBlogInput(post *model.BlogPost, input BlogInput, now int64) {
	post.Title = input.Title
	post.Content = input.Content
	post.Category = input.Category
	post.Tags = input.Tags
	post.Author = input.Author
	post.Image = input.Image
	post.MetaTitle = input.MetaTitle
	post.MetaDescription = input.MetaDescription
	post.Excerpt = strings.TrimSpace(input.Excerpt)
	if post.Excerpt == "" {
		post.Excerpt = makeExcerpt(input.Content, excerptLength)
	}
	if post.MetaTitle == "" {
		post.MetaTitle = post.Title
	}
	if post.MetaDescription == "" {
		post.MetaDescription = post.Excerpt
	}
	post.ReadTime = readTime(input.Content)
	if input.Status == model.BlogStatusPublished && post.PublishedAt == 0 {
		post.PublishedAt = now
	}
	if input.Status == model.BlogStatusDraft {
		post.PublishedAt = 0
	}
	post.Status = input.Status
	post.Mtime = now
}

// readTime estimates minutes at 200 words per minute, never below one.
func readTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

func makeExcerpt(content string, limit int) string {
	plain := strings.Join(strings.Fields(markdownSyntaxRe.ReplaceAllString(content, " ")), " ")
	if utf8.RuneCountInString(plain) <= limit {
		return plain
	}
	runes := []rune(plain)
	cut := string(runes[:limit])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
