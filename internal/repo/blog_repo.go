package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/bizdir/internal/model"
	"github.com/xxxsen/bizdir/internal/pkg/dbutil"
	appErr "github.com/xxxsen/bizdir/internal/pkg/errors"
)

var blogColumns = []string{
	"id", "title", "slug", "content", "excerpt", "category", "tags", "author", "image",
	"read_time", "status", "meta_title", "meta_description", "views", "published_at", "ctime", "mtime",
}

type BlogFilter struct {
	Status   string
	Category string
	Limit    int
	Offset   int
}

type BlogRepo struct {
	db *sql.DB
}

func NewBlogRepo(db *sql.DB) *BlogRepo {
	return &BlogRepo{db: db}
}

func blogData(p *model.BlogPost) map[string]interface{} {
	return map[string]interface{}{
		"title":            p.Title,
		"slug":             p.Slug,
		"content":          p.Content,
		"excerpt":          p.Excerpt,
		"category":         p.Category,
		"tags":             dbutil.EncodeJSON(p.Tags, "[]"),
		"author":           p.Author,
		"image":            p.Image,
		"read_time":        p.ReadTime,
		"status":           p.Status,
		"meta_title":       p.MetaTitle,
		"meta_description": p.MetaDescription,
		"published_at":     p.PublishedAt,
		"mtime":            p.Mtime,
	}
}

func (r *BlogRepo) Create(ctx context.Context, p *model.BlogPost) error {
	data := blogData(p)
	data["id"] = p.ID
	data["views"] = p.Views
	data["ctime"] = p.Ctime
	sqlStr, args, err := builder.BuildInsert("blog_posts", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *BlogRepo) Update(ctx context.Context, p *model.BlogPost) error {
	sqlStr, args, err := builder.BuildUpdate("blog_posts", map[string]interface{}{"id": p.ID}, blogData(p))
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return requireAffected(result)
}

func (r *BlogRepo) Delete(ctx context.Context, id string) error {
	sqlStr, args, err := builder.BuildDelete("blog_posts", map[string]interface{}{"id": id})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (r *BlogRepo) IncrementViews(ctx context.Context, id string) error {
	sqlStr, args := dbutil.Finalize("UPDATE blog_posts SET views = views + 1 WHERE id = ?", []interface{}{id})
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *BlogRepo) GetByID(ctx context.Context, id string) (*model.BlogPost, error) {
	return r.getOne(ctx, map[string]interface{}{"id": id})
}

func (r *BlogRepo) GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	return r.getOne(ctx, map[string]interface{}{"slug": slug})
}

func (r *BlogRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	where := map[string]interface{}{"slug": slug}
	if excludeID != "" {
		where["id !="] = excludeID
	}
	sqlStr, args, err := builder.BuildSelect("blog_posts", where, []string{"count(1)"})
	if err != nil {
		return false, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	var cnt int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&cnt); err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *BlogRepo) List(ctx context.Context, filter BlogFilter) ([]model.BlogPost, error) {
	where := blogWhere(filter)
	where["_orderby"] = "published_at desc, ctime desc"
	if filter.Limit > 0 {
		offset := filter.Offset
		if offset < 0 {
			offset = 0
		}
		where["_limit"] = []uint{uint(offset), uint(filter.Limit)}
	}
	return r.query(ctx, where)
}

func (r *BlogRepo) Count(ctx context.Context, filter BlogFilter) (int, error) {
	sqlStr, args, err := builder.BuildSelect("blog_posts", blogWhere(filter), []string{"count(1)"})
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	var cnt int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

func blogWhere(filter BlogFilter) map[string]interface{} {
	where := map[string]interface{}{}
	if filter.Status != "" {
		where["status"] = filter.Status
	}
	if filter.Category != "" {
		where["category"] = filter.Category
	}
	return where
}

func (r *BlogRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.BlogPost, error) {
	where["_limit"] = []uint{0, 1}
	items, err := r.query(ctx, where)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, appErr.ErrNotFound
	}
	return &items[0], nil
}

func (r *BlogRepo) query(ctx context.Context, where map[string]interface{}) ([]model.BlogPost, error) {
	sqlStr, args, err := builder.BuildSelect("blog_posts", where, blogColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.BlogPost, 0)
	for rows.Next() {
		var (
			item model.BlogPost
			tags string
		)
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Slug, &item.Content, &item.Excerpt, &item.Category, &tags,
			&item.Author, &item.Image, &item.ReadTime, &item.Status, &item.MetaTitle,
			&item.MetaDescription, &item.Views, &item.PublishedAt, &item.Ctime, &item.Mtime,
		); err != nil {
			return nil, err
		}
		if err := dbutil.DecodeJSON(tags, &item.Tags); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
