package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/bizdir/internal/model"
	"github.com/xxxsen/bizdir/internal/pkg/dbutil"
	appErr "github.com/xxxsen/bizdir/internal/pkg/errors"
)

var companyColumns = []string{
	"id", "slug", "name", "name_en", "abn", "logo", "founded_year", "industry", "team_size",
	"website", "email", "phone", "languages", "short_description", "full_description",
	"social", "verified", "services", "ctime", "mtime",
}

type CompanyFilter struct {
	Industry string
	State    string
	Limit    int
	Offset   int
}

type CompanyRepo struct {
	db *sql.DB
}

func NewCompanyRepo(db *sql.DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

func companyData(c *model.Company) map[string]interface{} {
	return map[string]interface{}{
		"slug":              c.Slug,
		"name":              c.Name,
		"name_en":           c.NameEn,
		"abn":               c.ABN,
		"logo":              c.Logo,
		"founded_year":      c.FoundedYear,
		"industry":          c.Industry,
		"team_size":         c.TeamSize,
		"website":           c.Website,
		"email":             c.Email,
		"phone":             c.Phone,
		"languages":         dbutil.EncodeJSON(c.Languages, "[]"),
		"short_description": c.ShortDescription,
		"full_description":  c.FullDescription,
		"social":            dbutil.EncodeJSON(c.Social, "{}"),
		"verified":          c.Verified,
		"services":          dbutil.EncodeJSON(c.Services, "[]"),
		"mtime":             c.Mtime,
	}
}

func (r *CompanyRepo) Create(ctx context.Context, c *model.Company) error {
	data := companyData(c)
	data["id"] = c.ID
	data["ctime"] = c.Ctime
	sqlStr, args, err := builder.BuildInsert("companies", []map[string]interface{}{data})
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

func (r *CompanyRepo) Update(ctx context.Context, c *model.Company) error {
	sqlStr, args, err := builder.BuildUpdate("companies", map[string]interface{}{"id": c.ID}, companyData(c))
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

func (r *CompanyRepo) Delete(ctx context.Context, id string) error {
	sqlStr, args, err := builder.BuildDelete("companies", map[string]interface{}{"id": id})
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

func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*model.Company, error) {
	return r.getOne(ctx, map[string]interface{}{"id": id})
}

func (r *CompanyRepo) GetBySlug(ctx context.Context, slug string) (*model.Company, error) {
	return r.getOne(ctx, map[string]interface{}{"slug": slug})
}

func (r *CompanyRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	where := map[string]interface{}{"slug": slug}
	if excludeID != "" {
		where["id !="] = excludeID
	}
	sqlStr, args, err := builder.BuildSelect("companies", where, []string{"count(1)"})
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

func (r *CompanyRepo) List(ctx context.Context, filter CompanyFilter) ([]model.Company, error) {
	where := filterWhere(filter)
	where["_orderby"] = "name asc"
	if filter.Limit > 0 {
		offset := filter.Offset
		if offset < 0 {
			offset = 0
		}
		where["_limit"] = []uint{uint(offset), uint(filter.Limit)}
	}
	return r.query(ctx, where)
}

func (r *CompanyRepo) Count(ctx context.Context, filter CompanyFilter) (int, error) {
	sqlStr, args, err := builder.BuildSelect("companies", filterWhere(filter), []string{"count(1)"})
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

func (r *CompanyRepo) ListByIDs(ctx context.Context, ids []string) ([]model.Company, error) {
	if len(ids) == 0 {
		return []model.Company{}, nil
	}
	return r.query(ctx, map[string]interface{}{"id in": toArgs(ids)})
}

// ListAll returns the whole catalogue; search keeps it in memory.
func (r *CompanyRepo) ListAll(ctx context.Context) ([]model.Company, error) {
	return r.query(ctx, map[string]interface{}{"_orderby": "ctime asc"})
}

func filterWhere(filter CompanyFilter) map[string]interface{} {
	where := map[string]interface{}{}
	if filter.Industry != "" {
		where["industry"] = filter.Industry
	}
	if filter.State != "" {
		where["_custom_state"] = builder.Custom("id IN (SELECT company_id FROM offices WHERE state = ?)", filter.State)
	}
	return where
}

func (r *CompanyRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.Company, error) {
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

func (r *CompanyRepo) query(ctx context.Context, where map[string]interface{}) ([]model.Company, error) {
	sqlStr, args, err := builder.BuildSelect("companies", where, companyColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Company, 0)
	for rows.Next() {
		var (
			item                       model.Company
			languages, social, service string
		)
		if err := rows.Scan(
			&item.ID, &item.Slug, &item.Name, &item.NameEn, &item.ABN, &item.Logo, &item.FoundedYear,
			&item.Industry, &item.TeamSize, &item.Website, &item.Email, &item.Phone, &languages,
			&item.ShortDescription, &item.FullDescription, &social, &item.Verified, &service,
			&item.Ctime, &item.Mtime,
		); err != nil {
			return nil, err
		}
		if err := errors.Join(
			dbutil.DecodeJSON(languages, &item.Languages),
			dbutil.DecodeJSON(social, &item.Social),
			dbutil.DecodeJSON(service, &item.Services),
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func toArgs(ids []string) []interface{} {
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	return args
}
