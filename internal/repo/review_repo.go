package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/bizdir/internal/model"
	"github.com/xxxsen/bizdir/internal/pkg/dbutil"
)

type ReviewRepo struct {
	db *sql.DB
}

func NewReviewRepo(db *sql.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

func (r *ReviewRepo) Create(ctx context.Context, review *model.Review) error {
	data := map[string]interface{}{
		"id":         review.ID,
		"company_id": review.CompanyID,
		"author":     review.Author,
		"company":    review.Company,
		"rating":     review.Rating,
		"text":       review.Text,
		"ctime":      review.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("reviews", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *ReviewRepo) DeleteByCompany(ctx context.Context, companyID string) error {
	sqlStr, args, err := builder.BuildDelete("reviews", map[string]interface{}{"company_id": companyID})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *ReviewRepo) ListByCompanyIDs(ctx context.Context, companyIDs []string) ([]model.Review, error) {
	if len(companyIDs) == 0 {
		return []model.Review{}, nil
	}
	return r.query(ctx, map[string]interface{}{
		"company_id in": toArgs(companyIDs),
		"_orderby":      "ctime desc",
	})
}

func (r *ReviewRepo) ListAll(ctx context.Context) ([]model.Review, error) {
	return r.query(ctx, map[string]interface{}{"_orderby": "ctime desc"})
}

func (r *ReviewRepo) query(ctx context.Context, where map[string]interface{}) ([]model.Review, error) {
	sqlStr, args, err := builder.BuildSelect("reviews", where, []string{
		"id", "company_id", "author", "company", "rating", "text", "ctime",
	})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Review, 0)
	for rows.Next() {
		var item model.Review
		if err := rows.Scan(&item.ID, &item.CompanyID, &item.Author, &item.Company, &item.Rating, &item.Text, &item.Ctime); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
