package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/bizdir/internal/model"
	"github.com/xxxsen/bizdir/internal/pkg/dbutil"
	appErr "github.com/xxxsen/bizdir/internal/pkg/errors"
)

var officeColumns = []string{
	"id", "company_id", "name", "address", "city", "state", "postcode", "country",
	"contact_person", "phone", "latitude", "longitude", "is_headquarter", "ctime", "mtime",
}

type OfficeRepo struct {
	db *sql.DB
}

func NewOfficeRepo(db *sql.DB) *OfficeRepo {
	return &OfficeRepo{db: db}
}

func officeData(o *model.Office) map[string]interface{} {
	return map[string]interface{}{
		"name":           o.Name,
		"address":        o.Address,
		"city":           o.City,
		"state":          o.State,
		"postcode":       o.Postcode,
		"country":        o.Country,
		"contact_person": o.ContactPerson,
		"phone":          o.Phone,
		"latitude":       o.Latitude,
		"longitude":      o.Longitude,
		"is_headquarter": o.IsHeadquarter,
		"mtime":          o.Mtime,
	}
}

func (r *OfficeRepo) Create(ctx context.Context, o *model.Office) error {
	data := officeData(o)
	data["id"] = o.ID
	data["company_id"] = o.CompanyID
	data["ctime"] = o.Ctime
	sqlStr, args, err := builder.BuildInsert("offices", []map[string]interface{}{data})
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

func (r *OfficeRepo) Update(ctx context.Context, o *model.Office) error {
	where := map[string]interface{}{"id": o.ID, "company_id": o.CompanyID}
	sqlStr, args, err := builder.BuildUpdate("offices", where, officeData(o))
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

func (r *OfficeRepo) Delete(ctx context.Context, companyID, id string) error {
	sqlStr, args, err := builder.BuildDelete("offices", map[string]interface{}{"id": id, "company_id": companyID})
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

func (r *OfficeRepo) DeleteByCompany(ctx context.Context, companyID string) error {
	sqlStr, args, err := builder.BuildDelete("offices", map[string]interface{}{"company_id": companyID})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *OfficeRepo) Get(ctx context.Context, companyID, id string) (*model.Office, error) {
	items, err := r.query(ctx, map[string]interface{}{"id": id, "company_id": companyID, "_limit": []uint{0, 1}})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, appErr.ErrNotFound
	}
	return &items[0], nil
}

func (r *OfficeRepo) ListByCompany(ctx context.Context, companyID string) ([]model.Office, error) {
	return r.query(ctx, map[string]interface{}{
		"company_id": companyID,
		"_orderby":   "is_headquarter desc, ctime asc",
	})
}

func (r *OfficeRepo) ListByCompanyIDs(ctx context.Context, companyIDs []string) ([]model.Office, error) {
	if len(companyIDs) == 0 {
		return []model.Office{}, nil
	}
	return r.query(ctx, map[string]interface{}{
		"company_id in": toArgs(companyIDs),
		"_orderby":      "is_headquarter desc, ctime asc",
	})
}

func (r *OfficeRepo) ListAll(ctx context.Context) ([]model.Office, error) {
	return r.query(ctx, map[string]interface{}{"_orderby": "is_headquarter desc, ctime asc"})
}

// ListIDsByCompany feeds the per-city sequence in generated office ids.
func (r *OfficeRepo) ListIDsByCompany(ctx context.Context, companyID string) ([]string, error) {
	sqlStr, args, err := builder.BuildSelect("offices", map[string]interface{}{
		"company_id": companyID,
	}, []string{"id"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// StateCounts counts distinct companies with at least one office per state.
func (r *OfficeRepo) StateCounts(ctx context.Context) ([]model.StateCount, error) {
	sqlStr := "SELECT state, COUNT(DISTINCT company_id) AS cnt FROM offices WHERE state <> '' GROUP BY state ORDER BY cnt DESC, state ASC"
	rows, err := r.db.QueryContext(ctx, sqlStr)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.StateCount, 0)
	for rows.Next() {
		var item model.StateCount
		if err := rows.Scan(&item.State, &item.Count); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *OfficeRepo) query(ctx context.Context, where map[string]interface{}) ([]model.Office, error) {
	sqlStr, args, err := builder.BuildSelect("offices", where, officeColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Office, 0)
	for rows.Next() {
		var item model.Office
		if err := rows.Scan(
			&item.ID, &item.CompanyID, &item.Name, &item.Address, &item.City, &item.State,
			&item.Postcode, &item.Country, &item.ContactPerson, &item.Phone, &item.Latitude,
			&item.Longitude, &item.IsHeadquarter, &item.Ctime, &item.Mtime,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
