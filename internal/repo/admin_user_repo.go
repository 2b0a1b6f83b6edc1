package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/bizdir/internal/model"
	"github.com/xxxsen/bizdir/internal/pkg/dbutil"
	appErr "github.com/xxxsen/bizdir/internal/pkg/errors"
)

type AdminUserRepo struct {
	db *sql.DB
}

func NewAdminUserRepo(db *sql.DB) *AdminUserRepo {
	return &AdminUserRepo{db: db}
}

func (r *AdminUserRepo) Create(ctx context.Context, user *model.AdminUser) error {
	data := map[string]interface{}{
		"id":            user.ID,
		"username":      user.Username,
		"password_hash": user.PasswordHash,
		"ctime":         user.Ctime,
		"mtime":         user.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("admin_users", []map[string]interface{}{data})
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

func (r *AdminUserRepo) GetByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	return r.getOne(ctx, map[string]interface{}{"username": username})
}

func (r *AdminUserRepo) GetByID(ctx context.Context, id string) (*model.AdminUser, error) {
	return r.getOne(ctx, map[string]interface{}{"id": id})
}

func (r *AdminUserRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.AdminUser, error) {
	where["_limit"] = []uint{0, 1}
	sqlStr, args, err := builder.BuildSelect("admin_users", where, []string{"id", "username", "password_hash", "ctime", "mtime"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	var user model.AdminUser
	err = r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Ctime, &user.Mtime)
	if err == sql.ErrNoRows {
		return nil, appErr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
