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

var eventColumns = []string{
	"id", "title", "date", "location", "organizer", "theme", "summary", "description", "schedule", "ctime", "mtime",
}

type EventFilter struct {
	State string
	From  int64
	Limit int
}

type EventRepo struct {
	db *sql.DB
}

func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

func eventData(e *model.Event) map[string]interface{} {
	return map[string]interface{}{
		"title":       e.Title,
		"date":        e.Date,
		"state":       e.Location.State,
		"location":    dbutil.EncodeJSON(e.Location, "{}"),
		"organizer":   dbutil.EncodeJSON(e.Organizer, "{}"),
		"theme":       e.Theme,
		"summary":     e.Summary,
		"description": e.Description,
		"schedule":    dbutil.EncodeJSON(e.Schedule, "[]"),
		"mtime":       e.Mtime,
	}
}

func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	data := eventData(e)
	data["id"] = e.ID
	data["ctime"] = e.Ctime
	sqlStr, args, err := builder.BuildInsert("events", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *EventRepo) Update(ctx context.Context, e *model.Event) error {
	sqlStr, args, err := builder.BuildUpdate("events", map[string]interface{}{"id": e.ID}, eventData(e))
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

func (r *EventRepo) Delete(ctx context.Context, id string) error {
	sqlStr, args, err := builder.BuildDelete("events", map[string]interface{}{"id": id})
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

func (r *EventRepo) Get(ctx context.Context, id string) (*model.Event, error) {
	items, err := r.query(ctx, map[string]interface{}{"id": id, "_limit": []uint{0, 1}})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, appErr.ErrNotFound
	}
	return &items[0], nil
}

func (r *EventRepo) List(ctx context.Context, filter EventFilter) ([]model.Event, error) {
	where := map[string]interface{}{"_orderby": "date asc"}
	if filter.State != "" {
		where["state"] = filter.State
	}
	if filter.From > 0 {
		where["date >="] = filter.From
	}
	if filter.Limit > 0 {
		where["_limit"] = []uint{0, uint(filter.Limit)}
	}
	return r.query(ctx, where)
}

func (r *EventRepo) query(ctx context.Context, where map[string]interface{}) ([]model.Event, error) {
	sqlStr, args, err := builder.BuildSelect("events", where, eventColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Event, 0)
	for rows.Next() {
		var (
			item                          model.Event
			location, organizer, schedule string
		)
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Date, &location, &organizer, &item.Theme,
			&item.Summary, &item.Description, &schedule, &item.Ctime, &item.Mtime,
		); err != nil {
			return nil, err
		}
		if err := errors.Join(
			dbutil.DecodeJSON(location, &item.Location),
			dbutil.DecodeJSON(organizer, &item.Organizer),
			dbutil.DecodeJSON(schedule, &item.Schedule),
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
