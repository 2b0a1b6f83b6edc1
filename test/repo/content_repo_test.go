package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/bizdir/internal/model"
	appErr "github.com/xxxsen/bizdir/internal/pkg/errors"
	"github.com/xxxsen/bizdir/internal/repo"
	"github.com/xxxsen/bizdir/test/testutil"
)

func TestBlogRepo(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()

	posts := repo.NewBlogRepo(db)
	require.NoError(t, posts.Create(ctx, &model.BlogPost{ID: "p1", Title: "One", Slug: "one", Content: "x", Status: model.BlogStatusPublished, Tags: []string{"a"}, PublishedAt: 10, Ctime: 1, Mtime: 1}))
	require.NoError(t, posts.Create(ctx, &model.BlogPost{ID: "p2", Title: "Two", Slug: "two", Content: "y", Status: model.BlogStatusDraft, Ctime: 2, Mtime: 2}))

	published, err := posts.List(ctx, repo.BlogFilter{Status: model.BlogStatusPublished, Limit: 10})
	require.NoError(t, err)
	require.Len(t, published, 1)
	require.Equal(t, []string{"a"}, published[0].Tags)

	require.NoError(t, posts.IncrementViews(ctx, "p1"))
	got, err := posts.GetBySlug(ctx, "one")
	require.NoError(t, err)
	require.Equal(t, int64(1), got.Views)

	require.NoError(t, posts.Delete(ctx, "p2"))
	total, err := posts.Count(ctx, repo.BlogFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, total)
}

func TestEventRepo(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()

	events := repo.NewEventRepo(db)
	require.NoError(t, events.Create(ctx, &model.Event{ID: "e1", Title: "Old", Date: 100, Location: model.EventLocation{State: "NSW"}, Ctime: 1, Mtime: 1}))
	require.NoError(t, events.Create(ctx, &model.Event{ID: "e2", Title: "New", Date: 200, Location: model.EventLocation{State: "VIC", City: "Melbourne"}, Ctime: 1, Mtime: 1}))

	upcoming, err := events.List(ctx, repo.EventFilter{From: 150})
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	require.Equal(t, "Melbourne", upcoming[0].Location.City)

	nsw, err := events.List(ctx, repo.EventFilter{State: "NSW"})
	require.NoError(t, err)
	require.Len(t, nsw, 1)

	require.NoError(t, events.Delete(ctx, "e1"))
	_, err = events.Get(ctx, "e1")
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestAdminUserRepo(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()

	admins := repo.NewAdminUserRepo(db)
	user := &model.AdminUser{ID: "a1", Username: "root", PasswordHash: "hash", Ctime: 1, Mtime: 1}
	require.NoError(t, admins.Create(ctx, user))
	require.ErrorIs(t, admins.Create(ctx, &model.AdminUser{ID: "a2", Username: "root", PasswordHash: "h"}), appErr.ErrConflict)

	got, err := admins.GetByUsername(ctx, "root")
	require.NoError(t, err)
	require.Equal(t, "hash", got.PasswordHash)
}
