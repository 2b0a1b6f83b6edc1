package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/bizdir/internal/model"
	appErr "github.com/xxxsen/bizdir/internal/pkg/errors"
	"github.com/xxxsen/bizdir/internal/pkg/timeutil"
	"github.com/xxxsen/bizdir/internal/repo"
	"github.com/xxxsen/bizdir/test/testutil"
)

func TestCompanyRepoCRUD(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()

	companies := repo.NewCompanyRepo(db)
	offices := repo.NewOfficeRepo(db)
	now := timeutil.NowUnix()
	company := &model.Company{
		ID: "c1", Slug: "sydney-web-co", Name: "Sydney Web Co", Industry: "Information Technology",
		Services: []string{"Web Design", "SEO"}, Social: map[string]string{"linkedin": "x"},
		Ctime: now, Mtime: now,
	}
	require.NoError(t, companies.Create(ctx, company))
	require.ErrorIs(t, companies.Create(ctx, company), appErr.ErrConflict)

	got, err := companies.GetBySlug(ctx, "sydney-web-co")
	require.NoError(t, err)
	require.Equal(t, []string{"Web Design", "SEO"}, got.Services)
	require.Equal(t, "x", got.Social["linkedin"])

	exists, err := companies.SlugExists(ctx, "sydney-web-co", "")
	require.NoError(t, err)
	require.True(t, exists)
	exists, err = companies.SlugExists(ctx, "sydney-web-co", "c1")
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, offices.Create(ctx, &model.Office{ID: "c1_SYDNEY_01", CompanyID: "c1", City: "Sydney", State: "NSW", Ctime: now, Mtime: now}))
	list, err := companies.List(ctx, repo.CompanyFilter{State: "NSW", Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	cnt, err := companies.Count(ctx, repo.CompanyFilter{State: "VIC"})
	require.NoError(t, err)
	require.Zero(t, cnt)

	counts, err := offices.StateCounts(ctx)
	require.NoError(t, err)
	require.Equal(t, []model.StateCount{{State: "NSW", Count: 1}}, counts)
	officeIDs, err := offices.ListIDsByCompany(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, []string{"c1_SYDNEY_01"}, officeIDs)

	got.Name = "Sydney Web Company"
	require.NoError(t, companies.Update(ctx, got))
	require.NoError(t, offices.DeleteByCompany(ctx, "c1"))
	require.NoError(t, companies.Delete(ctx, "c1"))
	_, err = companies.GetByID(ctx, "c1")
	require.ErrorIs(t, err, appErr.ErrNotFound)
	require.ErrorIs(t, companies.Delete(ctx, "c1"), appErr.ErrNotFound)
}

func TestReviewRepo(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()

	reviews := repo.NewReviewRepo(db)
	require.NoError(t, reviews.Create(ctx, &model.Review{ID: "r1", CompanyID: "c1", Author: "Jo", Rating: 4, Text: "good", Ctime: 1}))
	require.NoError(t, reviews.Create(ctx, &model.Review{ID: "r2", CompanyID: "c2", Author: "Al", Rating: 5, Text: "great", Ctime: 2}))

	list, err := reviews.ListByCompanyIDs(ctx, []string{"c1"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NoError(t, reviews.DeleteByCompany(ctx, "c1"))
	all, err := reviews.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}
