package job

import (
	"context"

	"github.com/xxxsen/bizdir/internal/service"
)

const SearchRefreshJobName = "search_refresh"

// SearchRefreshJob rebuilds the search snapshot so edits made directly in
// the database become searchable.
type SearchRefreshJob struct {
	refresher service.SearchRefresher
}

func NewSearchRefreshJob(refresher service.SearchRefresher) *SearchRefreshJob {
	return &SearchRefreshJob{refresher: refresher}
}

func (j *SearchRefreshJob) Name() string {
	return SearchRefreshJobName
}

func (j *SearchRefreshJob) Run(ctx context.Context) error {
	if j.refresher == nil {
		return nil
	}
	return j.refresher.Refresh(ctx)
}
