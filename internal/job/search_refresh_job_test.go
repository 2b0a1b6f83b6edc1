package job

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/bizdir/internal/schedule"
)

type fakeRefresher struct {
	calls int
	err   error
}

func (f *fakeRefresher) Refresh(ctx context.Context) error {
	f.calls++
	return f.err
}

func TestSearchRefreshJob(t *testing.T) {
	refresher := &fakeRefresher{}
	job := NewSearchRefreshJob(refresher)
	require.Equal(t, SearchRefreshJobName, job.Name())
	require.NoError(t, job.Run(context.Background()))
	require.Equal(t, 1, refresher.calls)

	refresher.err = errors.New("db down")
	require.Error(t, job.Run(context.Background()))
	require.NoError(t, NewSearchRefreshJob(nil).Run(context.Background()))
}

func TestSearchRefreshJobScheduled(t *testing.T) {
	refresher := &fakeRefresher{}
	s := schedule.NewCronScheduler()
	require.NoError(t, s.AddJob(NewSearchRefreshJob(refresher), "*/10 * * * *"))
	require.NoError(t, s.RunNow(SearchRefreshJobName))
	require.Equal(t, 1, refresher.calls)
}
