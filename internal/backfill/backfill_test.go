package backfill

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/orgball2608/social-detail-bot/internal/repositories/post"
	mock_post "github.com/orgball2608/social-detail-bot/internal/repositories/post/mocks"
	mock_user "github.com/orgball2608/social-detail-bot/internal/repositories/user/mocks"
	"github.com/orgball2608/social-detail-bot/internal/uniqueid"
	"github.com/orgball2608/social-detail-bot/pkg/config"
	"github.com/orgball2608/social-detail-bot/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newBackfill(t *testing.T) (*Backfill, *mock_post.MockRepository, *mock_user.MockRepository) {
	ctrl := gomock.NewController(t)
	posts := mock_post.NewMockRepository(ctrl)
	users := mock_user.NewMockRepository(ctrl)
	b := New(Opts{
		PostRepo:  posts,
		UserRepo:  users,
		Generator: uniqueid.NewGenerator(),
		Logger:    logger.NewNop(),
		Config:    &config.Config{},
	})
	return b, posts, users
}

type uniqueIDMatcher struct{}

func (uniqueIDMatcher) Matches(x any) bool {
	s, ok := x.(string)
	return ok && uniqueid.Valid(s)
}

func (uniqueIDMatcher) String() string { return "is a 10-digit unique id" }

func validUniqueID() gomock.Matcher { return uniqueIDMatcher{} }

func TestRun(t *testing.T) {
	b, posts, users := newBackfill(t)

	posts.EXPECT().ListMissingUniqueID(gomock.Any(), batchSize).Return([]int64{1, 2}, nil)
	posts.EXPECT().UniqueIDExists(gomock.Any(), validUniqueID()).Return(false, nil).Times(2)
	posts.EXPECT().SetUniqueID(gomock.Any(), int64(1), validUniqueID()).Return(nil)
	posts.EXPECT().SetUniqueID(gomock.Any(), int64(2), validUniqueID()).Return(nil)

	users.EXPECT().ListMissingUniqueID(gomock.Any(), batchSize).Return([]int64{10}, nil)
	users.EXPECT().UniqueIDExists(gomock.Any(), validUniqueID()).Return(false, nil)
	users.EXPECT().SetUniqueID(gomock.Any(), int64(10), validUniqueID()).Return(nil)

	stats, err := b.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{Posts: 2, Users: 1}, stats)
}

func TestRun_RetriesLostRace(t *testing.T) {
	b, posts, users := newBackfill(t)

	posts.EXPECT().ListMissingUniqueID(gomock.Any(), batchSize).Return([]int64{1}, nil)
	posts.EXPECT().UniqueIDExists(gomock.Any(), gomock.Any()).Return(false, nil).Times(2)
	gomock.InOrder(
		posts.EXPECT().SetUniqueID(gomock.Any(), int64(1), gomock.Any()).Return(post.ErrAlreadyExists),
		posts.EXPECT().SetUniqueID(gomock.Any(), int64(1), gomock.Any()).Return(nil),
	)
	users.EXPECT().ListMissingUniqueID(gomock.Any(), batchSize).Return(nil, nil)

	stats, err := b.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{Posts: 1}, stats)
}

func TestRun_CountsFailures(t *testing.T) {
	b, posts, users := newBackfill(t)

	posts.EXPECT().ListMissingUniqueID(gomock.Any(), batchSize).Return([]int64{1, 2}, nil)
	posts.EXPECT().UniqueIDExists(gomock.Any(), gomock.Any()).Return(false, nil).Times(2)
	posts.EXPECT().SetUniqueID(gomock.Any(), int64(1), gomock.Any()).Return(fmt.Errorf("deadlock"))
	posts.EXPECT().SetUniqueID(gomock.Any(), int64(2), gomock.Any()).Return(nil)
	users.EXPECT().ListMissingUniqueID(gomock.Any(), batchSize).Return(nil, nil)

	stats, err := b.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{Posts: 1, Failed: 1}, stats)
}

func TestRun_ListError(t *testing.T) {
	b, posts, _ := newBackfill(t)

	posts.EXPECT().ListMissingUniqueID(gomock.Any(), batchSize).Return(nil, fmt.Errorf("conn refused"))

	_, err := b.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list posts")
}

func TestRun_FullBatchContinues(t *testing.T) {
	b, posts, users := newBackfill(t)

	full := make([]int64, batchSize)
	for i := range full {
		full[i] = int64(i + 1)
	}

	gomock.InOrder(
		posts.EXPECT().ListMissingUniqueID(gomock.Any(), batchSize).Return(full, nil),
		posts.EXPECT().ListMissingUniqueID(gomock.Any(), batchSize).Return([]int64{9999}, nil),
	)
	posts.EXPECT().UniqueIDExists(gomock.Any(), gomock.Any()).Return(false, nil).Times(batchSize + 1)
	posts.EXPECT().SetUniqueID(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(batchSize + 1)
	users.EXPECT().ListMissingUniqueID(gomock.Any(), batchSize).Return(nil, nil)

	stats, err := b.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, batchSize+1, stats.Posts)
}

func waitStopped(t *testing.T, stopped <-chan struct{}) {
	t.Helper()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("backfill scheduler did not shut down")
	}
}

func TestSchedule_CancelledContextShutsDown(t *testing.T) {
	b, _, _ := newBackfill(t)
	b.Config.Backfill.Hour = 3
	b.Config.Backfill.Timezone = "UTC"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, b.Schedule(ctx))

	_, stopped, err := b.schedule(ctx)
	require.NoError(t, err)
	waitStopped(t, stopped)
}

func TestSchedule_RegistersDailyJob(t *testing.T) {
	for _, tz := range []string{"UTC", "Not/AZone"} {
		t.Run(tz, func(t *testing.T) {
			b, _, _ := newBackfill(t)
			b.Config.Backfill.Hour = 3
			b.Config.Backfill.Timezone = tz

			ctx, cancel := context.WithCancel(context.Background())
			scheduler, stopped, err := b.schedule(ctx)
			require.NoError(t, err)

			jobs := scheduler.Jobs()
			require.Len(t, jobs, 1)
			assert.Equal(t, JobName, jobs[0].Name())

			var next time.Time
			assert.Eventually(t, func() bool {
				next, err = jobs[0].NextRun()
				return err == nil && !next.IsZero()
			}, 2*time.Second, 10*time.Millisecond)
			assert.Equal(t, 3, next.UTC().Hour())
			assert.Equal(t, 0, next.UTC().Minute())

			cancel()
			waitStopped(t, stopped)
		})
	}
}
