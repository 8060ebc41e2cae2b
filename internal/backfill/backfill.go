// Package backfill assigns unique ids to posts and users created without one.
package backfill

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/social-detail-bot/internal/repositories/post"
	"github.com/orgball2608/social-detail-bot/internal/repositories/user"
	"github.com/orgball2608/social-detail-bot/internal/uniqueid"
	"github.com/orgball2608/social-detail-bot/pkg/config"
	"github.com/orgball2608/social-detail-bot/pkg/logger"
	"go.uber.org/fx"
)

const (
	batchSize = 500

	// setAttempts bounds retries when a freshly drawn id loses a race to
	// another writer.
	setAttempts = 3
)

// target is the slice of a repository the backfill needs; both the post and
// the user repositories provide it.
type target interface {
	ListMissingUniqueID(ctx context.Context, limit int) ([]int64, error)
	SetUniqueID(ctx context.Context, id int64, uniqueID string) error
	UniqueIDExists(ctx context.Context, uniqueID string) (bool, error)
}

type Opts struct {
	fx.In

	PostRepo  post.Repository
	UserRepo  user.Repository
	Generator *uniqueid.Generator
	Logger    logger.Logger
	Config    *config.Config
}

type Backfill struct {
	PostRepo  post.Repository
	UserRepo  user.Repository
	Generator *uniqueid.Generator
	Logger    logger.Logger
	Config    *config.Config
}

func New(opts Opts) *Backfill {
	return &Backfill{
		PostRepo:  opts.PostRepo,
		UserRepo:  opts.UserRepo,
		Generator: opts.Generator,
		Logger:    opts.Logger.WithComponent("Backfill"),
		Config:    opts.Config,
	}
}

type Stats struct {
	Posts  int
	Users  int
	Failed int
}

// Run fills every missing unique id once. Rows that cannot be updated are
// counted in Failed and left for the next run.
func (b *Backfill) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	n, failed, err := b.fill(ctx, "posts", b.PostRepo)
	stats.Posts, stats.Failed = n, stats.Failed+failed
	if err != nil {
		return stats, err
	}

	n, failed, err = b.fill(ctx, "users", b.UserRepo)
	stats.Users, stats.Failed = n, stats.Failed+failed
	if err != nil {
		return stats, err
	}

	return stats, nil
}

func (b *Backfill) fill(ctx context.Context, table string, repo target) (assigned, failed int, err error) {
	for {
		ids, err := repo.ListMissingUniqueID(ctx, batchSize)
		if err != nil {
			return assigned, failed, fmt.Errorf("list %s without unique id: %w", table, err)
		}

		progress := 0
		for _, id := range ids {
			if err := b.assign(ctx, repo, id); err != nil {
				if ctx.Err() != nil {
					return assigned, failed, ctx.Err()
				}
				b.Logger.Warn("Failed to assign unique id", "table", table, "id", id, "error", err)
				failed++
				continue
			}
			progress++
		}
		assigned += progress

		// A short batch was the last one; a batch without progress would
		// come back unchanged.
		if len(ids) < batchSize || progress == 0 {
			return assigned, failed, nil
		}
	}
}

func (b *Backfill) assign(ctx context.Context, repo target, id int64) error {
	var lastErr error
	for i := 0; i < setAttempts; i++ {
		uid, err := b.Generator.Unique(ctx, repo.UniqueIDExists)
		if err != nil {
			return err
		}
		err = repo.SetUniqueID(ctx, id, uid)
		if err == nil {
			return nil
		}
		if !errors.Is(err, post.ErrAlreadyExists) && !errors.Is(err, user.ErrAlreadyExists) {
			return err
		}
		lastErr = err
	}
	return lastErr
}

// JobName identifies the daily backfill job in the scheduler.
const JobName = "unique-id-backfill"

// Schedule runs the backfill once a day at the configured hour until ctx is
// done.
func (b *Backfill) Schedule(ctx context.Context) error {
	_, _, err := b.schedule(ctx)
	return err
}

// schedule starts the scheduler; stopped is closed once it has shut down
// after ctx is done.
func (b *Backfill) schedule(ctx context.Context) (scheduler gocron.Scheduler, stopped <-chan struct{}, err error) {
	loc, err := time.LoadLocation(b.Config.Backfill.Timezone)
	if err != nil {
		loc = time.UTC
		b.Logger.Warn("Failed to load backfill timezone, using UTC", "timezone", b.Config.Backfill.Timezone, "error", err)
	}

	scheduler, err = gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create backfill scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(gocron.NewAtTime(b.Config.Backfill.Hour, 0, 0)),
		),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				b.Logger.Info("Context cancelled, skipping unique id backfill")
				return
			}

			runCtx, cancel := context.WithTimeout(ctx, 30*time.Minute)
			defer cancel()

			b.Logger.Info("Starting scheduled unique id backfill")
			stats, err := b.Run(runCtx)
			if err != nil {
				b.Logger.Error("Unique id backfill failed", "error", err, "posts", stats.Posts, "users", stats.Users)
				return
			}
			b.Logger.Info("Unique id backfill completed",
				"posts", stats.Posts,
				"users", stats.Users,
				"failed", stats.Failed)
		}),
		gocron.WithName(JobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, nil, fmt.Errorf("failed to schedule backfill: %w", err)
	}

	scheduler.Start()

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		b.Logger.Info("Stopping backfill scheduler")
		if err := scheduler.Shutdown(); err != nil {
			b.Logger.Error("Failed to shut down backfill scheduler", "error", err)
		}
	}()

	return scheduler, done, nil
}
