package detail

import (
	"context"
	"fmt"
	"time"

	"github.com/orgball2608/social-detail-bot/internal/api"
	"github.com/orgball2608/social-detail-bot/internal/domain"
	"github.com/orgball2608/social-detail-bot/pkg/errors"
	"github.com/orgball2608/social-detail-bot/pkg/logger"
	"go.uber.org/fx"
)

// isoMillis matches the ISO-8601 form the backend emits for created_at.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

type Opts struct {
	fx.In

	API    api.Client
	Logger logger.Logger
}

// Resolver looks parsed references up through the API client. It keeps no
// state between calls and is safe for concurrent use.
type Resolver struct {
	api    api.Client
	logger logger.Logger
	now    func() time.Time
}

func New(opts Opts) *Resolver {
	return &Resolver{
		api:    opts.API,
		logger: opts.Logger.WithComponent("DetailResolver"),
		now:    time.Now,
	}
}

// WithClock returns a copy of r that stamps pseudo-posts using now.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	c := *r
	c.now = now
	return &c
}

// Result is what a detail view needs: the post, if any, and the segment it
// was requested with.
type Result struct {
	Post       *domain.Post `json:"post"`
	OriginalID string       `json:"originalId"`
}

// Found reports whether the reference resolved.
func (r Result) Found() bool {
	return r.Post != nil
}

// Fetch resolves parsed and always settles; an unresolved reference yields a
// Result with a nil Post.
func (r *Resolver) Fetch(ctx context.Context, parsed domain.ParsedID) Result {
	originalID := parsed.Original
	if originalID == "" {
		originalID = parsed.ID
	}
	return Result{
		Post:       r.Resolve(ctx, parsed),
		OriginalID: originalID,
	}
}

// Resolve runs the attempts planned for parsed in order and returns the first
// post found. Every failure moves on to the next attempt; nil means none of
// them produced a post.
func (r *Resolver) Resolve(ctx context.Context, parsed domain.ParsedID) *domain.Post {
	for _, step := range r.Plan(parsed) {
		post, err := r.run(ctx, step, parsed)
		if err != nil {
			r.logger.Debug("Detail attempt failed",
				"strategy", step,
				"kind", parsed.Kind,
				"id", parsed.ID,
				"error", err)
			continue
		}
		if post != nil {
			return post
		}
	}

	r.logger.Info("Detail not resolved", "kind", parsed.Kind, "id", parsed.ID, "original", parsed.Original)
	return nil
}

// Strategy is one way of turning a parsed id into a post.
type Strategy string

const (
	// StrategyPost looks the id up as a post.
	StrategyPost Strategy = "post"
	// StrategyUserMedia looks the id up as a user and builds a pseudo-post
	// from the profile photo or cover.
	StrategyUserMedia Strategy = "user_media"
)

// Plan lists the strategies Resolve tries for parsed, in order. Every plan
// ends with the post lookup as a last resort, and a strategy never appears
// twice since all of them key on the same id.
func (r *Resolver) Plan(parsed domain.ParsedID) []Strategy {
	if parsed.ID == "" {
		return nil
	}

	var steps []Strategy
	switch parsed.Kind {
	case domain.KindPost, domain.KindVideo, domain.KindStory:
		steps = append(steps, StrategyPost)
	case domain.KindProfilePhoto, domain.KindProfileCover:
		// A bare number may have been guessed as profile media by the
		// legacy form; try it as a post first.
		if IsNumeric(parsed.ID) {
			steps = append(steps, StrategyPost)
		}
		steps = append(steps, StrategyUserMedia)
	}
	steps = append(steps, StrategyPost)

	return dedupe(steps)
}

func dedupe(steps []Strategy) []Strategy {
	seen := make(map[Strategy]bool, len(steps))
	out := steps[:0]
	for _, s := range steps {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func (r *Resolver) run(ctx context.Context, step Strategy, parsed domain.ParsedID) (post *domain.Post, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic in %s lookup: %v", step, rec)
		}
	}()

	switch step {
	case StrategyPost:
		return r.lookupPost(ctx, parsed)
	case StrategyUserMedia:
		return r.lookupUserMedia(ctx, parsed)
	default:
		return nil, fmt.Errorf("unknown strategy %q", step)
	}
}

func (r *Resolver) lookupPost(ctx context.Context, parsed domain.ParsedID) (*domain.Post, error) {
	post, err := r.api.GetPostByID(ctx, parsed.ID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.WrapWithCode(errors.ErrNotFound, errors.CodePostNotFound, "empty post response")
	}
	return post, nil
}

func (r *Resolver) lookupUserMedia(ctx context.Context, parsed domain.ParsedID) (*domain.Post, error) {
	user, err := r.api.GetUserByID(ctx, parsed.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.WrapWithCode(errors.ErrNotFound, errors.CodeUserNotFound, "empty user response")
	}
	return r.pseudoPost(parsed, user), nil
}

// pseudoPost presents a user's profile photo or cover as a post.
func (r *Resolver) pseudoPost(parsed domain.ParsedID, user *domain.User) *domain.Post {
	media := user.ProfilePhoto
	if parsed.Kind == domain.KindProfileCover {
		media = user.CoverPhoto
	}

	createdAt := user.CreatedAt
	if createdAt == "" {
		createdAt = r.now().UTC().Format(isoMillis)
	}

	return &domain.Post{
		ID:               0,
		Content:          "",
		MediaURL:         media,
		CreatedAt:        createdAt,
		UserID:           user.ID,
		UniqueID:         parsed.UniqueID,
		UserName:         user.DisplayName(),
		UserProfilePhoto: nonEmpty(user.ProfilePhoto),
	}
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
