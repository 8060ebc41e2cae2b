package apiimpl

import (
	"context"
	stderrors "errors"
	"strconv"

	"github.com/orgball2608/social-detail-bot/internal/api"
	"github.com/orgball2608/social-detail-bot/internal/domain"
	"github.com/orgball2608/social-detail-bot/internal/repositories/post"
	"github.com/orgball2608/social-detail-bot/internal/repositories/user"
	"github.com/orgball2608/social-detail-bot/pkg/errors"
	"github.com/orgball2608/social-detail-bot/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	PostRepo post.Repository
	UserRepo user.Repository
	Logger   logger.Logger
}

// StoreImpl serves api.Client straight from the database.
type StoreImpl struct {
	PostRepo post.Repository
	UserRepo user.Repository
	Logger   logger.Logger
}

func New(opts Opts) *StoreImpl {
	return &StoreImpl{
		PostRepo: opts.PostRepo,
		UserRepo: opts.UserRepo,
		Logger:   opts.Logger.WithComponent("StoreAPI"),
	}
}

var _ api.Client = (*StoreImpl)(nil)

// GetUserByID accepts a numeric id or a username. A numeric id that matches
// no user is retried as a username.
func (s *StoreImpl) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		u, err := s.UserRepo.GetByID(ctx, n)
		if err == nil {
			return u, nil
		}
		if !stderrors.Is(err, user.ErrNotFound) {
			return nil, errors.Wrap(err, "get user by id")
		}
	}

	u, err := s.UserRepo.GetByUsername(ctx, id)
	if err != nil {
		if stderrors.Is(err, user.ErrNotFound) {
			return nil, errors.WrapWithCode(errors.ErrNotFound, errors.CodeUserNotFound, "user "+strconv.Quote(id))
		}
		return nil, errors.Wrap(err, "get user by username")
	}
	return u, nil
}

// GetPostByID only matches numeric ids; anything else is not found without
// touching the database.
func (s *StoreImpl) GetPostByID(ctx context.Context, id string) (*domain.Post, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, errors.WrapWithCode(errors.ErrNotFound, errors.CodePostNotFound, "post "+strconv.Quote(id))
	}

	p, err := s.PostRepo.GetByID(ctx, n)
	if err != nil {
		if stderrors.Is(err, post.ErrNotFound) {
			return nil, errors.WrapWithCode(errors.ErrNotFound, errors.CodePostNotFound, "post "+strconv.Quote(id))
		}
		return nil, errors.Wrap(err, "get post by id")
	}
	return p, nil
}
