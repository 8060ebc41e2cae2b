package api

import (
	"context"

	"github.com/orgball2608/social-detail-bot/internal/domain"
)

// Client is the backend the detail resolver reads users and posts from.
// Both lookups fail with an error wrapping errors.ErrNotFound when nothing
// matches id.
//
//go:generate go run go.uber.org/mock/mockgen -source=api.go -destination=mocks/mock.go
type Client interface {
	// GetUserByID looks a user up by numeric id or username.
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	GetPostByID(ctx context.Context, id string) (*domain.Post, error)
}
