package post

import (
	"context"
	"errors"

	"github.com/orgball2608/social-detail-bot/internal/domain"
)

var (
	ErrAlreadyExists = errors.New("post unique id already taken")
	ErrNotFound      = errors.New("post not found")
)

//go:generate go run go.uber.org/mock/mockgen -source=post.go -destination=mocks/mock.go
type Repository interface {
	// GetByID returns the post joined with its author's display fields
	GetByID(ctx context.Context, id int64) (*domain.Post, error)

	// ListMissingUniqueID returns up to limit ids of posts without a unique id
	ListMissingUniqueID(ctx context.Context, limit int) ([]int64, error)

	// SetUniqueID assigns a unique id to a post that has none yet
	SetUniqueID(ctx context.Context, id int64, uniqueID string) error

	// UniqueIDExists checks whether any post already uses uniqueID
	UniqueIDExists(ctx context.Context, uniqueID string) (bool, error)
}
