package user

import (
	"context"
	"errors"

	"github.com/orgball2608/social-detail-bot/internal/domain"
)

var (
	ErrAlreadyExists = errors.New("user unique id already taken")
	ErrNotFound      = errors.New("user not found")
)

//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=mocks/mock.go
type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername matches usernames case-insensitively
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	ListMissingUniqueID(ctx context.Context, limit int) ([]int64, error)
	SetUniqueID(ctx context.Context, id int64, uniqueID string) error
	UniqueIDExists(ctx context.Context, uniqueID string) (bool, error)
}
