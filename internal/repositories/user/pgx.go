package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/social-detail-bot/internal/domain"
	"github.com/orgball2608/social-detail-bot/internal/repositories"
	"github.com/orgball2608/social-detail-bot/pkg/logger"
)

type PgxRepository struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

func NewPgxRepository(pool *pgxpool.Pool, logger logger.Logger) *PgxRepository {
	return &PgxRepository{
		pool:   pool,
		logger: logger.WithComponent("UserRepo"),
	}
}

var _ Repository = (*PgxRepository)(nil)

var userColumns = []string{
	"id", "username", "first_name", "last_name",
	"profile_photo", "cover_photo", "created_at", "COALESCE(unique_id, '')",
}

func (r *PgxRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *PgxRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, sq.Expr("lower(username) = lower(?)", username))
}

func (r *PgxRepository) getOne(ctx context.Context, where sq.Sqlizer) (*domain.User, error) {
	query, args, err := repositories.SqBuilder.
		Select(userColumns...).
		From("users").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	var (
		user      domain.User
		createdAt time.Time
	)
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.ProfilePhoto,
		&user.CoverPhoto,
		&createdAt,
		&user.UniqueID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.CreatedAt = repositories.FormatTime(createdAt)
	return &user, nil
}

func (r *PgxRepository) ListMissingUniqueID(ctx context.Context, limit int) ([]int64, error) {
	query, args, err := repositories.SqBuilder.
		Select("id").
		From("users").
		Where(sq.Or{sq.Eq{"unique_id": nil}, sq.Eq{"unique_id": ""}}).
		OrderBy("id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users without unique id: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return ids, nil
}

func (r *PgxRepository) SetUniqueID(ctx context.Context, id int64, uniqueID string) error {
	query, args, err := repositories.SqBuilder.
		Update("users").
		Set("unique_id", uniqueID).
		Where(sq.Eq{"id": id}).
		Where(sq.Or{sq.Eq{"unique_id": nil}, sq.Eq{"unique_id": ""}}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == repositories.UniqueViolation {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to set user unique id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PgxRepository) UniqueIDExists(ctx context.Context, uniqueID string) (bool, error) {
	query, args, err := repositories.SqBuilder.
		Select("1").
		From("users").
		Where(sq.Eq{"unique_id": uniqueID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, repositories.ErrBadQuery
	}

	var one int
	err = r.pool.QueryRow(ctx, query, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check user unique id: %w", err)
	}

	return true, nil
}
