package post

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/social-detail-bot/internal/domain"
	"github.com/orgball2608/social-detail-bot/internal/repositories"
	"github.com/orgball2608/social-detail-bot/pkg/logger"
)

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("PostRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	query, args, err := repositories.SqBuilder.
		Select(
			"p.id", "p.content", "p.media_url", "p.created_at", "p.user_id",
			"COALESCE(p.unique_id, '')",
			"u.username", "u.first_name", "u.last_name", "u.profile_photo",
		).
		From("posts p").
		Join("users u ON u.id = p.user_id").
		Where(sq.Eq{"p.id": id}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	var (
		post                          domain.Post
		createdAt                     time.Time
		username, firstName, lastName string
	)
	err = p.pg.QueryRow(ctx, query, args...).Scan(
		&post.ID,
		&post.Content,
		&post.MediaURL,
		&createdAt,
		&post.UserID,
		&post.UniqueID,
		&username,
		&firstName,
		&lastName,
		&post.UserProfilePhoto,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	post.CreatedAt = repositories.FormatTime(createdAt)
	post.UserName = username
	if post.UserName == "" {
		post.UserName = strings.TrimSpace(firstName + " " + lastName)
	}

	return &post, nil
}

func (p *Pgx) ListMissingUniqueID(ctx context.Context, limit int) ([]int64, error) {
	query, args, err := repositories.SqBuilder.
		Select("id").
		From("posts").
		Where(sq.Or{sq.Eq{"unique_id": nil}, sq.Eq{"unique_id": ""}}).
		OrderBy("id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts without unique id: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan post id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return ids, nil
}

func (p *Pgx) SetUniqueID(ctx context.Context, id int64, uniqueID string) error {
	query, args, err := repositories.SqBuilder.
		Update("posts").
		Set("unique_id", uniqueID).
		Where(sq.Eq{"id": id}).
		Where(sq.Or{sq.Eq{"unique_id": nil}, sq.Eq{"unique_id": ""}}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	tag, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == repositories.UniqueViolation {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to set post unique id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (p *Pgx) UniqueIDExists(ctx context.Context, uniqueID string) (bool, error) {
	query, args, err := repositories.SqBuilder.
		Select("1").
		From("posts").
		Where(sq.Eq{"unique_id": uniqueID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, repositories.ErrBadQuery
	}

	var one int
	err = p.pg.QueryRow(ctx, query, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check post unique id: %w", err)
	}

	return true, nil
}
