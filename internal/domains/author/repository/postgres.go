package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/author"
	"blog-backend/pkg/cache"
)

const (
	uniqueViolation = "23505"
	authorCacheTTL  = 10 * time.Minute
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) author.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func authorCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("author:%s", id)
}

func (r *postgresRepository) Create(ctx context.Context, a *author.Author) error {
	query := `
		INSERT INTO authors (
			id, name, surname, email, birth_date,
			password_hash, avatar, role, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.Name,
		a.Surname,
		a.Email,
		a.BirthDate,
		a.PasswordHash,
		a.Avatar,
		a.Role,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return author.ErrEmailAlreadyExists
		}
		return fmt.Errorf("create author: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	cacheKey := authorCacheKey(id)

	var cached author.Author
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	a, err := r.scanOne(ctx, `WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}

	_ = r.cache.Set(ctx, cacheKey, a, authorCacheTTL)
	return a, nil
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*author.Author, error) {
	return r.scanOne(ctx, `WHERE email = $1`, email)
}

func (r *postgresRepository) scanOne(ctx context.Context, where string, arg interface{}) (*author.Author, error) {
	query := `
		SELECT id, name, surname, email, birth_date,
		       password_hash, avatar, role, created_at, updated_at
		FROM authors ` + where

	a := &author.Author{}
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&a.ID,
		&a.Name,
		&a.Surname,
		&a.Email,
		&a.BirthDate,
		&a.PasswordHash,
		&a.Avatar,
		&a.Role,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("find author: %w", err)
	}

	return a, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]author.Author, error) {
	query := `
		SELECT id, name, surname, email, birth_date,
		       password_hash, avatar, role, created_at, updated_at
		FROM authors
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	authors := []author.Author{}
	for rows.Next() {
		var a author.Author
		if err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Surname,
			&a.Email,
			&a.BirthDate,
			&a.PasswordHash,
			&a.Avatar,
			&a.Role,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate authors: %w", err)
	}

	return authors, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *author.Author) error {
	query := `
		UPDATE authors
		SET name = $2, surname = $3, email = $4, birth_date = $5,
		    avatar = $6, updated_at = $7
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		a.ID,
		a.Name,
		a.Surname,
		a.Email,
		a.BirthDate,
		a.Avatar,
		a.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return author.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	_ = r.cache.Delete(ctx, authorCacheKey(a.ID))
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	_ = r.cache.Delete(ctx, authorCacheKey(id))
	return nil
}
