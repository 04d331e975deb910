package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/domains/like"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) like.Repository {
	return &postgresRepository{pool: pool}
}

// Insert relies on the (post_id, user_id) unique constraint: under a
// concurrent double-toggle exactly one caller wins the insert and the
// other sees zero rows affected.
func (r *postgresRepository) Insert(ctx context.Context, l *like.Like) (bool, error) {
	query := `
		INSERT INTO likes (id, post_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (post_id, user_id) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, query, l.ID, l.PostID, l.UserID, l.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("insert like: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *postgresRepository) Remove(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return false, fmt.Errorf("remove like: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *postgresRepository) Exists(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM likes WHERE post_id = $1 AND user_id = $2)`,
		postID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check like exists: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) Count(ctx context.Context, postID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM likes WHERE post_id = $1`, postID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) ListLikers(ctx context.Context, postID uuid.UUID) ([]like.LikeView, error) {
	// Left join keeps likes whose user was since deleted; those rows
	// carry a nil user in the view.
	query := `
		SELECT l.id, l.post_id, l.created_at,
		       a.id, a.name, a.surname, a.email, a.avatar
		FROM likes l
		LEFT JOIN authors a ON a.id = l.user_id
		WHERE l.post_id = $1
		ORDER BY l.created_at
	`

	rows, err := r.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("list likers: %w", err)
	}
	defer rows.Close()

	views := []like.LikeView{}
	for rows.Next() {
		var v like.LikeView
		var userID *uuid.UUID
		var name, surname, email, avatar *string

		if err := rows.Scan(&v.ID, &v.PostID, &v.CreatedAt,
			&userID, &name, &surname, &email, &avatar); err != nil {
			return nil, fmt.Errorf("scan liker: %w", err)
		}

		if userID != nil {
			v.User = &author.PublicProfile{
				ID:      *userID,
				Name:    *name,
				Surname: *surname,
				Email:   *email,
				Avatar:  avatar,
			}
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate likers: %w", err)
	}

	return views, nil
}
