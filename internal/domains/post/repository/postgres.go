package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/domains/post"
	"blog-backend/pkg/cache"
)

const postViewCacheTTL = 5 * time.Minute

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) post.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func postViewCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("post:view:%s", id)
}

const postColumns = `
	id, category, title, cover, read_time_value, read_time_unit,
	author_id, content, comments, created_at, updated_at
`

func (r *postgresRepository) Create(ctx context.Context, p *post.BlogPost) error {
	commentsJSON, err := json.Marshal(p.Comments)
	if err != nil {
		return fmt.Errorf("marshal comments: %w", err)
	}

	query := `
		INSERT INTO blog_posts (` + postColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = r.pool.Exec(ctx, query,
		p.ID,
		p.Category,
		p.Title,
		p.Cover,
		p.ReadTime.Value,
		p.ReadTime.Unit,
		p.AuthorID,
		p.Content,
		commentsJSON,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create blog post: %w", err)
	}

	return nil
}

func scanPost(row pgx.Row) (*post.BlogPost, error) {
	p := &post.BlogPost{}
	var commentsJSON []byte

	err := row.Scan(
		&p.ID,
		&p.Category,
		&p.Title,
		&p.Cover,
		&p.ReadTime.Value,
		&p.ReadTime.Unit,
		&p.AuthorID,
		&p.Content,
		&commentsJSON,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Comments = []post.Comment{}
	if len(commentsJSON) > 0 {
		if err := json.Unmarshal(commentsJSON, &p.Comments); err != nil {
			return nil, fmt.Errorf("unmarshal comments: %w", err)
		}
	}

	return p, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*post.BlogPost, error) {
	query := `SELECT ` + postColumns + ` FROM blog_posts WHERE id = $1`

	p, err := scanPost(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.ErrPostNotFound
		}
		return nil, fmt.Errorf("get blog post: %w", err)
	}

	return p, nil
}

func (r *postgresRepository) GetView(ctx context.Context, id uuid.UUID) (*post.PostView, error) {
	cacheKey := postViewCacheKey(id)

	var cached post.PostView
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	views, err := r.buildViews(ctx, []post.BlogPost{*p})
	if err != nil {
		return nil, err
	}
	view := &views[0]

	_ = r.cache.Set(ctx, cacheKey, view, postViewCacheTTL)
	return view, nil
}

func (r *postgresRepository) List(ctx context.Context, offset, limit int) ([]post.PostView, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM blog_posts`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count blog posts: %w", err)
	}

	query := `
		SELECT ` + postColumns + `
		FROM blog_posts
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2
	`

	posts, err := r.queryPosts(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	views, err := r.buildViews(ctx, posts)
	if err != nil {
		return nil, 0, err
	}

	return views, total, nil
}

func (r *postgresRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]post.PostView, error) {
	query := `
		SELECT ` + postColumns + `
		FROM blog_posts
		WHERE author_id = $1
		ORDER BY created_at DESC
	`

	posts, err := r.queryPosts(ctx, query, authorID)
	if err != nil {
		return nil, err
	}

	return r.buildViews(ctx, posts)
}

func (r *postgresRepository) queryPosts(ctx context.Context, query string, args ...interface{}) ([]post.BlogPost, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query blog posts: %w", err)
	}
	defer rows.Close()

	posts := []post.BlogPost{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blog post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blog posts: %w", err)
	}

	return posts, nil
}

// buildViews resolves the author and comment-user projections for a
// batch of posts with a single profile query. Deleted accounts resolve
// to nil: dangling references are tolerated, not an error.
func (r *postgresRepository) buildViews(ctx context.Context, posts []post.BlogPost) ([]post.PostView, error) {
	idSet := map[uuid.UUID]bool{}
	for _, p := range posts {
		idSet[p.AuthorID] = true
		for _, c := range p.Comments {
			idSet[c.UserID] = true
		}
	}

	profiles, err := r.fetchProfiles(ctx, idSet)
	if err != nil {
		return nil, err
	}

	views := make([]post.PostView, 0, len(posts))
	for _, p := range posts {
		view := post.PostView{
			ID:        p.ID,
			Category:  p.Category,
			Title:     p.Title,
			Cover:     p.Cover,
			ReadTime:  p.ReadTime,
			Content:   p.Content,
			Comments:  make([]post.CommentView, 0, len(p.Comments)),
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		}

		if profile, ok := profiles[p.AuthorID]; ok {
			view.Author = &profile
		}

		for _, c := range p.Comments {
			cv := post.CommentView{
				ID:   c.ID,
				Text: c.Text,
				Date: c.Date,
			}
			if profile, ok := profiles[c.UserID]; ok {
				cv.User = &profile
			}
			view.Comments = append(view.Comments, cv)
		}

		views = append(views, view)
	}

	return views, nil
}

func (r *postgresRepository) fetchProfiles(ctx context.Context, idSet map[uuid.UUID]bool) (map[uuid.UUID]author.PublicProfile, error) {
	if len(idSet) == 0 {
		return map[uuid.UUID]author.PublicProfile{}, nil
	}

	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id.String())
	}

	query := `
		SELECT id, name, surname, email, avatar
		FROM authors
		WHERE id = ANY($1::uuid[])
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch author profiles: %w", err)
	}
	defer rows.Close()

	profiles := map[uuid.UUID]author.PublicProfile{}
	for rows.Next() {
		var p author.PublicProfile
		if err := rows.Scan(&p.ID, &p.Name, &p.Surname, &p.Email, &p.Avatar); err != nil {
			return nil, fmt.Errorf("scan author profile: %w", err)
		}
		profiles[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate author profiles: %w", err)
	}

	return profiles, nil
}

func (r *postgresRepository) Update(ctx context.Context, p *post.BlogPost) error {
	commentsJSON, err := json.Marshal(p.Comments)
	if err != nil {
		return fmt.Errorf("marshal comments: %w", err)
	}

	query := `
		UPDATE blog_posts
		SET category = $2, title = $3, cover = $4,
		    read_time_value = $5, read_time_unit = $6,
		    author_id = $7, content = $8, comments = $9, updated_at = $10
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Category,
		p.Title,
		p.Cover,
		p.ReadTime.Value,
		p.ReadTime.Unit,
		p.AuthorID,
		p.Content,
		commentsJSON,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update blog post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return post.ErrPostNotFound
	}

	_ = r.cache.Delete(ctx, postViewCacheKey(p.ID))
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete blog post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return post.ErrPostNotFound
	}

	_ = r.cache.Delete(ctx, postViewCacheKey(id))
	return nil
}

func (r *postgresRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM blog_posts WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check blog post exists: %w", err)
	}
	return exists, nil
}
