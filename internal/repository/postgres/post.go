package postgres

import (
	"context"
	"time"

	"github.com/UniPortal/feed-service/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const fullPostColumns = `p.id, p.author_id, p.content, p.image_url, p.department,
		p.likes_count, p.comments_count, p.shares_count, p.created_at,
		u.username, u.display_name, u.avatar_url, u.department`

type postRepo struct {
	db *pgxpool.Pool
}

func newPostRepo(db *pgxpool.Pool) Post {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	post.CreatedAt = time.Now()
	post.LikesCount = 0
	post.CommentsCount = 0
	post.SharesCount = 0
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO posts(author_id, content, image_url, department, created_at) VALUES($1, $2, $3, $4, $5) RETURNING id",
		post.AuthorID,
		post.Content,
		post.ImageURL,
		post.Department,
		post.CreatedAt,
	).Scan(&post.ID); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+fullPostColumns+`
		FROM posts p
		LEFT JOIN cached_users u ON p.author_id = u.id
		WHERE p.id = $1`,
		id,
	)

	post, err := scanFullPost(row)
	if err != nil {
		return nil, err
	}

	return post, nil
}

func (r *postRepo) FindFeed(ctx context.Context, order model.FeedOrder, department *string, limit int) ([]*model.FullPost, error) {
	maxLimit(&limit)

	var rows pgx.Rows
	var err error
	switch order {
	case model.FeedPopular:
		rows, err = r.db.Query(
			ctx,
			`SELECT `+fullPostColumns+`
			FROM posts p
			LEFT JOIN cached_users u ON p.author_id = u.id
			WHERE p.likes_count >= $1 AND ($2::text IS NULL OR p.department = $2)
			ORDER BY p.likes_count DESC, p.created_at DESC
			LIMIT $3`,
			model.PopularMinLikes,
			department,
			limit,
		)
	default:
		rows, err = r.db.Query(
			ctx,
			`SELECT `+fullPostColumns+`
			FROM posts p
			LEFT JOIN cached_users u ON p.author_id = u.id
			WHERE ($1::text IS NULL OR p.department = $1)
			ORDER BY p.created_at DESC
			LIMIT $2`,
			department,
			limit,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []*model.FullPost{}
	for rows.Next() {
		post, err := scanFullPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepo) IncrCommentsCount(ctx context.Context, postID int64) error {
	_, err := r.db.Exec(ctx, "UPDATE posts SET comments_count = comments_count + 1 WHERE id = $1", postID)
	return err
}

func scanFullPost(row pgx.Row) (*model.FullPost, error) {
	var (
		post     model.FullPost
		username *string
	)
	if err := row.Scan(
		&post.Post.ID,
		&post.Post.AuthorID,
		&post.Post.Content,
		&post.Post.ImageURL,
		&post.Post.Department,
		&post.Post.LikesCount,
		&post.Post.CommentsCount,
		&post.Post.SharesCount,
		&post.Post.CreatedAt,
		&username,
		&post.Author.DisplayName,
		&post.Author.AvatarURL,
		&post.Author.Department,
	); err != nil {
		return nil, err
	}

	if username != nil {
		post.Author.Username = *username
	}

	return &post, nil
}
