package postgres

import (
	"context"
	"time"

	"github.com/UniPortal/feed-service/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type commentRepo struct {
	db *pgxpool.Pool
}

func newCommentRepo(db *pgxpool.Pool) Comment {
	return &commentRepo{
		db: db,
	}
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	comment.CreatedAt = time.Now()
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO comments(parent_id, post_id, author_id, content, created_at) VALUES($1, $2, $3, $4, $5) RETURNING id",
		comment.ParentID,
		comment.PostID,
		comment.AuthorID,
		comment.Content,
		comment.CreatedAt,
	).Scan(&comment.ID); err != nil {
		return nil, err
	}

	return &comment, nil
}

func (r *commentRepo) FindByID(ctx context.Context, id int64) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.QueryRow(
		ctx,
		"SELECT c.id, c.parent_id, c.post_id, c.author_id, c.content, c.created_at FROM comments c WHERE c.id = $1",
		id,
	).Scan(
		&comment.ID,
		&comment.ParentID,
		&comment.PostID,
		&comment.AuthorID,
		&comment.Content,
		&comment.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &comment, nil
}

// FindPostComments returns the flat, unordered comment list of a post.
func (r *commentRepo) FindPostComments(ctx context.Context, postID int64) ([]*model.FullComment, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT
		c.id, c.parent_id, c.post_id, c.author_id, c.content, c.created_at, u.username, u.display_name, u.avatar_url, u.department
		FROM comments c
		LEFT JOIN cached_users u ON c.author_id = u.id
		WHERE c.post_id = $1`,
		postID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*model.FullComment{}
	for rows.Next() {
		var (
			comment  model.FullComment
			username *string
		)
		if err := rows.Scan(
			&comment.Comment.ID,
			&comment.Comment.ParentID,
			&comment.Comment.PostID,
			&comment.Comment.AuthorID,
			&comment.Comment.Content,
			&comment.Comment.CreatedAt,
			&username,
			&comment.Author.DisplayName,
			&comment.Author.AvatarURL,
			&comment.Author.Department,
		); err != nil {
			return nil, err
		}
		if username != nil {
			comment.Author.Username = *username
		}

		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}
