package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type interactionRepo struct {
	db *pgxpool.Pool
}

func newInteractionRepo(db *pgxpool.Pool) Interaction {
	return &interactionRepo{
		db: db,
	}
}

// ToggleLike removes the user's like if present, otherwise adds it, and keeps
// posts.likes_count in step within one transaction.
func (r *interactionRepo) ToggleLike(ctx context.Context, postID int64, userID uuid.UUID) (bool, int64, error) {
	var (
		liked      bool
		likesCount int64
	)
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, "DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2", postID, userID)
		if err != nil {
			return err
		}

		if tag.RowsAffected() > 0 {
			return tx.QueryRow(
				ctx,
				"UPDATE posts SET likes_count = GREATEST(likes_count - 1, 0) WHERE id = $1 RETURNING likes_count",
				postID,
			).Scan(&likesCount)
		}

		if _, err := tx.Exec(ctx, "INSERT INTO post_likes(post_id, user_id) VALUES($1, $2)", postID, userID); err != nil {
			return err
		}
		liked = true

		return tx.QueryRow(
			ctx,
			"UPDATE posts SET likes_count = likes_count + 1 WHERE id = $1 RETURNING likes_count",
			postID,
		).Scan(&likesCount)
	})
	if err != nil {
		return false, 0, err
	}

	return liked, likesCount, nil
}

func (r *interactionRepo) ToggleFollow(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) (bool, error) {
	var following bool
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, "DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2", followerID, followeeID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() > 0 {
			return nil
		}

		if _, err := tx.Exec(ctx, "INSERT INTO follows(follower_id, followee_id) VALUES($1, $2)", followerID, followeeID); err != nil {
			return err
		}
		following = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return following, nil
}

// FindLikedPostIDs returns which of postIDs the user has liked.
func (r *interactionRepo) FindLikedPostIDs(ctx context.Context, userID uuid.UUID, postIDs []int64) ([]int64, error) {
	if len(postIDs) == 0 {
		return []int64{}, nil
	}

	rows, err := r.db.Query(
		ctx,
		"SELECT l.post_id FROM post_likes l WHERE l.user_id = $1 AND l.post_id = ANY($2)",
		userID,
		postIDs,
	)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowTo[int64])
}

// FindFollowedAuthorIDs returns which of authorIDs the user follows.
func (r *interactionRepo) FindFollowedAuthorIDs(ctx context.Context, userID uuid.UUID, authorIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(authorIDs) == 0 {
		return []uuid.UUID{}, nil
	}

	rows, err := r.db.Query(
		ctx,
		"SELECT f.followee_id FROM follows f WHERE f.follower_id = $1 AND f.followee_id = ANY($2)",
		userID,
		authorIDs,
	)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}
