package repository

import (
	"database/sql"
	"fmt"
	"time"

	"ecoquest/internal/database"
	"ecoquest/internal/models"
)

// FeedRepository handles database operations for the community action feed
type FeedRepository struct {
	db database.DBTX
}

// NewFeedRepository creates a new feed repository
func NewFeedRepository(db database.DBTX) *FeedRepository {
	return &FeedRepository{db: db}
}

// CreatePost inserts a new action post
func (r *FeedRepository) CreatePost(userID int64, content, imagePath string) (*models.Post, error) {
	query := `
		INSERT INTO posts (user_id, content, image_path)
		VALUES (?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, userID, content, imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return &models.Post{
		ID:        id,
		UserID:    userID,
		Content:   content,
		ImagePath: imagePath,
		CreatedAt: time.Now(),
	}, nil
}

// GetPosts returns the feed newest first, with author and engagement data
// resolved for the viewing user
func (r *FeedRepository) GetPosts(viewerID int64, limit int) ([]models.PostWithDetails, error) {
	query := `
		SELECT p.id, p.user_id, p.content, p.image_path, p.created_at,
			u.name,
			(SELECT COUNT(*) FROM post_likes WHERE post_id = p.id),
			(SELECT COUNT(*) FROM comments WHERE post_id = p.id),
			(SELECT COUNT(*) FROM post_likes WHERE post_id = p.id AND user_id = ?)
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, viewerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []models.PostWithDetails
	for rows.Next() {
		var p models.PostWithDetails
		var likedByMe int
		if err := rows.Scan(
			&p.Post.ID, &p.Post.UserID, &p.Post.Content, &p.Post.ImagePath, &p.Post.CreatedAt,
			&p.AuthorName, &p.LikeCount, &p.CommentCount, &likedByMe,
		); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		p.LikedByMe = likedByMe > 0
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range posts {
		comments, err := r.getComments(posts[i].Post.ID)
		if err != nil {
			return nil, err
		}
		posts[i].Comments = comments
	}
	return posts, nil
}

// getComments returns a post's comments oldest first
func (r *FeedRepository) getComments(postID int64) ([]models.CommentWithAuthor, error) {
	query := `
		SELECT c.id, c.post_id, c.user_id, c.content, c.created_at, u.name
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = ?
		ORDER BY c.created_at ASC
	`
	rows, err := r.db.Query(query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []models.CommentWithAuthor
	for rows.Next() {
		var c models.CommentWithAuthor
		if err := rows.Scan(
			&c.Comment.ID, &c.Comment.PostID, &c.Comment.UserID,
			&c.Comment.Content, &c.Comment.CreatedAt, &c.AuthorName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// GetPostByID retrieves one post. Returns nil when absent.
func (r *FeedRepository) GetPostByID(id int64) (*models.Post, error) {
	query := "SELECT id, user_id, content, image_path, created_at FROM posts WHERE id = ?"
	p := &models.Post{}
	err := r.db.QueryRow(query, id).Scan(&p.ID, &p.UserID, &p.Content, &p.ImagePath, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return p, nil
}

// ToggleLike flips the viewer's like on a post and reports the new state
func (r *FeedRepository) ToggleLike(postID, userID int64) (liked bool, err error) {
	del := "DELETE FROM post_likes WHERE post_id = ? AND user_id = ?"
	result, err := r.db.Exec(del, postID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to unlike post: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n > 0 {
		return false, nil
	}

	ins := "INSERT INTO post_likes (post_id, user_id) VALUES (?, ?)"
	if _, err := r.db.Exec(ins, postID, userID); err != nil {
		return false, fmt.Errorf("failed to like post: %w", err)
	}
	return true, nil
}

// CreateComment inserts a reply on a post
func (r *FeedRepository) CreateComment(postID, userID int64, content string) (*models.Comment, error) {
	query := `
		INSERT INTO comments (post_id, user_id, content)
		VALUES (?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, postID, userID, content)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return &models.Comment{
		ID:        id,
		PostID:    postID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	}, nil
}

// CountPostsByUser returns how many actions a user has shared
func (r *FeedRepository) CountPostsByUser(userID int64) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM posts WHERE user_id = ?"
	if err := r.db.QueryRow(query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}
