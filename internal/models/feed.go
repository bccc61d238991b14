package models

import "time"

// Post represents an eco action shared on the community feed
type Post struct {
	ID        int64
	UserID    int64
	Content   string
	ImagePath string
	CreatedAt time.Time
}

// PostWithDetails combines a post with its author and engagement counts
type PostWithDetails struct {
	Post         Post
	AuthorName   string
	AuthorAvatar string
	LikeCount    int
	CommentCount int
	LikedByMe    bool
	Comments     []CommentWithAuthor
}

// Comment represents a reply on a feed post
type Comment struct {
	ID        int64
	PostID    int64
	UserID    int64
	Content   string
	CreatedAt time.Time
}

// CommentWithAuthor pairs a comment with its author's display name
type CommentWithAuthor struct {
	Comment    Comment
	AuthorName string
}
