package service

import (
	"errors"
	"fmt"
	"strings"

	"ecoquest/internal/models"
	"ecoquest/internal/repository"
)

// PostPoints is awarded for sharing an eco action on the feed
const PostPoints = 50

var ErrPostNotFound = errors.New("post not found")

// ProfanityChecker screens user-generated text. Satisfied by the
// database-backed bad words filter.
type ProfanityChecker interface {
	ContainsBadWords(text string) (bool, error)
}

// FeedService handles the community action feed
type FeedService struct {
	feedRepo  *repository.FeedRepository
	profile   *ProfileService
	profanity ProfanityChecker
}

// NewFeedService creates a new feed service
func NewFeedService(feedRepo *repository.FeedRepository, profile *ProfileService, profanity ProfanityChecker) *FeedService {
	return &FeedService{
		feedRepo:  feedRepo,
		profile:   profile,
		profanity: profanity,
	}
}

// checkContent screens text through the profanity filter. A filter error
// fails open: moderation never blocks the feature outright.
func (s *FeedService) checkContent(text string) error {
	if s.profanity == nil {
		return nil
	}
	bad, err := s.profanity.ContainsBadWords(text)
	if err != nil {
		return nil
	}
	if bad {
		return errors.New("please keep your post friendly")
	}
	return nil
}

// CreatePost shares an eco action and awards the posting bonus
func (s *FeedService) CreatePost(userID int64, content, imagePath string) (*models.Post, *models.User, []models.Achievement, error) {
	content = strings.TrimSpace(content)
	if err := s.checkContent(content); err != nil {
		return nil, nil, nil, err
	}

	post, err := s.feedRepo.CreatePost(userID, content, imagePath)
	if err != nil {
		return nil, nil, nil, err
	}

	user, badges, err := s.profile.AwardPoints(userID, PostPoints)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to award post points: %w", err)
	}
	return post, user, badges, nil
}

// GetFeed returns the feed for the viewing user
func (s *FeedService) GetFeed(viewerID int64, limit int) ([]models.PostWithDetails, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.feedRepo.GetPosts(viewerID, limit)
}

// ToggleLike flips the viewer's like on a post
func (s *FeedService) ToggleLike(postID, userID int64) (bool, error) {
	post, err := s.feedRepo.GetPostByID(postID)
	if err != nil {
		return false, err
	}
	if post == nil {
		return false, ErrPostNotFound
	}
	return s.feedRepo.ToggleLike(postID, userID)
}

// AddComment replies to a post
func (s *FeedService) AddComment(postID, userID int64, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if err := s.checkContent(content); err != nil {
		return nil, err
	}

	post, err := s.feedRepo.GetPostByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return s.feedRepo.CreateComment(postID, userID, content)
}

// SharePayload builds the text a player copies when sharing a post
// outside the app
func (s *FeedService) SharePayload(post *models.Post, authorName string) string {
	return fmt.Sprintf("%s on EcoQuest: %s", authorName, post.Content)
}
