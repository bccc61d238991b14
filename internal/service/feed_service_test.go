package service

import (
	"errors"
	"strings"
	"testing"
)

type fakeFilter struct {
	bad bool
	err error
}

func (f fakeFilter) ContainsBadWords(string) (bool, error) { return f.bad, f.err }

func TestCreatePostAwardsBonus(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Noor")

	post, updated, badges, err := env.feed.CreatePost(user.ID, "Planted three trees in the park today!", "")
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}
	if post.UserID != user.ID {
		t.Errorf("post UserID = %d, want %d", post.UserID, user.ID)
	}
	if updated.EcoPoints != PostPoints {
		t.Errorf("EcoPoints = %d, want %d", updated.EcoPoints, PostPoints)
	}
	if !hasBadge(badges, "action-hero") {
		t.Error("first post should unlock action-hero")
	}

	feed, err := env.feed.GetFeed(user.ID, 10)
	if err != nil {
		t.Fatalf("GetFeed() error = %v", err)
	}
	if len(feed) != 1 {
		t.Fatalf("feed len = %d, want 1", len(feed))
	}
	if feed[0].AuthorName != "Noor" {
		t.Errorf("AuthorName = %q, want Noor", feed[0].AuthorName)
	}
}

func TestCreatePostBlockedByFilter(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Noor")
	env.feed.profanity = fakeFilter{bad: true}

	if _, _, _, err := env.feed.CreatePost(user.ID, "something rude", ""); err == nil {
		t.Error("CreatePost() should reject flagged content")
	}
}

func TestCreatePostFilterFailsOpen(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Noor")
	env.feed.profanity = fakeFilter{err: errors.New("filter down")}

	if _, _, _, err := env.feed.CreatePost(user.ID, "Recycled all our glass this week", ""); err != nil {
		t.Errorf("CreatePost() error = %v, want filter failure to be ignored", err)
	}
}

func TestToggleLike(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "Noor")
	viewer := env.createUser(t, "Sam")

	post, _, _, err := env.feed.CreatePost(author.ID, "Switched to a reusable bottle", "")
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	liked, err := env.feed.ToggleLike(post.ID, viewer.ID)
	if err != nil {
		t.Fatalf("ToggleLike() error = %v", err)
	}
	if !liked {
		t.Error("first toggle should like")
	}

	liked, err = env.feed.ToggleLike(post.ID, viewer.ID)
	if err != nil {
		t.Fatalf("ToggleLike() second error = %v", err)
	}
	if liked {
		t.Error("second toggle should unlike")
	}

	if _, err := env.feed.ToggleLike(9999, viewer.ID); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("ToggleLike() missing post error = %v, want ErrPostNotFound", err)
	}
}

func TestAddComment(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "Noor")
	commenter := env.createUser(t, "Sam")

	post, _, _, err := env.feed.CreatePost(author.ID, "Organized a beach cleanup", "")
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	if _, err := env.feed.AddComment(post.ID, commenter.ID, "Amazing work!"); err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}

	feed, err := env.feed.GetFeed(commenter.ID, 10)
	if err != nil {
		t.Fatalf("GetFeed() error = %v", err)
	}
	if len(feed) != 1 || len(feed[0].Comments) != 1 {
		t.Fatalf("comment missing from feed: %+v", feed)
	}
	if feed[0].Comments[0].AuthorName != "Sam" {
		t.Errorf("comment author = %q, want Sam", feed[0].Comments[0].AuthorName)
	}

	if _, err := env.feed.AddComment(9999, commenter.ID, "hello"); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("AddComment() missing post error = %v, want ErrPostNotFound", err)
	}
}

func TestSharePayload(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Noor")

	post, _, _, err := env.feed.CreatePost(user.ID, "Composted our food scraps", "")
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	payload := env.feed.SharePayload(post, user.Name)
	if !strings.Contains(payload, user.Name) || !strings.Contains(payload, post.Content) {
		t.Errorf("SharePayload() = %q, want author and content", payload)
	}
}
