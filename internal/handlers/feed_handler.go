package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"ecoquest/internal/service"
	"ecoquest/internal/validation"
)

// FeedHandler handles the community action feed
type FeedHandler struct {
	feedService *service.FeedService
	middleware  *Middleware
	templates   *template.Template
	uploadsPath string
	maxUpload   int64
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(feedService *service.FeedService, middleware *Middleware, templates *template.Template, uploadsPath string, maxUpload int64) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
		middleware:  middleware,
		templates:   templates,
		uploadsPath: uploadsPath,
		maxUpload:   maxUpload,
	}
}

// ShowFeed renders the action feed
func (h *FeedHandler) ShowFeed(w http.ResponseWriter, r *http.Request) {
	h.renderFeed(w, r, "")
}

func (h *FeedHandler) renderFeed(w http.ResponseWriter, r *http.Request, errMsg string) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	posts, err := h.feedService.GetFeed(user.ID, 50)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load feed", err)
		return
	}

	data := FeedViewData{
		Title:     "Action Feed",
		User:      user,
		Posts:     posts,
		Error:     errMsg,
		CSRFToken: h.middleware.CSRFToken(r),
	}
	if err := h.templates.ExecuteTemplate(w, "feed.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to render feed", err)
	}
}

// CreatePost shares an eco action, with an optional photo
func (h *FeedHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	content := strings.TrimSpace(r.FormValue("content"))
	if err := validation.ValidatePostContent(content); err != nil {
		h.renderFeed(w, r, err.Error())
		return
	}

	imagePath, err := h.saveUpload(r, "image")
	if err != nil {
		h.renderFeed(w, r, err.Error())
		return
	}

	if _, _, _, err := h.feedService.CreatePost(user.ID, content, imagePath); err != nil {
		h.renderFeed(w, r, err.Error())
		return
	}
	http.Redirect(w, r, "/feed", http.StatusSeeOther)
}

// ToggleLike likes or unlikes a post
func (h *FeedHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	postID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	if _, err := h.feedService.ToggleLike(postID, user.ID); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			http.NotFound(w, r)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to toggle like", err)
		return
	}
	http.Redirect(w, r, "/feed", http.StatusSeeOther)
}

// AddComment replies to a post
func (h *FeedHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	postID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	comment := strings.TrimSpace(r.FormValue("content"))
	if err := validation.ValidateCommentContent(comment); err != nil {
		h.renderFeed(w, r, err.Error())
		return
	}

	if _, err := h.feedService.AddComment(postID, user.ID, comment); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			http.NotFound(w, r)
			return
		}
		h.renderFeed(w, r, err.Error())
		return
	}
	http.Redirect(w, r, "/feed", http.StatusSeeOther)
}

// saveUpload stores an optional image upload and returns its public path.
// An absent file is not an error.
func (h *FeedHandler) saveUpload(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", fmt.Errorf("invalid upload")
	}
	defer file.Close()

	return saveImageUpload(file, header, h.uploadsPath)
}

// saveImageUpload writes an uploaded image under a random name
func saveImageUpload(file multipart.File, header *multipart.FileHeader, dir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return "", fmt.Errorf("unsupported image type %s", ext)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to prepare uploads directory")
	}

	name := uuid.NewString() + ext
	path := filepath.Join(dir, name)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to store upload")
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to store upload")
	}

	log.Printf("Stored upload %s (%d bytes)", name, header.Size)
	return "/static/uploads/" + name, nil
}
