package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"bloglist/internal/logger"
	"bloglist/internal/models"
	"bloglist/internal/repository"
)

// Domain errors for blog flows.
var (
	ErrForbidden    = errors.New("only the owner can delete a blog")
	ErrBlogInvalid  = errors.New("title, author and url are required")
	ErrBlogNotFound = repository.ErrBlogNotFound
)

// BlogAddedMessage is the acknowledgement shown after a successful
// creation, e.g. `A new blog "Test Blog" by testuser added`.
func BlogAddedMessage(title, author string) string {
	return fmt.Sprintf("A new blog %q by %s added", title, author)
}

// BlogService owns post creation, the ranked view, likes and the
// owner-only delete gate. Lifecycle changes are mirrored into the
// notification feed on a best-effort basis.
type BlogService struct {
	blogs  repository.Blogs
	events repository.Events
	log    *logger.Logger
}

func NewBlogService(blogs repository.Blogs, events repository.Events, log *logger.Logger) *BlogService {
	return &BlogService{blogs: blogs, events: events, log: log}
}

// Create stores a new blog owned by ownerID with zero likes and emits a
// CREATED event carrying the title and author label.
func (s *BlogService) Create(ctx context.Context, ownerID int, title, author, url string) (models.Blog, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(author) == "" || strings.TrimSpace(url) == "" {
		return models.Blog{}, ErrBlogInvalid
	}

	b := models.Blog{
		Title:     title,
		Author:    author,
		URL:       url,
		Likes:     0,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}
	id, err := s.blogs.Create(ctx, b)
	if err != nil {
		return models.Blog{}, err
	}
	b.ID = id

	s.appendEvent(ctx, models.BlogEvent{
		Type:        models.EventBlogCreated,
		Description: BlogAddedMessage(title, author),
		Metadata:    map[string]any{"title": title, "author": author},
	})

	return b, nil
}

// List returns blogs in creation order.
func (s *BlogService) List(ctx context.Context) ([]models.Blog, error) {
	return s.blogs.List(ctx)
}

// Ranked is the read-side projection: the current blogs sorted by like
// count descending. The sort is stable, so equal-likes entries keep their
// creation order. Recomputed on every call; holds no state of its own.
func (s *BlogService) Ranked(ctx context.Context) ([]models.Blog, error) {
	blogs, err := s.blogs.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(blogs, func(i, j int) bool {
		return blogs[i].Likes > blogs[j].Likes
	})
	return blogs, nil
}

// Like increments the like counter and returns the new count.
func (s *BlogService) Like(ctx context.Context, id int) (int, error) {
	return s.blogs.Like(ctx, id)
}

// CanDelete is the authorization predicate: only the owner may delete.
// The same predicate drives whether a delete affordance is rendered.
func (s *BlogService) CanDelete(callerID int, b models.Blog) bool {
	return callerID != 0 && callerID == b.OwnerID
}

// Delete removes a blog after the ownership check. A non-owner caller gets
// ErrForbidden and the repository is never touched.
func (s *BlogService) Delete(ctx context.Context, callerID, id int) error {
	b, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrBlogNotFound
	}
	if !s.CanDelete(callerID, *b) {
		return ErrForbidden
	}

	if err := s.blogs.Delete(ctx, id); err != nil {
		return err
	}

	s.appendEvent(ctx, models.BlogEvent{
		Type:        models.EventBlogDeleted,
		Description: fmt.Sprintf("Blog %q by %s removed", b.Title, b.Author),
		Metadata:    map[string]any{"title": b.Title, "author": b.Author},
	})

	return nil
}

// appendEvent writes to the notification feed. Feed failures never roll
// back the blog mutation; they are only logged.
func (s *BlogService) appendEvent(ctx context.Context, e models.BlogEvent) {
	if err := s.events.Append(ctx, e); err != nil && s.log != nil {
		s.log.Errorw("blog_event_append_failed", "type", e.Type, "err", err)
	}
}
