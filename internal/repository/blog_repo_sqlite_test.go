package repository

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"bloglist/internal/models"
	"bloglist/internal/repository/db"
)

// newSQLiteRepos opens a throwaway on-disk database so concurrency
// behavior is exercised against the real driver, not a mock script.
func newSQLiteRepos(t *testing.T) (*UserSQLite, *BlogSQLite) {
	t.Helper()

	database, err := db.InitDB(filepath.Join(t.TempDir(), "bloglist_test.db"))
	if err != nil {
		t.Fatalf("init sqlite: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	return NewUserSQLite(database), NewBlogSQLite(database)
}

func createTestBlog(t *testing.T, users *UserSQLite, blogs *BlogSQLite) int {
	t.Helper()

	uid, err := users.Create("Test User", "testuser", "h123")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	id, err := blogs.Create(context.Background(), models.Blog{
		Title:   "Test Blog",
		Author:  "testuser",
		URL:     "http://test.com",
		OwnerID: uid,
	})
	if err != nil {
		t.Fatalf("create blog: %v", err)
	}
	return id
}

// Parallel likes on the same blog must all land: the final count equals
// the number of callers, with no lost updates.
func TestBlogSQLite_Like_ConcurrentCallersAllCounted(t *testing.T) {
	users, blogs := newSQLiteRepos(t)
	id := createTestBlog(t, users, blogs)
	ctx := context.Background()

	const likers = 25
	var wg sync.WaitGroup
	likeErrs := make(chan error, likers)
	for i := 0; i < likers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := blogs.Like(ctx, id)
			likeErrs <- err
		}()
	}
	wg.Wait()
	close(likeErrs)

	for err := range likeErrs {
		if err != nil {
			t.Fatalf("concurrent Like failed: %v", err)
		}
	}

	b, err := blogs.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID after likes: %v", err)
	}
	if b == nil {
		t.Fatalf("blog disappeared")
	}
	if b.Likes != likers {
		t.Fatalf("expected %d likes, got %d", likers, b.Likes)
	}
}

// A like racing a delete either lands before the row is gone or reports
// ErrBlogNotFound; nothing else may surface, and the row ends up deleted.
func TestBlogSQLite_Like_RacingDelete(t *testing.T) {
	users, blogs := newSQLiteRepos(t)
	id := createTestBlog(t, users, blogs)
	ctx := context.Background()

	const likers = 16
	var wg sync.WaitGroup
	likeErrs := make(chan error, likers)
	start := make(chan struct{})

	for i := 0; i < likers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := blogs.Like(ctx, id)
			likeErrs <- err
		}()
	}

	var deleteErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-start
		deleteErr = blogs.Delete(ctx, id)
	}()

	close(start)
	wg.Wait()
	close(likeErrs)

	// The blog exists when the race starts, so the delete itself must win.
	if deleteErr != nil {
		t.Fatalf("delete of existing blog failed: %v", deleteErr)
	}
	for err := range likeErrs {
		if err != nil && !errors.Is(err, ErrBlogNotFound) {
			t.Fatalf("racing Like must succeed or report ErrBlogNotFound, got: %v", err)
		}
	}

	b, err := blogs.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID after delete: %v", err)
	}
	if b != nil {
		t.Fatalf("blog must be gone after delete, got %+v", b)
	}
}
