package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"bloglist/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockBlogRepo(t *testing.T) (*BlogSQLite, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewBlogSQLite(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestBlogSQLite_Create(t *testing.T) {
	repo, mock, cleanup := newMockBlogRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(insertBlogSQL)).
		WithArgs("Test Blog", "testuser", "http://test.com", 7, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(3, 1))

	id, err := repo.Create(context.Background(), models.Blog{
		Title:   "Test Blog",
		Author:  "testuser",
		URL:     "http://test.com",
		OwnerID: 7,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if id != 3 {
		t.Fatalf("expected id 3, got %d", id)
	}
}

func TestBlogSQLite_Create_ExecError(t *testing.T) {
	repo, mock, cleanup := newMockBlogRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(insertBlogSQL)).
		WithArgs("t", "a", "u", 1, sqlmock.AnyArg()).
		WillReturnError(errors.New("db exec failed"))

	_, err := repo.Create(context.Background(), models.Blog{Title: "t", Author: "a", URL: "u", OwnerID: 1})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !contains(err.Error(), "insert blog") {
		t.Fatalf("expected wrapped insert error, got %q", err.Error())
	}
}

func TestBlogSQLite_GetByID(t *testing.T) {
	createdAt := time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		id         int
		mockExpect func(sqlmock.Sqlmock)
		wantBlog   *models.Blog
		wantErr    bool
	}{
		{
			name: "found",
			id:   3,
			mockExpect: func(m sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "title", "author", "url", "likes", "owner_id", "created_at"}).
					AddRow(3, "Test Blog", "testuser", "http://test.com", 2, 7, createdAt)
				m.ExpectQuery(regexp.QuoteMeta(selectBlogByIDSQL)).
					WithArgs(3).
					WillReturnRows(rows)
			},
			wantBlog: &models.Blog{
				ID: 3, Title: "Test Blog", Author: "testuser", URL: "http://test.com",
				Likes: 2, OwnerID: 7, CreatedAt: createdAt,
			},
		},
		{
			name: "not found",
			id:   99,
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectBlogByIDSQL)).
					WithArgs(99).
					WillReturnRows(sqlmock.NewRows([]string{"id", "title", "author", "url", "likes", "owner_id", "created_at"}))
			},
			wantBlog: nil,
		},
		{
			name: "query error",
			id:   1,
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectBlogByIDSQL)).
					WithArgs(1).
					WillReturnError(errors.New("db query failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockBlogRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			b, err := repo.GetByID(context.Background(), tt.id)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantBlog == nil {
				if b != nil {
					t.Fatalf("expected nil blog, got %+v", b)
				}
				return
			}
			if b == nil {
				t.Fatalf("expected blog, got nil")
			}
			if *b != *tt.wantBlog {
				t.Fatalf("unexpected blog: want %+v, got %+v", tt.wantBlog, b)
			}
		})
	}
}

func TestBlogSQLite_List_CreationOrder(t *testing.T) {
	repo, mock, cleanup := newMockBlogRepo(t)
	defer cleanup()

	createdAt := time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "title", "author", "url", "likes", "owner_id", "created_at"}).
		AddRow(1, "First Blog", "testuser", "http://a", 5, 7, createdAt).
		AddRow(2, "Second Blog", "testuser", "http://b", 0, 7, createdAt)
	mock.ExpectQuery(regexp.QuoteMeta(selectBlogsSQL)).WillReturnRows(rows)

	blogs, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(blogs) != 2 {
		t.Fatalf("expected 2 blogs, got %d", len(blogs))
	}
	// Creation order, regardless of like counts.
	if blogs[0].ID != 1 || blogs[1].ID != 2 {
		t.Fatalf("expected creation order, got %+v", blogs)
	}
}

func TestBlogSQLite_Like(t *testing.T) {
	t.Run("success increments and returns new count", func(t *testing.T) {
		repo, mock, cleanup := newMockBlogRepo(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(likeBlogSQL)).
			WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(regexp.QuoteMeta(selectLikesSQL)).
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"likes"}).AddRow(6))
		mock.ExpectCommit()

		likes, err := repo.Like(context.Background(), 3)
		if err != nil {
			t.Fatalf("Like returned error: %v", err)
		}
		if likes != 6 {
			t.Fatalf("expected 6 likes, got %d", likes)
		}
	})

	t.Run("unknown id yields ErrBlogNotFound", func(t *testing.T) {
		repo, mock, cleanup := newMockBlogRepo(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(likeBlogSQL)).
			WithArgs(99).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		_, err := repo.Like(context.Background(), 99)
		if !errors.Is(err, ErrBlogNotFound) {
			t.Fatalf("expected ErrBlogNotFound, got %v", err)
		}
	})

	t.Run("exec error rolls back", func(t *testing.T) {
		repo, mock, cleanup := newMockBlogRepo(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(likeBlogSQL)).
			WithArgs(3).
			WillReturnError(errors.New("db exec failed"))
		mock.ExpectRollback()

		if _, err := repo.Like(context.Background(), 3); err == nil {
			t.Fatalf("expected error, got nil")
		}
	})
}

func TestBlogSQLite_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := newMockBlogRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(deleteBlogSQL)).
			WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := repo.Delete(context.Background(), 3); err != nil {
			t.Fatalf("Delete returned error: %v", err)
		}
	})

	t.Run("unknown id yields ErrBlogNotFound", func(t *testing.T) {
		repo, mock, cleanup := newMockBlogRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(deleteBlogSQL)).
			WithArgs(99).
			WillReturnResult(sqlmock.NewResult(0, 0))

		if err := repo.Delete(context.Background(), 99); !errors.Is(err, ErrBlogNotFound) {
			t.Fatalf("expected ErrBlogNotFound, got %v", err)
		}
	})
}
