package repository

import (
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"

	"bloglist/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockUserRepo(t *testing.T) (*UserSQLite, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewUserSQLite(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestUserSQLite_Create(t *testing.T) {
	tests := []struct {
		name           string
		userName       string
		username       string
		passwordHash   string
		mockExpect     func(sqlmock.Sqlmock)
		wantID         int
		wantErr        error
		errContainsStr string
	}{
		{
			name:         "success",
			userName:     "Alice A",
			username:     "alice",
			passwordHash: "h123",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("Alice A", "alice", "h123").
					WillReturnResult(sqlmock.NewResult(42, 1))
			},
			wantID: 42,
		},
		{
			name:         "duplicate username",
			userName:     "Other Alice",
			username:     "alice",
			passwordHash: "h456",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("Other Alice", "alice", "h456").
					WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: users.username (2067)"))
			},
			wantErr: ErrDuplicateUsername,
		},
		{
			name:         "exec error",
			userName:     "Bob",
			username:     "bob",
			passwordHash: "h789",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("Bob", "bob", "h789").
					WillReturnError(errors.New("db exec failed"))
			},
			errContainsStr: "insert user",
		},
		{
			name:         "last insert id error",
			userName:     "Carol",
			username:     "carol",
			passwordHash: "h000",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("Carol", "carol", "h000").
					WillReturnResult(sqlmock.NewErrorResult(errors.New("no last id")))
			},
			errContainsStr: "get last insert id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockUserRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			id, err := repo.Create(tt.userName, tt.username, tt.passwordHash)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if tt.errContainsStr != "" {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if !contains(err.Error(), tt.errContainsStr) {
					t.Fatalf("expected error to contain %q, got %q", tt.errContainsStr, err.Error())
				}
				if id != 0 {
					t.Fatalf("expected id=0 on error, got %d", id)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tt.wantID {
				t.Fatalf("unexpected id: want %d, got %d", tt.wantID, id)
			}
		})
	}
}

func TestUserSQLite_GetByUsername(t *testing.T) {
	tests := []struct {
		name           string
		username       string
		mockExpect     func(sqlmock.Sqlmock)
		wantUser       *models.User
		wantErr        bool
		errContainsStr string
	}{
		{
			name:     "found",
			username: "alice",
			mockExpect: func(m sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "name", "username", "password_hash"}).
					AddRow(7, "Alice A", "alice", "h123")
				m.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).
					WithArgs("alice").
					WillReturnRows(rows)
			},
			wantUser: &models.User{
				ID:           7,
				Name:         "Alice A",
				Username:     "alice",
				PasswordHash: "h123",
			},
		},
		{
			name:     "not found (ErrNoRows)",
			username: "missing",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).
					WithArgs("missing").
					WillReturnError(sql.ErrNoRows)
			},
			wantUser: nil,
		},
		{
			name:     "query error",
			username: "bob",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).
					WithArgs("bob").
					WillReturnError(errors.New("db query failed"))
			},
			wantErr:        true,
			errContainsStr: "select user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockUserRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			u, err := repo.GetByUsername(tt.username)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if tt.errContainsStr != "" && !contains(err.Error(), tt.errContainsStr) {
					t.Fatalf("expected error to contain %q, got %q", tt.errContainsStr, err.Error())
				}
				if u != nil {
					t.Fatalf("expected user=nil on error, got %+v", u)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantUser == nil {
				if u != nil {
					t.Fatalf("expected nil user, got %+v", u)
				}
				return
			}
			if u == nil {
				t.Fatalf("expected user, got nil")
			}
			if *u != *tt.wantUser {
				t.Fatalf("unexpected user: want %+v, got %+v", tt.wantUser, u)
			}
		})
	}
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
