package repository

import (
	"context"
	"database/sql"
	"time"

	"bloglist/internal/models"
	"bloglist/internal/repository/db"
)

type Users interface {
	Create(name, username, passwordHash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// Sessions stores issued session records keyed by their jti.
type Sessions interface {
	Save(ctx context.Context, s models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Blogs is the system of record for posts. List returns creation order;
// ordering by likes is the ranking view's job.
type Blogs interface {
	Create(ctx context.Context, b models.Blog) (int, error)
	GetByID(ctx context.Context, id int) (*models.Blog, error)
	List(ctx context.Context) ([]models.Blog, error)
	Like(ctx context.Context, id int) (int, error)
	Delete(ctx context.Context, id int) error
}

// Events is the append-only notification feed for blog lifecycle changes.
type Events interface {
	Append(ctx context.Context, e models.BlogEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.BlogEvent, error)
}

// Admin exposes the test/ops-only wipe of all persisted state.
type Admin interface {
	Reset(ctx context.Context) error
}

type Repository struct {
	Users    Users
	Sessions Sessions
	Blogs    Blogs
	Events   Events
	Admin    Admin
}

func NewRepository(database *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserSQLite(database),
		Sessions: NewSessionSQLite(database),
		Blogs:    NewBlogSQLite(database),
		Events:   NewEventSQLite(database),
		Admin:    NewAdminSQLite(database),
	}
}

// InitDB opens the SQLite file and ensures the schema exists.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
