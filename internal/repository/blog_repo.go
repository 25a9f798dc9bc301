package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bloglist/internal/models"
)

// ErrBlogNotFound is returned when the referenced blog id does not exist.
var ErrBlogNotFound = errors.New("blog not found")

type BlogSQLite struct {
	db *sql.DB
}

func NewBlogSQLite(db *sql.DB) *BlogSQLite {
	return &BlogSQLite{db: db}
}

var _ Blogs = (*BlogSQLite)(nil)

const (
	insertBlogSQL     = `INSERT INTO blogs (title, author, url, likes, owner_id, created_at) VALUES (?, ?, ?, 0, ?, ?)`
	selectBlogByIDSQL = `SELECT id, title, author, url, likes, owner_id, created_at FROM blogs WHERE id = ?`
	selectBlogsSQL    = `SELECT id, title, author, url, likes, owner_id, created_at FROM blogs ORDER BY id ASC`
	likeBlogSQL       = `UPDATE blogs SET likes = likes + 1 WHERE id = ?`
	selectLikesSQL    = `SELECT likes FROM blogs WHERE id = ?`
	deleteBlogSQL     = `DELETE FROM blogs WHERE id = ?`
)

// Create inserts a new blog with zero likes and returns its ID.
func (r *BlogSQLite) Create(ctx context.Context, b models.Blog) (int, error) {
	createdAt := b.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	} else {
		createdAt = createdAt.UTC()
	}

	res, err := r.db.ExecContext(ctx, insertBlogSQL, b.Title, b.Author, b.URL, b.OwnerID, createdAt)
	if err != nil {
		return 0, fmt.Errorf("insert blog %q: %w", b.Title, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for blog %q: %w", b.Title, err)
	}
	return int(lastID), nil
}

// GetByID fetches a blog. Returns (nil, nil) if not found.
func (r *BlogSQLite) GetByID(ctx context.Context, id int) (*models.Blog, error) {
	var b models.Blog
	err := r.db.QueryRowContext(ctx, selectBlogByIDSQL, id).
		Scan(&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes, &b.OwnerID, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select blog %d: %w", id, err)
	}
	b.CreatedAt = b.CreatedAt.UTC()
	return &b, nil
}

// List returns all blogs in creation order.
func (r *BlogSQLite) List(ctx context.Context) ([]models.Blog, error) {
	rows, err := r.db.QueryContext(ctx, selectBlogsSQL)
	if err != nil {
		return nil, fmt.Errorf("select blogs: %w", err)
	}
	defer rows.Close()

	out := make([]models.Blog, 0, 16)
	for rows.Next() {
		var b models.Blog
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes, &b.OwnerID, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan blog row: %w", err)
		}
		b.CreatedAt = b.CreatedAt.UTC()
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blog rows: %w", err)
	}
	return out, nil
}

// Like increments the like counter by one and returns the new count.
// The UPDATE is a single read-modify-write inside one transaction, so two
// concurrent likes are both reflected and a like racing a delete either
// lands first or reports ErrBlogNotFound.
func (r *BlogSQLite) Like(ctx context.Context, id int) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin like tx for blog %d: %w", id, err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, likeBlogSQL, id)
	if err != nil {
		return 0, fmt.Errorf("increment likes for blog %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected for blog %d like: %w", id, err)
	}
	if affected == 0 {
		return 0, ErrBlogNotFound
	}

	var likes int
	if err := tx.QueryRowContext(ctx, selectLikesSQL, id).Scan(&likes); err != nil {
		return 0, fmt.Errorf("read likes for blog %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit like tx for blog %d: %w", id, err)
	}
	return likes, nil
}

// Delete removes a blog. The row is gone from all subsequent List results
// as soon as this returns.
func (r *BlogSQLite) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, deleteBlogSQL, id)
	if err != nil {
		return fmt.Errorf("delete blog %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for blog %d delete: %w", id, err)
	}
	if affected == 0 {
		return ErrBlogNotFound
	}
	return nil
}
