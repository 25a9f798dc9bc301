package service

import (
	"context"
	"time"

	"bloglist/internal/logger"
	"bloglist/internal/models"
	"bloglist/internal/repository"
)

// Authorization covers sign-up, credential checks and the session
// credential lifecycle.
type Authorization interface {
	SignUp(name, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(ctx context.Context, accessToken string) (int, error)
	Logout(ctx context.Context, accessToken string) error
}

// Blogs exposes post operations: creation, the ranked read view, likes,
// and owner-gated deletion.
type Blogs interface {
	Create(ctx context.Context, ownerID int, title, author, url string) (models.Blog, error)
	List(ctx context.Context) ([]models.Blog, error)
	Ranked(ctx context.Context) ([]models.Blog, error)
	Like(ctx context.Context, id int) (int, error)
	Delete(ctx context.Context, callerID, id int) error
	CanDelete(callerID int, b models.Blog) bool
}

// EventLog exposes the append-only notification feed with filtering access.
type EventLog interface {
	List(ctx context.Context, f EventFilter) ([]models.BlogEvent, error)
}

// Admin is the test/ops-only collaborator that wipes all state.
type Admin interface {
	Reset(ctx context.Context) error
}

// Sweeper runs the background loop that purges expired sessions.
// Stop via context cancellation in main() for graceful shutdown.
type Sweeper interface {
	Run(ctx context.Context, tick time.Duration)
}

// Config carries the runtime knobs the services need from main.
type Config struct {
	SigningKey string
	SessionTTL time.Duration
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	Blogs
	EventLog
	Admin
	Sweeper
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, cfg Config, log *logger.Logger) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, repos.Sessions, cfg),
		Blogs:         NewBlogService(repos.Blogs, repos.Events, log),
		EventLog:      NewEventLogService(repos.Events),
		Admin:         NewAdminService(repos.Admin),
		Sweeper:       NewSweeperService(repos.Sessions, log),
	}
}
