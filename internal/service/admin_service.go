package service

import (
	"context"

	"bloglist/internal/repository"
)

// AdminService backs the testing/ops reset endpoint. Not reachable from
// normal user-facing flows.
type AdminService struct {
	admin repository.Admin
}

func NewAdminService(admin repository.Admin) *AdminService {
	return &AdminService{admin: admin}
}

// Reset clears all users, sessions, blogs and events to give independent
// test runs a clean baseline.
func (s *AdminService) Reset(ctx context.Context) error {
	return s.admin.Reset(ctx)
}
