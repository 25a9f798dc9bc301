package service

import (
	"context"
	"time"

	"bloglist/internal/logger"
	"bloglist/internal/repository"
)

// SweeperService periodically purges expired session rows so the sessions
// table does not accumulate dead credentials.
type SweeperService struct {
	sessions repository.Sessions
	log      *logger.Logger
}

func NewSweeperService(sessions repository.Sessions, log *logger.Logger) *SweeperService {
	return &SweeperService{sessions: sessions, log: log}
}

// Run ticks at the given interval until ctx is canceled.
func (s *SweeperService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := s.sessions.DeleteExpired(ctx, now.UTC())
			if err != nil {
				if s.log != nil {
					s.log.Errorw("session_sweep_failed", "err", err)
				}
				continue
			}
			if n > 0 && s.log != nil {
				s.log.Infow("sessions_swept", "count", n)
			}
		}
	}
}
