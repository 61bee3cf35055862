package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timecard-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/timecard-payroll-go/internal/pkg/jwt"
)

// TokenJobs purges expired token state.
type TokenJobs struct {
	jwtService  jwt.Service
	refreshRepo auth.RefreshTokenRepository
	now         func() time.Time
}

func NewTokenJobs(jwtService jwt.Service, refreshRepo auth.RefreshTokenRepository) *TokenJobs {
	return &TokenJobs{jwtService: jwtService, refreshRepo: refreshRepo, now: time.Now}
}

func (j *TokenJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{
		Name:     "purge_expired_tokens",
		Interval: time.Hour,
		Timeout:  time.Minute,
		Fn:       j.PurgeExpiredTokens,
	})
}

// PurgeExpiredTokens drops expired revocations from memory and expired
// refresh tokens from the database.
func (j *TokenJobs) PurgeExpiredTokens(ctx context.Context) error {
	now := j.now()

	revocations := j.jwtService.PurgeExpiredRevocations(now)

	rows, err := j.refreshRepo.DeleteExpired(ctx, now)
	if err != nil {
		return fmt.Errorf("delete expired refresh tokens: %w", err)
	}

	slog.Info("Cron: purged expired tokens", "revocations", revocations, "refresh_tokens", rows)
	return nil
}
