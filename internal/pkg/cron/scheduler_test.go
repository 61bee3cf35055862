package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/timecard-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/timecard-payroll-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunOnceJoinsErrors(t *testing.T) {
	s := NewScheduler()
	var ran int32

	s.AddJob(Job{Name: "ok", Interval: time.Hour, Fn: func(context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	}})
	s.AddJob(Job{Name: "broken", Interval: time.Hour, Fn: func(context.Context) error {
		atomic.AddInt32(&ran, 1)
		return errors.New("boom")
	}})

	err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken: boom")
	assert.Equal(t, int32(2), atomic.LoadInt32(&ran))
}

func TestScheduler_StartRunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler()
	done := make(chan struct{}, 1)

	s.AddJob(Job{Name: "tick", Interval: time.Hour, Fn: func(context.Context) error {
		select {
		case done <- struct{}{}:
		default:
		}
		return nil
	}})

	s.Start(context.Background())
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}

type fakeRefreshRepo struct {
	auth.RefreshTokenRepository
	before time.Time
}

func (f *fakeRefreshRepo) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	f.before = before
	return 3, nil
}

func TestTokenJobs_PurgeExpiredTokens(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := jwt.NewJWTService("secret", time.Minute, time.Hour, false)
	svc.RevokeToken("expired", now.Add(-time.Second).Unix())
	svc.RevokeToken("live", now.Add(time.Hour).Unix())

	repo := &fakeRefreshRepo{}
	jobs := NewTokenJobs(svc, repo)
	jobs.now = func() time.Time { return now }

	require.NoError(t, jobs.PurgeExpiredTokens(context.Background()))
	assert.Equal(t, now, repo.before)
	assert.False(t, svc.IsTokenRevoked("expired"))
	assert.True(t, svc.IsTokenRevoked("live"))
}
