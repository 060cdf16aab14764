package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubSweeper struct {
	removed int
	err     error

	gotTTL time.Duration
	calls  int
}

func (s *stubSweeper) Sweep(_ time.Time, ttl time.Duration) (int, error) {
	s.calls++
	s.gotTTL = ttl
	return s.removed, s.err
}

func TestSweepOncePassesTTL(t *testing.T) {
	sweeper := &stubSweeper{removed: 3}
	svc := NewRetentionService(sweeper, nil, nil, 48*time.Hour, time.Hour)

	svc.SweepOnce()
	require.Equal(t, 1, sweeper.calls)
	require.Equal(t, 48*time.Hour, sweeper.gotTTL)
}

func TestRetentionDefaults(t *testing.T) {
	sweeper := &stubSweeper{}
	svc := NewRetentionService(sweeper, nil, nil, 0, 0)

	svc.SweepOnce()
	require.Equal(t, 30*24*time.Hour, sweeper.gotTTL)
}
