package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabachok/dropclient/internal/domain"
)

type stubBackend struct {
	depositCalls int
	update       *domain.BalanceUpdate
	profile      *domain.Profile
	err          error
}

func (b *stubBackend) Profile(ctx context.Context) (*domain.Profile, error) {
	return b.profile, b.err
}

func (b *stubBackend) Deposit(ctx context.Context, amount int) (*domain.BalanceUpdate, error) {
	b.depositCalls++
	if b.err != nil {
		return nil, b.err
	}
	return b.update, nil
}

type stubSession struct {
	commits []int
}

func (s *stubSession) CommitBalance(_ context.Context, newBalance int) {
	s.commits = append(s.commits, newBalance)
}

func TestService_DepositBounds(t *testing.T) {
	tests := []struct {
		name   string
		amount int
		ok     bool
	}{
		{"zero rejected", 0, false},
		{"negative rejected", -10, false},
		{"above ceiling rejected", 6000, false},
		{"floor accepted", 1, true},
		{"ceiling accepted", 5000, true},
		{"typical accepted", 250, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &stubBackend{update: &domain.BalanceUpdate{NewBalance: 1000}}
			svc := NewService(backend, &stubSession{})

			_, err := svc.Deposit(context.Background(), tt.amount)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, 1, backend.depositCalls)
			} else {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidAmount)
				assert.Zero(t, backend.depositCalls, "invalid amounts never reach the server")
			}
		})
	}
}

func TestService_DepositCommitsServerBalance(t *testing.T) {
	backend := &stubBackend{update: &domain.BalanceUpdate{Message: "Deposited 500 coins", NewBalance: 700}}
	sess := &stubSession{}
	svc := NewService(backend, sess)

	update, err := svc.Deposit(context.Background(), 500)
	require.NoError(t, err)
	assert.Equal(t, 700, update.NewBalance)
	assert.Equal(t, []int{700}, sess.commits, "server value replaces the balance wholesale")
}

func TestService_DepositFailureCommitsNothing(t *testing.T) {
	backend := &stubBackend{err: domain.ErrBackendUnreachable}
	sess := &stubSession{}
	svc := NewService(backend, sess)

	_, err := svc.Deposit(context.Background(), 100)
	require.ErrorIs(t, err, domain.ErrBackendUnreachable)
	assert.Empty(t, sess.commits)
}

func TestService_Get(t *testing.T) {
	backend := &stubBackend{profile: &domain.Profile{Balance: 420}}
	svc := NewService(backend, &stubSession{})

	p, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 420, p.Balance)
}
