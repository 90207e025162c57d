package profile

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/kabachok/dropclient/internal/domain"
	"github.com/kabachok/dropclient/internal/logger"
)

// Backend is the slice of the API client the profile service needs.
type Backend interface {
	Profile(ctx context.Context) (*domain.Profile, error)
	Deposit(ctx context.Context, amount int) (*domain.BalanceUpdate, error)
}

// BalanceCommitter records a server-confirmed balance on the session.
type BalanceCommitter interface {
	CommitBalance(ctx context.Context, newBalance int)
}

// Service exposes the profile balance and the deposit flow.
type Service interface {
	Get(ctx context.Context) (*domain.Profile, error)
	Deposit(ctx context.Context, amount int) (*domain.BalanceUpdate, error)
}

type service struct {
	backend  Backend
	session  BalanceCommitter
	validate *validator.Validate
}

// depositInput carries the client-side bounds checked before any network call.
// The server enforces the same ceiling; this only saves a round trip.
type depositInput struct {
	Amount int `validate:"gte=1,lte=5000"`
}

// NewService creates the profile service.
func NewService(backend Backend, session BalanceCommitter) Service {
	return &service{
		backend:  backend,
		session:  session,
		validate: validator.New(),
	}
}

// Get fetches the current balance from the backend.
func (s *service) Get(ctx context.Context) (*domain.Profile, error) {
	return s.backend.Profile(ctx)
}

// Deposit credits coins to the account. Amounts outside [DepositMin,
// DepositMax] are rejected client-side; on success the server's new_balance
// replaces the displayed balance wholesale.
func (s *service) Deposit(ctx context.Context, amount int) (*domain.BalanceUpdate, error) {
	log := logger.FromContext(ctx)

	if err := s.validate.Struct(depositInput{Amount: amount}); err != nil {
		return nil, fmt.Errorf("%w: amount must be between %d and %d, got %d",
			domain.ErrInvalidAmount, domain.DepositMin, domain.DepositMax, amount)
	}

	update, err := s.backend.Deposit(ctx, amount)
	if err != nil {
		log.Warn("deposit failed", "amount", amount, "error", err)
		return nil, err
	}

	s.session.CommitBalance(ctx, update.NewBalance)
	log.Info("deposit credited", "amount", amount, "new_balance", update.NewBalance)
	return update, nil
}
