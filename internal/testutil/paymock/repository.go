package paymock

import (
	"context"

	domain "prestamos-api/internal/domain/payment"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn     func(ctx context.Context, r *domain.Record) error
	ListByLoanFn func(ctx context.Context, loanID uint64) ([]domain.Record, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Record) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) ListByLoan(ctx context.Context, loanID uint64) ([]domain.Record, error) {
	if m.ListByLoanFn != nil {
		return m.ListByLoanFn(ctx, loanID)
	}
	return nil, nil
}
