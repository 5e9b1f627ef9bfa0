package instmock

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "prestamos-api/internal/domain/installment"
	"prestamos-api/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn            func(ctx context.Context, i *domain.Installment) error
	CreateBatchFn       func(ctx context.Context, batch []*domain.Installment) error
	SaveFn              func(ctx context.Context, i *domain.Installment) error
	GetByIDFn           func(ctx context.Context, id uint64) (*domain.Installment, error)
	GetByIDForUpdateFn  func(ctx context.Context, id uint64) (*domain.Installment, error)
	ListByLoanFn        func(ctx context.Context, loanID uint64) ([]domain.Installment, error)
	ListUnpaidByLoanFn  func(ctx context.Context, loanID uint64) ([]domain.Installment, error)
	NextUnpaidFn        func(ctx context.Context, loanID uint64) (*domain.Installment, error)
	ListPendingBeforeFn func(ctx context.Context, day time.Time) ([]domain.Installment, error)
	RecountFn           func(ctx context.Context, loanID uint64) (loan.Counters, error)
}

func (m *Repo) Create(ctx context.Context, i *domain.Installment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, i)
	}
	return nil
}

func (m *Repo) CreateBatch(ctx context.Context, batch []*domain.Installment) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, batch)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, i *domain.Installment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, i)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Installment, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Installment, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByLoan(ctx context.Context, loanID uint64) ([]domain.Installment, error) {
	if m.ListByLoanFn != nil {
		return m.ListByLoanFn(ctx, loanID)
	}
	return nil, nil
}

func (m *Repo) ListUnpaidByLoan(ctx context.Context, loanID uint64) ([]domain.Installment, error) {
	if m.ListUnpaidByLoanFn != nil {
		return m.ListUnpaidByLoanFn(ctx, loanID)
	}
	return nil, nil
}

func (m *Repo) NextUnpaid(ctx context.Context, loanID uint64) (*domain.Installment, error) {
	if m.NextUnpaidFn != nil {
		return m.NextUnpaidFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListPendingBefore(ctx context.Context, day time.Time) ([]domain.Installment, error) {
	if m.ListPendingBeforeFn != nil {
		return m.ListPendingBeforeFn(ctx, day)
	}
	return nil, nil
}

func (m *Repo) Recount(ctx context.Context, loanID uint64) (loan.Counters, error) {
	if m.RecountFn != nil {
		return m.RecountFn(ctx, loanID)
	}
	return loan.Counters{}, nil
}
