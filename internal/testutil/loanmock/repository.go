package loanmock

import (
	"context"

	"gorm.io/gorm"

	domain "prestamos-api/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in only the function fields a test needs.
type Repo struct {
	CreateFn                   func(ctx context.Context, l *domain.Loan) error
	SaveFn                     func(ctx context.Context, l *domain.Loan) error
	GetByIDFn                  func(ctx context.Context, id uint64) (*domain.Loan, error)
	GetByIDForUpdateFn         func(ctx context.Context, id uint64) (*domain.Loan, error)
	MaxSequenceFn              func(ctx context.Context, clientID uint64) (int, error)
	ListFn                     func(ctx context.Context) ([]domain.Loan, error)
	ListByStateFn              func(ctx context.Context, s domain.State) ([]domain.Loan, error)
	ListByClientFn             func(ctx context.Context, clientID uint64) ([]domain.Loan, error)
	OpenByClientFn             func(ctx context.Context, clientID uint64) (*domain.Loan, error)
	ListDelinquentFn           func(ctx context.Context) ([]domain.Loan, error)
	SearchActiveByClientNameFn func(ctx context.Context, name string) ([]domain.Loan, error)
	IDsByStateFn               func(ctx context.Context, s domain.State) ([]uint64, error)
	UpdateCountersFn           func(ctx context.Context, id uint64, c domain.Counters) error
	PortfolioSummaryFn         func(ctx context.Context) (*domain.PortfolioSummary, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) MaxSequence(ctx context.Context, clientID uint64) (int, error) {
	if m.MaxSequenceFn != nil {
		return m.MaxSequenceFn(ctx, clientID)
	}
	return 0, nil
}

func (m *Repo) List(ctx context.Context) ([]domain.Loan, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *Repo) ListByState(ctx context.Context, s domain.State) ([]domain.Loan, error) {
	if m.ListByStateFn != nil {
		return m.ListByStateFn(ctx, s)
	}
	return nil, nil
}

func (m *Repo) ListByClient(ctx context.Context, clientID uint64) ([]domain.Loan, error) {
	if m.ListByClientFn != nil {
		return m.ListByClientFn(ctx, clientID)
	}
	return nil, nil
}

func (m *Repo) OpenByClient(ctx context.Context, clientID uint64) (*domain.Loan, error) {
	if m.OpenByClientFn != nil {
		return m.OpenByClientFn(ctx, clientID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListDelinquent(ctx context.Context) ([]domain.Loan, error) {
	if m.ListDelinquentFn != nil {
		return m.ListDelinquentFn(ctx)
	}
	return nil, nil
}

func (m *Repo) SearchActiveByClientName(ctx context.Context, name string) ([]domain.Loan, error) {
	if m.SearchActiveByClientNameFn != nil {
		return m.SearchActiveByClientNameFn(ctx, name)
	}
	return nil, nil
}

func (m *Repo) IDsByState(ctx context.Context, s domain.State) ([]uint64, error) {
	if m.IDsByStateFn != nil {
		return m.IDsByStateFn(ctx, s)
	}
	return nil, nil
}

func (m *Repo) UpdateCounters(ctx context.Context, id uint64, c domain.Counters) error {
	if m.UpdateCountersFn != nil {
		return m.UpdateCountersFn(ctx, id, c)
	}
	return nil
}

func (m *Repo) PortfolioSummary(ctx context.Context) (*domain.PortfolioSummary, error) {
	if m.PortfolioSummaryFn != nil {
		return m.PortfolioSummaryFn(ctx)
	}
	return &domain.PortfolioSummary{}, nil
}
