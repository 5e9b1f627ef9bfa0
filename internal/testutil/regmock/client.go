package regmock

import (
	"context"

	"gorm.io/gorm"

	domain "prestamos-api/internal/domain/registry"
)

var _ domain.ClientRepository = (*ClientRepo)(nil)

// ClientRepo is a function-backed mock that satisfies domain.ClientRepository.
type ClientRepo struct {
	CreateFn             func(ctx context.Context, c *domain.Client) error
	SaveFn               func(ctx context.Context, c *domain.Client) error
	GetByIDFn            func(ctx context.Context, id uint64) (*domain.Client, error)
	ListActiveFn         func(ctx context.Context) ([]domain.Client, error)
	ListAllFn            func(ctx context.Context) ([]domain.Client, error)
	ListWithLoansFn      func(ctx context.Context) ([]domain.Client, error)
	SearchActiveByNameFn func(ctx context.Context, name string) ([]domain.Client, error)
	CardFn               func(ctx context.Context, id uint64) (*domain.ClientCard, error)
}

func (m *ClientRepo) Create(ctx context.Context, c *domain.Client) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *ClientRepo) Save(ctx context.Context, c *domain.Client) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *ClientRepo) GetByID(ctx context.Context, id uint64) (*domain.Client, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *ClientRepo) ListActive(ctx context.Context) ([]domain.Client, error) {
	if m.ListActiveFn != nil {
		return m.ListActiveFn(ctx)
	}
	return nil, nil
}

func (m *ClientRepo) ListAll(ctx context.Context) ([]domain.Client, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, nil
}

func (m *ClientRepo) ListWithLoans(ctx context.Context) ([]domain.Client, error) {
	if m.ListWithLoansFn != nil {
		return m.ListWithLoansFn(ctx)
	}
	return nil, nil
}

func (m *ClientRepo) SearchActiveByName(ctx context.Context, name string) ([]domain.Client, error) {
	if m.SearchActiveByNameFn != nil {
		return m.SearchActiveByNameFn(ctx, name)
	}
	return nil, nil
}

func (m *ClientRepo) Card(ctx context.Context, id uint64) (*domain.ClientCard, error) {
	if m.CardFn != nil {
		return m.CardFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
