package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	// GetByIDForUpdate acquires a row lock; only meaningful inside a tx.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Loan, error)
	// MaxSequence returns the highest numero_prestamo for a client, 0 if none.
	MaxSequence(ctx context.Context, clientID uint64) (int, error)

	List(ctx context.Context) ([]Loan, error)
	ListByState(ctx context.Context, s State) ([]Loan, error)
	ListByClient(ctx context.Context, clientID uint64) ([]Loan, error)
	// OpenByClient returns the client's SOLICITADO or ACTIVO loan, if any.
	OpenByClient(ctx context.Context, clientID uint64) (*Loan, error)
	// ListDelinquent returns ACTIVO loans with at least one overdue installment.
	ListDelinquent(ctx context.Context) ([]Loan, error)
	// SearchActiveByClientName matches ACTIVO loans by client name substring.
	SearchActiveByClientName(ctx context.Context, name string) ([]Loan, error)
	// IDsByState returns bare loan ids, used by the delinquency batch.
	IDsByState(ctx context.Context, s State) ([]uint64, error)

	// UpdateCounters persists a recount result without touching other columns.
	UpdateCounters(ctx context.Context, id uint64, c Counters) error
	PortfolioSummary(ctx context.Context) (*PortfolioSummary, error)
}
