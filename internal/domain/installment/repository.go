package installment

import (
	"context"
	"time"

	"prestamos-api/internal/domain/loan"
)

type Repository interface {
	Create(ctx context.Context, i *Installment) error
	CreateBatch(ctx context.Context, batch []*Installment) error
	Save(ctx context.Context, i *Installment) error
	GetByID(ctx context.Context, id uint64) (*Installment, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Installment, error)

	ListByLoan(ctx context.Context, loanID uint64) ([]Installment, error)
	ListUnpaidByLoan(ctx context.Context, loanID uint64) ([]Installment, error)
	// NextUnpaid returns the lowest-numbered PENDIENTE/VENCIDA installment.
	NextUnpaid(ctx context.Context, loanID uint64) (*Installment, error)
	// ListPendingBefore returns PENDIENTE installments scheduled strictly
	// before the given civil date.
	ListPendingBefore(ctx context.Context, day time.Time) ([]Installment, error)

	// Recount recomputes the loan-level counters from the raw rows.
	// Idempotent and self-healing; always preferred over incrementing.
	Recount(ctx context.Context, loanID uint64) (loan.Counters, error)
}
