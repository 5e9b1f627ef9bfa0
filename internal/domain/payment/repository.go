package payment

import "context"

type Repository interface {
	Create(ctx context.Context, r *Record) error
	ListByLoan(ctx context.Context, loanID uint64) ([]Record, error)
}
