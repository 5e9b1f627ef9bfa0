package uow

import (
	"context"

	"prestamos-api/internal/domain/installment"
	"prestamos-api/internal/domain/loan"
	"prestamos-api/internal/domain/payment"
)

// Repos bundles the repositories that participate in ledger transactions.
type Repos struct {
	Loans        loan.Repository
	Installments installment.Repository
	Payments     payment.Repository
}

type UnitOfWork interface {
	// WithinTx runs fn against tx-scoped repos; rolls back on error.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row first, then passes it in.
	WithinLoanTx(ctx context.Context, loanID uint64, fn func(r Repos, l *loan.Loan) error) error
}
