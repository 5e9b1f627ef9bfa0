package installment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"prestamos-api/internal/domain/installment"
	"prestamos-api/internal/domain/loan"
	"prestamos-api/internal/domain/payment"
	"prestamos-api/internal/domain/uow"
	"prestamos-api/pkg/civil"
)

type Usecase struct {
	installments installment.Repository
	uow          uow.UnitOfWork

	now func() time.Time
}

func NewUsecase(installments installment.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{installments: installments, uow: tx, now: time.Now}
}

// PaymentResult reports the settled installment together with the loan
// counters recomputed in the same transaction.
type PaymentResult struct {
	Installment *installment.Installment `json:"cuota"`
	Counters    loan.Counters            `json:"-"`
	Paid        int                      `json:"cuotas_pagadas"`
	Pending     int                      `json:"cuotas_pendientes"`
	Overdue     int                      `json:"cuotas_vencidas"`
	Outstanding string                   `json:"saldo_pendiente"`
	Settled     bool                     `json:"liquidado"`
	ReceiptID   string                   `json:"receipt_id,omitempty"`
}

// Pay settles one installment in full. Partial payments do not exist: the
// amount paid is always the scheduled amount. Counters come from a full
// recount, never an increment, so an interrupted prior update heals here.
func (u *Usecase) Pay(ctx context.Context, installmentID uint64) (*PaymentResult, error) {
	return u.pay(ctx, installmentID, 0, false)
}

// PayWithAudit is Pay plus a historial_pagos row in the same transaction,
// attributing the payment to the operator.
func (u *Usecase) PayWithAudit(ctx context.Context, installmentID, operatorID uint64) (*PaymentResult, error) {
	return u.pay(ctx, installmentID, operatorID, true)
}

func (u *Usecase) pay(ctx context.Context, installmentID, operatorID uint64, audit bool) (*PaymentResult, error) {
	var out *PaymentResult
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Installments.GetByIDForUpdate(ctx, installmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return installment.ErrNotFound
			}
			return err
		}
		if c.State == installment.StatePaid {
			return installment.ErrAlreadyPaid
		}

		// Lock the loan row so concurrent payments on the same loan
		// serialize before the recount.
		l, err := r.Loans.GetByIDForUpdate(ctx, c.LoanID)
		if err != nil {
			return err
		}

		today := civil.Date(u.now())
		c.State = installment.StatePaid
		c.PaymentDate = &today
		c.AmountPaid = c.Amount
		if err := r.Installments.Save(ctx, c); err != nil {
			return err
		}

		var receiptID string
		if audit {
			receiptID = uuid.NewString()
			rec := &payment.Record{
				ReceiptID:     receiptID,
				InstallmentID: c.ID,
				LoanID:        c.LoanID,
				Amount:        c.Amount,
				PaidAt:        u.now().UTC(),
				OperatorID:    operatorID,
			}
			if err := r.Payments.Create(ctx, rec); err != nil {
				return err
			}
		}

		counters, err := r.Installments.Recount(ctx, c.LoanID)
		if err != nil {
			return err
		}
		if err := r.Loans.UpdateCounters(ctx, c.LoanID, counters); err != nil {
			return err
		}

		if counters.Settled() {
			// l was loaded before the payment; apply the recount so the
			// full-row save does not resurrect the pre-payment counters.
			l.ApplyCounters(counters)
			l.State = loan.StateSettled
			l.LiquidationDate = &today
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
		}

		out = &PaymentResult{
			Installment: c,
			Counters:    counters,
			Paid:        counters.Paid,
			Pending:     counters.Pending,
			Overdue:     counters.Overdue,
			Outstanding: counters.Outstanding.StringFixed(2),
			Settled:     counters.Settled(),
			ReceiptID:   receiptID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, installmentID uint64) (*installment.Installment, error) {
	c, err := u.installments.GetByID(ctx, installmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, installment.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (u *Usecase) ListByLoan(ctx context.Context, loanID uint64) ([]installment.Installment, error) {
	return u.installments.ListByLoan(ctx, loanID)
}

func (u *Usecase) ListUnpaidByLoan(ctx context.Context, loanID uint64) ([]installment.Installment, error) {
	return u.installments.ListUnpaidByLoan(ctx, loanID)
}

// NextUnpaid returns the lowest-numbered unpaid installment of a loan.
func (u *Usecase) NextUnpaid(ctx context.Context, loanID uint64) (*installment.Installment, error) {
	c, err := u.installments.NextUnpaid(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, installment.ErrNoneUnpaid
		}
		return nil, err
	}
	return c, nil
}
