package mysql

import (
	"context"
	"testing"

	instDomain "prestamos-api/internal/domain/installment"
	loanDomain "prestamos-api/internal/domain/loan"
	instUC "prestamos-api/internal/usecase/installment"
)

// Pays a two-installment loan to completion through the real transactional
// stack and checks the committed rows after each payment, not just the
// responses.
func TestPaymentFlow_FinalPaymentCommitsRecountedLoan(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	loans := NewLoanRepository(db)
	installments := NewInstallmentRepository(db)

	l := makeLoan(t, 5, 1, loanDomain.StateActive)
	l.InstallmentCount = 2
	l.Total = dec("4400")
	l.PendingCount = 2
	l.Outstanding = dec("4400")
	if err := loans.Create(ctx, l); err != nil {
		t.Fatalf("create loan: %v", err)
	}
	schedule := seedSchedule(t, installments, l.ID,
		instDomain.StatePending, instDomain.StatePending)

	uc := instUC.NewUsecase(installments, NewGormUoW(db))

	// first payment: loan stays ACTIVO, committed counters reflect the recount
	res, err := uc.Pay(ctx, schedule[0].ID)
	if err != nil {
		t.Fatalf("first Pay: %v", err)
	}
	if res.Settled || res.Pending != 1 || res.Outstanding != "2200.00" {
		t.Fatalf("first result=%+v", res)
	}
	row, err := loans.GetByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if row.State != loanDomain.StateActive || row.PaidCount != 1 || row.PendingCount != 1 {
		t.Fatalf("after first payment: state=%s paid=%d pending=%d", row.State, row.PaidCount, row.PendingCount)
	}
	if !row.Outstanding.Equal(dec("2200")) {
		t.Fatalf("after first payment: outstanding=%s", row.Outstanding)
	}

	// final payment: the committed row must match the response, LIQUIDADO
	// with nothing outstanding
	res, err = uc.PayWithAudit(ctx, schedule[1].ID, 42)
	if err != nil {
		t.Fatalf("final Pay: %v", err)
	}
	if !res.Settled || res.Pending != 0 || res.Outstanding != "0.00" {
		t.Fatalf("final result=%+v", res)
	}
	row, err = loans.GetByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if row.State != loanDomain.StateSettled {
		t.Fatalf("state=%s", row.State)
	}
	if row.PaidCount != 2 || row.PendingCount != 0 || row.OverdueCount != 0 {
		t.Fatalf("committed counters: paid=%d pending=%d overdue=%d", row.PaidCount, row.PendingCount, row.OverdueCount)
	}
	if !row.Outstanding.IsZero() {
		t.Fatalf("committed outstanding=%s", row.Outstanding)
	}
	if row.LiquidationDate == nil {
		t.Fatal("liquidation date not set")
	}

	records, err := NewPaymentRepository(db).ListByLoan(ctx, l.ID)
	if err != nil {
		t.Fatalf("ListByLoan: %v", err)
	}
	if len(records) != 1 || records[0].OperatorID != 42 || records[0].ReceiptID != res.ReceiptID {
		t.Fatalf("records=%+v", records)
	}
}
