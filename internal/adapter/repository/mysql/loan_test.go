package mysql

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	loanDomain "prestamos-api/internal/domain/loan"
)

func makeLoan(t *testing.T, clientID uint64, seq int, state loanDomain.State) *loanDomain.Loan {
	return &loanDomain.Loan{
		LoanID:            "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa" + string(rune('0'+seq)) + string(rune('0'+clientID%10)),
		ClientID:          clientID,
		Sequence:          seq,
		Principal:         dec("10000"),
		Rate:              dec("0.10"),
		Frequency:         loanDomain.FrequencyBiweekly,
		InstallmentCount:  5,
		InstallmentAmount: dec("2200"),
		Total:             dec("11000"),
		TotalInterest:     dec("1000"),
		RequestDate:       day(t, "2024-01-10"),
		FirstPaymentDate:  day(t, "2024-01-15"),
		State:             state,
		PendingCount:      5,
		Outstanding:       dec("11000"),
	}
}

func TestLoan_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	in := makeLoan(t, 5, 1, loanDomain.StateRequested)
	if err := repo.Create(ctx, in); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if in.ID == 0 {
		t.Fatal("id not assigned")
	}

	got, err := repo.GetByID(ctx, in.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.LoanID != in.LoanID || got.Sequence != 1 || got.State != loanDomain.StateRequested {
		t.Errorf("unexpected row: %+v", got)
	}
	if !got.Total.Equal(dec("11000")) || !got.Rate.Equal(dec("0.10")) {
		t.Errorf("amounts not preserved: total=%s rate=%s", got.Total, got.Rate)
	}

	if _, err := repo.GetByID(ctx, 9999); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound, got %v", err)
	}
}

func TestLoan_MaxSequencePerClient(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	for _, l := range []*loanDomain.Loan{
		makeLoan(t, 5, 1, loanDomain.StateSettled),
		makeLoan(t, 5, 2, loanDomain.StateCancelled),
		makeLoan(t, 8, 7, loanDomain.StateActive),
	} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	// cancelled loans still count toward the sequence
	max, err := repo.MaxSequence(ctx, 5)
	if err != nil {
		t.Fatalf("MaxSequence: %v", err)
	}
	if max != 2 {
		t.Fatalf("max=%d, want 2", max)
	}

	max, err = repo.MaxSequence(ctx, 999)
	if err != nil {
		t.Fatalf("MaxSequence: %v", err)
	}
	if max != 0 {
		t.Fatalf("max=%d, want 0 for unknown client", max)
	}
}

func TestLoan_OpenByClient(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	settled := makeLoan(t, 5, 1, loanDomain.StateSettled)
	open := makeLoan(t, 5, 2, loanDomain.StateActive)
	for _, l := range []*loanDomain.Loan{settled, open} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.OpenByClient(ctx, 5)
	if err != nil {
		t.Fatalf("OpenByClient: %v", err)
	}
	if got.ID != open.ID {
		t.Fatalf("got loan %d, want %d", got.ID, open.ID)
	}

	if _, err := repo.OpenByClient(ctx, 999); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound, got %v", err)
	}
}

func TestLoan_IDsByStateAndDelinquents(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	active := makeLoan(t, 5, 1, loanDomain.StateActive)
	delinquent := makeLoan(t, 8, 1, loanDomain.StateActive)
	delinquent.OverdueCount = 2
	settled := makeLoan(t, 9, 1, loanDomain.StateSettled)
	for _, l := range []*loanDomain.Loan{active, delinquent, settled} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	ids, err := repo.IDsByState(ctx, loanDomain.StateActive)
	if err != nil {
		t.Fatalf("IDsByState: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("ids=%v", ids)
	}

	dl, err := repo.ListDelinquent(ctx)
	if err != nil {
		t.Fatalf("ListDelinquent: %v", err)
	}
	if len(dl) != 1 || dl[0].ID != delinquent.ID {
		t.Fatalf("delinquents=%+v", dl)
	}
}

func TestLoan_UpdateCountersTouchesOnlyCounters(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	l := makeLoan(t, 5, 1, loanDomain.StateActive)
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := repo.UpdateCounters(ctx, l.ID, loanDomain.Counters{
		Paid: 2, Pending: 3, Overdue: 1, Outstanding: dec("6600"),
	})
	if err != nil {
		t.Fatalf("UpdateCounters: %v", err)
	}

	got, err := repo.GetByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.PaidCount != 2 || got.PendingCount != 3 || got.OverdueCount != 1 {
		t.Fatalf("counters: %d/%d/%d", got.PaidCount, got.PendingCount, got.OverdueCount)
	}
	if !got.Outstanding.Equal(dec("6600")) {
		t.Fatalf("outstanding=%s", got.Outstanding)
	}
	if got.State != loanDomain.StateActive || got.Sequence != 1 {
		t.Fatalf("non-counter columns changed: %+v", got)
	}
}

func TestLoan_SearchActiveByClientName(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	if err := db.Create(&clientSQLite{Name: "Maria Lopez", AgentID: 1, Active: true}).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	if err := db.Create(&clientSQLite{Name: "Pedro Gil", AgentID: 1, Active: true}).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}

	match := makeLoan(t, 1, 1, loanDomain.StateActive)
	wrongClient := makeLoan(t, 2, 1, loanDomain.StateActive)
	wrongState := makeLoan(t, 1, 2, loanDomain.StateSettled)
	for _, l := range []*loanDomain.Loan{match, wrongClient, wrongState} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.SearchActiveByClientName(ctx, "mari")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0].ID != match.ID {
		t.Fatalf("got=%+v", got)
	}
}

func TestLoan_PortfolioSummary(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	healthy := makeLoan(t, 5, 1, loanDomain.StateActive)
	healthy.Outstanding = dec("4400")
	overdue := makeLoan(t, 8, 1, loanDomain.StateActive)
	overdue.OverdueCount = 1
	overdue.Outstanding = dec("6600")
	settled := makeLoan(t, 9, 1, loanDomain.StateSettled)
	settled.Outstanding = dec("0")
	for _, l := range []*loanDomain.Loan{healthy, overdue, settled} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	sum, err := repo.PortfolioSummary(ctx)
	if err != nil {
		t.Fatalf("PortfolioSummary: %v", err)
	}
	if !sum.TotalLent.Equal(dec("20000")) {
		t.Fatalf("total lent=%s", sum.TotalLent)
	}
	if !sum.TotalReceivable.Equal(dec("11000")) {
		t.Fatalf("total receivable=%s", sum.TotalReceivable)
	}
	if !sum.OverdueReceivable.Equal(dec("6600")) {
		t.Fatalf("overdue receivable=%s", sum.OverdueReceivable)
	}
}
