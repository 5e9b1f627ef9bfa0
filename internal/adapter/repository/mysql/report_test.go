package mysql

import (
	"context"
	"testing"

	"gorm.io/gorm"

	instDomain "prestamos-api/internal/domain/installment"
	loanDomain "prestamos-api/internal/domain/loan"
	"prestamos-api/internal/domain/registry"
	"prestamos-api/internal/domain/report"
)

// seedPortfolio builds two active loans for two agents:
//
//	Maria (agent Laura, group Centro): installments 01-15 PAGADA, 01-30 VENCIDA, 02-14 PENDIENTE
//	Pedro (agent Ana, no group):       installment  01-30 PENDIENTE
//
// plus one settled loan whose rows must never show up.
func seedPortfolio(t *testing.T, db *gorm.DB) (mariaLoan, pedroLoan *loanDomain.Loan) {
	t.Helper()
	ctx := context.Background()
	clients := NewClientRepository(db)
	agents := NewAgentRepository(db)
	groups := NewGroupRepository(db)
	loans := NewLoanRepository(db)
	installments := NewInstallmentRepository(db)

	laura := &registry.Agent{Name: "Laura", Active: true}
	ana := &registry.Agent{Name: "Ana", Active: true}
	for _, a := range []*registry.Agent{laura, ana} {
		if err := agents.Create(ctx, a); err != nil {
			t.Fatalf("create agent: %v", err)
		}
	}
	centro := &registry.Group{Name: "Centro", Active: true}
	if err := groups.Create(ctx, centro); err != nil {
		t.Fatalf("create group: %v", err)
	}

	maria := &registry.Client{Name: "Maria Lopez", Phone: "5551234", AgentID: laura.ID, GroupID: &centro.ID, Active: true}
	pedro := &registry.Client{Name: "Pedro Gil", Phone: "5555678", AgentID: ana.ID, Active: true}
	for _, c := range []*registry.Client{maria, pedro} {
		if err := clients.Create(ctx, c); err != nil {
			t.Fatalf("create client: %v", err)
		}
	}

	mariaLoan = makeLoan(t, maria.ID, 1, loanDomain.StateActive)
	pedroLoan = makeLoan(t, pedro.ID, 1, loanDomain.StateActive)
	settled := makeLoan(t, maria.ID, 2, loanDomain.StateSettled)
	for _, l := range []*loanDomain.Loan{mariaLoan, pedroLoan, settled} {
		if err := loans.Create(ctx, l); err != nil {
			t.Fatalf("create loan: %v", err)
		}
	}

	paid := day(t, "2024-01-20")
	rows := []*instDomain.Installment{
		{LoanID: mariaLoan.ID, Number: 1, Amount: dec("2200"), ScheduledDate: day(t, "2024-01-15"),
			State: instDomain.StatePaid, AmountPaid: dec("2200"), PenaltyAmount: dec("0"), PaymentDate: &paid},
		{LoanID: mariaLoan.ID, Number: 2, Amount: dec("2200"), ScheduledDate: day(t, "2024-01-30"),
			State: instDomain.StateOverdue, AmountPaid: dec("0"), PenaltyAmount: dec("0"), DaysOverdue: 10},
		{LoanID: mariaLoan.ID, Number: 3, Amount: dec("2200"), ScheduledDate: day(t, "2024-02-14"),
			State: instDomain.StatePending, AmountPaid: dec("0"), PenaltyAmount: dec("0")},
		{LoanID: pedroLoan.ID, Number: 1, Amount: dec("2200"), ScheduledDate: day(t, "2024-01-30"),
			State: instDomain.StatePending, AmountPaid: dec("0"), PenaltyAmount: dec("0")},
		{LoanID: settled.ID, Number: 1, Amount: dec("2200"), ScheduledDate: day(t, "2024-01-30"),
			State: instDomain.StatePaid, AmountPaid: dec("2200"), PenaltyAmount: dec("0"), PaymentDate: &paid},
	}
	if err := installments.CreateBatch(context.Background(), rows); err != nil {
		t.Fatalf("seed installments: %v", err)
	}
	return mariaLoan, pedroLoan
}

func weekFilter(t *testing.T) report.Filter {
	return report.Filter{Start: day(t, "2024-01-29"), End: day(t, "2024-02-04")}
}

func TestReport_BillingRowsWindowAndDecoration(t *testing.T) {
	db := openTestDB(t)
	seedPortfolio(t, db)
	repo := NewReportRepository(db)

	rows, err := repo.BillingRows(context.Background(), weekFilter(t))
	if err != nil {
		t.Fatalf("BillingRows: %v", err)
	}
	// both 01-30 rows on active loans; the settled loan's row is excluded
	if len(rows) != 2 {
		t.Fatalf("rows=%d: %+v", len(rows), rows)
	}
	byClient := map[string]report.BillingRow{}
	for _, r := range rows {
		byClient[r.ClientName] = r
	}
	m := byClient["Maria Lopez"]
	if m.AgentName != "Laura" || m.GroupName != "Centro" || m.State != "VENCIDA" {
		t.Fatalf("maria row=%+v", m)
	}
	p := byClient["Pedro Gil"]
	if p.AgentName != "Ana" || p.GroupName != "Sin grupo" || p.State != "PENDIENTE" {
		t.Fatalf("pedro row=%+v", p)
	}
}

func TestReport_BillingRowsAgentFilter(t *testing.T) {
	db := openTestDB(t)
	seedPortfolio(t, db)
	repo := NewReportRepository(db)

	f := weekFilter(t)
	var agentID uint64 = 1 // Laura is seeded first
	f.AgentID = &agentID

	rows, err := repo.BillingRows(context.Background(), f)
	if err != nil {
		t.Fatalf("BillingRows: %v", err)
	}
	if len(rows) != 1 || rows[0].ClientName != "Maria Lopez" {
		t.Fatalf("rows=%+v", rows)
	}
}

func TestReport_BillingSummary(t *testing.T) {
	db := openTestDB(t)
	seedPortfolio(t, db)
	repo := NewReportRepository(db)

	// widen to cover all three of Maria's rows plus Pedro's
	f := report.Filter{Start: day(t, "2024-01-01"), End: day(t, "2024-02-29")}
	sum, err := repo.BillingSummary(context.Background(), f)
	if err != nil {
		t.Fatalf("BillingSummary: %v", err)
	}
	if sum.TotalInstallments != 4 || sum.Paid != 1 || sum.Pending != 2 || sum.Overdue != 1 {
		t.Fatalf("summary=%+v", sum)
	}
	if !sum.TotalAmount.Equal(dec("8800")) {
		t.Fatalf("total=%s", sum.TotalAmount)
	}
	if !sum.Collected.Equal(dec("2200")) || !sum.Outstanding.Equal(dec("6600")) {
		t.Fatalf("collected=%s outstanding=%s", sum.Collected, sum.Outstanding)
	}
}

func TestReport_NextDueRowsOnePerLoanOverdueFirst(t *testing.T) {
	db := openTestDB(t)
	seedPortfolio(t, db)
	repo := NewReportRepository(db)

	rows, err := repo.NextDueRows(context.Background())
	if err != nil {
		t.Fatalf("NextDueRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows=%d: %+v", len(rows), rows)
	}
	// Maria's lowest unpaid is #2 (VENCIDA), listed before Pedro's PENDIENTE
	if rows[0].ClientName != "Maria Lopez" || rows[0].Number != 2 || rows[0].State != "VENCIDA" {
		t.Fatalf("first row=%+v", rows[0])
	}
	if rows[1].ClientName != "Pedro Gil" || rows[1].Number != 1 {
		t.Fatalf("second row=%+v", rows[1])
	}
}

func TestReport_OverdueRows(t *testing.T) {
	db := openTestDB(t)
	seedPortfolio(t, db)
	repo := NewReportRepository(db)

	rows, err := repo.OverdueRows(context.Background())
	if err != nil {
		t.Fatalf("OverdueRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows=%+v", rows)
	}
	if rows[0].ClientName != "Maria Lopez" || rows[0].Number != 2 || rows[0].DaysOverdue != 10 {
		t.Fatalf("row=%+v", rows[0])
	}
}

func TestReport_PastDueRowsAggregatePerLoan(t *testing.T) {
	db := openTestDB(t)
	mariaLoan, _ := seedPortfolio(t, db)
	repo := NewReportRepository(db)

	rows, err := repo.PastDueRows(context.Background(), nil)
	if err != nil {
		t.Fatalf("PastDueRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows=%+v", rows)
	}
	r := rows[0]
	if r.LoanID != mariaLoan.ID || r.OverdueCount != 1 {
		t.Fatalf("row=%+v", r)
	}
	if !r.OverdueAmount.Equal(dec("2200")) {
		t.Fatalf("amount=%s", r.OverdueAmount)
	}
	if r.EarliestDue.Format("2006-01-02") != "2024-01-30" {
		t.Fatalf("earliest=%v", r.EarliestDue)
	}
	if r.LastPaymentDate == nil || r.LastPaymentDate.Format("2006-01-02") != "2024-01-20" {
		t.Fatalf("last payment=%v", r.LastPaymentDate)
	}
}
