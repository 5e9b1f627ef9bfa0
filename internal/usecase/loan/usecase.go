package loan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"prestamos-api/internal/domain/installment"
	"prestamos-api/internal/domain/loan"
	"prestamos-api/internal/domain/registry"
	"prestamos-api/internal/domain/uow"
	"prestamos-api/pkg/civil"
	"prestamos-api/pkg/id"
	"prestamos-api/pkg/money"
)

type Usecase struct {
	loans   loan.Repository
	clients registry.ClientRepository
	uow     uow.UnitOfWork

	now func() time.Time
}

func NewUsecase(loans loan.Repository, clients registry.ClientRepository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loans: loans, clients: clients, uow: tx, now: time.Now}
}

// ValidationError lists the required fields missing from a request.
// Surfaced before any write happens.
type ValidationError struct{ Missing []string }

func (e *ValidationError) Error() string {
	return "campos obligatorios: " + strings.Join(e.Missing, ", ")
}

type CreateLoanInput struct {
	ClientID         uint64          `json:"id_cliente"`
	Principal        decimal.Decimal `json:"monto_prestado"`
	RatePercent      decimal.Decimal `json:"tasa_interes"` // 10 means 10%
	Frequency        string          `json:"frecuencia_pago"`
	InstallmentCount int             `json:"numero_cuotas"`
	FirstPaymentDate string          `json:"fecha_primer_pago"` // YYYY-MM-DD
	Notes            string          `json:"notas"`
	RegisteredBy     uint64          `json:"-"`
}

func (in *CreateLoanInput) validate() error {
	var missing []string
	if in.ClientID == 0 {
		missing = append(missing, "id_cliente")
	}
	if in.Principal.LessThanOrEqual(decimal.Zero) {
		missing = append(missing, "monto_prestado")
	}
	if in.RatePercent.LessThanOrEqual(decimal.Zero) {
		missing = append(missing, "tasa_interes")
	}
	if !loan.Frequency(in.Frequency).Valid() {
		missing = append(missing, "frecuencia_pago")
	}
	if in.InstallmentCount <= 0 {
		missing = append(missing, "numero_cuotas")
	}
	if in.FirstPaymentDate == "" {
		missing = append(missing, "fecha_primer_pago")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Create registers a requested loan. Terms are derived with fixed-point
// decimals; no installments exist until approval.
func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	firstPayment, err := civil.Parse(in.FirstPaymentDate)
	if err != nil {
		return nil, &ValidationError{Missing: []string{"fecha_primer_pago"}}
	}

	card, err := u.clients.Card(ctx, in.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, registry.ErrClientNotFound
		}
		return nil, err
	}

	terms := money.Quote(in.Principal, in.RatePercent, in.InstallmentCount)

	seq, err := u.loans.MaxSequence(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}

	l := &loan.Loan{
		LoanID:            id.NewID32(),
		ClientID:          in.ClientID,
		Sequence:          seq + 1,
		Principal:         in.Principal,
		Rate:              terms.Rate,
		Frequency:         loan.Frequency(in.Frequency),
		InstallmentCount:  in.InstallmentCount,
		InstallmentAmount: terms.Installment,
		Total:             terms.Total,
		TotalInterest:     terms.Interest,
		RequestDate:       civil.Date(u.now()),
		FirstPaymentDate:  civil.Date(firstPayment),
		State:             loan.StateRequested,
		PaidCount:         0,
		PendingCount:      in.InstallmentCount,
		OverdueCount:      0,
		Outstanding:       terms.Total,
		Notes:             in.Notes,
		RegisteredBy:      in.RegisteredBy,
	}
	if err := u.loans.Create(ctx, l); err != nil {
		return nil, err
	}
	return toDTO(l, card), nil
}

// Approve moves a requested loan to ACTIVO and generates its schedule.
// The state change and every installment commit together or not at all.
func (u *Usecase) Approve(ctx context.Context, loanID uint64) (*LoanDTO, []installment.Installment, error) {
	var (
		approved *loan.Loan
		schedule []installment.Installment
	)
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if l.State != loan.StateRequested {
			return loan.ErrNotRequested
		}
		today := civil.Date(u.now())
		l.State = loan.StateActive
		l.ApprovalDate = &today
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		batch := buildSchedule(l)
		if err := r.Installments.CreateBatch(ctx, batch); err != nil {
			return err
		}
		approved = l
		schedule = make([]installment.Installment, len(batch))
		for i, c := range batch {
			schedule[i] = *c
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, loan.ErrNotFound
		}
		return nil, nil, err
	}
	card, _ := u.clients.Card(ctx, approved.ClientID)
	return toDTO(approved, card), schedule, nil
}

// buildSchedule is a pure function of the loan's terms: installment i
// (0-based) falls exactly i*step calendar days after the first payment date.
func buildSchedule(l *loan.Loan) []*installment.Installment {
	step := l.Frequency.StepDays()
	batch := make([]*installment.Installment, l.InstallmentCount)
	for i := 0; i < l.InstallmentCount; i++ {
		batch[i] = &installment.Installment{
			LoanID:        l.ID,
			Number:        i + 1,
			Amount:        l.InstallmentAmount,
			ScheduledDate: l.FirstPaymentDate.AddDate(0, 0, step*i),
			State:         installment.StatePending,
			AmountPaid:    decimal.Zero,
			PenaltyAmount: decimal.Zero,
			DaysOverdue:   0,
		}
	}
	return batch
}

// Liquidate is an administrative override: it forces the loan settled
// without touching installment rows, so loan-level and installment-level
// state may disagree afterwards. That inconsistency is accepted; it is the
// escape hatch, not the normal path.
func (u *Usecase) Liquidate(ctx context.Context, loanID uint64) (*LoanDTO, error) {
	var settled *loan.Loan
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		today := civil.Date(u.now())
		l.State = loan.StateSettled
		l.LiquidationDate = &today
		l.Outstanding = decimal.Zero
		l.PendingCount = 0
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		settled = l
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	return toDTO(settled, nil), nil
}

// Cancel withdraws a loan. Allowed from SOLICITADO or ACTIVO only.
func (u *Usecase) Cancel(ctx context.Context, loanID uint64) (*LoanDTO, error) {
	var cancelled *loan.Loan
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if l.State != loan.StateRequested && l.State != loan.StateActive {
			return loan.ErrCancelNotAllowed
		}
		l.State = loan.StateCancelled
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		cancelled = l
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	return toDTO(cancelled, nil), nil
}

// RecomputeCounters re-derives the denormalized counters from the raw
// installment rows. Idempotent; safe to run at any time for repair.
func (u *Usecase) RecomputeCounters(ctx context.Context, loanID uint64) (loan.Counters, error) {
	var counters loan.Counters
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Loans.GetByID(ctx, loanID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return loan.ErrNotFound
			}
			return err
		}
		c, err := r.Installments.Recount(ctx, loanID)
		if err != nil {
			return err
		}
		if err := r.Loans.UpdateCounters(ctx, loanID, c); err != nil {
			return err
		}
		counters = c
		return nil
	})
	return counters, err
}

// UpdateNotes edits the free-text notes on a loan. Runs under the row lock
// so the full-row save cannot revert counters committed in between.
func (u *Usecase) UpdateNotes(ctx context.Context, loanID uint64, notes string) error {
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		l.Notes = notes
		return r.Loans.Save(ctx, l)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return loan.ErrNotFound
	}
	return err
}

func (u *Usecase) Get(ctx context.Context, loanID uint64) (*LoanDTO, error) {
	l, err := u.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	card, _ := u.clients.Card(ctx, l.ClientID)
	return toDTO(l, card), nil
}

func (u *Usecase) List(ctx context.Context) ([]LoanDTO, error) {
	ls, err := u.loans.List(ctx)
	return u.decorate(ctx, ls, err)
}

func (u *Usecase) ListByState(ctx context.Context, s loan.State) ([]LoanDTO, error) {
	ls, err := u.loans.ListByState(ctx, s)
	return u.decorate(ctx, ls, err)
}

func (u *Usecase) ListByClient(ctx context.Context, clientID uint64) ([]LoanDTO, error) {
	ls, err := u.loans.ListByClient(ctx, clientID)
	return u.decorate(ctx, ls, err)
}

// OpenByClient returns the client's current SOLICITADO/ACTIVO loan.
func (u *Usecase) OpenByClient(ctx context.Context, clientID uint64) (*LoanDTO, error) {
	l, err := u.loans.OpenByClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	card, _ := u.clients.Card(ctx, l.ClientID)
	return toDTO(l, card), nil
}

func (u *Usecase) SearchActiveByClientName(ctx context.Context, name string) ([]LoanDTO, error) {
	ls, err := u.loans.SearchActiveByClientName(ctx, name)
	return u.decorate(ctx, ls, err)
}

func (u *Usecase) ListDelinquent(ctx context.Context) ([]LoanDTO, error) {
	ls, err := u.loans.ListDelinquent(ctx)
	return u.decorate(ctx, ls, err)
}

func (u *Usecase) PortfolioSummary(ctx context.Context) (*loan.PortfolioSummary, error) {
	return u.loans.PortfolioSummary(ctx)
}

func (u *Usecase) getLoan(ctx context.Context, loanID uint64) (*loan.Loan, error) {
	l, err := u.loans.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, fmt.Errorf("load loan %d: %w", loanID, err)
	}
	return l, nil
}

func (u *Usecase) decorate(ctx context.Context, ls []loan.Loan, err error) ([]LoanDTO, error) {
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(ls))
	cards := map[uint64]*registry.ClientCard{}
	for i := range ls {
		card, ok := cards[ls[i].ClientID]
		if !ok {
			card, _ = u.clients.Card(ctx, ls[i].ClientID)
			cards[ls[i].ClientID] = card
		}
		out = append(out, *toDTO(&ls[i], card))
	}
	return out, nil
}
