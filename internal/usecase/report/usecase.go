// Package report composes the read-only collection and cash-flow views.
// Everything here is a point-in-time snapshot; no mutation.
package report

import (
	"context"
	"time"

	"prestamos-api/internal/domain/installment"
	"prestamos-api/internal/domain/report"
	"prestamos-api/pkg/civil"
)

type Usecase struct {
	reports report.Repository

	now func() time.Time
}

func NewUsecase(reports report.Repository) *Usecase {
	return &Usecase{reports: reports, now: time.Now}
}

type WeeklyBillingOutput struct {
	Start   string                 `json:"fechaInicio"`
	End     string                 `json:"fechaFin"`
	Summary *report.BillingSummary `json:"resumen"`
	Rows    []report.BillingRow    `json:"cuotas"`
}

// WeeklyBilling lists every installment scheduled in [start, end] on ACTIVO
// loans, with an aggregate summary. When no range is given it defaults to
// the civil week (Monday-Sunday) containing today; a single bound anchors a
// seven-day window on that side.
func (u *Usecase) WeeklyBilling(ctx context.Context, start, end *time.Time, agentID *uint64) (*WeeklyBillingOutput, error) {
	var from, to time.Time
	switch {
	case start != nil && end != nil:
		from, to = civil.Date(*start), civil.Date(*end)
	case start != nil:
		from = civil.Date(*start)
		to = from.AddDate(0, 0, 6)
	case end != nil:
		to = civil.Date(*end)
		from = to.AddDate(0, 0, -6)
	default:
		from, to = civil.WeekOf(u.now())
	}
	f := report.Filter{Start: from, End: to, AgentID: agentID}

	rows, err := u.reports.BillingRows(ctx, f)
	if err != nil {
		return nil, err
	}
	summary, err := u.reports.BillingSummary(ctx, f)
	if err != nil {
		return nil, err
	}
	return &WeeklyBillingOutput{
		Start:   civil.Format(from),
		End:     civil.Format(to),
		Summary: summary,
		Rows:    rows,
	}, nil
}

// AgentWeek is the weekly billing detail restricted to one agent; the
// promoters print it as their field collection sheet.
func (u *Usecase) AgentWeek(ctx context.Context, agentID uint64, start, end *time.Time) ([]report.BillingRow, error) {
	out, err := u.WeeklyBilling(ctx, start, end, &agentID)
	if err != nil {
		return nil, err
	}
	return out.Rows, nil
}

// CollectionSummary returns, per ACTIVO loan, its single next unpaid
// installment, overdue first. Days overdue are computed live for overdue
// rows so the view does not depend on the last scanner run.
func (u *Usecase) CollectionSummary(ctx context.Context) ([]report.NextDueRow, error) {
	rows, err := u.reports.NextDueRows(ctx)
	if err != nil {
		return nil, err
	}
	today := civil.Date(u.now())
	for i := range rows {
		if rows[i].State == string(installment.StateOverdue) {
			rows[i].DaysOverdue = civil.DaysBetween(rows[i].ScheduledDate, today)
		} else {
			rows[i].DaysOverdue = 0
		}
	}
	return rows, nil
}

// Overdue lists every VENCIDA installment on an ACTIVO loan, most delayed
// first.
func (u *Usecase) Overdue(ctx context.Context) ([]report.OverdueRow, error) {
	return u.reports.OverdueRows(ctx)
}

// PastDuePortfolio aggregates the cartera vencida: one row per delinquent
// loan with its overdue count, amount, age, and last payment.
func (u *Usecase) PastDuePortfolio(ctx context.Context, agentID *uint64) ([]report.PastDueRow, error) {
	rows, err := u.reports.PastDueRows(ctx, agentID)
	if err != nil {
		return nil, err
	}
	today := civil.Date(u.now())
	for i := range rows {
		rows[i].DaysPastDue = civil.DaysBetween(rows[i].EarliestDue, today)
	}
	return rows, nil
}
