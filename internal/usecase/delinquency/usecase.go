// Package delinquency holds the batch that ages pending installments into
// VENCIDA. It is one-directional: nothing here ever demotes an overdue
// installment back to pending.
package delinquency

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"prestamos-api/internal/domain/installment"
	"prestamos-api/internal/domain/loan"
	"prestamos-api/internal/domain/uow"
	"prestamos-api/pkg/civil"
)

type Usecase struct {
	uow uow.UnitOfWork
	log *logrus.Logger

	now func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, log *logrus.Logger) *Usecase {
	return &Usecase{uow: tx, log: log, now: time.Now}
}

type Result struct {
	Marked    int `json:"cuotas_marcadas"`
	Refreshed int `json:"prestamos_actualizados"`
}

// MarkOverdue reclassifies every PENDIENTE installment scheduled strictly
// before today, then recounts every ACTIVO loan — not just the ones touched
// in this run, since an installment can age into overdue without any event.
// Safe to re-run at any time.
func (u *Usecase) MarkOverdue(ctx context.Context) (*Result, error) {
	today := civil.Date(u.now())
	res := &Result{}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		due, err := r.Installments.ListPendingBefore(ctx, today)
		if err != nil {
			return err
		}
		for i := range due {
			c := &due[i]
			c.State = installment.StateOverdue
			c.DaysOverdue = civil.DaysBetween(c.ScheduledDate, today)
			if err := r.Installments.Save(ctx, c); err != nil {
				return err
			}
		}
		res.Marked = len(due)

		ids, err := r.Loans.IDsByState(ctx, loan.StateActive)
		if err != nil {
			return err
		}
		for _, id := range ids {
			counters, err := r.Installments.Recount(ctx, id)
			if err != nil {
				return err
			}
			if err := r.Loans.UpdateCounters(ctx, id, counters); err != nil {
				return err
			}
		}
		res.Refreshed = len(ids)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"cuotas_marcadas":        res.Marked,
		"prestamos_actualizados": res.Refreshed,
	}).Info("delinquency scan finished")
	return res, nil
}
