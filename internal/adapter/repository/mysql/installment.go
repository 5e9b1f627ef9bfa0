package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	instDomain "prestamos-api/internal/domain/installment"
	loanDomain "prestamos-api/internal/domain/loan"
)

type InstallmentRepository struct{ db *gorm.DB }

func NewInstallmentRepository(db *gorm.DB) *InstallmentRepository {
	return &InstallmentRepository{db: db}
}

func (r *InstallmentRepository) Create(ctx context.Context, i *instDomain.Installment) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *InstallmentRepository) CreateBatch(ctx context.Context, batch []*instDomain.Installment) error {
	if len(batch) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&batch).Error
}

func (r *InstallmentRepository) Save(ctx context.Context, i *instDomain.Installment) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *InstallmentRepository) GetByID(ctx context.Context, id uint64) (*instDomain.Installment, error) {
	var out instDomain.Installment
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *InstallmentRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*instDomain.Installment, error) {
	var out instDomain.Installment
	res := forUpdate(r.db.WithContext(ctx)).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *InstallmentRepository) ListByLoan(ctx context.Context, loanID uint64) ([]instDomain.Installment, error) {
	var out []instDomain.Installment
	err := r.db.WithContext(ctx).
		Where("id_prestamo = ?", loanID).
		Order("numero_cuota ASC").
		Find(&out).Error
	return out, err
}

func (r *InstallmentRepository) ListUnpaidByLoan(ctx context.Context, loanID uint64) ([]instDomain.Installment, error) {
	var out []instDomain.Installment
	err := r.db.WithContext(ctx).
		Where("id_prestamo = ? AND estado IN ?", loanID, unpaidStates()).
		Order("numero_cuota ASC").
		Find(&out).Error
	return out, err
}

func (r *InstallmentRepository) NextUnpaid(ctx context.Context, loanID uint64) (*instDomain.Installment, error) {
	var out instDomain.Installment
	res := r.db.WithContext(ctx).
		Where("id_prestamo = ? AND estado IN ?", loanID, unpaidStates()).
		Order("numero_cuota ASC").
		First(&out)
	return &out, res.Error
}

func (r *InstallmentRepository) ListPendingBefore(ctx context.Context, day time.Time) ([]instDomain.Installment, error) {
	var out []instDomain.Installment
	err := r.db.WithContext(ctx).
		Where("estado = ? AND fecha_programada < ?", instDomain.StatePending, day).
		Find(&out).Error
	return out, err
}

// Recount derives the loan counters from the raw rows. A full recount is
// idempotent, so a retried or interrupted mutation can never leave the
// counters drifted.
func (r *InstallmentRepository) Recount(ctx context.Context, loanID uint64) (loanDomain.Counters, error) {
	var c loanDomain.Counters

	count := func(dst *int, states ...instDomain.State) error {
		var n int64
		err := r.db.WithContext(ctx).
			Model(&instDomain.Installment{}).
			Where("id_prestamo = ? AND estado IN ?", loanID, states).
			Count(&n).Error
		*dst = int(n)
		return err
	}
	if err := count(&c.Paid, instDomain.StatePaid); err != nil {
		return c, err
	}
	if err := count(&c.Pending, instDomain.StatePending, instDomain.StateOverdue); err != nil {
		return c, err
	}
	if err := count(&c.Overdue, instDomain.StateOverdue); err != nil {
		return c, err
	}

	err := r.db.WithContext(ctx).
		Model(&instDomain.Installment{}).
		Where("id_prestamo = ? AND estado <> ?", loanID, instDomain.StatePaid).
		Select("COALESCE(SUM(monto_cuota), 0)").
		Scan(&c.Outstanding).Error
	return c, err
}

func unpaidStates() []instDomain.State {
	return []instDomain.State{instDomain.StatePending, instDomain.StateOverdue}
}
