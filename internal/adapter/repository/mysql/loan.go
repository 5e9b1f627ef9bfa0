package mysql

import (
	"context"

	"gorm.io/gorm"

	loanDomain "prestamos-api/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByID(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := forUpdate(r.db.WithContext(ctx)).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) MaxSequence(ctx context.Context, clientID uint64) (int, error) {
	var max int
	err := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("id_cliente = ?", clientID).
		Select("COALESCE(MAX(numero_prestamo), 0)").
		Scan(&max).Error
	return max, err
}

func (r *LoanRepository) List(ctx context.Context) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).Order("fecha_creacion DESC").Find(&out).Error
	return out, err
}

func (r *LoanRepository) ListByState(ctx context.Context, s loanDomain.State) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).
		Where("estado = ?", s).
		Order("fecha_creacion DESC").
		Find(&out).Error
	return out, err
}

func (r *LoanRepository) ListByClient(ctx context.Context, clientID uint64) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).
		Where("id_cliente = ?", clientID).
		Order("numero_prestamo DESC").
		Find(&out).Error
	return out, err
}

func (r *LoanRepository) OpenByClient(ctx context.Context, clientID uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("id_cliente = ? AND estado IN ?", clientID,
			[]loanDomain.State{loanDomain.StateRequested, loanDomain.StateActive}).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) ListDelinquent(ctx context.Context) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).
		Where("estado = ? AND cuotas_vencidas > 0", loanDomain.StateActive).
		Order("cuotas_vencidas DESC").
		Find(&out).Error
	return out, err
}

func (r *LoanRepository) SearchActiveByClientName(ctx context.Context, name string) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).
		Joins("INNER JOIN clientes ON clientes.id_cliente = prestamos.id_cliente").
		Where("prestamos.estado = ? AND clientes.nombre LIKE ?", loanDomain.StateActive, "%"+name+"%").
		Order("clientes.nombre ASC").
		Find(&out).Error
	return out, err
}

func (r *LoanRepository) IDsByState(ctx context.Context, s loanDomain.State) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("estado = ?", s).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *LoanRepository) UpdateCounters(ctx context.Context, id uint64, c loanDomain.Counters) error {
	return r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"cuotas_pagadas":    c.Paid,
			"cuotas_pendientes": c.Pending,
			"cuotas_vencidas":   c.Overdue,
			"saldo_pendiente":   c.Outstanding,
		}).Error
}

func (r *LoanRepository) PortfolioSummary(ctx context.Context) (*loanDomain.PortfolioSummary, error) {
	var out loanDomain.PortfolioSummary
	err := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("estado = ?", loanDomain.StateActive).
		Select(`COALESCE(SUM(monto_prestado), 0) AS total_lent,
			COALESCE(SUM(saldo_pendiente), 0) AS total_receivable,
			COALESCE(SUM(CASE WHEN cuotas_vencidas > 0 THEN saldo_pendiente ELSE 0 END), 0) AS overdue_receivable`).
		Scan(&out).Error
	return &out, err
}
