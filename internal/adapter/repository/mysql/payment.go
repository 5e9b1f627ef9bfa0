package mysql

import (
	"context"

	"gorm.io/gorm"

	paymentDomain "prestamos-api/internal/domain/payment"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, rec *paymentDomain.Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *PaymentRepository) ListByLoan(ctx context.Context, loanID uint64) ([]paymentDomain.Record, error) {
	var out []paymentDomain.Record
	err := r.db.WithContext(ctx).
		Where("id_prestamo = ?", loanID).
		Order("fecha_pago DESC").
		Find(&out).Error
	return out, err
}
