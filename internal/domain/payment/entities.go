package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is one audit entry in the payment history. Written in the same
// transaction as the installment it settles, so provenance is never lost.
type Record struct {
	ID            uint64          `gorm:"primaryKey;column:id" json:"-"`
	ReceiptID     string          `gorm:"column:receipt_id;type:char(36);uniqueIndex:ux_historial_receipt" json:"receipt_id"`
	InstallmentID uint64          `gorm:"column:id_cuota;not null;index" json:"id_cuota"`
	LoanID        uint64          `gorm:"column:id_prestamo;not null;index" json:"id_prestamo"`
	Amount        decimal.Decimal `gorm:"column:monto_pagado;type:decimal(12,2);not null" json:"monto_pagado"`
	PaidAt        time.Time       `gorm:"column:fecha_pago;autoCreateTime" json:"fecha_pago"`
	OperatorID    uint64          `gorm:"column:id_usuario_registro;not null" json:"id_usuario_registro"`
}

func (Record) TableName() string { return "historial_pagos" }
