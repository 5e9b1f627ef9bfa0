package installment

import (
	"time"

	"github.com/shopspring/decimal"
)

type State string

const (
	StatePending State = "PENDIENTE"
	StatePaid    State = "PAGADA"
	StateOverdue State = "VENCIDA"
)

type Installment struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"id_cuota"`
	LoanID uint64 `gorm:"column:id_prestamo;not null;index:idx_cuotas_prestamo" json:"id_prestamo"`
	// 1-based, unique per loan.
	Number        int             `gorm:"column:numero_cuota;not null" json:"numero_cuota"`
	Amount        decimal.Decimal `gorm:"column:monto_cuota;type:decimal(12,2);not null" json:"monto_cuota"`
	ScheduledDate time.Time       `gorm:"column:fecha_programada;type:date;not null" json:"fecha_programada"`
	PaymentDate   *time.Time      `gorm:"column:fecha_pago;type:date" json:"fecha_pago"`
	State         State           `gorm:"column:estado;type:enum('PENDIENTE','PAGADA','VENCIDA');default:'PENDIENTE'" json:"estado"`
	AmountPaid    decimal.Decimal `gorm:"column:monto_pagado;type:decimal(12,2);default:0" json:"monto_pagado"`
	// Tracked for reporting; no accrual algorithm writes anything but zero.
	PenaltyAmount decimal.Decimal `gorm:"column:monto_mora;type:decimal(12,2);default:0" json:"monto_mora"`
	DaysOverdue   int             `gorm:"column:dias_atraso;default:0" json:"dias_atraso"`
	Notes         string          `gorm:"column:notas;type:text" json:"notas"`
	CreatedAt     time.Time       `gorm:"column:fecha_creacion;autoCreateTime" json:"fecha_creacion"`
	UpdatedAt     time.Time       `gorm:"column:fecha_modificacion;autoUpdateTime" json:"fecha_modificacion"`
}

func (Installment) TableName() string { return "cuotas" }

func (i *Installment) Unpaid() bool { return i.State != StatePaid }
