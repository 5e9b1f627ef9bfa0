package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type State string

const (
	StateRequested State = "SOLICITADO"
	StateActive    State = "ACTIVO"
	StateSettled   State = "LIQUIDADO"
	StateCancelled State = "CANCELADO"
)

type Frequency string

const (
	FrequencyBiweekly Frequency = "QUINCENAL"
	FrequencyMonthly  Frequency = "MENSUAL"
)

// StepDays is the calendar-day gap between consecutive installments.
// Plain calendar arithmetic, not banking-day aware.
func (f Frequency) StepDays() int {
	if f == FrequencyBiweekly {
		return 15
	}
	return 30
}

func (f Frequency) Valid() bool {
	return f == FrequencyBiweekly || f == FrequencyMonthly
}

type Loan struct {
	ID       uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID   string `gorm:"column:loan_id;type:char(32);uniqueIndex:ux_prestamos_loan_id" json:"loan_id"`
	ClientID uint64 `gorm:"column:id_cliente;not null;index:idx_prestamos_cliente" json:"id_cliente"`
	// Per-client sequence, 1-based. Not globally unique.
	Sequence          int             `gorm:"column:numero_prestamo;not null" json:"numero_prestamo"`
	Principal         decimal.Decimal `gorm:"column:monto_prestado;type:decimal(12,2);not null" json:"monto_prestado"`
	Rate              decimal.Decimal `gorm:"column:tasa_interes;type:decimal(6,4);not null" json:"tasa_interes"` // fraction, 0.10 = 10%
	Frequency         Frequency       `gorm:"column:frecuencia_pago;type:enum('QUINCENAL','MENSUAL');not null" json:"frecuencia_pago"`
	InstallmentCount  int             `gorm:"column:numero_cuotas;not null" json:"numero_cuotas"`
	InstallmentAmount decimal.Decimal `gorm:"column:monto_cuota;type:decimal(12,2);not null" json:"monto_cuota"`
	Total             decimal.Decimal `gorm:"column:monto_total;type:decimal(12,2);not null" json:"monto_total"`
	TotalInterest     decimal.Decimal `gorm:"column:total_intereses;type:decimal(12,2);not null" json:"total_intereses"`
	RequestDate       time.Time       `gorm:"column:fecha_solicitud;type:date" json:"fecha_solicitud"`
	ApprovalDate      *time.Time      `gorm:"column:fecha_aprobacion;type:date" json:"fecha_aprobacion"`
	FirstPaymentDate  time.Time       `gorm:"column:fecha_primer_pago;type:date" json:"fecha_primer_pago"`
	State             State           `gorm:"column:estado;type:enum('SOLICITADO','ACTIVO','LIQUIDADO','CANCELADO');default:'SOLICITADO'" json:"estado"`
	// Denormalized counters, recomputed by full recount. Never trusted
	// without one.
	PaidCount       int             `gorm:"column:cuotas_pagadas;default:0" json:"cuotas_pagadas"`
	PendingCount    int             `gorm:"column:cuotas_pendientes;default:0" json:"cuotas_pendientes"`
	OverdueCount    int             `gorm:"column:cuotas_vencidas;default:0" json:"cuotas_vencidas"`
	Outstanding     decimal.Decimal `gorm:"column:saldo_pendiente;type:decimal(12,2);default:0" json:"saldo_pendiente"`
	LiquidationDate *time.Time      `gorm:"column:fecha_liquidacion;type:date" json:"fecha_liquidacion"`
	Notes           string          `gorm:"column:notas;type:text" json:"notas"`
	RegisteredBy    uint64          `gorm:"column:id_usuario_registro" json:"id_usuario_registro"`
	CreatedAt       time.Time       `gorm:"column:fecha_creacion;autoCreateTime" json:"fecha_creacion"`
	UpdatedAt       time.Time       `gorm:"column:fecha_modificacion;autoUpdateTime" json:"fecha_modificacion"`
}

func (Loan) TableName() string { return "prestamos" }

// Counters is the result of a full recount over a loan's installments.
type Counters struct {
	Paid        int
	Pending     int // includes overdue
	Overdue     int
	Outstanding decimal.Decimal
}

// Settled reports whether the recount leaves nothing unpaid.
func (c Counters) Settled() bool { return c.Pending == 0 }

// ApplyCounters copies a recount result onto the denormalized columns, so a
// later full-row save cannot write back stale counters.
func (l *Loan) ApplyCounters(c Counters) {
	l.PaidCount = c.Paid
	l.PendingCount = c.Pending
	l.OverdueCount = c.Overdue
	l.Outstanding = c.Outstanding
}

// PortfolioSummary aggregates all active loans.
type PortfolioSummary struct {
	TotalLent         decimal.Decimal `json:"total_prestado"`
	TotalReceivable   decimal.Decimal `json:"total_por_cobrar"`
	OverdueReceivable decimal.Decimal `json:"total_vencido"`
}
