// Package report defines the read-side rows composed from loan, installment
// and reference data. Queries never mutate anything.
package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Filter narrows a report to a date range and/or a single agent.
type Filter struct {
	Start   time.Time
	End     time.Time
	AgentID *uint64
}

// BillingRow is one installment scheduled in the requested window, decorated
// with client/agent/group names for the field sheets.
type BillingRow struct {
	InstallmentID uint64          `json:"id_cuota"`
	Number        int             `json:"numero_cuota"`
	ScheduledDate time.Time       `json:"fecha_programada"`
	Amount        decimal.Decimal `json:"monto_cuota"`
	State         string          `json:"estado"`
	DaysOverdue   int             `json:"dias_atraso"`
	PaymentDate   *time.Time      `json:"fecha_pago"`
	ClientName    string          `json:"cliente"`
	ClientPhone   string          `json:"telefono"`
	AgentID       uint64          `json:"id_promotor"`
	AgentName     string          `json:"promotor"`
	GroupName     string          `json:"grupo"`
	LoanID        uint64          `json:"id_prestamo"`
	LoanSequence  int             `json:"numero_prestamo"`
}

type BillingSummary struct {
	TotalInstallments int             `json:"total_cuotas"`
	Paid              int             `json:"cuotas_pagadas"`
	Pending           int             `json:"cuotas_pendientes"`
	Overdue           int             `json:"cuotas_vencidas"`
	TotalAmount       decimal.Decimal `json:"monto_total"`
	Collected         decimal.Decimal `json:"monto_cobrado"`
	Outstanding       decimal.Decimal `json:"monto_pendiente"`
}

// NextDueRow is the single next unpaid installment of an active loan.
type NextDueRow struct {
	ClientName    string          `json:"cliente"`
	ClientPhone   string          `json:"telefono"`
	AgentName     string          `json:"promotor"`
	GroupName     string          `json:"grupo"`
	LoanSequence  int             `json:"numero_prestamo"`
	Number        int             `json:"numero_cuota"`
	ScheduledDate time.Time       `json:"fecha_programada"`
	Amount        decimal.Decimal `json:"monto_cuota"`
	State         string          `json:"estado"`
	DaysOverdue   int             `json:"dias_atraso"`
}

type OverdueRow struct {
	ClientName    string          `json:"cliente"`
	ClientPhone   string          `json:"telefono"`
	AgentName     string          `json:"promotor"`
	Number        int             `json:"numero_cuota"`
	Amount        decimal.Decimal `json:"monto_cuota"`
	ScheduledDate time.Time       `json:"fecha_programada"`
	DaysOverdue   int             `json:"dias_atraso"`
}

// PastDueRow aggregates one delinquent loan for the past-due portfolio.
type PastDueRow struct {
	ClientName      string          `json:"cliente"`
	ClientPhone     string          `json:"telefono"`
	AgentName       string          `json:"promotor"`
	GroupName       string          `json:"grupo"`
	LoanID          uint64          `json:"id_prestamo"`
	LoanSequence    int             `json:"numero_prestamo"`
	OverdueCount    int             `json:"cuotas_vencidas"`
	OverdueAmount   decimal.Decimal `json:"monto_vencido"`
	EarliestDue     time.Time       `json:"fecha_vencida_mas_antigua"`
	DaysPastDue     int             `json:"dias_atraso"`
	LastPaymentDate *time.Time      `json:"ultima_fecha_pago"`
}

type Repository interface {
	BillingRows(ctx context.Context, f Filter) ([]BillingRow, error)
	BillingSummary(ctx context.Context, f Filter) (*BillingSummary, error)
	NextDueRows(ctx context.Context) ([]NextDueRow, error)
	OverdueRows(ctx context.Context) ([]OverdueRow, error)
	PastDueRows(ctx context.Context, agentID *uint64) ([]PastDueRow, error)
}
