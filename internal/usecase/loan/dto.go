package loan

import (
	"time"

	"prestamos-api/internal/domain/loan"
	"prestamos-api/internal/domain/registry"
	"prestamos-api/pkg/civil"
	"prestamos-api/pkg/money"
)

// LoanDTO is the wire shape of a loan. Currency fields carry exactly two
// fractional digits; the rate stays a fraction (0.10, not 10).
type LoanDTO struct {
	ID                uint64               `json:"id_prestamo"`
	LoanID            string               `json:"loan_id"`
	ClientID          uint64               `json:"id_cliente"`
	Sequence          int                  `json:"numero_prestamo"`
	Principal         string               `json:"monto_prestado"`
	Rate              string               `json:"tasa_interes"`
	Frequency         string               `json:"frecuencia_pago"`
	InstallmentCount  int                  `json:"numero_cuotas"`
	InstallmentAmount string               `json:"monto_cuota"`
	Total             string               `json:"monto_total"`
	TotalInterest     string               `json:"total_intereses"`
	RequestDate       string               `json:"fecha_solicitud"`
	ApprovalDate      *string              `json:"fecha_aprobacion"`
	FirstPaymentDate  string               `json:"fecha_primer_pago"`
	State             string               `json:"estado"`
	PaidCount         int                  `json:"cuotas_pagadas"`
	PendingCount      int                  `json:"cuotas_pendientes"`
	OverdueCount      int                  `json:"cuotas_vencidas"`
	Outstanding       string               `json:"saldo_pendiente"`
	LiquidationDate   *string              `json:"fecha_liquidacion"`
	Notes             string               `json:"notas,omitempty"`
	Client            *registry.ClientCard `json:"cliente,omitempty"`
}

func fmtDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := civil.Format(*t)
	return &s
}

func toDTO(l *loan.Loan, card *registry.ClientCard) *LoanDTO {
	return &LoanDTO{
		ID:                l.ID,
		LoanID:            l.LoanID,
		ClientID:          l.ClientID,
		Sequence:          l.Sequence,
		Principal:         money.Fixed2(l.Principal),
		Rate:              l.Rate.String(),
		Frequency:         string(l.Frequency),
		InstallmentCount:  l.InstallmentCount,
		InstallmentAmount: money.Fixed2(l.InstallmentAmount),
		Total:             money.Fixed2(l.Total),
		TotalInterest:     money.Fixed2(l.TotalInterest),
		RequestDate:       civil.Format(l.RequestDate),
		ApprovalDate:      fmtDate(l.ApprovalDate),
		FirstPaymentDate:  civil.Format(l.FirstPaymentDate),
		State:             string(l.State),
		PaidCount:         l.PaidCount,
		PendingCount:      l.PendingCount,
		OverdueCount:      l.OverdueCount,
		Outstanding:       money.Fixed2(l.Outstanding),
		LiquidationDate:   fmtDate(l.LiquidationDate),
		Notes:             l.Notes,
		Client:            card,
	}
}
