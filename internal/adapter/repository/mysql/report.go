package mysql

import (
	"context"

	"gorm.io/gorm"

	instDomain "prestamos-api/internal/domain/installment"
	loanDomain "prestamos-api/internal/domain/loan"
	"prestamos-api/internal/domain/report"
)

// ReportRepository runs the read-side joins. Queries stick to portable SQL
// so the sqlite-backed tests exercise the same statements as MySQL.
type ReportRepository struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) *ReportRepository { return &ReportRepository{db: db} }

func (r *ReportRepository) billingBase(ctx context.Context, f report.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).
		Table("cuotas cu").
		Joins("INNER JOIN prestamos p ON cu.id_prestamo = p.id").
		Joins("INNER JOIN clientes c ON p.id_cliente = c.id_cliente").
		Joins("INNER JOIN promotores pr ON c.id_promotor = pr.id_promotor").
		Joins("LEFT JOIN grupos g ON c.id_grupo = g.id_grupo").
		Where("p.estado = ?", loanDomain.StateActive).
		Where("cu.fecha_programada BETWEEN ? AND ?", f.Start, f.End)
	if f.AgentID != nil {
		q = q.Where("c.id_promotor = ?", *f.AgentID)
	}
	return q
}

func (r *ReportRepository) BillingRows(ctx context.Context, f report.Filter) ([]report.BillingRow, error) {
	var rows []report.BillingRow
	err := r.billingBase(ctx, f).
		Select(`cu.id AS installment_id, cu.numero_cuota AS number,
			cu.fecha_programada AS scheduled_date, cu.monto_cuota AS amount,
			cu.estado AS state, cu.dias_atraso AS days_overdue, cu.fecha_pago AS payment_date,
			c.nombre AS client_name, c.telefono AS client_phone,
			pr.id_promotor AS agent_id, pr.nombre AS agent_name,
			COALESCE(g.nombre, 'Sin grupo') AS group_name,
			p.id AS loan_id, p.numero_prestamo AS loan_sequence`).
		Order("cu.fecha_programada ASC, pr.nombre, c.nombre").
		Scan(&rows).Error
	return rows, err
}

func (r *ReportRepository) BillingSummary(ctx context.Context, f report.Filter) (*report.BillingSummary, error) {
	var out report.BillingSummary
	err := r.billingBase(ctx, f).
		Select(`COUNT(*) AS total_installments,
			COALESCE(SUM(CASE WHEN cu.estado = 'PAGADA' THEN 1 ELSE 0 END), 0) AS paid,
			COALESCE(SUM(CASE WHEN cu.estado = 'PENDIENTE' THEN 1 ELSE 0 END), 0) AS pending,
			COALESCE(SUM(CASE WHEN cu.estado = 'VENCIDA' THEN 1 ELSE 0 END), 0) AS overdue,
			COALESCE(SUM(cu.monto_cuota), 0) AS total_amount,
			COALESCE(SUM(CASE WHEN cu.estado = 'PAGADA' THEN cu.monto_cuota ELSE 0 END), 0) AS collected,
			COALESCE(SUM(CASE WHEN cu.estado <> 'PAGADA' THEN cu.monto_cuota ELSE 0 END), 0) AS outstanding`).
		Scan(&out).Error
	return &out, err
}

// NextDueRows pairs each active loan with its lowest-numbered unpaid
// installment, overdue before pending ('VENCIDA' > 'PENDIENTE' collates
// that way), then by due date.
func (r *ReportRepository) NextDueRows(ctx context.Context) ([]report.NextDueRow, error) {
	var rows []report.NextDueRow
	err := r.db.WithContext(ctx).
		Table("cuotas cu").
		Select(`c.nombre AS client_name, c.telefono AS client_phone,
			pr.nombre AS agent_name, COALESCE(g.nombre, 'Sin grupo') AS group_name,
			p.numero_prestamo AS loan_sequence, cu.numero_cuota AS number,
			cu.fecha_programada AS scheduled_date, cu.monto_cuota AS amount, cu.estado AS state`).
		Joins(`INNER JOIN (
			SELECT id_prestamo, MIN(numero_cuota) AS primera_cuota
			FROM cuotas WHERE estado IN ? GROUP BY id_prestamo
		) primera ON cu.id_prestamo = primera.id_prestamo AND cu.numero_cuota = primera.primera_cuota`,
			unpaidStates()).
		Joins("INNER JOIN prestamos p ON cu.id_prestamo = p.id").
		Joins("INNER JOIN clientes c ON p.id_cliente = c.id_cliente").
		Joins("INNER JOIN promotores pr ON c.id_promotor = pr.id_promotor").
		Joins("LEFT JOIN grupos g ON c.id_grupo = g.id_grupo").
		Where("p.estado = ? AND cu.estado IN ?", loanDomain.StateActive, unpaidStates()).
		Order("cu.estado DESC, cu.fecha_programada ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *ReportRepository) OverdueRows(ctx context.Context) ([]report.OverdueRow, error) {
	var rows []report.OverdueRow
	err := r.db.WithContext(ctx).
		Table("cuotas cu").
		Select(`c.nombre AS client_name, c.telefono AS client_phone, pr.nombre AS agent_name,
			cu.numero_cuota AS number, cu.monto_cuota AS amount,
			cu.fecha_programada AS scheduled_date, cu.dias_atraso AS days_overdue`).
		Joins("INNER JOIN prestamos p ON cu.id_prestamo = p.id").
		Joins("INNER JOIN clientes c ON p.id_cliente = c.id_cliente").
		Joins("INNER JOIN promotores pr ON c.id_promotor = pr.id_promotor").
		Where("cu.estado = ? AND p.estado = ?", instDomain.StateOverdue, loanDomain.StateActive).
		Order("cu.dias_atraso DESC, c.nombre").
		Scan(&rows).Error
	return rows, err
}

func (r *ReportRepository) PastDueRows(ctx context.Context, agentID *uint64) ([]report.PastDueRow, error) {
	q := r.db.WithContext(ctx).
		Table("cuotas cu").
		Select(`c.nombre AS client_name, c.telefono AS client_phone, pr.nombre AS agent_name,
			COALESCE(g.nombre, 'Sin grupo') AS group_name,
			p.id AS loan_id, p.numero_prestamo AS loan_sequence,
			COUNT(cu.id) AS overdue_count,
			COALESCE(SUM(cu.monto_cuota), 0) AS overdue_amount,
			MIN(cu.fecha_programada) AS earliest_due,
			(SELECT MAX(cu2.fecha_pago) FROM cuotas cu2
			 WHERE cu2.id_prestamo = p.id AND cu2.estado = 'PAGADA') AS last_payment_date`).
		Joins("INNER JOIN prestamos p ON cu.id_prestamo = p.id").
		Joins("INNER JOIN clientes c ON p.id_cliente = c.id_cliente").
		Joins("INNER JOIN promotores pr ON c.id_promotor = pr.id_promotor").
		Joins("LEFT JOIN grupos g ON c.id_grupo = g.id_grupo").
		Where("cu.estado = ? AND p.estado = ?", instDomain.StateOverdue, loanDomain.StateActive).
		Group("p.id, p.numero_prestamo, c.id_cliente, c.nombre, c.telefono, pr.nombre, g.nombre")
	if agentID != nil {
		q = q.Where("c.id_promotor = ?", *agentID)
	}
	var rows []report.PastDueRow
	err := q.Order("earliest_due ASC").Scan(&rows).Error
	return rows, err
}
