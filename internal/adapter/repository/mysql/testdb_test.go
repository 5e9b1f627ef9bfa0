package mysql

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"prestamos-api/pkg/civil"
)

// --- SQLite-friendly schemas only for tests (no enums/engine specifics) ---

type loanSQLite struct {
	ID                uint64          `gorm:"primaryKey;column:id;autoIncrement"`
	LoanID            string          `gorm:"column:loan_id;size:32;uniqueIndex"`
	ClientID          uint64          `gorm:"column:id_cliente;index"`
	Sequence          int             `gorm:"column:numero_prestamo"`
	Principal         decimal.Decimal `gorm:"column:monto_prestado;type:numeric"`
	Rate              decimal.Decimal `gorm:"column:tasa_interes;type:numeric"`
	Frequency         string          `gorm:"column:frecuencia_pago;size:20"`
	InstallmentCount  int             `gorm:"column:numero_cuotas"`
	InstallmentAmount decimal.Decimal `gorm:"column:monto_cuota;type:numeric"`
	Total             decimal.Decimal `gorm:"column:monto_total;type:numeric"`
	TotalInterest     decimal.Decimal `gorm:"column:total_intereses;type:numeric"`
	RequestDate       time.Time       `gorm:"column:fecha_solicitud"`
	ApprovalDate      *time.Time      `gorm:"column:fecha_aprobacion"`
	FirstPaymentDate  time.Time       `gorm:"column:fecha_primer_pago"`
	State             string          `gorm:"column:estado;size:20"`
	PaidCount         int             `gorm:"column:cuotas_pagadas;default:0"`
	PendingCount      int             `gorm:"column:cuotas_pendientes;default:0"`
	OverdueCount      int             `gorm:"column:cuotas_vencidas;default:0"`
	Outstanding       decimal.Decimal `gorm:"column:saldo_pendiente;type:numeric"`
	LiquidationDate   *time.Time      `gorm:"column:fecha_liquidacion"`
	Notes             string          `gorm:"column:notas"`
	RegisteredBy      uint64          `gorm:"column:id_usuario_registro"`
	CreatedAt         time.Time       `gorm:"column:fecha_creacion;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:fecha_modificacion;autoUpdateTime"`
}

func (loanSQLite) TableName() string { return "prestamos" }

type installmentSQLite struct {
	ID            uint64          `gorm:"primaryKey;column:id;autoIncrement"`
	LoanID        uint64          `gorm:"column:id_prestamo;index"`
	Number        int             `gorm:"column:numero_cuota"`
	Amount        decimal.Decimal `gorm:"column:monto_cuota;type:numeric"`
	ScheduledDate time.Time       `gorm:"column:fecha_programada"`
	PaymentDate   *time.Time      `gorm:"column:fecha_pago"`
	State         string          `gorm:"column:estado;size:20"`
	AmountPaid    decimal.Decimal `gorm:"column:monto_pagado;type:numeric"`
	PenaltyAmount decimal.Decimal `gorm:"column:monto_mora;type:numeric"`
	DaysOverdue   int             `gorm:"column:dias_atraso;default:0"`
	Notes         string          `gorm:"column:notas"`
	CreatedAt     time.Time       `gorm:"column:fecha_creacion;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:fecha_modificacion;autoUpdateTime"`
}

func (installmentSQLite) TableName() string { return "cuotas" }

type paymentSQLite struct {
	ID            uint64          `gorm:"primaryKey;column:id;autoIncrement"`
	ReceiptID     string          `gorm:"column:receipt_id;size:36;uniqueIndex"`
	InstallmentID uint64          `gorm:"column:id_cuota;index"`
	LoanID        uint64          `gorm:"column:id_prestamo;index"`
	Amount        decimal.Decimal `gorm:"column:monto_pagado;type:numeric"`
	PaidAt        time.Time       `gorm:"column:fecha_pago;autoCreateTime"`
	OperatorID    uint64          `gorm:"column:id_usuario_registro"`
}

func (paymentSQLite) TableName() string { return "historial_pagos" }

type clientSQLite struct {
	ID             uint64    `gorm:"primaryKey;column:id_cliente;autoIncrement"`
	Name           string    `gorm:"column:nombre;size:100"`
	Address        string    `gorm:"column:direccion;size:200"`
	Phone          string    `gorm:"column:telefono;size:20"`
	SecondaryPhone string    `gorm:"column:telefono_secundario;size:20"`
	AgentID        uint64    `gorm:"column:id_promotor;index"`
	GroupID        *uint64   `gorm:"column:id_grupo"`
	GuarantorID    *uint64   `gorm:"column:id_aval"`
	Notes          string    `gorm:"column:notas"`
	Active         bool      `gorm:"column:activo;default:true"`
	CreatedAt      time.Time `gorm:"column:fecha_creacion;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:fecha_modificacion;autoUpdateTime"`
}

func (clientSQLite) TableName() string { return "clientes" }

type guarantorSQLite struct {
	ID        uint64    `gorm:"primaryKey;column:id_aval;autoIncrement"`
	Name      string    `gorm:"column:nombre;size:100"`
	Phone     string    `gorm:"column:telefono;size:20"`
	Address   string    `gorm:"column:direccion;size:200"`
	Active    bool      `gorm:"column:activo;default:true"`
	CreatedAt time.Time `gorm:"column:fecha_creacion;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:fecha_modificacion;autoUpdateTime"`
}

func (guarantorSQLite) TableName() string { return "avales" }

type agentSQLite struct {
	ID        uint64    `gorm:"primaryKey;column:id_promotor;autoIncrement"`
	Name      string    `gorm:"column:nombre;size:100"`
	Phone     string    `gorm:"column:telefono;size:20"`
	Active    bool      `gorm:"column:activo;default:true"`
	CreatedAt time.Time `gorm:"column:fecha_creacion;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:fecha_modificacion;autoUpdateTime"`
}

func (agentSQLite) TableName() string { return "promotores" }

type groupSQLite struct {
	ID          uint64    `gorm:"primaryKey;column:id_grupo;autoIncrement"`
	Name        string    `gorm:"column:nombre;size:100"`
	Description string    `gorm:"column:descripcion;size:200"`
	Active      bool      `gorm:"column:activo;default:true"`
	CreatedAt   time.Time `gorm:"column:fecha_creacion;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:fecha_modificacion;autoUpdateTime"`
}

func (groupSQLite) TableName() string { return "grupos" }

type userSQLite struct {
	ID           uint64     `gorm:"primaryKey;column:id_usuario;autoIncrement"`
	Username     string     `gorm:"column:username;size:50;uniqueIndex"`
	PasswordHash string     `gorm:"column:password;size:255"`
	FullName     string     `gorm:"column:nombre_completo;size:100"`
	Email        string     `gorm:"column:email;size:100"`
	Role         string     `gorm:"column:rol;size:20"`
	Active       bool       `gorm:"column:activo;default:true"`
	LastAccess   *time.Time `gorm:"column:ultimo_acceso"`
	CreatedAt    time.Time  `gorm:"column:fecha_creacion;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:fecha_modificacion;autoUpdateTime"`
}

func (userSQLite) TableName() string { return "usuarios" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe schemas, never the domain models.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&loanSQLite{}, &installmentSQLite{}, &paymentSQLite{},
		&clientSQLite{}, &guarantorSQLite{}, &agentSQLite{}, &groupSQLite{},
		&userSQLite{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := civil.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}
