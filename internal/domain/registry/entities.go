package registry

import "time"

// Reference entities. Plain CRUD with soft delete; the loan ledger reads
// them only to validate existence and decorate reports.

type Client struct {
	ID             uint64  `gorm:"primaryKey;column:id_cliente" json:"id_cliente"`
	Name           string  `gorm:"column:nombre;size:100;not null" json:"nombre"`
	Address        string  `gorm:"column:direccion;size:200" json:"direccion"`
	Phone          string  `gorm:"column:telefono;size:20" json:"telefono"`
	SecondaryPhone string  `gorm:"column:telefono_secundario;size:20" json:"telefono_secundario"`
	AgentID        uint64  `gorm:"column:id_promotor;not null;index" json:"id_promotor"`
	GroupID        *uint64 `gorm:"column:id_grupo" json:"id_grupo"`
	GuarantorID    *uint64 `gorm:"column:id_aval" json:"id_aval"`
	Notes          string  `gorm:"column:notas;type:text" json:"notas"`
	Active         bool    `gorm:"column:activo;default:true" json:"activo"`
	CreatedAt      time.Time `gorm:"column:fecha_creacion;autoCreateTime" json:"fecha_creacion"`
	UpdatedAt      time.Time `gorm:"column:fecha_modificacion;autoUpdateTime" json:"fecha_modificacion"`
}

func (Client) TableName() string { return "clientes" }

type Guarantor struct {
	ID        uint64    `gorm:"primaryKey;column:id_aval" json:"id_aval"`
	Name      string    `gorm:"column:nombre;size:100;not null" json:"nombre"`
	Phone     string    `gorm:"column:telefono;size:20" json:"telefono"`
	Address   string    `gorm:"column:direccion;size:200" json:"direccion"`
	Active    bool      `gorm:"column:activo;default:true" json:"activo"`
	CreatedAt time.Time `gorm:"column:fecha_creacion;autoCreateTime" json:"fecha_creacion"`
	UpdatedAt time.Time `gorm:"column:fecha_modificacion;autoUpdateTime" json:"fecha_modificacion"`
}

func (Guarantor) TableName() string { return "avales" }

type Agent struct {
	ID        uint64    `gorm:"primaryKey;column:id_promotor" json:"id_promotor"`
	Name      string    `gorm:"column:nombre;size:100;not null" json:"nombre"`
	Phone     string    `gorm:"column:telefono;size:20" json:"telefono"`
	Active    bool      `gorm:"column:activo;default:true" json:"activo"`
	CreatedAt time.Time `gorm:"column:fecha_creacion;autoCreateTime" json:"fecha_creacion"`
	UpdatedAt time.Time `gorm:"column:fecha_modificacion;autoUpdateTime" json:"fecha_modificacion"`
}

func (Agent) TableName() string { return "promotores" }

type Group struct {
	ID          uint64    `gorm:"primaryKey;column:id_grupo" json:"id_grupo"`
	Name        string    `gorm:"column:nombre;size:100;not null" json:"nombre"`
	Description string    `gorm:"column:descripcion;size:200" json:"descripcion"`
	Active      bool      `gorm:"column:activo;default:true" json:"activo"`
	CreatedAt   time.Time `gorm:"column:fecha_creacion;autoCreateTime" json:"fecha_creacion"`
	UpdatedAt   time.Time `gorm:"column:fecha_modificacion;autoUpdateTime" json:"fecha_modificacion"`
}

func (Group) TableName() string { return "grupos" }

// ClientCard decorates a client with the names behind its foreign keys.
// Reports and loan responses use it instead of re-joining everywhere.
type ClientCard struct {
	Client
	AgentName     string `json:"promotor"`
	GroupName     string `json:"grupo"`
	GuarantorName string `json:"aval"`
}
