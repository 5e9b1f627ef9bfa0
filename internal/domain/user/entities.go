package user

import (
	"errors"
	"time"
)

const (
	RoleAdmin    = "ADMIN"
	RoleOperator = "OPERADOR"
	RoleViewer   = "CONSULTA"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrUsernameTaken  = errors.New("username already registered")
	ErrBadCredentials = errors.New("invalid credentials")
)

type User struct {
	ID           uint64     `gorm:"primaryKey;column:id_usuario" json:"id_usuario"`
	Username     string     `gorm:"column:username;size:50;not null;uniqueIndex:ux_usuarios_username" json:"username"`
	PasswordHash string     `gorm:"column:password;size:255;not null" json:"-"`
	FullName     string     `gorm:"column:nombre_completo;size:100;not null" json:"nombre_completo"`
	Email        string     `gorm:"column:email;size:100" json:"email"`
	Role         string     `gorm:"column:rol;size:20;not null" json:"rol"`
	Active       bool       `gorm:"column:activo;default:true" json:"activo"`
	LastAccess   *time.Time `gorm:"column:ultimo_acceso" json:"ultimo_acceso"`
	CreatedAt    time.Time  `gorm:"column:fecha_creacion;autoCreateTime" json:"fecha_creacion"`
	UpdatedAt    time.Time  `gorm:"column:fecha_modificacion;autoUpdateTime" json:"fecha_modificacion"`
}

func (User) TableName() string { return "usuarios" }
