package mysql

import (
	"context"

	"gorm.io/gorm"

	"prestamos-api/internal/domain/registry"
)

// ---- clients ----

type ClientRepository struct{ db *gorm.DB }

func NewClientRepository(db *gorm.DB) *ClientRepository { return &ClientRepository{db: db} }

func (r *ClientRepository) Create(ctx context.Context, c *registry.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ClientRepository) Save(ctx context.Context, c *registry.Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ClientRepository) GetByID(ctx context.Context, id uint64) (*registry.Client, error) {
	var out registry.Client
	res := r.db.WithContext(ctx).Where("id_cliente = ?", id).First(&out)
	return &out, res.Error
}

func (r *ClientRepository) ListActive(ctx context.Context) ([]registry.Client, error) {
	var out []registry.Client
	err := r.db.WithContext(ctx).
		Where("activo = ?", true).
		Order("nombre ASC").
		Find(&out).Error
	return out, err
}

func (r *ClientRepository) ListAll(ctx context.Context) ([]registry.Client, error) {
	var out []registry.Client
	err := r.db.WithContext(ctx).Order("activo DESC, nombre ASC").Find(&out).Error
	return out, err
}

func (r *ClientRepository) ListWithLoans(ctx context.Context) ([]registry.Client, error) {
	var out []registry.Client
	err := r.db.WithContext(ctx).
		Distinct("clientes.*").
		Joins("INNER JOIN prestamos ON prestamos.id_cliente = clientes.id_cliente").
		Where("clientes.activo = ?", true).
		Order("clientes.nombre ASC").
		Find(&out).Error
	return out, err
}

func (r *ClientRepository) SearchActiveByName(ctx context.Context, name string) ([]registry.Client, error) {
	var out []registry.Client
	err := r.db.WithContext(ctx).
		Where("activo = ? AND nombre LIKE ?", true, "%"+name+"%").
		Order("nombre ASC").
		Find(&out).Error
	return out, err
}

// Card resolves the decoration names one lookup at a time; reference tables
// are tiny and this keeps the query portable across dialects.
func (r *ClientRepository) Card(ctx context.Context, id uint64) (*registry.ClientCard, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	card := &registry.ClientCard{Client: *c, GroupName: "Sin grupo"}

	var agent registry.Agent
	if err := r.db.WithContext(ctx).Where("id_promotor = ?", c.AgentID).First(&agent).Error; err == nil {
		card.AgentName = agent.Name
	}
	if c.GroupID != nil {
		var group registry.Group
		if err := r.db.WithContext(ctx).Where("id_grupo = ?", *c.GroupID).First(&group).Error; err == nil {
			card.GroupName = group.Name
		}
	}
	if c.GuarantorID != nil {
		var g registry.Guarantor
		if err := r.db.WithContext(ctx).Where("id_aval = ?", *c.GuarantorID).First(&g).Error; err == nil {
			card.GuarantorName = g.Name
		}
	}
	return card, nil
}

// ---- guarantors ----

type GuarantorRepository struct{ db *gorm.DB }

func NewGuarantorRepository(db *gorm.DB) *GuarantorRepository { return &GuarantorRepository{db: db} }

func (r *GuarantorRepository) Create(ctx context.Context, g *registry.Guarantor) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *GuarantorRepository) Save(ctx context.Context, g *registry.Guarantor) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *GuarantorRepository) GetByID(ctx context.Context, id uint64) (*registry.Guarantor, error) {
	var out registry.Guarantor
	res := r.db.WithContext(ctx).Where("id_aval = ?", id).First(&out)
	return &out, res.Error
}

func (r *GuarantorRepository) ListActive(ctx context.Context) ([]registry.Guarantor, error) {
	var out []registry.Guarantor
	err := r.db.WithContext(ctx).Where("activo = ?", true).Order("nombre ASC").Find(&out).Error
	return out, err
}

func (r *GuarantorRepository) ListAll(ctx context.Context) ([]registry.Guarantor, error) {
	var out []registry.Guarantor
	err := r.db.WithContext(ctx).Order("activo DESC, nombre ASC").Find(&out).Error
	return out, err
}

// ---- agents ----

type AgentRepository struct{ db *gorm.DB }

func NewAgentRepository(db *gorm.DB) *AgentRepository { return &AgentRepository{db: db} }

func (r *AgentRepository) Create(ctx context.Context, a *registry.Agent) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AgentRepository) Save(ctx context.Context, a *registry.Agent) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AgentRepository) GetByID(ctx context.Context, id uint64) (*registry.Agent, error) {
	var out registry.Agent
	res := r.db.WithContext(ctx).Where("id_promotor = ?", id).First(&out)
	return &out, res.Error
}

func (r *AgentRepository) ListActive(ctx context.Context) ([]registry.Agent, error) {
	var out []registry.Agent
	err := r.db.WithContext(ctx).Where("activo = ?", true).Order("nombre ASC").Find(&out).Error
	return out, err
}

func (r *AgentRepository) ListAll(ctx context.Context) ([]registry.Agent, error) {
	var out []registry.Agent
	err := r.db.WithContext(ctx).Order("activo DESC, nombre ASC").Find(&out).Error
	return out, err
}

// ---- groups ----

type GroupRepository struct{ db *gorm.DB }

func NewGroupRepository(db *gorm.DB) *GroupRepository { return &GroupRepository{db: db} }

func (r *GroupRepository) Create(ctx context.Context, g *registry.Group) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *GroupRepository) Save(ctx context.Context, g *registry.Group) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *GroupRepository) GetByID(ctx context.Context, id uint64) (*registry.Group, error) {
	var out registry.Group
	res := r.db.WithContext(ctx).Where("id_grupo = ?", id).First(&out)
	return &out, res.Error
}

func (r *GroupRepository) ListActive(ctx context.Context) ([]registry.Group, error) {
	var out []registry.Group
	err := r.db.WithContext(ctx).Where("activo = ?", true).Order("nombre ASC").Find(&out).Error
	return out, err
}

func (r *GroupRepository) ListAll(ctx context.Context) ([]registry.Group, error) {
	var out []registry.Group
	err := r.db.WithContext(ctx).Order("activo DESC, nombre ASC").Find(&out).Error
	return out, err
}
