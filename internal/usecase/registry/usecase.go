// Package registry covers the reference tables: clients, guarantors,
// agents, groups. Plain CRUD with soft delete; no business rules beyond
// required fields and foreign-key existence.
package registry

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"prestamos-api/internal/domain/registry"
)

type Usecase struct {
	clients    registry.ClientRepository
	guarantors registry.GuarantorRepository
	agents     registry.AgentRepository
	groups     registry.GroupRepository
}

func NewUsecase(
	clients registry.ClientRepository,
	guarantors registry.GuarantorRepository,
	agents registry.AgentRepository,
	groups registry.GroupRepository,
) *Usecase {
	return &Usecase{clients: clients, guarantors: guarantors, agents: agents, groups: groups}
}

var errNameRequired = errors.New("nombre is required")

// ---- clients ----

type ClientInput struct {
	Name           string  `json:"nombre"`
	Address        string  `json:"direccion"`
	Phone          string  `json:"telefono"`
	SecondaryPhone string  `json:"telefono_secundario"`
	AgentID        uint64  `json:"id_promotor"`
	GroupID        *uint64 `json:"id_grupo"`
	GuarantorID    *uint64 `json:"id_aval"`
	Notes          string  `json:"notas"`
}

func (u *Usecase) CreateClient(ctx context.Context, in ClientInput) (*registry.Client, error) {
	if in.Name == "" {
		return nil, errNameRequired
	}
	if in.AgentID == 0 {
		return nil, errors.New("id_promotor is required")
	}
	if _, err := u.agents.GetByID(ctx, in.AgentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, registry.ErrAgentNotFound
		}
		return nil, err
	}
	c := &registry.Client{
		Name:           in.Name,
		Address:        in.Address,
		Phone:          in.Phone,
		SecondaryPhone: in.SecondaryPhone,
		AgentID:        in.AgentID,
		GroupID:        in.GroupID,
		GuarantorID:    in.GuarantorID,
		Notes:          in.Notes,
		Active:         true,
	}
	if err := u.clients.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (u *Usecase) UpdateClient(ctx context.Context, id uint64, in ClientInput) (*registry.Client, error) {
	c, err := u.getClient(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		c.Name = in.Name
	}
	if in.AgentID != 0 {
		c.AgentID = in.AgentID
	}
	c.Address = in.Address
	c.Phone = in.Phone
	c.SecondaryPhone = in.SecondaryPhone
	c.GroupID = in.GroupID
	c.GuarantorID = in.GuarantorID
	c.Notes = in.Notes
	if err := u.clients.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeactivateClient soft-deletes; the row stays for loan history.
func (u *Usecase) DeactivateClient(ctx context.Context, id uint64) error {
	return u.setClientActive(ctx, id, false)
}

func (u *Usecase) ReactivateClient(ctx context.Context, id uint64) error {
	return u.setClientActive(ctx, id, true)
}

func (u *Usecase) setClientActive(ctx context.Context, id uint64, active bool) error {
	c, err := u.getClient(ctx, id)
	if err != nil {
		return err
	}
	c.Active = active
	return u.clients.Save(ctx, c)
}

func (u *Usecase) GetClient(ctx context.Context, id uint64) (*registry.ClientCard, error) {
	card, err := u.clients.Card(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, registry.ErrClientNotFound
		}
		return nil, err
	}
	return card, nil
}

func (u *Usecase) ListClients(ctx context.Context, includeInactive bool) ([]registry.Client, error) {
	if includeInactive {
		return u.clients.ListAll(ctx)
	}
	return u.clients.ListActive(ctx)
}

func (u *Usecase) ClientsWithLoans(ctx context.Context) ([]registry.Client, error) {
	return u.clients.ListWithLoans(ctx)
}

func (u *Usecase) SearchClients(ctx context.Context, name string) ([]registry.Client, error) {
	return u.clients.SearchActiveByName(ctx, name)
}

func (u *Usecase) getClient(ctx context.Context, id uint64) (*registry.Client, error) {
	c, err := u.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, registry.ErrClientNotFound
		}
		return nil, err
	}
	return c, nil
}

// ---- guarantors ----

type PersonInput struct {
	Name    string `json:"nombre"`
	Phone   string `json:"telefono"`
	Address string `json:"direccion"`
}

func (u *Usecase) CreateGuarantor(ctx context.Context, in PersonInput) (*registry.Guarantor, error) {
	if in.Name == "" {
		return nil, errNameRequired
	}
	g := &registry.Guarantor{Name: in.Name, Phone: in.Phone, Address: in.Address, Active: true}
	if err := u.guarantors.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (u *Usecase) UpdateGuarantor(ctx context.Context, id uint64, in PersonInput) (*registry.Guarantor, error) {
	g, err := u.guarantors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, registry.ErrGuarantorNotFound
		}
		return nil, err
	}
	if in.Name != "" {
		g.Name = in.Name
	}
	g.Phone = in.Phone
	g.Address = in.Address
	if err := u.guarantors.Save(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (u *Usecase) DeactivateGuarantor(ctx context.Context, id uint64) error {
	g, err := u.guarantors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return registry.ErrGuarantorNotFound
		}
		return err
	}
	g.Active = false
	return u.guarantors.Save(ctx, g)
}

func (u *Usecase) ListGuarantors(ctx context.Context, includeInactive bool) ([]registry.Guarantor, error) {
	if includeInactive {
		return u.guarantors.ListAll(ctx)
	}
	return u.guarantors.ListActive(ctx)
}

// ---- agents ----

func (u *Usecase) CreateAgent(ctx context.Context, in PersonInput) (*registry.Agent, error) {
	if in.Name == "" {
		return nil, errNameRequired
	}
	a := &registry.Agent{Name: in.Name, Phone: in.Phone, Active: true}
	if err := u.agents.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (u *Usecase) UpdateAgent(ctx context.Context, id uint64, in PersonInput) (*registry.Agent, error) {
	a, err := u.agents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, registry.ErrAgentNotFound
		}
		return nil, err
	}
	if in.Name != "" {
		a.Name = in.Name
	}
	a.Phone = in.Phone
	if err := u.agents.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (u *Usecase) DeactivateAgent(ctx context.Context, id uint64) error {
	a, err := u.agents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return registry.ErrAgentNotFound
		}
		return err
	}
	a.Active = false
	return u.agents.Save(ctx, a)
}

func (u *Usecase) ListAgents(ctx context.Context, includeInactive bool) ([]registry.Agent, error) {
	if includeInactive {
		return u.agents.ListAll(ctx)
	}
	return u.agents.ListActive(ctx)
}

// ---- groups ----

type GroupInput struct {
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
}

func (u *Usecase) CreateGroup(ctx context.Context, in GroupInput) (*registry.Group, error) {
	if in.Name == "" {
		return nil, errNameRequired
	}
	g := &registry.Group{Name: in.Name, Description: in.Description, Active: true}
	if err := u.groups.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (u *Usecase) UpdateGroup(ctx context.Context, id uint64, in GroupInput) (*registry.Group, error) {
	g, err := u.groups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, registry.ErrGroupNotFound
		}
		return nil, err
	}
	if in.Name != "" {
		g.Name = in.Name
	}
	g.Description = in.Description
	if err := u.groups.Save(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (u *Usecase) DeactivateGroup(ctx context.Context, id uint64) error {
	g, err := u.groups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return registry.ErrGroupNotFound
		}
		return err
	}
	g.Active = false
	return u.groups.Save(ctx, g)
}

func (u *Usecase) ListGroups(ctx context.Context, includeInactive bool) ([]registry.Group, error) {
	if includeInactive {
		return u.groups.ListAll(ctx)
	}
	return u.groups.ListActive(ctx)
}
