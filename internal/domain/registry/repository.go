package registry

import "context"

type ClientRepository interface {
	Create(ctx context.Context, c *Client) error
	Save(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id uint64) (*Client, error)
	ListActive(ctx context.Context) ([]Client, error)
	ListAll(ctx context.Context) ([]Client, error)
	// ListWithLoans returns active clients holding at least one loan.
	ListWithLoans(ctx context.Context) ([]Client, error)
	SearchActiveByName(ctx context.Context, name string) ([]Client, error)
	// Card joins the client with its agent/group/guarantor names.
	Card(ctx context.Context, id uint64) (*ClientCard, error)
}

type GuarantorRepository interface {
	Create(ctx context.Context, g *Guarantor) error
	Save(ctx context.Context, g *Guarantor) error
	GetByID(ctx context.Context, id uint64) (*Guarantor, error)
	ListActive(ctx context.Context) ([]Guarantor, error)
	ListAll(ctx context.Context) ([]Guarantor, error)
}

type AgentRepository interface {
	Create(ctx context.Context, a *Agent) error
	Save(ctx context.Context, a *Agent) error
	GetByID(ctx context.Context, id uint64) (*Agent, error)
	ListActive(ctx context.Context) ([]Agent, error)
	ListAll(ctx context.Context) ([]Agent, error)
}

type GroupRepository interface {
	Create(ctx context.Context, g *Group) error
	Save(ctx context.Context, g *Group) error
	GetByID(ctx context.Context, id uint64) (*Group, error)
	ListActive(ctx context.Context) ([]Group, error)
	ListAll(ctx context.Context) ([]Group, error)
}
