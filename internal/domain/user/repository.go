package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	Save(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint64) (*User, error)
	GetActiveByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]User, error)
}
