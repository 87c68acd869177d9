package users

import (
	"context"
)

// Repository owns user identity records. Implementations must enforce email
// uniqueness on create and update, returning common.ErrEmailTaken on
// violation and common.ErrNotFound for missing ids/emails.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) (*User, error)
}
