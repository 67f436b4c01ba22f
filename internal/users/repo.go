package users

import "context"

type Repo interface {
	// Create fails with ErrDuplicate when the email or username is taken.
	Create(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, filter ListFilter) ([]User, int, error)
	Update(ctx context.Context, user User) error
	Delete(ctx context.Context, userID string) error
	// DeleteMany removes the listed users and reports how many existed.
	DeleteMany(ctx context.Context, userIDs []string) (int, error)
}
