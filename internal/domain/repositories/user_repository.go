package repositories

import (
	"context"

	"library-service/internal/domain/entities"
)

type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	FindById(ctx context.Context, id uint) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	// UpdateFields applies a partial column update and refreshes the
	// modification timestamp. Returns the updated row.
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (*entities.User, error)
	Count(ctx context.Context) (int64, error)
}
