package repositories

import (
	"context"

	"library-service/internal/domain/entities"
)

type ResourceRepository interface {
	Create(ctx context.Context, resource *entities.Resource) (*entities.Resource, error)
	FindById(ctx context.Context, id uint) (*entities.Resource, error)
	ListByOwner(ctx context.Context, ownerId uint) ([]entities.Resource, error)
	SetStatus(ctx context.Context, id uint, status entities.ResourceStatus) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	// Delete removes the resource row and every assignment referencing it in
	// one transaction.
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status entities.ResourceStatus) (int64, error)
}
