package repositories

import (
	"context"

	"library-service/internal/domain/entities"
)

type TagRepository interface {
	// FindOrCreate returns the tag for (ownerId, text), inserting it first if
	// absent. Concurrent calls for the same pair must yield one row; the
	// implementation relies on the storage-level unique index, not a
	// check-then-insert.
	FindOrCreate(ctx context.Context, text string, ownerId uint) (*entities.Tag, error)
	FindByText(ctx context.Context, text string, ownerId uint) (*entities.Tag, error)
	FindById(ctx context.Context, tagId uint) (*entities.Tag, error)
	ListByOwner(ctx context.Context, ownerId uint) ([]entities.Tag, error)
	// Assign links the resource to the tag; linking an already-linked pair is
	// a no-op.
	Assign(ctx context.Context, resourceId, tagId uint) error
	AssignmentsForTag(ctx context.Context, tagId uint) ([]entities.Assignment, error)
	AssignmentsForResource(ctx context.Context, resourceId uint) ([]entities.Assignment, error)
	// Delete removes the tag row and every assignment referencing it in one
	// transaction. Resources themselves are untouched.
	Delete(ctx context.Context, tagId uint) error
	Count(ctx context.Context) (int64, error)
	CountTaggedResources(ctx context.Context) (int64, error)
}
