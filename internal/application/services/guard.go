package services

import (
	"context"

	"library-service/internal/apperrors"
	"library-service/internal/domain/entities"
	"library-service/internal/domain/repositories"
)

// OwnershipGuard is the cross-cutting check that the acting identity owns the
// resource it is about to mutate. Every resource-scoped mutation goes through
// AssertOwner before touching the store.
type OwnershipGuard struct {
	resourceRepo repositories.ResourceRepository
}

func NewOwnershipGuard(resourceRepo repositories.ResourceRepository) *OwnershipGuard {
	return &OwnershipGuard{resourceRepo: resourceRepo}
}

// AssertOwner loads the resource and compares its owner to userID. It returns
// the resource so callers don't re-query it.
func (g *OwnershipGuard) AssertOwner(ctx context.Context, resourceID, userID uint) (*entities.Resource, error) {
	resource, err := g.resourceRepo.FindById(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, apperrors.NotFound("Don't try to trick us, this resource doesn't exist!")
	}
	if resource.OwnerId != userID {
		return nil, apperrors.Forbidden("You need to be the owner of this resource to modify it")
	}
	return resource, nil
}
