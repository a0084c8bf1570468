package services

import (
	"context"
	"log"
	"time"

	"library-service/internal/apperrors"
	"library-service/internal/application/validation"
	"library-service/internal/domain/entities"
	"library-service/internal/domain/repositories"
	"library-service/internal/infrastructure"
)

type CreateResourceRequest struct {
	Title  string  `json:"title" validate:"required,min=3,max=150"`
	Author string  `json:"author" validate:"required,min=3,max=150"`
	Link   string  `json:"link" validate:"omitempty,min=3,max=300"`
	Notes  string  `json:"notes"`
	Rating float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
}

type UpdateResourceRequest struct {
	ResourceId uint     `json:"resource_id" validate:"required"`
	Title      *string  `json:"title" validate:"omitempty,min=3,max=150"`
	Author     *string  `json:"author" validate:"omitempty,min=3,max=150"`
	Link       *string  `json:"link" validate:"omitempty,min=3,max=300"`
	Notes      *string  `json:"notes"`
	Rating     *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
}

// ResourceService owns the resource lifecycle: creation, listing, status
// transitions, partial updates and cascade deletion.
type ResourceService struct {
	resourceRepo repositories.ResourceRepository
	guard        *OwnershipGuard
	objectStore  infrastructure.ObjectStore
	validator    *validation.Validator
}

func NewResourceService(
	resourceRepo repositories.ResourceRepository,
	guard *OwnershipGuard,
	objectStore infrastructure.ObjectStore,
	validator *validation.Validator,
) *ResourceService {
	return &ResourceService{
		resourceRepo: resourceRepo,
		guard:        guard,
		objectStore:  objectStore,
		validator:    validator,
	}
}

// Create registers a resource for ownerID. Status always starts as pending.
func (s *ResourceService) Create(ctx context.Context, ownerID uint, req CreateResourceRequest) (*entities.Resource, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	resource := entities.NewResource(req.Title, req.Author, ownerID)
	resource.Link = req.Link
	resource.Notes = req.Notes
	resource.Rating = req.Rating

	return s.resourceRepo.Create(ctx, resource)
}

func (s *ResourceService) ListOwn(ctx context.Context, ownerID uint) ([]entities.Resource, error) {
	return s.resourceRepo.ListByOwner(ctx, ownerID)
}

// SetStatus moves the resource to any of the three statuses. Transitions are
// unrestricted and idempotent.
func (s *ResourceService) SetStatus(ctx context.Context, userID, resourceID uint, status entities.ResourceStatus) error {
	if !status.Valid() {
		return apperrors.BadRequest("unknown resource status")
	}

	if _, err := s.guard.AssertOwner(ctx, resourceID, userID); err != nil {
		return err
	}

	return s.resourceRepo.SetStatus(ctx, resourceID, status)
}

// Update applies the provided fields only and refreshes the modification
// timestamp.
func (s *ResourceService) Update(ctx context.Context, userID uint, req UpdateResourceRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	if _, err := s.guard.AssertOwner(ctx, req.ResourceId, userID); err != nil {
		return err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Author != nil {
		fields["author"] = *req.Author
	}
	if req.Link != nil {
		fields["link"] = *req.Link
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if req.Rating != nil {
		fields["rating"] = *req.Rating
	}
	if len(fields) == 0 {
		return apperrors.BadRequest("You haven't provided any fields to update")
	}
	fields["updated_at"] = time.Now().UTC()

	return s.resourceRepo.UpdateFields(ctx, req.ResourceId, fields)
}

// Delete removes the resource, its tag assignments and any stored attachment.
// Row and assignments go in one transaction; the remote object is deleted
// first so the rows survive an unavailable object store.
func (s *ResourceService) Delete(ctx context.Context, userID, resourceID uint) error {
	resource, err := s.guard.AssertOwner(ctx, resourceID, userID)
	if err != nil {
		return err
	}

	if resource.FileURL != "" {
		if err := s.objectStore.Delete(ctx, objectKeyFromURL(resource.FileURL)); err != nil {
			return err
		}
	}

	if err := s.resourceRepo.Delete(ctx, resourceID); err != nil {
		log.Printf("failed to delete resource %d: %v", resourceID, err)
		return err
	}
	return nil
}
