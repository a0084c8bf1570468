package services

import (
	"context"

	"library-service/internal/apperrors"
	"library-service/internal/application/validation"
	"library-service/internal/domain/entities"
	"library-service/internal/domain/repositories"
)

type TagResourceRequest struct {
	ResourceId uint     `json:"resource_id" validate:"required"`
	Tags       []string `json:"tag" validate:"required,min=1,dive,min=1,max=50"`
}

// TagService owns per-user tags and their assignments to resources.
type TagService struct {
	tagRepo      repositories.TagRepository
	resourceRepo repositories.ResourceRepository
	guard        *OwnershipGuard
	validator    *validation.Validator
}

func NewTagService(
	tagRepo repositories.TagRepository,
	resourceRepo repositories.ResourceRepository,
	guard *OwnershipGuard,
	validator *validation.Validator,
) *TagService {
	return &TagService{
		tagRepo:      tagRepo,
		resourceRepo: resourceRepo,
		guard:        guard,
		validator:    validator,
	}
}

// TagResource registers every tag of the request for the owner (find or
// create) and assigns it to the resource. Duplicate texts in the request and
// already-assigned tags collapse to single rows.
func (s *TagService) TagResource(ctx context.Context, userID uint, req TagResourceRequest) (*entities.Resource, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	resource, err := s.guard.AssertOwner(ctx, req.ResourceId, userID)
	if err != nil {
		return nil, err
	}

	for _, text := range req.Tags {
		tag, err := s.tagRepo.FindOrCreate(ctx, text, userID)
		if err != nil {
			return nil, err
		}
		if err := s.tagRepo.Assign(ctx, req.ResourceId, tag.Id); err != nil {
			return nil, err
		}
	}

	return resource, nil
}

func (s *TagService) ListOwn(ctx context.Context, userID uint) ([]entities.Tag, error) {
	return s.tagRepo.ListByOwner(ctx, userID)
}

// DeleteByText removes the owner's tag and all its assignments. Resources keep
// their other tags.
func (s *TagService) DeleteByText(ctx context.Context, userID uint, text string) error {
	tag, err := s.tagRepo.FindByText(ctx, text, userID)
	if err != nil {
		return err
	}
	if tag == nil {
		return apperrors.NotFound("You haven't used this tag before")
	}

	return s.tagRepo.Delete(ctx, tag.Id)
}

// ResourcesWithTag lists the owner's resources assigned to the given tag
// text. An unknown tag yields an empty list, same as a tag with no
// assignments.
func (s *TagService) ResourcesWithTag(ctx context.Context, userID uint, text string) ([]entities.Resource, error) {
	tag, err := s.tagRepo.FindByText(ctx, text, userID)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return []entities.Resource{}, nil
	}

	assignments, err := s.tagRepo.AssignmentsForTag(ctx, tag.Id)
	if err != nil {
		return nil, err
	}

	resources := make([]entities.Resource, 0, len(assignments))
	for _, assignment := range assignments {
		resource, err := s.resourceRepo.FindById(ctx, assignment.ResourceId)
		if err != nil {
			return nil, err
		}
		if resource != nil {
			resources = append(resources, *resource)
		}
	}
	return resources, nil
}

// TagsForResource returns the tag texts assigned to one resource, for
// serializing resource payloads.
func (s *TagService) TagsForResource(ctx context.Context, resourceID uint) ([]string, error) {
	assignments, err := s.tagRepo.AssignmentsForResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(assignments))
	for _, assignment := range assignments {
		tag, err := s.tagRepo.FindById(ctx, assignment.TagId)
		if err != nil {
			return nil, err
		}
		if tag != nil {
			texts = append(texts, tag.Text)
		}
	}
	return texts, nil
}
