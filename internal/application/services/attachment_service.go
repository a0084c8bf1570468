package services

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"library-service/internal/apperrors"
	"library-service/internal/domain/repositories"
	"library-service/internal/infrastructure"
)

// AttachmentService attaches at most one file per resource. Uploading over an
// existing attachment replaces the remote object instead of accumulating.
type AttachmentService struct {
	resourceRepo repositories.ResourceRepository
	guard        *OwnershipGuard
	objectStore  infrastructure.ObjectStore
}

func NewAttachmentService(
	resourceRepo repositories.ResourceRepository,
	guard *OwnershipGuard,
	objectStore infrastructure.ObjectStore,
) *AttachmentService {
	return &AttachmentService{
		resourceRepo: resourceRepo,
		guard:        guard,
		objectStore:  objectStore,
	}
}

// Upload stores the file under a fresh collision-resistant key, deletes the
// previous object if the resource already had one, and persists the new URL.
func (s *AttachmentService) Upload(ctx context.Context, userID, resourceID uint, file io.Reader, filename, contentType string) (string, error) {
	resource, err := s.guard.AssertOwner(ctx, resourceID, userID)
	if err != nil {
		return "", err
	}

	if resource.FileURL != "" {
		if err := s.objectStore.Delete(ctx, objectKeyFromURL(resource.FileURL)); err != nil {
			return "", err
		}
	}

	key := uuid.New().String() + filepath.Ext(filename)
	url, err := s.objectStore.Upload(ctx, key, file, contentType)
	if err != nil {
		return "", err
	}

	err = s.resourceRepo.UpdateFields(ctx, resourceID, map[string]interface{}{
		"file_url":   url,
		"updated_at": time.Now().UTC(),
	})
	if err != nil {
		return "", err
	}

	return url, nil
}

// Delete removes the remote object and clears the resource's URL field.
func (s *AttachmentService) Delete(ctx context.Context, userID, resourceID uint) error {
	resource, err := s.guard.AssertOwner(ctx, resourceID, userID)
	if err != nil {
		return err
	}

	if resource.FileURL == "" {
		return apperrors.BadRequest("Don't try to fool us! There is no file associated with this resource")
	}

	if err := s.objectStore.Delete(ctx, objectKeyFromURL(resource.FileURL)); err != nil {
		return err
	}

	return s.resourceRepo.UpdateFields(ctx, resourceID, map[string]interface{}{
		"file_url":   "",
		"updated_at": time.Now().UTC(),
	})
}

// objectKeyFromURL extracts the storage key, the last path segment of the
// public URL.
func objectKeyFromURL(url string) string {
	if i := strings.LastIndexByte(url, '/'); i >= 0 {
		return url[i+1:]
	}
	return url
}
