package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"library-service/internal/domain/entities"
	"library-service/internal/domain/repositories"
)

type ResourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) repositories.ResourceRepository {
	return &ResourceRepository{db: db}
}

func (r *ResourceRepository) Create(ctx context.Context, resource *entities.Resource) (*entities.Resource, error) {
	model := ResourceModel{
		Title:   resource.Title,
		Author:  resource.Author,
		Link:    resource.Link,
		Notes:   resource.Notes,
		Rating:  resource.Rating,
		Status:  string(resource.Status),
		OwnerId: resource.OwnerId,
		FileURL: resource.FileURL,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, err
	}

	return r.FindById(ctx, model.Id)
}

func (r *ResourceRepository) FindById(ctx context.Context, id uint) (*entities.Resource, error) {
	var model ResourceModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&model), nil
}

func (r *ResourceRepository) ListByOwner(ctx context.Context, ownerId uint) ([]entities.Resource, error) {
	var models []ResourceModel
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerId).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	resources := make([]entities.Resource, 0, len(models))
	for i := range models {
		resources = append(resources, *r.mapToEntity(&models[i]))
	}
	return resources, nil
}

func (r *ResourceRepository) SetStatus(ctx context.Context, id uint, status entities.ResourceStatus) error {
	return r.db.WithContext(ctx).Model(&ResourceModel{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}).Error
}

func (r *ResourceRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&ResourceModel{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes the resource and its tag assignments in one transaction so a
// mid-failure never leaves dangling assignment rows.
func (r *ResourceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("resource_id = ?", id).Delete(&ResourceTagModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&ResourceModel{}).Error
	})
}

func (r *ResourceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ResourceModel{}).Count(&count).Error
	return count, err
}

func (r *ResourceRepository) CountByStatus(ctx context.Context, status entities.ResourceStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ResourceModel{}).Where("status = ?", string(status)).Count(&count).Error
	return count, err
}

func (r *ResourceRepository) mapToEntity(model *ResourceModel) *entities.Resource {
	return &entities.Resource{
		Id:        model.Id,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
		Title:     model.Title,
		Author:    model.Author,
		Link:      model.Link,
		Notes:     model.Notes,
		Rating:    model.Rating,
		Status:    entities.ResourceStatus(model.Status),
		OwnerId:   model.OwnerId,
		FileURL:   model.FileURL,
	}
}
