package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"library-service/internal/domain/entities"
	"library-service/internal/domain/repositories"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) repositories.TagRepository {
	return &TagRepository{db: db}
}

// FindOrCreate inserts with ON CONFLICT DO NOTHING and re-reads, so two
// concurrent calls for the same (owner, text) both resolve to the single row
// guarded by the unique index.
func (r *TagRepository) FindOrCreate(ctx context.Context, text string, ownerId uint) (*entities.Tag, error) {
	model := TagModel{Tag: text, OwnerId: ownerId}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&model).Error; err != nil {
		return nil, err
	}

	tag, err := r.FindByText(ctx, text, ownerId)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return tag, nil
}

func (r *TagRepository) FindByText(ctx context.Context, text string, ownerId uint) (*entities.Tag, error) {
	var model TagModel
	if err := r.db.WithContext(ctx).Where("tag = ? AND owner_id = ?", text, ownerId).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&model), nil
}

func (r *TagRepository) FindById(ctx context.Context, tagId uint) (*entities.Tag, error) {
	var model TagModel
	if err := r.db.WithContext(ctx).Where("id = ?", tagId).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&model), nil
}

func (r *TagRepository) ListByOwner(ctx context.Context, ownerId uint) ([]entities.Tag, error) {
	var models []TagModel
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerId).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	tags := make([]entities.Tag, 0, len(models))
	for i := range models {
		tags = append(tags, *r.mapToEntity(&models[i]))
	}
	return tags, nil
}

// Assign is idempotent: re-linking an existing (resource, tag) pair hits the
// unique index and does nothing.
func (r *TagRepository) Assign(ctx context.Context, resourceId, tagId uint) error {
	model := ResourceTagModel{ResourceId: resourceId, TagId: tagId}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&model).Error
}

func (r *TagRepository) AssignmentsForTag(ctx context.Context, tagId uint) ([]entities.Assignment, error) {
	var models []ResourceTagModel
	if err := r.db.WithContext(ctx).Where("tag_id = ?", tagId).Find(&models).Error; err != nil {
		return nil, err
	}
	return mapAssignments(models), nil
}

func (r *TagRepository) AssignmentsForResource(ctx context.Context, resourceId uint) ([]entities.Assignment, error) {
	var models []ResourceTagModel
	if err := r.db.WithContext(ctx).Where("resource_id = ?", resourceId).Find(&models).Error; err != nil {
		return nil, err
	}
	return mapAssignments(models), nil
}

// Delete removes the tag and its assignments in one transaction. Resource
// rows are never touched.
func (r *TagRepository) Delete(ctx context.Context, tagId uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", tagId).Delete(&ResourceTagModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", tagId).Delete(&TagModel{}).Error
	})
}

func (r *TagRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&TagModel{}).Count(&count).Error
	return count, err
}

func (r *TagRepository) CountTaggedResources(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ResourceTagModel{}).Distinct("resource_id").Count(&count).Error
	return count, err
}

func (r *TagRepository) mapToEntity(model *TagModel) *entities.Tag {
	return &entities.Tag{
		Id:        model.Id,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
		Text:      model.Tag,
		OwnerId:   model.OwnerId,
	}
}

func mapAssignments(models []ResourceTagModel) []entities.Assignment {
	assignments := make([]entities.Assignment, 0, len(models))
	for _, m := range models {
		assignments = append(assignments, entities.Assignment{
			Id:         m.Id,
			ResourceId: m.ResourceId,
			TagId:      m.TagId,
		})
	}
	return assignments
}
