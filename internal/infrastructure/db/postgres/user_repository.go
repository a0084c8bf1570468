package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"library-service/internal/domain/entities"
	"library-service/internal/domain/repositories"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	model := UserModel{
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		Phone:       user.Phone,
		Company:     user.Company,
		JobPosition: user.JobPosition,
		Password:    user.Password,
		Role:        string(user.Role),
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, err
	}

	return r.FindById(ctx, model.Id)
}

func (r *UserRepository) FindById(ctx context.Context, id uint) (*entities.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&model), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&model), nil
}

func (r *UserRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (*entities.User, error) {
	if err := r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, err
	}

	return r.FindById(ctx, id)
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&UserModel{}).Count(&count).Error
	return count, err
}

func (r *UserRepository) mapToEntity(model *UserModel) *entities.User {
	return &entities.User{
		Id:          model.Id,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
		FirstName:   model.FirstName,
		LastName:    model.LastName,
		Email:       model.Email,
		Phone:       model.Phone,
		Company:     model.Company,
		JobPosition: model.JobPosition,
		Password:    model.Password,
		Role:        entities.UserRole(model.Role),
	}
}
