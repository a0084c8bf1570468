package postgres

import (
	"time"

	"gorm.io/gorm"
)

type UserModel struct {
	Id          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	FirstName   string `gorm:"size:30;not null"`
	LastName    string `gorm:"size:30;not null"`
	Email       string `gorm:"size:50;uniqueIndex;not null"`
	Phone       string `gorm:"size:20"`
	Company     string `gorm:"size:50"`
	JobPosition string `gorm:"size:50"`
	Password    string `gorm:"size:255;not null"`
	Role        string `gorm:"size:20;not null;default:user"`
}

func (UserModel) TableName() string {
	return "users"
}

type ResourceModel struct {
	Id        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Title     string `gorm:"size:150;not null"`
	Author    string `gorm:"size:150;not null"`
	Link      string `gorm:"size:300"`
	Notes     string `gorm:"type:text"`
	Rating    float64
	Status    string `gorm:"size:20;not null;default:pending"`
	OwnerId   uint   `gorm:"index;not null"`
	FileURL   string `gorm:"size:300"`
}

func (ResourceModel) TableName() string {
	return "resources"
}

// TagModel rows are unique per (owner_id, tag); the index is what makes
// concurrent find-or-create safe.
type TagModel struct {
	Id        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Tag       string `gorm:"size:50;not null;uniqueIndex:idx_owner_tag"`
	OwnerId   uint   `gorm:"not null;uniqueIndex:idx_owner_tag"`
}

func (TagModel) TableName() string {
	return "tags"
}

// ResourceTagModel is the join row between resources and tags, unique per
// (resource_id, tag_id).
type ResourceTagModel struct {
	Id         uint `gorm:"primaryKey"`
	ResourceId uint `gorm:"not null;uniqueIndex:idx_resource_tag"`
	TagId      uint `gorm:"not null;uniqueIndex:idx_resource_tag"`
}

func (ResourceTagModel) TableName() string {
	return "resource_tags"
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&ResourceModel{},
		&TagModel{},
		&ResourceTagModel{},
	)
}
