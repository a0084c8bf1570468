package entities

import (
	"time"
)

// Tag is an owner-scoped label. (OwnerId, Text) is unique per user; the same
// text owned by two users is two distinct tags.
type Tag struct {
	Id        uint
	CreatedAt time.Time
	UpdatedAt time.Time
	Text      string
	OwnerId   uint
}

// Assignment links one resource to one tag. (ResourceId, TagId) is unique.
type Assignment struct {
	Id         uint
	ResourceId uint
	TagId      uint
}
