package entities

import (
	"time"
)

// ResourceStatus is the reading state of a resource. Stored values are the
// lowercase identifiers; Display returns the user-facing strings.
type ResourceStatus string

const (
	StatusPending ResourceStatus = "pending"
	StatusRead    ResourceStatus = "read"
	StatusDropped ResourceStatus = "dropped"
)

func (s ResourceStatus) Display() string {
	switch s {
	case StatusRead:
		return "Read"
	case StatusDropped:
		return "Dropped"
	default:
		return "To Read"
	}
}

func (s ResourceStatus) Valid() bool {
	switch s {
	case StatusPending, StatusRead, StatusDropped:
		return true
	}
	return false
}

// ParseStatusPath maps the route segment of /resource_status/:id/:status/ to a
// status. The segment for StatusPending is "to_read".
func ParseStatusPath(segment string) (ResourceStatus, bool) {
	switch segment {
	case "read":
		return StatusRead, true
	case "dropped":
		return StatusDropped, true
	case "to_read":
		return StatusPending, true
	}
	return "", false
}

type Resource struct {
	Id        uint
	CreatedAt time.Time
	UpdatedAt time.Time
	Title     string
	Author    string
	Link      string
	Notes     string
	Rating    float64
	Status    ResourceStatus
	OwnerId   uint
	FileURL   string
}

func NewResource(title, author string, ownerId uint) *Resource {
	now := time.Now()
	return &Resource{
		CreatedAt: now,
		UpdatedAt: now,
		Title:     title,
		Author:    author,
		Status:    StatusPending,
		OwnerId:   ownerId,
	}
}
