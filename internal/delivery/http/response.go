package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"library-service/internal/apperrors"
	"library-service/internal/domain/entities"
)

// ErrorHandler is the echo error handler. Domain errors render as their HTTP
// status with a message body; validation details appear under "errors".
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		body := echo.Map{"message": appErr.Message}
		if len(appErr.Details) > 0 {
			body["errors"] = appErr.Details
		}
		_ = c.JSON(appErr.HTTPStatus(), body)
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		_ = c.JSON(httpErr.Code, echo.Map{"message": fmt.Sprint(httpErr.Message)})
		return
	}

	c.Logger().Error(err)
	_ = c.JSON(http.StatusInternalServerError, echo.Map{
		"message": "Something went wrong on our side, please try again later",
	})
}

type UserResponse struct {
	UserId      uint      `json:"user_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Company     string    `json:"company,omitempty"`
	JobPosition string    `json:"job_position,omitempty"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_datetime"`
	UpdatedAt   time.Time `json:"updated_datetime"`
}

// NewUserResponse serializes a user. The password hash never leaves the
// service.
func NewUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		UserId:      user.Id,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		Phone:       user.Phone,
		Company:     user.Company,
		JobPosition: user.JobPosition,
		Role:        string(user.Role),
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

type ResourceResponse struct {
	ResourceId uint      `json:"resource_id"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	Link       string    `json:"link,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	Rating     float64   `json:"rating,omitempty"`
	Status     string    `json:"status"`
	OwnerId    uint      `json:"owner_id"`
	FileURL    string    `json:"file_url,omitempty"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"created_datetime"`
	UpdatedAt  time.Time `json:"updated_datetime"`
}

func NewResourceResponse(resource *entities.Resource, tags []string) ResourceResponse {
	if tags == nil {
		tags = []string{}
	}
	return ResourceResponse{
		ResourceId: resource.Id,
		Title:      resource.Title,
		Author:     resource.Author,
		Link:       resource.Link,
		Notes:      resource.Notes,
		Rating:     resource.Rating,
		Status:     resource.Status.Display(),
		OwnerId:    resource.OwnerId,
		FileURL:    resource.FileURL,
		Tags:       tags,
		CreatedAt:  resource.CreatedAt,
		UpdatedAt:  resource.UpdatedAt,
	}
}

type TagResponse struct {
	TagId     uint      `json:"tag_id"`
	Tag       string    `json:"tag"`
	CreatedAt time.Time `json:"created_datetime"`
}

func NewTagResponse(tag *entities.Tag) TagResponse {
	return TagResponse{
		TagId:     tag.Id,
		Tag:       tag.Text,
		CreatedAt: tag.CreatedAt,
	}
}
