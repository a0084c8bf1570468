package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"library-service/internal/apperrors"
	"library-service/internal/application/services"
	"library-service/internal/domain/entities"
)

type ResourceHandler struct {
	resourceService *services.ResourceService
	tagService      *services.TagService
}

func NewResourceHandler(resourceService *services.ResourceService, tagService *services.TagService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService, tagService: tagService}
}

// Create handles POST /new_resource/.
func (h *ResourceHandler) Create(c echo.Context) error {
	var req services.CreateResourceRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}

	resource, err := h.resourceService.Create(c.Request().Context(), currentUserID(c), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "You successfully created a new resource!",
		"resource": NewResourceResponse(resource, nil),
	})
}

// List handles GET /my_resources/.
func (h *ResourceHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	resources, err := h.resourceService.ListOwn(ctx, currentUserID(c))
	if err != nil {
		return err
	}

	if len(resources) == 0 {
		return c.JSON(http.StatusOK, echo.Map{
			"message": "You still haven't registered any resources",
		})
	}

	payload := make([]ResourceResponse, 0, len(resources))
	for i := range resources {
		tags, err := h.tagService.TagsForResource(ctx, resources[i].Id)
		if err != nil {
			return err
		}
		payload = append(payload, NewResourceResponse(&resources[i], tags))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":   "Below is a list of all resources you have previously registered",
		"resources": payload,
	})
}

// SetStatus handles PUT /resource_status/:id/:status/ where :status is one of
// read, dropped, to_read.
func (h *ResourceHandler) SetStatus(c echo.Context) error {
	resourceID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	status, ok := entities.ParseStatusPath(c.Param("status"))
	if !ok {
		return apperrors.BadRequest("unknown resource status, use one of: read, dropped, to_read")
	}

	if err := h.resourceService.SetStatus(c.Request().Context(), currentUserID(c), resourceID, status); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("You successfully changed this resource's status to %s", status.Display()),
	})
}

// Update handles PUT /update_resource/.
func (h *ResourceHandler) Update(c echo.Context) error {
	var req services.UpdateResourceRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}

	if err := h.resourceService.Update(c.Request().Context(), currentUserID(c), req); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("You successfully updated resource with ID = %d.", req.ResourceId),
	})
}

// Delete handles DELETE /delete_resource/:id/.
func (h *ResourceHandler) Delete(c echo.Context) error {
	resourceID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.resourceService.Delete(c.Request().Context(), currentUserID(c), resourceID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("You successfully deleted resource with ID = %d.", resourceID),
	})
}

func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperrors.BadRequest("the resource id must be a positive integer")
	}
	return uint(id), nil
}
