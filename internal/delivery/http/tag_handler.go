package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"library-service/internal/apperrors"
	"library-service/internal/application/services"
)

type TagHandler struct {
	tagService *services.TagService
}

func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// TagResource handles POST /tag_resource/.
func (h *TagHandler) TagResource(c echo.Context) error {
	var req services.TagResourceRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}

	ctx := c.Request().Context()
	resource, err := h.tagService.TagResource(ctx, currentUserID(c), req)
	if err != nil {
		return err
	}

	tags, err := h.tagService.TagsForResource(ctx, resource.Id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "You successfully tagged the resource",
		"resource": NewResourceResponse(resource, tags),
	})
}

// List handles GET /my_tags/.
func (h *TagHandler) List(c echo.Context) error {
	tags, err := h.tagService.ListOwn(c.Request().Context(), currentUserID(c))
	if err != nil {
		return err
	}

	payload := make([]TagResponse, 0, len(tags))
	for i := range tags {
		payload = append(payload, NewTagResponse(&tags[i]))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Below is a list of all tags you have previously used",
		"tags":    payload,
	})
}

// Delete handles DELETE /delete_tag/:tag/.
func (h *TagHandler) Delete(c echo.Context) error {
	tag := c.Param("tag")
	if err := h.tagService.DeleteByText(c.Request().Context(), currentUserID(c), tag); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("You successfully deleted the tag %s and all assignments associated to it.", tag),
	})
}

// ResourcesWithTag handles GET /my_resources_with_tag/:tag/.
func (h *TagHandler) ResourcesWithTag(c echo.Context) error {
	tag := c.Param("tag")
	ctx := c.Request().Context()

	resources, err := h.tagService.ResourcesWithTag(ctx, currentUserID(c), tag)
	if err != nil {
		return err
	}

	if len(resources) == 0 {
		return c.JSON(http.StatusOK, echo.Map{
			"message":   fmt.Sprintf("You still haven't tagged anything as '%s'", tag),
			"resources": []ResourceResponse{},
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
		"message":   fmt.Sprintf("Below are all resources you tagged as '%s'", tag),
		"resources": payload,
	})
}
