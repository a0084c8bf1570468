package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"library-service/internal/apperrors"
	"library-service/internal/application/services"
)

type FileHandler struct {
	attachmentService *services.AttachmentService
}

func NewFileHandler(attachmentService *services.AttachmentService) *FileHandler {
	return &FileHandler{attachmentService: attachmentService}
}

// Upload handles POST /upload_file/:id/ with a multipart "file" part.
func (h *FileHandler) Upload(c echo.Context) error {
	resourceID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.BadRequest("You probably forgot to attach the file. Please, provide it in the form-data section, with key = file.")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.BadRequest("the attached file could not be read")
	}
	defer file.Close()

	url, err := h.attachmentService.Upload(
		c.Request().Context(),
		currentUserID(c),
		resourceID,
		file,
		fileHeader.Filename,
		fileHeader.Header.Get(echo.HeaderContentType),
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": fmt.Sprintf("You successfully uploaded the file in the following location: %s", url),
		"url":     url,
	})
}

// Delete handles DELETE /delete_file/:id/.
func (h *FileHandler) Delete(c echo.Context) error {
	resourceID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.attachmentService.Delete(c.Request().Context(), currentUserID(c), resourceID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "The file is now gone forever",
	})
}
