package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"library-service/internal/apperrors"
	"library-service/internal/application/services"
)

type UserHandler struct {
	userService     *services.UserService
	validityMinutes int
}

func NewUserHandler(userService *services.UserService, validityMinutes int) *UserHandler {
	return &UserHandler{userService: userService, validityMinutes: validityMinutes}
}

// Register handles POST /register/.
func (h *UserHandler) Register(c echo.Context) error {
	var req services.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}

	token, err := h.userService.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": fmt.Sprintf("Welcome to our library! This token will only be valid for the next %d minutes. After that you'll need to log in", h.validityMinutes),
		"token":   token,
	})
}

// Login handles POST /login/.
func (h *UserHandler) Login(c echo.Context) error {
	var req services.LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}

	token, err := h.userService.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("This token will only be valid for the next %d minutes. After that you'll need to log in again", h.validityMinutes),
		"token":   token,
	})
}

// GetProfile handles GET /my_user/.
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.userService.GetProfile(c.Request().Context(), currentUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Below you'll find your user information.",
		"user":    NewUserResponse(user),
	})
}

// UpdateProfile handles PUT /update_user/.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req services.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), currentUserID(c), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "You successfully updated your user information.",
		"user":    NewUserResponse(user),
	})
}
