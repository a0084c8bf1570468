// Package http wires the echo router: public register/login/stats routes and
// the bearer-protected resource, tag, user and file routes.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Users     *UserHandler
	Resources *ResourceHandler
	Tags      *TagHandler
	Files     *FileHandler
	Stats     *StatsHandler
}

func NewRouter(handlers Handlers, auth *AuthMiddleware, limiter *RateLimiter) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(limiter.Middleware)

	e.POST("/register/", handlers.Users.Register)
	e.POST("/login/", handlers.Users.Login)
	e.GET("/general_stats/", handlers.Stats.General)

	protected := e.Group("", auth.Require)
	protected.POST("/new_resource/", handlers.Resources.Create)
	protected.GET("/my_resources/", handlers.Resources.List)
	protected.PUT("/resource_status/:id/:status/", handlers.Resources.SetStatus)
	protected.PUT("/update_resource/", handlers.Resources.Update)
	protected.DELETE("/delete_resource/:id/", handlers.Resources.Delete)

	protected.POST("/tag_resource/", handlers.Tags.TagResource)
	protected.GET("/my_tags/", handlers.Tags.List)
	protected.DELETE("/delete_tag/:tag/", handlers.Tags.Delete)
	protected.GET("/my_resources_with_tag/:tag/", handlers.Tags.ResourcesWithTag)

	protected.GET("/my_user/", handlers.Users.GetProfile)
	protected.PUT("/update_user/", handlers.Users.UpdateProfile)

	protected.POST("/upload_file/:id/", handlers.Files.Upload)
	protected.DELETE("/delete_file/:id/", handlers.Files.Delete)

	return e
}
