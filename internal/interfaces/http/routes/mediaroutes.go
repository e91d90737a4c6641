package routes

import (
	"github.com/gin-gonic/gin"

	mediahandlers "civicgrid/internal/interfaces/http/handlers/media"
	"civicgrid/internal/interfaces/http/middleware"
)

type MediaRouteConfig struct {
	UploadHandler *mediahandlers.UploadHandler
	// StaticBasePath, when set, serves stored media objects from /media.
	StaticBasePath string
}

func SetupMediaRoutes(engine *gin.Engine, config *MediaRouteConfig) {
	media := engine.Group("/media")
	media.Use(middleware.Identity())
	{
		media.POST("", config.UploadHandler.Upload)
	}

	// Object keys are relative to the storage base path, so /static/<key>
	// resolves exactly the files Store writes.
	if config.StaticBasePath != "" {
		engine.Static("/static", config.StaticBasePath)
	}
}
