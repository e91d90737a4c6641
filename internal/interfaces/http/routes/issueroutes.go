// Package routes registers the HTTP route tables.
package routes

import (
	"github.com/gin-gonic/gin"

	issuehandlers "civicgrid/internal/interfaces/http/handlers/issue"
	"civicgrid/internal/interfaces/http/middleware"
)

type IssueRouteConfig struct {
	IssueHandler *issuehandlers.IssueHandler
}

func SetupIssueRoutes(engine *gin.Engine, config *IssueRouteConfig) {
	issues := engine.Group("/issues")
	issues.Use(middleware.Identity())
	{
		// IMPORTANT: Register specific paths BEFORE parameterized paths to avoid route conflicts

		// Collection operations (no ID parameter)
		issues.POST("",
			config.IssueHandler.CreateIssue)
		issues.GET("",
			config.IssueHandler.ListIssues)
		issues.GET("/stats",
			config.IssueHandler.GetStats)

		// Specific action endpoints (must come BEFORE /:id to avoid conflicts)
		issues.PATCH("/:id/status",
			config.IssueHandler.UpdateStatus)
		issues.PATCH("/:id/assignee",
			config.IssueHandler.Reassign)
		issues.POST("/:id/media/after",
			config.IssueHandler.AddAfterMedia)
		issues.POST("/:id/verification",
			config.IssueHandler.VerifyResolution)
		issues.POST("/:id/reopen",
			config.IssueHandler.Reopen)

		// Generic parameterized routes (must come LAST)
		issues.GET("/:id",
			config.IssueHandler.GetIssue)
	}
}
