// Package http wires repositories, services and use cases into the gin engine.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"civicgrid/internal/application/issue/services"
	"civicgrid/internal/application/issue/usecases"
	"civicgrid/internal/domain/shared/events"
	"civicgrid/internal/domain/ward"
	"civicgrid/internal/infrastructure/cache"
	"civicgrid/internal/infrastructure/config"
	"civicgrid/internal/infrastructure/email"
	"civicgrid/internal/infrastructure/repository"
	"civicgrid/internal/infrastructure/storage"
	issuehandlers "civicgrid/internal/interfaces/http/handlers/issue"
	mediahandlers "civicgrid/internal/interfaces/http/handlers/media"
	"civicgrid/internal/interfaces/http/middleware"
	"civicgrid/internal/interfaces/http/routes"
	"civicgrid/internal/shared/db"
	"civicgrid/internal/shared/logger"
)

// Router holds the HTTP engine and the handlers mounted on it.
type Router struct {
	engine       *gin.Engine
	issueHandler *issuehandlers.IssueHandler
	mediaHandler *mediahandlers.UploadHandler
	mediaPath    string
}

// NewRouter builds the full dependency graph behind the HTTP surface.
func NewRouter(
	database *gorm.DB,
	redisClient *redis.Client,
	dispatcher events.EventDispatcher,
	cfg *config.Config,
	log logger.Interface,
) (*Router, error) {
	engine := gin.New()
	engine.Use(middleware.Logger(log.Named("http")))
	engine.Use(middleware.Recovery())

	issueRepo := repository.NewIssueRepository(database)
	wardRepo := repository.NewWardRepository(database)
	userRepo := repository.NewUserRepository(database)
	categoryRepo := repository.NewCategoryRepository(database)
	sequencer := repository.NewTicketSequencer(database, log)

	resolver := ward.NewResolver(wardRepo, log)
	zoneLookup := services.NewZoneLookup(wardRepo)
	selector := services.NewAssigneeSelector(userRepo, log)
	txManager := db.NewTransactionManager(database)

	readCache := cache.NewRedisIssueCache(redisClient, log)
	invalidator := cache.NewRedisCacheInvalidator(redisClient, log)

	notifier := email.NewSMTPNotifier(cfg.Email, log)

	mediaStore, err := storage.NewLocalMediaStorage(cfg.Storage, log)
	if err != nil {
		return nil, err
	}

	createIssueUC := usecases.NewCreateIssueUseCase(
		issueRepo, categoryRepo, userRepo, resolver, zoneLookup, selector,
		sequencer, txManager, invalidator, notifier, dispatcher, log,
	)
	updateStatusUC := usecases.NewUpdateStatusUseCase(
		issueRepo, zoneLookup, txManager, invalidator, dispatcher, log,
	)
	addAfterMediaUC := usecases.NewAddAfterMediaUseCase(
		issueRepo, zoneLookup, txManager, invalidator, log,
	)
	reassignUC := usecases.NewReassignIssueUseCase(
		issueRepo, userRepo, zoneLookup, selector, txManager, invalidator,
		notifier, dispatcher, log,
	)
	verifyUC := usecases.NewVerifyResolutionUseCase(
		issueRepo, zoneLookup, txManager, invalidator, dispatcher, log,
	)
	reopenUC := usecases.NewReopenIssueUseCase(
		issueRepo, zoneLookup, txManager, invalidator, mediaStore, dispatcher, log,
	)
	getIssueUC := usecases.NewGetIssueUseCase(issueRepo, readCache, log)
	listIssuesUC := usecases.NewListIssuesUseCase(issueRepo, log)
	getStatsUC := usecases.NewGetIssueStatsUseCase(issueRepo, readCache, log)

	issueHandler := issuehandlers.NewIssueHandler(
		createIssueUC,
		updateStatusUC,
		addAfterMediaUC,
		reassignUC,
		verifyUC,
		reopenUC,
		getIssueUC,
		listIssuesUC,
		getStatsUC,
	)
	mediaHandler := mediahandlers.NewUploadHandler(mediaStore)

	return &Router{
		engine:       engine,
		issueHandler: issueHandler,
		mediaHandler: mediaHandler,
		mediaPath:    cfg.Storage.BasePath,
	}, nil
}

// SetupRoutes mounts all route tables on the engine.
func (r *Router) SetupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupIssueRoutes(r.engine, &routes.IssueRouteConfig{
		IssueHandler: r.issueHandler,
	})
	routes.SetupMediaRoutes(r.engine, &routes.MediaRouteConfig{
		UploadHandler:  r.mediaHandler,
		StaticBasePath: r.mediaPath,
	})
}

// GetEngine exposes the underlying gin engine for the HTTP server.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
