package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"event-prep-engine/internal/middleware"
	"event-prep-engine/internal/model"
	prepHTTP "event-prep-engine/internal/prep/delivery/http"
	syncHTTP "event-prep-engine/internal/sync/delivery/http"
)

func (srv HTTPServer) mapHandlers() error {
	mw := middleware.New(srv.l, srv.rateLimitPerMin)

	srv.registerMiddlewares(mw)
	srv.registerSystemRoutes()
	srv.registerDomainRoutes(mw)

	return nil
}

func (srv HTTPServer) registerMiddlewares(mw middleware.Middleware) {
	srv.gin.Use(gin.Recovery())
	srv.gin.Use(mw.RateLimit())
	srv.gin.Use(mw.Scope(srv.defaultHouseholdID))

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "running in production mode")
	} else {
		srv.l.Infof(ctx, "running in %s mode", srv.environment)
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes.
func (srv HTTPServer) registerDomainRoutes(mw middleware.Middleware) {
	ctx := context.Background()

	api := srv.gin.Group("/api/v1")

	prepHTTP.MapRoutes(api.Group("/prep"), srv.prepHandler)
	srv.l.Infof(ctx, "prep routes registered under /api/v1/prep")

	if srv.syncHandler != nil {
		syncHTTP.MapRoutes(api.Group("/sync"), srv.syncHandler)
		srv.l.Infof(ctx, "sync routes registered under /api/v1/sync")
	}

	if srv.wsHandler != nil {
		srv.wsHandler.MapRoutes(&srv.gin.RouterGroup)
		srv.l.Infof(ctx, "websocket endpoint registered at /ws")
	}
}
