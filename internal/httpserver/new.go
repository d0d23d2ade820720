package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	prepHTTP "event-prep-engine/internal/prep/delivery/http"
	syncHTTP "event-prep-engine/internal/sync/delivery/http"
	"event-prep-engine/internal/sync/delivery/ws"
	"event-prep-engine/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	defaultHouseholdID string
	rateLimitPerMin    int

	prepHandler prepHTTP.Handler
	syncHandler syncHTTP.Handler
	wsHandler   *ws.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	DefaultHouseholdID string
	RateLimitPerMin    int

	PrepHandler prepHTTP.Handler
	SyncHandler syncHTTP.Handler
	WSHandler   *ws.Handler
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:                  logger,
		gin:                gin.New(),
		port:               cfg.Port,
		mode:               cfg.Mode,
		environment:        cfg.Environment,
		defaultHouseholdID: cfg.DefaultHouseholdID,
		rateLimitPerMin:    cfg.RateLimitPerMin,
		prepHandler:        cfg.PrepHandler,
		syncHandler:        cfg.SyncHandler,
		wsHandler:          cfg.WSHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.prepHandler == nil {
		return errors.New("prep handler is required")
	}
	return nil
}
