// Package web serves the helpdesk console: server-rendered pages with htmx
// fragments backed by the view models in package views.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gotrs-io/helpdesk-console/internal/config"
	"github.com/gotrs-io/helpdesk-console/internal/markup"
	"github.com/gotrs-io/helpdesk-console/internal/views"
)

// Pinger checks that the backend answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators of a Server.
type Deps struct {
	Config    *config.Config
	Tickets   views.TicketService
	Users     views.UserService
	Analytics views.AnalyticsService
	Backend   Pinger
	Registry  *views.Registry
	Logger    zerolog.Logger

	// Registerer and Gatherer back the HTTP metrics and /metrics. A nil
	// Registerer gets a private registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// Server is the console HTTP server.
type Server struct {
	cfg       *config.Config
	tickets   views.TicketService
	users     views.UserService
	analytics views.AnalyticsService
	backend   Pinger
	registry  *views.Registry
	renderer  *Renderer
	markup    *markup.Renderer
	logger    zerolog.Logger
	engine    *gin.Engine
	now       func() time.Time
}

// NewServer wires routes and middleware.
func NewServer(d Deps) (*Server, error) {
	if d.Config == nil {
		return nil, errors.New("web: config is required")
	}
	if d.Registry == nil {
		return nil, errors.New("web: view registry is required")
	}

	renderer, err := NewRenderer(d.Config.App.Debug, d.Logger)
	if err != nil {
		return nil, err
	}

	reg, gatherer := d.Registerer, d.Gatherer
	if reg == nil {
		private := prometheus.NewRegistry()
		reg, gatherer = private, private
	}

	s := &Server{
		cfg:       d.Config,
		tickets:   d.Tickets,
		users:     d.Users,
		analytics: d.Analytics,
		backend:   d.Backend,
		registry:  d.Registry,
		renderer:  renderer,
		markup:    markup.NewRenderer(),
		logger:    d.Logger.With().Str("component", "web").Logger(),
		now:       time.Now,
	}

	if d.Config.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(RequestID(), Recovery(s.logger), RequestLogger(s.logger))
	if d.Config.Metrics.Enabled {
		engine.Use(newHTTPMetrics(reg).Metrics())
		engine.GET(d.Config.Metrics.Path, gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
	s.engine = engine
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.engine

	r.GET("/health", s.handleHealth)
	r.POST("/views/:view/unmount", s.handleUnmount)

	r.GET("/", s.handleDashboard)
	r.GET("/dashboard", s.handleDashboard)

	tickets := r.Group("/tickets")
	tickets.GET("", s.handleTicketsPage)
	tickets.GET("/:view/list", s.withTicketList(s.handleTicketList))
	tickets.POST("/:view/tickets/:id/status", s.withTicketList(s.handleTicketStatus))
	tickets.GET("/:view/form", s.withTicketList(s.handleFormOpen))
	tickets.POST("/:view/form", s.withTicketList(s.handleFormSubmit))
	tickets.POST("/:view/form/cancel", s.withTicketList(s.handleFormCancel))
	tickets.POST("/:view/form/preview", s.withTicketList(s.handleFormPreview))
	tickets.GET("/:view/export.xlsx", s.withTicketList(s.handleExport))

	users := r.Group("/users")
	users.GET("", s.handleUsersPage)
	users.GET("/:view/list", s.withUserList(s.handleUserList))
	users.POST("/:view/users/:id/toggle", s.withUserList(s.handleUserToggle))
	users.POST("/:view/users/:id/edit", s.withUserList(s.handleUserEdit))

	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		s.handleDashboard(c)
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.GetServerAddr(),
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", srv.Addr).Msg("console listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	s.logger.Info().Msg("shutting down console")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) requestLogger(c *gin.Context) zerolog.Logger {
	return s.logger.With().Str("request_id", c.GetString(requestIDKey)).Logger()
}

// page builds the data every full page needs.
func (s *Server) page(c *gin.Context, title string, data gin.H) gin.H {
	page := gin.H{
		"page_title": title,
		"shell": shell{
			SidebarTitle:  SidebarTitle,
			HeaderTitle:   HeaderTitle,
			Notifications: NotificationCount,
			Search:        c.Query("q"),
		},
		"nav": Navigation(c.Request.URL.Path),
	}
	for k, v := range data {
		page[k] = v
	}
	return page
}

func (s *Server) handleHealth(c *gin.Context) {
	if s.backend == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()
	if err := s.backend.Ping(ctx); err != nil {
		log := s.requestLogger(c)
		log.Warn().Err(err).Msg("backend health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "backend": "unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "backend": "ok", "views": s.registry.Len()})
}

func (s *Server) handleUnmount(c *gin.Context) {
	s.registry.Unmount(c.Param("view"))
	c.Status(http.StatusNoContent)
}
