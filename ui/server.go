package ui

import (
	"html/template"
	"net/http"
	"time"

	"cogdash/domain/survey"
	"cogdash/internal"
	"cogdash/internal/api"
	"cogdash/internal/errors"
	"cogdash/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "requestID"

// ServerConfig holds the dashboard's static settings
type ServerConfig struct {
	Page           PageOptions
	MetricsEnabled bool
}

// Server represents the dashboard web server
type Server struct {
	router    *gin.Engine
	loader    ports.TableLoader
	templates *template.Template
	page      PageOptions
	metrics   *DashboardMetrics
	log       *internal.Logger
}

// NewServer creates the server and registers its routes. The loader is
// called once per request; nothing loaded is kept between requests.
func NewServer(loader ports.TableLoader, cfg ServerConfig, logger *internal.Logger) (*Server, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse templates")
	}

	s := &Server{
		router:    gin.New(),
		loader:    loader,
		templates: templates,
		page:      cfg.Page,
		log:       logger.With("Dashboard"),
	}
	if cfg.MetricsEnabled {
		s.metrics = NewDashboardMetrics()
	}

	s.setupMiddleware()
	s.setupRoutes(api.NewHandler(loader, logger))
	return s, nil
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	if gin.Mode() == gin.DebugMode {
		s.router.Use(gin.Logger())
	}
	s.router.Use(gin.Recovery())
	s.router.Use(requestID())
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes(apiHandler *api.Handler) {
	s.router.GET("/", s.handleDashboard)
	s.router.GET("/healthz", s.handleHealth)

	// JSON API is a chi router; it keeps the /api prefix in its own routes
	s.router.Any("/api/*path", gin.WrapH(apiHandler.Routes()))

	if s.metrics != nil {
		s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	s.log.Info("Starting dashboard on http://%s", addr)
	return s.router.Run(addr)
}

// requestID tags every request with a uuid, reusing an incoming X-Request-ID
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// handleDashboard runs one render cycle: parse filter, load, compute, render.
// A load failure halts the cycle and only the error page is shown.
func (s *Server) handleDashboard(c *gin.Context) {
	start := time.Now()
	id := c.GetString(requestIDKey)

	filter, err := survey.ParseFilter(c.Query("filter"))
	if err != nil {
		s.log.Warn("[%s] %v", id, err)
		s.renderError(c, errors.InvalidInput(err.Error()))
		return
	}

	table, err := s.loader.Load(c.Request.Context())
	if err != nil {
		s.log.Error("[%s] render halted: %v", id, err)
		if s.metrics != nil {
			s.metrics.ObserveLoadFailure(time.Since(start))
		}
		s.renderError(c, err)
		return
	}

	page := Render(table, filter, s.page)
	page.RequestID = id
	s.renderTemplate(c, http.StatusOK, "index.html", page)

	took := time.Since(start)
	if s.metrics != nil {
		s.metrics.ObserveRender(filter.String(), table.Len(), took)
	}
	s.log.Info("[%s] rendered filter=%s rows=%d in %s", id, filter.Label(), table.Len(), took.Round(time.Microsecond))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ErrorPage is the data of error.html
type ErrorPage struct {
	Title     string
	Heading   string
	Detail    string
	Code      string
	RequestID string
}

// renderError shows err verbatim and nothing else
func (s *Server) renderError(c *gin.Context, err error) {
	heading := "Something went wrong"
	switch errors.GetCode(err) {
	case errors.CodeLoadError:
		heading = "The data file could not be loaded"
	case errors.CodeInvalidInput:
		heading = "Invalid request"
	}

	s.renderTemplate(c, errors.HTTPStatus(err), "error.html", ErrorPage{
		Title:     s.page.Title,
		Heading:   heading,
		Detail:    err.Error(),
		Code:      errors.GetCode(err),
		RequestID: c.GetString(requestIDKey),
	})
}
