package ginrepair

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/deepankarm/jsonrepair/pkg/internal/errors"
	"github.com/deepankarm/jsonrepair/pkg/jsonrepair"
)

// Config controls the HTTP server.
type Config struct {
	Addr         string        // Listen address, e.g. ":8080"
	MaxBodyBytes int64         // Request bodies above this size get 413; 0 disables the cap
	Docs         bool          // Serve Swagger UI at /docs
	Version      string        // Reported by /healthz and the OpenAPI info block
	ShutdownWait time.Duration // Grace period for in-flight requests on shutdown
}

// DefaultConfig returns the settings used when none are given.
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		MaxBodyBytes: 1 << 20,
		Docs:         true,
		Version:      "dev",
		ShutdownWait: 5 * time.Second,
	}
}

// Server serves the repair endpoints.
type Server struct {
	cfg    Config
	logger *zap.Logger
	api    *API
	router *gin.Engine
}

// NewServer builds the router and registers every route. A nil logger
// disables request logging.
func NewServer(cfg Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:    cfg,
		logger: logger,
		api:    New("jsonrepair", cfg.Version),
		router: gin.New(),
	}
	s.api.SetDescription("Repairs malformed JSON, such as LLM output, into valid JSON.")
	s.routes()
	return s
}

// Router returns the gin engine, for tests or for mounting elsewhere.
func (s *Server) Router() *gin.Engine { return s.router }

// API returns the endpoint registry.
func (s *Server) API() *API { return s.api }

func (s *Server) routes() {
	s.router.Use(gin.Recovery(), requestLogger(s.logger), bodyLimit(s.cfg.MaxBodyBytes))

	s.router.POST("/v1/repair",
		s.api.OpenAPISchema("POST", "/v1/repair",
			WithSummary("Repair JSON"),
			WithDescription("Repairs the input and returns the result with optional repair log and strict-mode violations."),
			WithTags("repair"),
			WithRequest[RepairRequest](),
			WithRequestExamples(map[string]any{
				"truncated": map[string]any{"value": map[string]any{"input": `{"name": "John", "age": 3`}},
			}),
			WithResponse[RepairResponse](http.StatusOK, "Repaired JSON"),
			WithResponse[ErrorResponse](http.StatusBadRequest, "Malformed request"),
			WithResponse[ErrorResponse](http.StatusRequestEntityTooLarge, "Request body too large"),
		),
		s.handleRepair,
	)

	s.router.POST("/v1/repair/raw",
		s.api.OpenAPISchema("POST", "/v1/repair/raw",
			WithSummary("Repair raw text"),
			WithDescription("Repairs the request body and answers with the repaired JSON. Query flags stream_stable and ensure_ascii tune the repair."),
			WithTags("repair"),
			WithRawBody("text/plain"),
			WithResponse[ErrorResponse](http.StatusRequestEntityTooLarge, "Request body too large"),
		),
		s.handleRepairRaw,
	)

	s.router.GET("/healthz",
		s.api.OpenAPISchema("GET", "/healthz",
			WithSummary("Health check"),
			WithTags("meta"),
			WithResponse[HealthResponse](http.StatusOK, "Service is up"),
		),
		s.handleHealth,
	)

	s.router.GET("/openapi.json", s.api.OpenAPIHandler())
	if s.cfg.Docs {
		s.router.GET("/docs", SwaggerUI("/openapi.json"))
	}
}

func (s *Server) handleRepair(c *gin.Context) {
	req, ok := GetRequest[RepairRequest](c)
	if !ok {
		writeJSON(c, http.StatusInternalServerError, ErrorResponse{Error: "request not decoded"})
		return
	}

	var opts []jsonrepair.Option
	if req.StreamStable {
		opts = append(opts, jsonrepair.WithStreamStable())
	}
	if req.EnsureASCII {
		opts = append(opts, jsonrepair.WithEnsureASCII())
	}
	if req.Strict {
		opts = append(opts, jsonrepair.WithStrict())
	}
	if req.Log {
		opts = append(opts, jsonrepair.WithLogging())
	}

	res := jsonrepair.New(opts...).Process([]byte(req.Input))
	resp := RepairResponse{Output: string(res.Output), Logs: res.Log}
	if len(res.Violations) > 0 {
		resp.Violations = toViolations(res.Violations)
	}
	writeJSON(c, http.StatusOK, resp)
}

func (s *Server) handleRepairRaw(c *gin.Context) {
	body, _ := GetRawBody(c)

	var opts []jsonrepair.Option
	if queryFlag(c, "stream_stable") {
		opts = append(opts, jsonrepair.WithStreamStable())
	}
	if queryFlag(c, "ensure_ascii") {
		opts = append(opts, jsonrepair.WithEnsureASCII())
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", jsonrepair.RepairBytes(body, opts...))
}

func (s *Server) handleHealth(c *gin.Context) {
	writeJSON(c, http.StatusOK, HealthResponse{Status: "ok", Version: s.cfg.Version})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("serving on %s: %w", s.cfg.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	wait := s.cfg.ShutdownWait
	if wait <= 0 {
		wait = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()

	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// requestLogger logs one line per request.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// bodyLimit caps request bodies at limit bytes. Reading past the cap fails
// with *http.MaxBytesError.
func bodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

func queryFlag(c *gin.Context, name string) bool {
	v, ok := c.GetQuery(name)
	if !ok {
		return false
	}
	if v == "" {
		return true
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// writeJSON encodes v with go-json.
func writeJSON(c *gin.Context, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		details := []Violation{{
			Position: -1,
			Message:  err.Error(),
			Type:     string(errors.ErrorTypeEncode),
		}}
		fallback, _ := json.Marshal(ErrorResponse{Error: "failed to encode response", Details: details})
		c.Data(http.StatusInternalServerError, "application/json; charset=utf-8", fallback)
		return
	}
	c.Data(status, "application/json; charset=utf-8", data)
}
