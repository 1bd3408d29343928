package rest

import (
	"net/http"
	"time"

	"whiteboard/application/commands/bus"
	"whiteboard/application/queries"
	querybus "whiteboard/application/queries/bus"
	"whiteboard/interfaces/http/rest/handlers"
	"whiteboard/interfaces/http/rest/middleware"
	"whiteboard/pkg/common"
	pkgerrors "whiteboard/pkg/errors"
	"whiteboard/pkg/observability"
	"whiteboard/pkg/ratelimit"
	"whiteboard/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// RouterConfig holds the HTTP settings of the router
type RouterConfig struct {
	EnableCORS     bool
	AllowedOrigins []string
	RateLimit      int
	RequestTimeout time.Duration
}

// Router creates and configures the HTTP router
type Router struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	collector  *observability.Collector
	limiter    ratelimit.Limiter
	errors     *pkgerrors.ErrorHandler
	cfg        RouterConfig
	logger     *zap.Logger
}

// NewRouter creates a new router instance. collector and limiter may be nil.
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	collector *observability.Collector,
	limiter ratelimit.Limiter,
	errorHandler *pkgerrors.ErrorHandler,
	cfg RouterConfig,
	logger *zap.Logger,
) *Router {
	return &Router{
		commandBus: commandBus,
		queryBus:   queryBus,
		collector:  collector,
		limiter:    limiter,
		errors:     errorHandler,
		cfg:        cfg,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.RequestContext)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	if rt.collector != nil {
		router.Use(middleware.Metrics(rt.collector))
	}
	if rt.cfg.RequestTimeout > 0 {
		router.Use(chimiddleware.Timeout(rt.cfg.RequestTimeout))
	}

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: rt.cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.collector != nil {
		router.Method(http.MethodGet, "/metrics", rt.collector.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		if rt.limiter != nil {
			r.Use(middleware.RateLimit(rt.limiter, rt.errors, rt.cfg.RateLimit))
		}

		boardHandler := handlers.NewBoardHandler(rt.commandBus, rt.queryBus, rt.errors, rt.logger)
		r.Get("/board", boardHandler.GetBoard)
		r.Get("/board/graph", boardHandler.GetGraph)
		r.Get("/schema/{kind}", boardHandler.GetSchema)

		r.Route("/nodes", func(r chi.Router) {
			nodeHandler := handlers.NewNodeHandler(rt.commandBus, rt.queryBus, rt.errors, rt.logger)
			r.Post("/", nodeHandler.CreateNode)
			r.Get("/{nodeID}", nodeHandler.GetNode)
			r.Delete("/{nodeID}", nodeHandler.DeleteNode)
			r.Post("/{nodeID}/links", nodeHandler.LinkNodes)
			r.Delete("/{nodeID}/links/{peerID}", nodeHandler.UnlinkNodes)
			r.Post("/{nodeID}/resize", nodeHandler.ResizeNode)
		})

		r.Route("/collections/{collectionID}", func(r chi.Router) {
			collectionHandler := handlers.NewCollectionHandler(rt.commandBus, rt.queryBus, rt.errors, rt.logger)
			r.Post("/clear", collectionHandler.Clear)
			r.Post("/center", collectionHandler.Center)
			r.Post("/pan", collectionHandler.Pan)
			r.Post("/layout", collectionHandler.SetLayout)
			r.Post("/arrange-grid", collectionHandler.ArrangeGrid)
			r.Get("/tree", collectionHandler.Tree)
			r.Post("/tree/{nodeID}/toggle", collectionHandler.ToggleTreeItem)
			r.Get("/trail", collectionHandler.Trail)
			r.Post("/drag/start", collectionHandler.DragStart)
			r.Post("/drag/move", collectionHandler.DragMove)
			r.Post("/drag/end", collectionHandler.DragEnd)
			r.Post("/merge", collectionHandler.Merge)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": utils.NowRFC3339(),
	})
}

// readinessCheck reports ready while the board's invariants hold
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	if _, err := rt.queryBus.Ask(req.Context(), queries.CheckBoardQuery{}); err != nil {
		common.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": err.Error(),
		})
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
