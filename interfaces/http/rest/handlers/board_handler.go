package handlers

import (
	"net/http"

	"whiteboard/application/commands/bus"
	"whiteboard/application/queries"
	querybus "whiteboard/application/queries/bus"
	pkgerrors "whiteboard/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BoardHandler serves whole-board reads
type BoardHandler struct {
	handler
}

// NewBoardHandler creates a new board handler
func NewBoardHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *BoardHandler {
	return &BoardHandler{handler: newHandler(commandBus, queryBus, errorHandler, logger)}
}

// GetBoard handles GET /board
func (h *BoardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.GetBoardQuery{})
}

// GetGraph handles GET /board/graph
func (h *BoardHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.GetLinkGraphQuery{})
}

// GetSchema handles GET /schema/{kind}
func (h *BoardHandler) GetSchema(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.GetSchemaQuery{Kind: chi.URLParam(r, "kind")})
}
