package handlers

import (
	"net/http"

	"whiteboard/application/commands/bus"
	querybus "whiteboard/application/queries/bus"
	"whiteboard/pkg/common"
	pkgerrors "whiteboard/pkg/errors"

	"go.uber.org/zap"
)

// handler carries what every REST handler needs
type handler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

func newHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) handler {
	return handler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errorHandler,
		logger:     logger,
	}
}

// send dispatches cmd and writes its result with status, or the error
func (h handler) send(w http.ResponseWriter, r *http.Request, status int, cmd bus.Command) {
	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	if result == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	common.RespondJSON(w, status, result)
}

// ask dispatches q and writes its result, or the error
func (h handler) ask(w http.ResponseWriter, r *http.Request, q querybus.Query) {
	result, err := h.queryBus.Ask(r.Context(), q)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// decode reads the request body into v, writing the error response on failure
func (h handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := common.DecodeJSON(r, v); err != nil {
		h.errors.Handle(w, r, err)
		return false
	}
	return true
}
