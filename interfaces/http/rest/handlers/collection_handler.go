package handlers

import (
	"net/http"

	"whiteboard/application/commands"
	"whiteboard/application/commands/bus"
	"whiteboard/application/queries"
	querybus "whiteboard/application/queries/bus"
	pkgerrors "whiteboard/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CollectionHandler handles collection viewport, layout and drag requests
type CollectionHandler struct {
	handler
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *CollectionHandler {
	return &CollectionHandler{handler: newHandler(commandBus, queryBus, errorHandler, logger)}
}

func collectionID(r *http.Request) string {
	return chi.URLParam(r, "collectionID")
}

// Clear handles POST /collections/{collectionID}/clear
func (h *CollectionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, http.StatusOK, commands.ClearCollectionCommand{CollectionID: collectionID(r)})
}

// Center handles POST /collections/{collectionID}/center. With a frame rate
// the response holds every pan offset of the eased animation.
func (h *CollectionHandler) Center(w http.ResponseWriter, r *http.Request) {
	var cmd commands.CenterOnNodeCommand
	if !h.decode(w, r, &cmd) {
		return
	}
	cmd.CollectionID = collectionID(r)
	h.send(w, r, http.StatusOK, cmd)
}

// Pan handles POST /collections/{collectionID}/pan
func (h *CollectionHandler) Pan(w http.ResponseWriter, r *http.Request) {
	var cmd commands.PanCollectionCommand
	if !h.decode(w, r, &cmd) {
		return
	}
	cmd.CollectionID = collectionID(r)
	h.send(w, r, http.StatusOK, cmd)
}

// SetLayout handles POST /collections/{collectionID}/layout
func (h *CollectionHandler) SetLayout(w http.ResponseWriter, r *http.Request) {
	var cmd commands.SetLayoutModeCommand
	if !h.decode(w, r, &cmd) {
		return
	}
	cmd.CollectionID = collectionID(r)
	h.send(w, r, http.StatusOK, cmd)
}

// ArrangeGrid handles POST /collections/{collectionID}/arrange-grid
func (h *CollectionHandler) ArrangeGrid(w http.ResponseWriter, r *http.Request) {
	var cmd commands.ArrangeGridCommand
	if !h.decode(w, r, &cmd) {
		return
	}
	cmd.CollectionID = collectionID(r)
	h.send(w, r, http.StatusOK, cmd)
}

// Tree handles GET /collections/{collectionID}/tree
func (h *CollectionHandler) Tree(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.GetTreeQuery{CollectionID: collectionID(r)})
}

// ToggleTreeItem handles POST /collections/{collectionID}/tree/{nodeID}/toggle
func (h *CollectionHandler) ToggleTreeItem(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, http.StatusOK, commands.ToggleTreeItemCommand{
		CollectionID: collectionID(r),
		NodeID:       chi.URLParam(r, "nodeID"),
	})
}

// Trail handles GET /collections/{collectionID}/trail
func (h *CollectionHandler) Trail(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.GetTrailQuery{CollectionID: collectionID(r)})
}

// DragStart handles POST /collections/{collectionID}/drag/start
func (h *CollectionHandler) DragStart(w http.ResponseWriter, r *http.Request) {
	var cmd commands.StartDragCommand
	if !h.decode(w, r, &cmd) {
		return
	}
	cmd.CollectionID = collectionID(r)
	h.send(w, r, http.StatusOK, cmd)
}

// DragMove handles POST /collections/{collectionID}/drag/move
func (h *CollectionHandler) DragMove(w http.ResponseWriter, r *http.Request) {
	var cmd commands.MoveDragCommand
	if !h.decode(w, r, &cmd) {
		return
	}
	cmd.CollectionID = collectionID(r)
	h.send(w, r, http.StatusOK, cmd)
}

// DragEnd handles POST /collections/{collectionID}/drag/end
func (h *CollectionHandler) DragEnd(w http.ResponseWriter, r *http.Request) {
	var cmd commands.EndDragCommand
	if !h.decode(w, r, &cmd) {
		return
	}
	cmd.CollectionID = collectionID(r)
	h.send(w, r, http.StatusOK, cmd)
}

// Merge handles POST /collections/{collectionID}/merge
func (h *CollectionHandler) Merge(w http.ResponseWriter, r *http.Request) {
	var cmd commands.MergeNodesCommand
	if !h.decode(w, r, &cmd) {
		return
	}
	cmd.CollectionID = collectionID(r)
	h.send(w, r, http.StatusOK, cmd)
}
