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

// NodeHandler handles node-related HTTP requests
type NodeHandler struct {
	handler
}

// NewNodeHandler creates a new node handler
func NewNodeHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *NodeHandler {
	return &NodeHandler{handler: newHandler(commandBus, queryBus, errorHandler, logger)}
}

// LinkRequest represents the request body for linking two nodes
type LinkRequest struct {
	PeerID string `json:"peer_id"`
}

// CreateNode handles POST /nodes
func (h *NodeHandler) CreateNode(w http.ResponseWriter, r *http.Request) {
	var cmd commands.CreateNodeCommand
	if !h.decode(w, r, &cmd) {
		return
	}
	h.send(w, r, http.StatusCreated, cmd)
}

// GetNode handles GET /nodes/{nodeID}
func (h *NodeHandler) GetNode(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.GetNodeQuery{NodeID: chi.URLParam(r, "nodeID")})
}

// DeleteNode handles DELETE /nodes/{nodeID}
func (h *NodeHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, http.StatusNoContent, commands.RemoveNodeCommand{NodeID: chi.URLParam(r, "nodeID")})
}

// LinkNodes handles POST /nodes/{nodeID}/links
func (h *NodeHandler) LinkNodes(w http.ResponseWriter, r *http.Request) {
	var req LinkRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.send(w, r, http.StatusNoContent, commands.LinkNodesCommand{
		NodeID: chi.URLParam(r, "nodeID"),
		PeerID: req.PeerID,
	})
}

// UnlinkNodes handles DELETE /nodes/{nodeID}/links/{peerID}
func (h *NodeHandler) UnlinkNodes(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, http.StatusNoContent, commands.UnlinkNodesCommand{
		NodeID: chi.URLParam(r, "nodeID"),
		PeerID: chi.URLParam(r, "peerID"),
	})
}

// ResizeNode handles POST /nodes/{nodeID}/resize
func (h *NodeHandler) ResizeNode(w http.ResponseWriter, r *http.Request) {
	var cmd commands.ResizeNodeCommand
	if !h.decode(w, r, &cmd) {
		return
	}
	cmd.NodeID = chi.URLParam(r, "nodeID")
	h.send(w, r, http.StatusOK, cmd)
}
