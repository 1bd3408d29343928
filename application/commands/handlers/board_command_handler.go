package handlers

import (
	"context"
	"fmt"

	"whiteboard/application/commands"
	"whiteboard/application/commands/bus"
	"whiteboard/application/services"
	vo "whiteboard/domain/core/valueobjects"

	"go.uber.org/zap"
)

// BoardCommandHandler executes every board command against the board service
type BoardCommandHandler struct {
	service *services.BoardService
	logger  *zap.Logger
}

// NewBoardCommandHandler creates a new board command handler
func NewBoardCommandHandler(service *services.BoardService, logger *zap.Logger) *BoardCommandHandler {
	return &BoardCommandHandler{
		service: service,
		logger:  logger,
	}
}

// Register registers the handler for all board commands on commandBus
func (h *BoardCommandHandler) Register(commandBus *bus.CommandBus) error {
	for _, cmd := range []bus.Command{
		commands.CreateNodeCommand{},
		commands.RemoveNodeCommand{},
		commands.LinkNodesCommand{},
		commands.UnlinkNodesCommand{},
		commands.ResizeNodeCommand{},
		commands.ClearCollectionCommand{},
		commands.CenterOnNodeCommand{},
		commands.PanCollectionCommand{},
		commands.SetLayoutModeCommand{},
		commands.ArrangeGridCommand{},
		commands.ToggleTreeItemCommand{},
		commands.StartDragCommand{},
		commands.MoveDragCommand{},
		commands.EndDragCommand{},
		commands.MergeNodesCommand{},
	} {
		if err := commandBus.Register(cmd, h); err != nil {
			return err
		}
	}
	return nil
}

// Handle implements bus.CommandHandler
func (h *BoardCommandHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	switch c := cmd.(type) {
	case commands.CreateNodeCommand:
		return h.createNode(ctx, c)
	case commands.RemoveNodeCommand:
		return h.removeNode(ctx, c)
	case commands.LinkNodesCommand:
		return h.linkNodes(ctx, c)
	case commands.UnlinkNodesCommand:
		return h.unlinkNodes(ctx, c)
	case commands.ResizeNodeCommand:
		return h.resizeNode(ctx, c)
	case commands.ClearCollectionCommand:
		return h.clearCollection(ctx, c)
	case commands.CenterOnNodeCommand:
		return h.centerOn(ctx, c)
	case commands.PanCollectionCommand:
		return h.pan(ctx, c)
	case commands.SetLayoutModeCommand:
		return h.setLayoutMode(ctx, c)
	case commands.ArrangeGridCommand:
		return h.arrangeGrid(ctx, c)
	case commands.ToggleTreeItemCommand:
		return h.toggleTreeItem(ctx, c)
	case commands.StartDragCommand:
		return h.startDrag(ctx, c)
	case commands.MoveDragCommand:
		return h.moveDrag(ctx, c)
	case commands.EndDragCommand:
		return h.endDrag(ctx, c)
	case commands.MergeNodesCommand:
		return h.merge(ctx, c)
	default:
		return nil, fmt.Errorf("%w: %T", bus.ErrHandlerNotFound, cmd)
	}
}

// parseIDs converts command ids to value objects; empty strings become zero ids.
func parseIDs(raw ...string) ([]vo.NodeID, error) {
	ids := make([]vo.NodeID, len(raw))
	for i, s := range raw {
		if s == "" {
			continue
		}
		id, err := vo.NewNodeIDFromString(s)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}
