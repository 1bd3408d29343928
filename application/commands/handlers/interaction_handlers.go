package handlers

import (
	"context"

	"whiteboard/application/commands"

	"go.uber.org/zap"
)

func (h *BoardCommandHandler) startDrag(ctx context.Context, cmd commands.StartDragCommand) (interface{}, error) {
	ids, err := parseIDs(cmd.CollectionID, cmd.NodeID)
	if err != nil {
		return nil, err
	}
	return h.service.DragStart(ctx, ids[0], ids[1])
}

func (h *BoardCommandHandler) moveDrag(ctx context.Context, cmd commands.MoveDragCommand) (interface{}, error) {
	ids, err := parseIDs(cmd.CollectionID, cmd.NodeID)
	if err != nil {
		return nil, err
	}
	return h.service.DragMove(ctx, ids[0], ids[1], cmd.DeltaX, cmd.DeltaY)
}

func (h *BoardCommandHandler) endDrag(ctx context.Context, cmd commands.EndDragCommand) (interface{}, error) {
	ids, err := parseIDs(cmd.CollectionID, cmd.NodeID)
	if err != nil {
		return nil, err
	}
	state, err := h.service.DragEnd(ctx, ids[0], ids[1], cmd.Modifier)
	if err != nil {
		return nil, err
	}
	if state.Merge != nil {
		h.logger.Info("Drag ended in merge",
			zap.String("nodeID", cmd.NodeID),
			zap.String("strategy", state.Merge.Strategy),
			zap.String("containerID", state.Merge.Container.ID),
		)
	}
	return state, nil
}

func (h *BoardCommandHandler) merge(ctx context.Context, cmd commands.MergeNodesCommand) (interface{}, error) {
	ids, err := parseIDs(cmd.CollectionID, cmd.DraggedID, cmd.TargetID)
	if err != nil {
		return nil, err
	}
	return h.service.Merge(ctx, ids[0], ids[1], ids[2], cmd.UseComposite)
}
