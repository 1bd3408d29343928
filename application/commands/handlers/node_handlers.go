package handlers

import (
	"context"

	"whiteboard/application/commands"
	"whiteboard/application/services"
	vo "whiteboard/domain/core/valueobjects"

	"go.uber.org/zap"
)

func (h *BoardCommandHandler) createNode(ctx context.Context, cmd commands.CreateNodeCommand) (interface{}, error) {
	kind, err := vo.ParseNodeKind(cmd.Kind)
	if err != nil {
		return nil, err
	}
	ids, err := parseIDs(cmd.NodeID, cmd.ParentID)
	if err != nil {
		return nil, err
	}

	in := services.CreateNodeInput{
		ID:       ids[0],
		ParentID: ids[1],
		Kind:     kind,
		Fields:   cmd.Fields,
	}
	if cmd.X != nil && cmd.Y != nil {
		in.Position = &vo.Point{X: *cmd.X, Y: *cmd.Y}
	}
	if cmd.Width != nil && cmd.Height != nil {
		in.Size = &vo.Size{Width: *cmd.Width, Height: *cmd.Height}
	}

	node, err := h.service.CreateNode(ctx, in)
	if err != nil {
		return nil, err
	}
	h.logger.Info("Node created",
		zap.String("nodeID", node.ID),
		zap.String("kind", node.Kind),
	)
	return node, nil
}

func (h *BoardCommandHandler) removeNode(ctx context.Context, cmd commands.RemoveNodeCommand) (interface{}, error) {
	ids, err := parseIDs(cmd.NodeID)
	if err != nil {
		return nil, err
	}
	if err := h.service.RemoveNode(ctx, ids[0]); err != nil {
		return nil, err
	}
	h.logger.Info("Node removed", zap.String("nodeID", cmd.NodeID))
	return nil, nil
}

func (h *BoardCommandHandler) linkNodes(ctx context.Context, cmd commands.LinkNodesCommand) (interface{}, error) {
	ids, err := parseIDs(cmd.NodeID, cmd.PeerID)
	if err != nil {
		return nil, err
	}
	return nil, h.service.LinkNodes(ctx, ids[0], ids[1])
}

func (h *BoardCommandHandler) unlinkNodes(ctx context.Context, cmd commands.UnlinkNodesCommand) (interface{}, error) {
	ids, err := parseIDs(cmd.NodeID, cmd.PeerID)
	if err != nil {
		return nil, err
	}
	return nil, h.service.UnlinkNodes(ctx, ids[0], ids[1])
}

func (h *BoardCommandHandler) resizeNode(ctx context.Context, cmd commands.ResizeNodeCommand) (interface{}, error) {
	ids, err := parseIDs(cmd.NodeID)
	if err != nil {
		return nil, err
	}
	return h.service.ResizeNode(ctx, ids[0], cmd.DeltaWidth, cmd.DeltaHeight)
}
