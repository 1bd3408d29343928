package handlers

import (
	"context"

	"whiteboard/application/commands"
	vo "whiteboard/domain/core/valueobjects"
)

// ClearResult reports how many members a clear removed
type ClearResult struct {
	Removed int `json:"removed"`
}

func (h *BoardCommandHandler) clearCollection(ctx context.Context, cmd commands.ClearCollectionCommand) (interface{}, error) {
	ids, err := parseIDs(cmd.CollectionID)
	if err != nil {
		return nil, err
	}
	removed, err := h.service.ClearCollection(ctx, ids[0])
	if err != nil {
		return nil, err
	}
	return ClearResult{Removed: removed}, nil
}

func (h *BoardCommandHandler) centerOn(ctx context.Context, cmd commands.CenterOnNodeCommand) (interface{}, error) {
	ids, err := parseIDs(cmd.CollectionID, cmd.NodeID)
	if err != nil {
		return nil, err
	}
	return h.service.CenterOn(ctx, ids[0], ids[1], cmd.ViewportWidth, cmd.ViewportHeight, cmd.FrameRate)
}

func (h *BoardCommandHandler) pan(ctx context.Context, cmd commands.PanCollectionCommand) (interface{}, error) {
	ids, err := parseIDs(cmd.CollectionID)
	if err != nil {
		return nil, err
	}
	return h.service.Pan(ctx, ids[0], cmd.DeltaX, cmd.DeltaY, cmd.ClientX, cmd.ClientY)
}

func (h *BoardCommandHandler) setLayoutMode(ctx context.Context, cmd commands.SetLayoutModeCommand) (interface{}, error) {
	ids, err := parseIDs(cmd.CollectionID)
	if err != nil {
		return nil, err
	}
	mode, err := vo.ParseLayoutMode(cmd.Mode)
	if err != nil {
		return nil, err
	}
	if err := h.service.SetLayoutMode(ctx, ids[0], mode); err != nil {
		return nil, err
	}
	return h.service.GetNode(ctx, ids[0])
}

func (h *BoardCommandHandler) arrangeGrid(ctx context.Context, cmd commands.ArrangeGridCommand) (interface{}, error) {
	ids, err := parseIDs(cmd.CollectionID)
	if err != nil {
		return nil, err
	}
	return h.service.ArrangeGrid(ctx, ids[0], cmd.ViewportWidth, cmd.ViewportHeight)
}

func (h *BoardCommandHandler) toggleTreeItem(ctx context.Context, cmd commands.ToggleTreeItemCommand) (interface{}, error) {
	ids, err := parseIDs(cmd.CollectionID, cmd.NodeID)
	if err != nil {
		return nil, err
	}
	return h.service.ToggleTreeItem(ctx, ids[0], ids[1])
}
