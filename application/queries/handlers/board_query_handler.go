package handlers

import (
	"context"
	"fmt"

	"whiteboard/application/dto"
	"whiteboard/application/queries"
	"whiteboard/application/queries/bus"
	"whiteboard/application/services"
	vo "whiteboard/domain/core/valueobjects"

	"go.uber.org/zap"
)

// BoardQueryHandler answers read-only board queries
type BoardQueryHandler struct {
	service *services.BoardService
	logger  *zap.Logger
}

// NewBoardQueryHandler creates a new board query handler
func NewBoardQueryHandler(service *services.BoardService, logger *zap.Logger) *BoardQueryHandler {
	return &BoardQueryHandler{
		service: service,
		logger:  logger,
	}
}

// Register registers the handler for all board queries on queryBus
func (h *BoardQueryHandler) Register(queryBus *bus.QueryBus) error {
	for _, q := range []bus.Query{
		queries.GetBoardQuery{},
		queries.GetNodeQuery{},
		queries.GetTreeQuery{},
		queries.GetTrailQuery{},
		queries.GetSchemaQuery{},
		queries.GetLinkGraphQuery{},
		queries.CheckBoardQuery{},
	} {
		if err := queryBus.Register(q, h); err != nil {
			return err
		}
	}
	return nil
}

// Handle implements bus.QueryHandler
func (h *BoardQueryHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	switch q := query.(type) {
	case queries.GetBoardQuery:
		return h.service.Board(ctx), nil

	case queries.GetNodeQuery:
		id, err := vo.NewNodeIDFromString(q.NodeID)
		if err != nil {
			return nil, err
		}
		return h.service.GetNode(ctx, id)

	case queries.GetTreeQuery:
		id, err := vo.NewNodeIDFromString(q.CollectionID)
		if err != nil {
			return nil, err
		}
		return h.service.Tree(ctx, id)

	case queries.GetTrailQuery:
		id, err := vo.NewNodeIDFromString(q.CollectionID)
		if err != nil {
			return nil, err
		}
		return h.service.Trail(ctx, id)

	case queries.GetSchemaQuery:
		kind, err := vo.ParseNodeKind(q.Kind)
		if err != nil {
			return nil, err
		}
		return h.service.Schema(kind), nil

	case queries.GetLinkGraphQuery:
		return buildLinkGraph(h.service.Board(ctx)), nil

	case queries.CheckBoardQuery:
		if err := h.service.Validate(ctx); err != nil {
			h.logger.Error("Board invariants violated", zap.Error(err))
			return nil, err
		}
		return nil, nil

	default:
		return nil, fmt.Errorf("%w: %T", bus.ErrHandlerNotFound, query)
	}
}

// buildLinkGraph flattens a board snapshot in depth-first order
func buildLinkGraph(board dto.BoardDTO) *queries.LinkGraphResult {
	result := &queries.LinkGraphResult{
		Nodes: []queries.LinkGraphNode{},
		Edges: []queries.LinkGraphEdge{},
	}

	var visit func(parent dto.NodeDTO, depth int)
	visit = func(parent dto.NodeDTO, depth int) {
		members := append(append([]dto.NodeDTO{}, parent.Nodes...), parent.Children...)
		for _, n := range members {
			result.Nodes = append(result.Nodes, queries.LinkGraphNode{
				ID:       n.ID,
				Kind:     n.Kind,
				Title:    n.Title,
				ParentID: parent.ID,
				Depth:    depth,
			})
			if depth > result.Stats.MaxDepth {
				result.Stats.MaxDepth = depth
			}
			for _, peer := range n.Links {
				if n.ID < peer {
					result.Edges = append(result.Edges, queries.LinkGraphEdge{Source: n.ID, Target: peer})
				}
			}
			visit(n, depth+1)
		}
	}
	visit(board.Root, 0)

	result.Stats.NodeCount = len(result.Nodes)
	result.Stats.LinkCount = len(result.Edges)
	if n := result.Stats.NodeCount; n > 1 {
		result.Stats.Density = float64(2*result.Stats.LinkCount) / float64(n*(n-1))
	}
	return result
}
