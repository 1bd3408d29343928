package services

import (
	"fmt"
	"math"
	"time"

	"whiteboard/domain/config"
	"whiteboard/domain/core/entities"
	"whiteboard/domain/core/schema"
	vo "whiteboard/domain/core/valueobjects"
	"whiteboard/domain/events"
	pkgerrors "whiteboard/pkg/errors"
)

// MergeStrategy names the restructuring applied by a merge.
type MergeStrategy string

const (
	StrategyComposite      MergeStrategy = "composite"
	StrategyScrapbook      MergeStrategy = "scrapbook"
	StrategyIntoCollection MergeStrategy = "into_collection"
	StrategyAbsorbTarget   MergeStrategy = "absorb_target"
	StrategyWrap           MergeStrategy = "wrap"
)

// MergeResult reports which rule fired and the container that received the nodes.
type MergeResult struct {
	Strategy  MergeStrategy
	Container *entities.Node
}

// MergeEngine restructures two sibling nodes when one is dropped onto the other.
type MergeEngine struct {
	cfg *config.DomainConfig
}

// NewMergeEngine creates a merge engine. A nil config uses the defaults.
func NewMergeEngine(cfg *config.DomainConfig) *MergeEngine {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &MergeEngine{cfg: cfg}
}

// MergeNodes combines dragged and target, both direct children of parent.
// The first matching rule wins:
//  1. useComposite: wrap both in a new composite at target's origin
//  2. target is a scrapbook: stack dragged on it
//  3. target is a collection: move dragged into it
//  4. dragged is a collection: move target into it
//  5. otherwise wrap both in a new collection at target's origin and size
//
// Moved nodes keep their absolute position: their coordinates are rewritten
// relative to the receiving container. Preconditions are checked before
// anything is touched; on error the graph is unchanged.
func (e *MergeEngine) MergeNodes(dragged, target *entities.Node, useComposite bool, parent *entities.Node) (MergeResult, error) {
	if err := e.checkPreconditions(dragged, target, parent); err != nil {
		return MergeResult{}, err
	}

	var (
		result MergeResult
		err    error
	)
	switch {
	case useComposite:
		result, err = e.mergeIntoComposite(dragged, target, parent)
	case target.Kind() == vo.KindScrapbook:
		result, err = e.addToScrapbook(dragged, target, parent)
	case target.IsCollection():
		result, err = e.moveInto(dragged, target, parent, StrategyIntoCollection)
	case dragged.IsCollection():
		result, err = e.moveInto(target, dragged, parent, StrategyAbsorbTarget)
	default:
		result, err = e.wrapInNewCollection(dragged, target, parent)
	}
	if err != nil {
		return MergeResult{}, err
	}

	parent.RecordEvent(events.NewNodesMerged(parent.ID(), dragged.ID(), target.ID(),
		result.Container.ID(), string(result.Strategy), time.Now()))
	return result, nil
}

func (e *MergeEngine) checkPreconditions(dragged, target, parent *entities.Node) error {
	if dragged == nil || target == nil || parent == nil {
		return pkgerrors.NewValidationError("merge requires dragged, target and parent nodes")
	}
	if !parent.IsCollection() {
		return fmt.Errorf("merge parent %s: %w", parent.ID(), pkgerrors.ErrNotACollection)
	}
	if dragged == target {
		return fmt.Errorf("merge %s: %w", dragged.ID(), pkgerrors.ErrSelfMerge)
	}
	for _, n := range []*entities.Node{dragged, target} {
		if !parent.Contains(n) {
			return fmt.Errorf("merge node %s into %s: %w", n.ID(), parent.ID(), pkgerrors.ErrNodeNotInCollection)
		}
	}
	return nil
}

func (e *MergeEngine) mergeIntoComposite(dragged, target, parent *entities.Node) (MergeResult, error) {
	composite, err := entities.NewNodeWithConfig(vo.KindComposite, entities.Initializer{
		Position: &vo.Point{X: target.X(), Y: target.Y()},
		Size: &vo.Size{
			Width:  math.Max(dragged.Width(), target.Width()),
			Height: math.Max(dragged.Height(), target.Height()),
		},
	}, e.cfg)
	if err != nil {
		return MergeResult{}, err
	}

	e.remove(parent, dragged)
	e.remove(parent, target)
	relocate(composite, dragged, target)

	if err := composite.AddChild(dragged); err != nil {
		return MergeResult{}, err
	}
	if err := composite.AddChild(target); err != nil {
		return MergeResult{}, err
	}
	if err := parent.AddNode(composite); err != nil {
		return MergeResult{}, err
	}
	return MergeResult{Strategy: StrategyComposite, Container: composite}, nil
}

func (e *MergeEngine) addToScrapbook(dragged, scrapbook, parent *entities.Node) (MergeResult, error) {
	if dragged.IsAncestorOf(scrapbook) {
		return MergeResult{}, fmt.Errorf("stack %s on %s: %w", dragged.ID(), scrapbook.ID(), pkgerrors.ErrCyclicContainment)
	}

	e.remove(parent, dragged)
	relocate(scrapbook, dragged)
	if err := scrapbook.AddChild(dragged); err != nil {
		return MergeResult{}, err
	}
	return MergeResult{Strategy: StrategyScrapbook, Container: scrapbook}, nil
}

// moveInto moves node from parent into the sibling collection.
func (e *MergeEngine) moveInto(node, collection, parent *entities.Node, strategy MergeStrategy) (MergeResult, error) {
	if node.IsAncestorOf(collection) {
		return MergeResult{}, fmt.Errorf("move %s into %s: %w", node.ID(), collection.ID(), pkgerrors.ErrCyclicContainment)
	}

	e.remove(parent, node)
	relocate(collection, node)
	if err := collection.AddNode(node); err != nil {
		return MergeResult{}, err
	}
	return MergeResult{Strategy: strategy, Container: collection}, nil
}

func (e *MergeEngine) wrapInNewCollection(dragged, target, parent *entities.Node) (MergeResult, error) {
	collection, err := entities.NewNodeWithConfig(vo.KindCollection, entities.Initializer{
		Position: &vo.Point{X: target.X(), Y: target.Y()},
		Size:     &vo.Size{Width: target.Width(), Height: target.Height()},
		Fields:   map[string]string{schema.FieldTitle: e.cfg.MergedCollectionTitle},
	}, e.cfg)
	if err != nil {
		return MergeResult{}, err
	}

	e.remove(parent, dragged)
	e.remove(parent, target)
	relocate(collection, dragged, target)

	if err := collection.AddNodes(target, dragged); err != nil {
		return MergeResult{}, err
	}
	if err := parent.AddNode(collection); err != nil {
		return MergeResult{}, err
	}
	return MergeResult{Strategy: StrategyWrap, Container: collection}, nil
}

func (e *MergeEngine) remove(parent, node *entities.Node) {
	if e.cfg.PreserveLinksOnMerge {
		parent.DetachNode(node)
		return
	}
	parent.RemoveNode(node)
}

// relocate rewrites the nodes' coordinates relative to container's origin.
func relocate(container *entities.Node, nodes ...*entities.Node) {
	for _, n := range nodes {
		n.MoveTo(n.X()-container.X(), n.Y()-container.Y())
	}
}
