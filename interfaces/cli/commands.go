package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"whiteboard/application/commands"
	"whiteboard/application/commands/handlers"
	"whiteboard/application/dto"
	"whiteboard/application/queries"
)

func (c *CLI) handleAdd(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: add <kind> [parent] [x y [width height]] [field=value]...")
	}

	cmd := commands.CreateNodeCommand{Kind: args[0]}
	var numbers []float64
	for _, arg := range args[1:] {
		if name, value, ok := strings.Cut(arg, "="); ok {
			if cmd.Fields == nil {
				cmd.Fields = map[string]string{}
			}
			cmd.Fields[name] = value
			continue
		}
		if v, err := strconv.ParseFloat(arg, 64); err == nil {
			numbers = append(numbers, v)
			continue
		}
		if cmd.ParentID != "" {
			return fmt.Errorf("unexpected argument %q", arg)
		}
		parent, err := c.lookup(ctx, arg)
		if err != nil {
			return err
		}
		cmd.ParentID = parent.node.ID
	}

	switch len(numbers) {
	case 0:
	case 2, 4:
		cmd.X, cmd.Y = &numbers[0], &numbers[1]
		if len(numbers) == 4 {
			cmd.Width, cmd.Height = &numbers[2], &numbers[3]
		}
	default:
		return fmt.Errorf("expected x y or x y width height, got %d numbers", len(numbers))
	}

	result, err := c.commandBus.Send(ctx, cmd)
	if err != nil {
		return err
	}
	node := result.(dto.NodeDTO)
	c.printf("Created %s %s %q\n", node.Kind, shortID(node.ID), node.Label)
	return nil
}

func (c *CLI) handleList(ctx context.Context, args []string) error {
	target, err := c.collectionArg(ctx, args)
	if err != nil {
		return err
	}

	members := append(append([]dto.NodeDTO{}, target.node.Nodes...), target.node.Children...)
	if len(members) == 0 {
		c.printf("%s is empty\n", target.node.Label)
		return nil
	}
	for _, n := range members {
		c.printf("%s  %-10s %-24q (%.0f,%.0f) %.0fx%.0f", shortID(n.ID), n.Kind, n.Label,
			n.Position.X, n.Position.Y, n.Size.Width, n.Size.Height)
		if len(n.Links) > 0 {
			peers := make([]string, len(n.Links))
			for i, id := range n.Links {
				peers[i] = shortID(id)
			}
			c.printf("  -> %s", strings.Join(peers, ","))
		}
		c.printf("\n")
	}
	return nil
}

func (c *CLI) handleTree(ctx context.Context, args []string) error {
	var toggle string
	if len(args) >= 2 && args[len(args)-2] == "toggle" {
		toggle = args[len(args)-1]
		args = args[:len(args)-2]
	}
	target, err := c.collectionArg(ctx, args)
	if err != nil {
		return err
	}

	var result interface{}
	if toggle != "" {
		item, err := c.lookup(ctx, toggle)
		if err != nil {
			return err
		}
		result, err = c.commandBus.Send(ctx, commands.ToggleTreeItemCommand{
			CollectionID: target.node.ID,
			NodeID:       item.node.ID,
		})
		if err != nil {
			return err
		}
	} else {
		result, err = c.queryBus.Ask(ctx, queries.GetTreeQuery{CollectionID: target.node.ID})
		if err != nil {
			return err
		}
	}

	for _, item := range result.([]dto.TreeItemDTO) {
		marker := " "
		if item.Expandable {
			marker = "+"
			if item.Expanded {
				marker = "-"
			}
		}
		c.printf("%s%s %s %s\n", strings.Repeat("  ", item.Depth), marker, item.Label, shortID(item.ID))
	}
	return nil
}

func (c *CLI) handleLink(ctx context.Context, args []string, link bool) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: link|unlink <node> <node>")
	}
	a, err := c.lookup(ctx, args[0])
	if err != nil {
		return err
	}
	b, err := c.lookup(ctx, args[1])
	if err != nil {
		return err
	}

	if link {
		_, err = c.commandBus.Send(ctx, commands.LinkNodesCommand{NodeID: a.node.ID, PeerID: b.node.ID})
	} else {
		_, err = c.commandBus.Send(ctx, commands.UnlinkNodesCommand{NodeID: a.node.ID, PeerID: b.node.ID})
	}
	if err != nil {
		return err
	}
	verb := "Linked"
	if !link {
		verb = "Unlinked"
	}
	c.printf("%s %s and %s\n", verb, shortID(a.node.ID), shortID(b.node.ID))
	return nil
}

func (c *CLI) handleRemove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: rm <node>")
	}
	target, err := c.lookup(ctx, args[0])
	if err != nil {
		return err
	}
	if _, err := c.commandBus.Send(ctx, commands.RemoveNodeCommand{NodeID: target.node.ID}); err != nil {
		return err
	}
	c.printf("Removed %s\n", shortID(target.node.ID))
	return nil
}

func (c *CLI) handleClear(ctx context.Context, args []string) error {
	target, err := c.collectionArg(ctx, args)
	if err != nil {
		return err
	}
	result, err := c.commandBus.Send(ctx, commands.ClearCollectionCommand{CollectionID: target.node.ID})
	if err != nil {
		return err
	}
	c.printf("Removed %d nodes\n", result.(handlers.ClearResult).Removed)
	return nil
}

func (c *CLI) handleDrag(ctx context.Context, args []string) error {
	args, composite := flag(args, "--composite")
	if len(args) != 3 {
		return fmt.Errorf("usage: drag <node> <dx> <dy> [--composite]")
	}
	target, err := c.lookup(ctx, args[0])
	if err != nil {
		return err
	}
	if target.parent == nil {
		return fmt.Errorf("the root cannot be dragged")
	}
	dx, dy, err := parsePair(args[1], args[2])
	if err != nil {
		return err
	}

	collectionID, nodeID := target.parent.ID, target.node.ID
	if _, err := c.commandBus.Send(ctx, commands.StartDragCommand{CollectionID: collectionID, NodeID: nodeID}); err != nil {
		return err
	}
	if _, err := c.commandBus.Send(ctx, commands.MoveDragCommand{CollectionID: collectionID, NodeID: nodeID, DeltaX: dx, DeltaY: dy}); err != nil {
		return err
	}
	result, err := c.commandBus.Send(ctx, commands.EndDragCommand{CollectionID: collectionID, NodeID: nodeID, Modifier: composite})
	if err != nil {
		return err
	}

	state := result.(dto.DragDTO)
	if state.Merge != nil {
		c.printMerge(*state.Merge)
		return nil
	}
	c.printf("Moved %s to (%.0f,%.0f)\n", shortID(nodeID), state.Position.X, state.Position.Y)
	return nil
}

func (c *CLI) handleMerge(ctx context.Context, args []string) error {
	args, composite := flag(args, "--composite")
	if len(args) != 2 {
		return fmt.Errorf("usage: merge <dragged> <target> [--composite]")
	}
	dragged, err := c.lookup(ctx, args[0])
	if err != nil {
		return err
	}
	target, err := c.lookup(ctx, args[1])
	if err != nil {
		return err
	}
	if dragged.parent == nil {
		return fmt.Errorf("the root cannot be merged")
	}

	result, err := c.commandBus.Send(ctx, commands.MergeNodesCommand{
		CollectionID: dragged.parent.ID,
		DraggedID:    dragged.node.ID,
		TargetID:     target.node.ID,
		UseComposite: composite,
	})
	if err != nil {
		return err
	}
	c.printMerge(result.(dto.MergeDTO))
	return nil
}

func (c *CLI) printMerge(m dto.MergeDTO) {
	c.printf("Merged (%s) into %s %s %q\n", m.Strategy, m.Container.Kind, shortID(m.Container.ID), m.Container.Label)
}

func (c *CLI) handleGrid(ctx context.Context, args []string) error {
	cmd := commands.ArrangeGridCommand{}
	if len(args) >= 2 {
		w, h, err := parsePair(args[len(args)-2], args[len(args)-1])
		if err == nil {
			cmd.ViewportWidth, cmd.ViewportHeight = w, h
			args = args[:len(args)-2]
		}
	}
	target, err := c.collectionArg(ctx, args)
	if err != nil {
		return err
	}
	cmd.CollectionID = target.node.ID

	result, err := c.commandBus.Send(ctx, cmd)
	if err != nil {
		return err
	}
	c.printf("Arranged %d nodes\n", len(result.(dto.NodeDTO).Nodes))
	return nil
}

func (c *CLI) handleMode(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: mode <collection> <freeform|grid|tree>")
	}
	target, err := c.lookup(ctx, args[0])
	if err != nil {
		return err
	}
	result, err := c.commandBus.Send(ctx, commands.SetLayoutModeCommand{CollectionID: target.node.ID, Mode: args[1]})
	if err != nil {
		return err
	}
	c.printf("%s is now in %s mode\n", shortID(target.node.ID), result.(dto.NodeDTO).LayoutMode)
	return nil
}

func (c *CLI) handleCenter(ctx context.Context, args []string) error {
	cmd := commands.CenterOnNodeCommand{}
	for i := 0; i < len(args); i++ {
		if args[i] == "--animate" && i+1 < len(args) {
			fps, err := strconv.Atoi(args[i+1])
			if err != nil {
				return fmt.Errorf("invalid frame rate %q", args[i+1])
			}
			cmd.FrameRate = fps
			args = append(args[:i:i], args[i+2:]...)
			break
		}
	}
	if len(args) != 1 && len(args) != 3 {
		return fmt.Errorf("usage: center <node> [width height] [--animate fps]")
	}
	target, err := c.lookup(ctx, args[0])
	if err != nil {
		return err
	}
	if target.parent == nil {
		return fmt.Errorf("the root has no collection to center in")
	}
	if len(args) == 3 {
		if cmd.ViewportWidth, cmd.ViewportHeight, err = parsePair(args[1], args[2]); err != nil {
			return err
		}
	}
	cmd.CollectionID, cmd.NodeID = target.parent.ID, target.node.ID

	result, err := c.commandBus.Send(ctx, cmd)
	if err != nil {
		return err
	}
	frames := result.([]dto.PanDTO)
	last := frames[len(frames)-1]
	c.printf("Pan (%.1f,%.1f) after %d frames\n", last.PanX, last.PanY, len(frames))
	return nil
}

func (c *CLI) handlePan(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: pan <collection> <dx> <dy>")
	}
	target, err := c.lookup(ctx, args[0])
	if err != nil {
		return err
	}
	dx, dy, err := parsePair(args[1], args[2])
	if err != nil {
		return err
	}
	result, err := c.commandBus.Send(ctx, commands.PanCollectionCommand{CollectionID: target.node.ID, DeltaX: dx, DeltaY: dy})
	if err != nil {
		return err
	}
	pan := result.(dto.PanDTO)
	c.printf("Pan (%.1f,%.1f)\n", pan.PanX, pan.PanY)
	return nil
}

func (c *CLI) handleSchema(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: schema <kind>")
	}
	result, err := c.queryBus.Ask(ctx, queries.GetSchemaQuery{Kind: args[0]})
	if err != nil {
		return err
	}
	for _, f := range result.([]dto.FieldDTO) {
		c.printf("%-12s %-10s %q\n", f.Name, f.InputType, f.DefaultValue)
	}
	return nil
}

func (c *CLI) lookup(ctx context.Context, ref string) (located, error) {
	board, err := c.board(ctx)
	if err != nil {
		return located{}, err
	}
	return resolve(board, ref)
}

// collectionArg resolves an optional collection argument, defaulting to root
func (c *CLI) collectionArg(ctx context.Context, args []string) (located, error) {
	ref := "root"
	switch len(args) {
	case 0:
	case 1:
		ref = args[0]
	default:
		return located{}, fmt.Errorf("unexpected arguments: %s", strings.Join(args[1:], " "))
	}
	return c.lookup(ctx, ref)
}

func flag(args []string, name string) ([]string, bool) {
	out := make([]string, 0, len(args))
	found := false
	for _, a := range args {
		if a == name {
			found = true
			continue
		}
		out = append(out, a)
	}
	return out, found
}

func parsePair(a, b string) (float64, float64, error) {
	x, err := strconv.ParseFloat(a, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q", a)
	}
	y, err := strconv.ParseFloat(b, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q", b)
	}
	return x, y, nil
}
