// Package cli is an interactive shell over the board's command and query buses.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"whiteboard/application/commands/bus"
	"whiteboard/application/dto"
	"whiteboard/application/queries"
	querybus "whiteboard/application/queries/bus"

	"github.com/chzyer/readline"
)

// ErrExit is returned by ExecuteCommand when the user asks to leave
var ErrExit = errors.New("exit requested")

// minRefLength is the shortest id prefix accepted as a node reference
const minRefLength = 4

type CLI struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	RL         *readline.Instance
	out        io.Writer
}

func NewCLI(commandBus *bus.CommandBus, queryBus *querybus.QueryBus, rl *readline.Instance, out io.Writer) *CLI {
	return &CLI{
		commandBus: commandBus,
		queryBus:   queryBus,
		RL:         rl,
		out:        out,
	}
}

// Run reads and executes one line
func (c *CLI) Run(ctx context.Context) error {
	line, err := c.RL.Readline()
	if err != nil {
		return err
	}

	line = strings.TrimSpace(line)
	if len(line) == 0 {
		return nil
	}
	return c.ExecuteCommand(ctx, ParseArgs(line))
}

// ParseArgs splits a line on spaces, keeping double-quoted runs together
func ParseArgs(input string) []string {
	var args []string
	var currentArg strings.Builder
	inQuotes := false
	quoted := false

	flush := func() {
		if currentArg.Len() > 0 || quoted {
			args = append(args, currentArg.String())
			currentArg.Reset()
		}
		quoted = false
	}

	for _, char := range input {
		switch {
		case char == '"':
			inQuotes = !inQuotes
			quoted = true
		case (char == ' ' || char == '\t') && !inQuotes:
			flush()
		default:
			currentArg.WriteRune(char)
		}
	}
	flush()

	return args
}

func (c *CLI) ExecuteCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command provided")
	}

	rest := args[1:]
	switch args[0] {
	case "add":
		return c.handleAdd(ctx, rest)
	case "ls":
		return c.handleList(ctx, rest)
	case "tree":
		return c.handleTree(ctx, rest)
	case "link":
		return c.handleLink(ctx, rest, true)
	case "unlink":
		return c.handleLink(ctx, rest, false)
	case "rm":
		return c.handleRemove(ctx, rest)
	case "clear":
		return c.handleClear(ctx, rest)
	case "drag":
		return c.handleDrag(ctx, rest)
	case "merge":
		return c.handleMerge(ctx, rest)
	case "grid":
		return c.handleGrid(ctx, rest)
	case "mode":
		return c.handleMode(ctx, rest)
	case "center":
		return c.handleCenter(ctx, rest)
	case "pan":
		return c.handlePan(ctx, rest)
	case "schema":
		return c.handleSchema(ctx, rest)
	case "help":
		c.printHelp(strings.Join(rest, ""))
		return nil
	case "exit", "quit":
		return ErrExit
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func (c *CLI) printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}

func (c *CLI) printHelp(command string) {
	if command == "" {
		names := make([]string, 0, len(commandHelp))
		for name := range commandHelp {
			names = append(names, name)
		}
		sort.Strings(names)

		c.printf("Available commands:\n")
		for _, name := range names {
			c.printf("  %s\n", name)
		}
		c.printf("\nUse 'help <command>' for more information about a specific command.\n")
		return
	}
	if help, ok := commandHelp[command]; ok {
		c.printf("%s\n", help)
		return
	}
	c.printf("Unknown command: %s\n", command)
}

// board fetches a fresh snapshot for listing and reference resolution
func (c *CLI) board(ctx context.Context) (dto.BoardDTO, error) {
	result, err := c.queryBus.Ask(ctx, queries.GetBoardQuery{})
	if err != nil {
		return dto.BoardDTO{}, err
	}
	return result.(dto.BoardDTO), nil
}

// located is a node of a snapshot together with its container
type located struct {
	node   dto.NodeDTO
	parent *dto.NodeDTO
}

// resolve finds the node named by ref: "root", a full id, or a unique id
// prefix of at least minRefLength characters.
func resolve(board dto.BoardDTO, ref string) (located, error) {
	if ref == "root" || ref == board.Root.ID {
		return located{node: board.Root}, nil
	}
	if len(ref) < minRefLength {
		return located{}, fmt.Errorf("node reference %q is too short", ref)
	}

	var matches []located
	var walk func(parent *dto.NodeDTO)
	walk = func(parent *dto.NodeDTO) {
		members := append(append([]dto.NodeDTO{}, parent.Nodes...), parent.Children...)
		for i := range members {
			if strings.HasPrefix(members[i].ID, ref) {
				matches = append(matches, located{node: members[i], parent: parent})
			}
			walk(&members[i])
		}
	}
	root := board.Root
	walk(&root)

	switch len(matches) {
	case 0:
		return located{}, fmt.Errorf("no node matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return located{}, fmt.Errorf("%q matches %d nodes", ref, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// commandHelp contains help text for each command.
var commandHelp = map[string]string{
	"add": `Syntax: add <kind> [parent] [x y [width height]] [field=value]...
Description: Creates a node. Kinds: text, video, image, website, richtext, collection, scrapbook.
Example: add website root 10 20 url="https://example.com"`,

	"ls": `Syntax: ls [collection]
Description: Lists the members of a collection (default root) with their short ids.`,

	"tree": `Syntax: tree [collection] [toggle <collection>]
Description: Shows the tree outline of a collection, optionally expanding or collapsing a row first.`,

	"link": `Syntax: link <node> <node>
Description: Links two nodes symmetrically.`,

	"unlink": `Syntax: unlink <node> <node>
Description: Removes the link between two nodes.`,

	"rm": `Syntax: rm <node>
Description: Removes a node and everything inside it.`,

	"clear": `Syntax: clear [collection]
Description: Removes every member of a collection (default root).`,

	"drag": `Syntax: drag <node> <dx> <dy> [--composite]
Description: Drags a node by its top bar and drops it. Dropping onto another node merges them;
--composite stacks the pair into a composite instead of wrapping them in a collection.`,

	"merge": `Syntax: merge <dragged> <target> [--composite]
Description: Merges two siblings directly.`,

	"grid": `Syntax: grid [collection] [width height]
Description: Arranges a collection's members in a staggered grid.`,

	"mode": `Syntax: mode <collection> <freeform|grid|tree>
Description: Switches the layout mode of a collection.`,

	"center": `Syntax: center <node> [width height] [--animate fps]
Description: Pans the node's collection so the node is centered in the viewport.`,

	"pan": `Syntax: pan <collection> <dx> <dy>
Description: Pans a collection's viewport.`,

	"schema": `Syntax: schema <kind>
Description: Shows the form fields of a node kind.`,

	"help": `Syntax: help [command]
Description: Shows help.`,

	"exit": `Syntax: exit
Description: Leaves the shell.`,
}
