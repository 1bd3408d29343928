package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"whiteboard/infrastructure/config"
	"whiteboard/infrastructure/di"
	"whiteboard/interfaces/cli"

	"github.com/chzyer/readline"
)

func main() {
	fmt.Println("Whiteboard shell. Use 'help' for the list of commands.")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	// the shell talks to a local board; nothing leaves the process
	cfg.EventBusName = ""
	cfg.EnableMetrics = false
	if os.Getenv("LOG_LEVEL") == "" {
		cfg.LogLevel = "error"
	}

	ctx := context.Background()
	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer container.Close()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "board> ",
		HistoryFile:     filepath.Join(os.TempDir(), "whiteboard_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		log.Fatalf("Failed to initialize readline: %v", err)
	}
	defer rl.Close()

	shell := cli.NewCLI(container.CommandBus, container.QueryBus, rl, rl.Stdout())

	for {
		err := shell.Run(ctx)
		if err == nil {
			continue
		}
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			fmt.Println("Use 'exit' or 'quit' to exit the program.")
		case errors.Is(err, io.EOF), errors.Is(err, cli.ErrExit):
			fmt.Println("Goodbye!")
			return
		default:
			fmt.Fprintln(rl.Stderr(), "Error:", err)
		}
	}
}
