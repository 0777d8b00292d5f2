package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cte/internal/cli/commands"
	"cte/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "cte",
		Short:   "CLI test executor",
		Long:    `Runs command-line programs against .test fixtures and reports differences between expected and actual output as context diffs.`,
		Version: version,
	}

	// Filled in from flags, environment and config file before a command runs
	cfg := config.New()

	cmds := commands.NewCommands(cfg)
	cmds.Register(rootCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		if !errors.Is(err, commands.ErrTestsFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
