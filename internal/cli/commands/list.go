package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cte/internal/config"
	"cte/internal/discovery"
	"cte/internal/logger"
	"cte/internal/parser"
	"cte/internal/storage"
)

// ListCommand handles the list command
type ListCommand struct {
	config  *config.Config
	parser  *parser.Parser
	storage storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, p *parser.Parser, st storage.Storage) *ListCommand {
	return &ListCommand{
		config:  cfg,
		parser:  p,
		storage: st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	scanner := discovery.NewScanner(lc.config.Pattern, lc.config.PathsToIgnore)
	fixtures, err := scanner.Scan(lc.config.GetTestPath())
	if err != nil {
		return err
	}

	fixtures = discovery.NewFilter().FilterByName(fixtures, lc.config.Flags.NameFilter)

	if len(fixtures) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("No fixtures found"))
		return nil
	}

	failedPaths := make(map[string]struct{})
	if last, err := lc.storage.Load(); err == nil {
		for _, path := range storage.FailedPaths(last) {
			failedPaths[path] = struct{}{}
		}
	} else {
		logger.Debug("no previous results", "error", err)
	}

	return newFormatter(lc.config, lc.parser, cmd).PrintTestList(fixtures, lc.config.Flags.TestCases, failedPaths)
}
