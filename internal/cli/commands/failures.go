package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"cte/internal/config"
	"cte/internal/storage"
	"cte/internal/ui"
)

// FailuresCommand handles the failures command
type FailuresCommand struct {
	config  *config.Config
	storage storage.Storage
}

// NewFailuresCommand creates a new FailuresCommand
func NewFailuresCommand(cfg *config.Config, st storage.Storage) *FailuresCommand {
	return &FailuresCommand{
		config:  cfg,
		storage: st,
	}
}

// Execute runs the command
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	results, err := fc.storage.Load()
	if err != nil {
		return fmt.Errorf("no results at %s, run the tests first: %w", fc.config.GetOutputPath(), err)
	}

	return ui.NewFailureViewer(fc.storage, cmd.OutOrStdout()).View(results)
}
