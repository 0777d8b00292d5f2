package commands

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cte/internal/cli"
	"cte/internal/config"
	"cte/internal/logger"
	"cte/internal/parser"
	"cte/internal/storage"
	"cte/internal/ui"
)

// ErrTestsFailed is returned by run when any fixture or case failed
var ErrTestsFailed = errors.New("tests failed")

// Commands holds all CLI commands
type Commands struct {
	config   *config.Config
	Run      *RunCommand
	List     *ListCommand
	Failures *FailuresCommand
}

// NewCommands creates all commands with dependencies. cfg is filled in from
// flags, environment and config file before any command executes.
func NewCommands(cfg *config.Config) *Commands {
	testCaseParser := parser.NewParser()
	jsonStorage := storage.NewJSONStorage(cfg)

	return &Commands{
		config:   cfg,
		Run:      NewRunCommand(cfg, testCaseParser, jsonStorage),
		List:     NewListCommand(cfg, testCaseParser, jsonStorage),
		Failures: NewFailuresCommand(cfg, jsonStorage),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command) {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.PersistentPreRunE = c.loadConfig
	cli.RegisterPersistentFlags(rootCmd.PersistentFlags())

	runCmd := &cobra.Command{
		Use:   "run [fixtures...]",
		Short: "Run fixture tests",
		Long:  "Discover .test fixtures (or take the given files), run every test case and report output differences",
		RunE:  c.Run.Execute,
	}
	cli.RegisterDiscoveryFlags(runCmd.Flags())
	cli.RegisterRunFlags(runCmd.Flags())
	rootCmd.AddCommand(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered fixtures",
		Long:  "Scan and list all fixture files without executing them",
		Args:  cobra.NoArgs,
		RunE:  c.List.Execute,
	}
	cli.RegisterDiscoveryFlags(listCmd.Flags())
	cli.RegisterListFlags(listCmd.Flags())
	rootCmd.AddCommand(listCmd)

	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View test failures interactively",
		Long:  "Display failures from the last run in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE:  c.Failures.Execute,
	}
	rootCmd.AddCommand(failuresCmd)
}

// loadConfig layers defaults, the config file, CTE_* variables and flags
// into the shared config, then sets up logging and color.
func (c *Commands) loadConfig(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	projectPath, err := flags.GetString(config.KeyProjectPath)
	if err != nil {
		return err
	}
	configFile, err := flags.GetString(cli.KeyConfigFile)
	if err != nil {
		return err
	}

	v, err := config.NewViper(projectPath, configFile)
	if err != nil {
		return err
	}
	if err := v.BindPFlags(flags); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	*c.config = *cfg

	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	if cfg.Flags.NoColor {
		color.NoColor = true
	}

	logger.Debug("configuration loaded", "project", cfg.ProjectPath, "test_path", cfg.GetTestPath(), "program", cfg.Program)
	return nil
}

func newFormatter(cfg *config.Config, p *parser.Parser, cmd *cobra.Command) *ui.Formatter {
	return ui.NewFormatter(cfg, p, cmd.OutOrStdout())
}
