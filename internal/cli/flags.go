package cli

import (
	"github.com/spf13/pflag"

	"cte/internal/config"
)

// KeyConfigFile names the flag pointing at an explicit config file
const KeyConfigFile = "config"

// RegisterPersistentFlags adds the flags shared by every command
func RegisterPersistentFlags(fs *pflag.FlagSet) {
	fs.String(config.KeyProjectPath, config.DefaultProjectPath, "Project directory: commands run here and results are stored under it")
	fs.String(KeyConfigFile, "", "Config file (default is .cte.yaml in the project directory)")
	fs.String(config.KeyLogLevel, config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	fs.String(config.KeyLogFile, "", "Write logs to this file instead of stderr")
	fs.Bool(config.KeyNoColor, false, "Disable colored output")
}

// RegisterDiscoveryFlags adds the flags that select fixture files
func RegisterDiscoveryFlags(fs *pflag.FlagSet) {
	fs.StringP(config.KeyTestPath, "t", "", "Path to the folder where fixture discovery should start")
	fs.String(config.KeyPattern, config.DefaultPattern, "Glob matched against fixture paths relative to the test path")
	fs.StringP(config.KeyFilter, "f", "", "Filter fixtures by name pattern (supports wildcards, e.g., '*accounts.test' or '*budget*')")
}

// RegisterRunFlags adds the flags of the run command
func RegisterRunFlags(fs *pflag.FlagSet) {
	fs.String(config.KeyProgram, config.DefaultProgram, "Program prefixed to every fixture command")
	fs.String(config.KeyShell, "", "Run commands through this shell with -c instead of executing them directly")
	fs.Bool(config.KeyFeedInput, false, "Pipe each fixture's shared input to the command's stdin")
	fs.Duration(config.KeyTimeout, config.DefaultTimeout, "Per-command timeout (0 disables it)")
	fs.Bool(config.KeyFailFast, false, "Stop after the first fixture file that fails")
	fs.Bool(config.KeyOnlyFailed, false, "Run only fixtures that failed in the last run")
	fs.Bool(config.KeyNoProgress, false, "Hide the progress bar")
	fs.Bool(config.KeyOpenFailures, false, "Open the failures viewer when the run finishes with failures")
}

// RegisterListFlags adds the flags of the list command
func RegisterListFlags(fs *pflag.FlagSet) {
	fs.BoolP(config.KeyTestCases, "c", false, "List each fixture's test cases")
}
