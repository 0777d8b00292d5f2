package config

import "time"

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultTestPath is the default directory where fixture discovery starts
	DefaultTestPath = "."
	// DefaultPattern matches fixture files relative to the test path
	DefaultPattern = "**/*.test"
	// DefaultProgram is prefixed to every fixture command
	DefaultProgram = "ledger"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = ".cte-cache"
	// DefaultConfigName is the config file looked up in the project path
	DefaultConfigName = ".cte"
	// DefaultLogLevel is used when no level is configured
	DefaultLogLevel = "info"
	// DefaultTimeout disables the per-command timeout
	DefaultTimeout = time.Duration(0)
	// EnvPrefix prefixes environment overrides, e.g. CTE_PROGRAM
	EnvPrefix = "CTE"
)

// DefaultPathsToIgnore are the default directories to ignore when scanning for fixtures
var DefaultPathsToIgnore = []string{
	"vendor",
	"node_modules",
	"target",
	DefaultOutputJSONDir,
}

// Keys shared by flags, environment variables and the config file
const (
	KeyProjectPath  = "project"
	KeyTestPath     = "test-path"
	KeyPattern      = "pattern"
	KeyIgnore       = "ignore"
	KeyProgram      = "program"
	KeyShell        = "shell"
	KeyFeedInput    = "feed-input"
	KeyTimeout      = "timeout"
	KeyOutputDir    = "output-dir"
	KeyOutputFile   = "output-file"
	KeyLogLevel     = "log-level"
	KeyLogFile      = "log-file"
	KeyFilter       = "filter"
	KeyTestCases    = "test-cases"
	KeyFailFast     = "fail-fast"
	KeyOnlyFailed   = "failed"
	KeyNoProgress   = "no-progress"
	KeyNoColor      = "no-color"
	KeyOpenFailures = "open-failures"
)
