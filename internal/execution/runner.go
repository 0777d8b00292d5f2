package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"cte/internal/config"
	"cte/internal/domain"
	"cte/internal/logger"
)

// CommandRunner executes a command line and captures its output.
// The returned error is reserved for commands that could not be launched;
// a non-zero exit is reported through CommandOutput.ExitStatus.
type CommandRunner interface {
	Run(ctx context.Context, command string, stdin string) (domain.CommandOutput, error)
}

// ProcessRunner runs commands as local processes
type ProcessRunner struct {
	config *config.Config
}

// NewProcessRunner creates a new ProcessRunner
func NewProcessRunner(cfg *config.Config) *ProcessRunner {
	return &ProcessRunner{config: cfg}
}

// Run executes command and waits for it to finish.
// With a configured shell the command line is handed to "<shell> -c";
// otherwise it is split with shell quoting rules and executed directly.
func (r *ProcessRunner) Run(ctx context.Context, command string, stdin string) (domain.CommandOutput, error) {
	argv, err := r.argv(command)
	if err != nil {
		return domain.CommandOutput{}, err
	}

	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = os.Environ()
	cmd.Dir = r.config.ProjectPath
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("running", "command", command, "argv", argv)

	err = cmd.Run()
	output := domain.CommandOutput{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			output.ExitStatus = exitErr.ExitCode()
			return output, nil
		}
		if ctx.Err() != nil {
			return output, fmt.Errorf("command %q did not finish: %w", command, ctx.Err())
		}
		return output, fmt.Errorf("failed to run %q: %w", command, err)
	}
	return output, nil
}

func (r *ProcessRunner) argv(command string) ([]string, error) {
	if r.config.Shell != "" {
		return []string{r.config.Shell, "-c", command}, nil
	}

	words, err := shellquote.Split(command)
	if err != nil {
		return nil, fmt.Errorf("invalid command line %q: %w", command, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("empty command line")
	}
	return words, nil
}
