// Package executor provides subprocess execution for prettify.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/prettify/prettify/internal/debug"
	"github.com/prettify/prettify/internal/security"
)

// ExecOptions defines options for command execution
type ExecOptions struct {
	// Working directory for the command
	WorkingDir string
	// Extra environment variables (in KEY=VALUE format), merged over
	// the sanitized inherited environment
	Environment []string
	// Timeout for command execution
	Timeout time.Duration
	// Stdin is piped to the subprocess. Prettier runs in --stdin mode,
	// so this carries the source text.
	Stdin io.Reader
}

// ExecResult contains the result of command execution
type ExecResult struct {
	// Standard output from the command
	Stdout string
	// Standard error from the command
	Stderr string
	// Exit code of the command
	ExitCode int
	// Whether the command timed out
	TimedOut bool
	// Error if command failed to start
	Error error
}

// CommandExecutor executes external commands for the formatting
// pipeline. Each invocation is a single synchronous subprocess call.
type CommandExecutor struct {
	defaultTimeout time.Duration
}

// NewCommandExecutor creates a new command executor
func NewCommandExecutor(defaultTimeout time.Duration) *CommandExecutor {
	if defaultTimeout <= 0 {
		defaultTimeout = 2 * time.Minute
	}
	return &CommandExecutor{
		defaultTimeout: defaultTimeout,
	}
}

// Execute runs a command with the given options
func (e *CommandExecutor) Execute(command string, args []string, options ExecOptions) (*ExecResult, error) {
	if command == "" {
		return nil, fmt.Errorf("command cannot be empty")
	}

	timeout := options.Timeout
	if timeout <= 0 {
		timeout = e.defaultTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, command, args...)

	if options.WorkingDir != "" {
		absPath, err := filepath.Abs(options.WorkingDir)
		if err != nil {
			return nil, fmt.Errorf("invalid working directory: %w", err)
		}
		if _, err := os.Stat(absPath); err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("invalid working directory: %s does not exist", absPath)
			}
			return nil, fmt.Errorf("invalid working directory: %w", err)
		}
		cmd.Dir = absPath
	}

	env, err := prepareEnvironment(options)
	if err != nil {
		return nil, err
	}
	cmd.Env = env

	if options.Stdin != nil {
		cmd.Stdin = options.Stdin
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	debug.LogCommand(command, args, options.WorkingDir)

	if err := cmd.Start(); err != nil {
		execErr := ClassifyError(err, command, args)
		return &ExecResult{
			ExitCode: -1,
			Error:    execErr,
		}, nil
	}

	waitErr := cmd.Wait()

	timedOut := false
	if ctx.Err() == context.DeadlineExceeded {
		timedOut = true
		// Ensure process is cleaned up after timeout
		_ = HandleTimeoutCleanup(cmd)
	}

	exitCode := 0
	if waitErr != nil {
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			// Command failed to run properly
			return &ExecResult{
				Stdout:   stdoutBuf.String(),
				Stderr:   stderrBuf.String(),
				ExitCode: -1,
				TimedOut: timedOut,
				Error:    waitErr,
			}, nil
		}
	}

	return &ExecResult{
		Stdout:   stdoutBuf.String(),
		Stderr:   stderrBuf.String(),
		ExitCode: exitCode,
		TimedOut: timedOut,
	}, nil
}

// prepareEnvironment builds the subprocess environment: the sanitized
// inherited environment with any per-invocation overrides applied.
func prepareEnvironment(options ExecOptions) ([]string, error) {
	env := security.ProcessEnvironment()
	if len(options.Environment) == 0 {
		return env, nil
	}
	return security.MergeEnvironment(env, options.Environment)
}
