// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// External process runner with streaming output and process group handling

package exec

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// Runner executes external processes
type Runner struct {
	config *RunnerConfig
}

// NewRunner creates a new process runner
func NewRunner(config *RunnerConfig) *Runner {
	if config == nil {
		config = &RunnerConfig{}
	}
	if config.Progress == nil {
		config.Progress = io.Discard
	}

	return &Runner{config: config}
}

// LookPath resolves a binary name against PATH
func LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("failed to locate %s: %w", name, err)
	}
	return path, nil
}

// Run executes a command and waits for it to complete.
// Stdout is captured in full; stderr is captured and streamed line by line
// to the progress writer so long-running tools stay visible.
// A non-zero exit status is returned as an error alongside the result.
func (r *Runner) Run(ctx context.Context, command *Command) (*Result, error) {
	result := &Result{}

	// Only an explicit timeout bounds the process; the compile stage
	// is deliberately unbounded
	timeout := command.Timeout
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, command.Name, command.Args...)
	cmd.Dir = command.Dir
	if len(command.Env) > 0 {
		cmd.Env = append(os.Environ(), command.Env...)
	}

	// Run the child in its own process group so cancellation stops
	// the whole tree, not just the direct child (cargo spawns rustc workers).
	setPlatformProcessGroup(cmd)
	cmd.Cancel = func() error {
		return interruptProcessGroup(cmd)
	}
	cmd.WaitDelay = 10 * time.Second

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	startTime := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", command.Name, err)
	}

	var stdoutBuf, stderrBuf strings.Builder
	var stdoutErr, stderrErr error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		stdoutErr = streamOutput(stdout, &stdoutBuf, r.stdoutWriter())
	}()

	go func() {
		defer wg.Done()
		stderrErr = streamOutput(stderr, &stderrBuf, r.config.Progress)
	}()

	// Output readers must drain before Wait closes the pipes
	wg.Wait()
	err = cmd.Wait()

	result.Stdout = stdoutBuf.String()
	result.Stderr = stderrBuf.String()
	result.Duration = time.Since(startTime)

	if err != nil {
		if ctx.Err() != nil {
			// Reap any stragglers the interrupt left behind
			_ = killProcessGroup(cmd)
			if ctx.Err() == context.DeadlineExceeded && timeout > 0 {
				return result, fmt.Errorf("%s timed out after %v", command.Name, timeout)
			}
			return result, fmt.Errorf("%s interrupted: %w", command.Name, ctx.Err())
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, fmt.Errorf("%s exited with code %d", command.Name, result.ExitCode)
		}
		return result, fmt.Errorf("failed to run %s: %w", command.Name, err)
	}

	// A truncated read would leave a valid-looking prefix of the output
	// (cargo's JSON stream in particular), so it must not pass silently
	if stdoutErr != nil {
		return result, fmt.Errorf("failed to read %s stdout: %w", command.Name, stdoutErr)
	}
	if stderrErr != nil {
		return result, fmt.Errorf("failed to read %s stderr: %w", command.Name, stderrErr)
	}

	return result, nil
}

// stdoutWriter returns the writer stdout lines are mirrored to
func (r *Runner) stdoutWriter() io.Writer {
	if r.config.Verbose {
		return r.config.Progress
	}
	return io.Discard
}

// streamOutput reads from a pipe and writes each line to both a buffer and
// a writer, reporting any read failure (including an over-long line)
func streamOutput(pipe io.ReadCloser, buf *strings.Builder, out io.Writer) error {
	scanner := bufio.NewScanner(pipe)
	// Cargo JSON messages can be very long lines
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		buf.WriteString(line)
		buf.WriteString("\n")
		fmt.Fprintln(out, line)
	}
	return scanner.Err()
}
