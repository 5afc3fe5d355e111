package gitctx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// GitError reports a git invocation that did not succeed. Stderr holds the
// diagnostic stream git produced.
type GitError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *GitError) Error() string {
	detail := strings.TrimSpace(e.Stderr)
	if detail == "" && e.Err != nil {
		detail = e.Err.Error()
	}
	return fmt.Sprintf("%s failed: %s", e.Command, detail)
}

func (e *GitError) Unwrap() error { return e.Err }

// Runner executes git with the given arguments and returns its stdout and
// stderr. A non-nil error means git could not run or exited non-zero.
type Runner interface {
	Run(ctx context.Context, args ...string) (stdout, stderr string, err error)
}

// DefaultWaitDelay bounds how long a cancelled git may keep its output pipes
// open through child processes.
const DefaultWaitDelay = 5 * time.Second

// ExecRunner runs the git binary found on PATH.
type ExecRunner struct {
	// Dir is the working directory; empty means the process working directory.
	Dir string
	// WaitDelay overrides DefaultWaitDelay when positive.
	WaitDelay time.Duration
}

func (r ExecRunner) Run(ctx context.Context, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir
	cmd.WaitDelay = DefaultWaitDelay
	if r.WaitDelay > 0 {
		cmd.WaitDelay = r.WaitDelay
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Source obtains diff text from a git repository.
type Source struct {
	runner  Runner
	timeout time.Duration
}

// New returns a Source that shells out to git. A zero timeout means git runs
// until ctx is done.
func New(timeout time.Duration) *Source {
	return NewWithRunner(ExecRunner{}, timeout)
}

// NewWithRunner returns a Source backed by r.
func NewWithRunner(r Runner, timeout time.Duration) *Source {
	return &Source{runner: r, timeout: timeout}
}

// Staged returns the diff of index vs HEAD.
func (s *Source) Staged(ctx context.Context) (string, error) {
	return s.git(ctx, "diff", "--cached")
}

// Working returns the diff of working tree vs index.
func (s *Source) Working(ctx context.Context) (string, error) {
	return s.git(ctx, "diff")
}

// Branch returns the diff between the merge base of origin/<baseRef> and HEAD.
func (s *Source) Branch(ctx context.Context, baseRef string) (string, error) {
	return s.git(ctx, "diff", branchRange(baseRef))
}

// ChangedFiles lists the paths touched between origin/<baseRef> and HEAD in
// the order git reports them.
func (s *Source) ChangedFiles(ctx context.Context, baseRef string) ([]string, error) {
	out, err := s.git(ctx, "diff", "--name-only", branchRange(baseRef))
	if err != nil {
		return nil, err
	}
	var files []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// GitDir returns the repository's git directory, as reported by
// "git rev-parse --git-dir".
func (s *Source) GitDir(ctx context.Context) (string, error) {
	out, err := s.git(ctx, "rev-parse", "--git-dir")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func branchRange(baseRef string) string {
	return "origin/" + baseRef + "...HEAD"
}

func (s *Source) git(ctx context.Context, args ...string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	command := "git " + strings.Join(args, " ")
	stdout, stderr, err := s.runner.Run(ctx, args...)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", &GitError{
				Command: command,
				Stderr:  fmt.Sprintf("timed out after %s", s.timeout),
				Err:     ctx.Err(),
			}
		}
		return "", &GitError{Command: command, Stderr: stderr, Err: err}
	}
	return stdout, nil
}
