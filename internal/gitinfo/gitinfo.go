// Package gitinfo reads the branch and per-file change counts of a git
// working tree by running the git binary, and publishes them as the
// variables the git tiles read.
package gitinfo

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/stormline/internal/statusline/tiles"
)

// Error types for git queries.
var (
	// ErrNotRepository indicates the directory is not inside a git work tree.
	ErrNotRepository = errors.New("not a git repository")

	// ErrGitNotFound indicates the git binary is not installed.
	ErrGitNotFound = errors.New("git not found")
)

// DefaultTimeout bounds each git invocation.
const DefaultTimeout = 2 * time.Second

// UpdateEvent is the User autocmd pattern fired after the variables change.
const UpdateEvent = "GitSignsUpdate"

// Runner runs git with args in dir and returns its standard output.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// ExecRunner runs the git binary.
type ExecRunner struct{}

// Run executes git.
func (ExecRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", ErrGitNotFound
		}
		msg := strings.TrimSpace(stderr.String())
		if strings.Contains(msg, "not a git repository") {
			return "", ErrNotRepository
		}
		return "", fmt.Errorf("git %s: %s", strings.Join(args, " "), msg)
	}
	return stdout.String(), nil
}

// Client queries a working tree.
type Client struct {
	runner  Runner
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithRunner replaces the git runner.
func WithRunner(r Runner) Option {
	return func(c *Client) {
		c.runner = r
	}
}

// WithTimeout sets the timeout of each git call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New creates a client that runs the git binary.
func New(opts ...Option) *Client {
	c := &Client{runner: ExecRunner{}, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) git(ctx context.Context, dir string, args ...string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.runner.Run(ctx, dir, args...)
}

// Branch returns the checked out branch, or the short commit hash when HEAD
// is detached.
func (c *Client) Branch(ctx context.Context, dir string) (string, error) {
	out, err := c.git(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	branch := strings.TrimSpace(out)
	if branch != "HEAD" {
		return branch, nil
	}
	out, err = c.git(ctx, dir, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Diff counts the lines of file that differ from the index. A hunk that both
// removes and adds lines counts the overlap as changed.
func (c *Client) Diff(ctx context.Context, dir, file string) (tiles.GitDiff, error) {
	out, err := c.git(ctx, dir, "diff", "-U0", "--no-color", "--no-ext-diff", "--", file)
	if err != nil {
		return tiles.GitDiff{}, err
	}
	return ParseHunks(out), nil
}

// ParseHunks sums the hunk headers of a unified diff with zero context.
func ParseHunks(diff string) tiles.GitDiff {
	var d tiles.GitDiff
	scanner := bufio.NewScanner(strings.NewReader(diff))
	for scanner.Scan() {
		removed, added, ok := parseHunkHeader(scanner.Text())
		if !ok {
			continue
		}
		changed := min(removed, added)
		d.Changed += changed
		d.Added += added - changed
		d.Removed += removed - changed
	}
	return d
}

// parseHunkHeader reads "@@ -a[,b] +c[,d] @@" and returns b and d.
// An omitted count is 1.
func parseHunkHeader(line string) (int, int, bool) {
	rest, ok := strings.CutPrefix(line, "@@ -")
	if !ok {
		return 0, 0, false
	}
	fields := strings.Fields(rest)
	if len(fields) < 2 || !strings.HasPrefix(fields[1], "+") {
		return 0, 0, false
	}
	removed, ok := hunkCount(fields[0])
	if !ok {
		return 0, 0, false
	}
	added, ok := hunkCount(strings.TrimPrefix(fields[1], "+"))
	if !ok {
		return 0, 0, false
	}
	return removed, added, true
}

func hunkCount(r string) (int, bool) {
	_, count, found := strings.Cut(r, ",")
	if !found {
		return 1, true
	}
	n, err := strconv.Atoi(count)
	if err != nil {
		return 0, false
	}
	return n, true
}
