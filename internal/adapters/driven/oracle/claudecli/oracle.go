// Package claudecli provides an oracle adapter that shells out to the
// claude CLI. The prompt goes to the subprocess on stdin and the reply
// comes back on stdout, so no document text ever appears in the process
// argument list.
package claudecli

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/scanhound/scanhound-cli/internal/core/domain"
	"github.com/scanhound/scanhound-cli/internal/core/ports/driven"
	"github.com/scanhound/scanhound-cli/internal/logger"
)

// Ensure Oracle implements the interface.
var _ driven.Oracle = (*Oracle)(nil)

// Default configuration values.
const (
	DefaultBinary  = "claude"
	DefaultTimeout = 120 * time.Second
)

// Runner lets us stub the external command in tests.
type Runner interface {
	Run(ctx context.Context, stdin string, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, stdin string, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	var out, errb strings.Builder
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	dur := time.Since(start)

	if err != nil {
		logger.Warn("exec %s failed after %dms: %v", name, dur.Milliseconds(), err)
	} else {
		logger.Debug("exec %s ok, %dms, %d bytes out", name, dur.Milliseconds(), out.Len())
	}

	return []byte(out.String()), []byte(errb.String()), err
}

// Config holds configuration for the claude CLI oracle.
type Config struct {
	// Binary is the executable name or path (default: claude).
	Binary string

	// Timeout bounds a single completion (default: 120s).
	Timeout time.Duration
}

// Oracle invokes the claude CLI as a subprocess.
type Oracle struct {
	binary  string
	timeout time.Duration
	runner  Runner
}

// New creates a claude CLI oracle.
func New(cfg Config) *Oracle {
	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Oracle{
		binary:  cfg.Binary,
		timeout: cfg.Timeout,
		runner:  execRunner{},
	}
}

// SetRunner replaces the command runner. Used by tests.
func (o *Oracle) SetRunner(r Runner) {
	o.runner = r
}

// Complete pipes the prompt to `claude --print --model <tier>` and
// returns the trimmed stdout.
func (o *Oracle) Complete(ctx context.Context, model domain.Model, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	out, errb, err := o.runner.Run(ctx, prompt, o.binary, "--print", "--model", string(model))
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: no reply within %s", domain.ErrOracleTimeout, o.timeout)
		}
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", fmt.Errorf("%w: %s not found in PATH", domain.ErrOracleUnavailable, o.binary)
		}
		return "", fmt.Errorf("%w: %v: %s", domain.ErrOracleUnavailable, err, strings.TrimSpace(string(errb)))
	}

	reply := strings.TrimSpace(string(out))
	if reply == "" {
		return "", fmt.Errorf("%w: empty reply", domain.ErrMalformedReply)
	}
	return reply, nil
}

// Ping checks the CLI is installed and runnable without inference.
func (o *Oracle) Ping(ctx context.Context) error {
	_, _, err := o.runner.Run(ctx, "", o.binary, "--version")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrOracleUnavailable, err)
	}
	return nil
}
