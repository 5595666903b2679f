// Package oracle validates patch text against git's own opinion by
// running `git apply --check` in dry-run mode. Only the ok/error signal
// is consumed; diagnostics are logged verbatim and never interpreted.
package oracle

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/worksonmyai/patchdoctor/internal/debug"
	"github.com/worksonmyai/patchdoctor/internal/event"
)

const phaseValidate = "git_validate"

// Result is the oracle's binary verdict plus any diagnostic output
// captured on failure.
type Result struct {
	OK          bool
	Diagnostics string
}

// Runner executes the external git process. Injected for tests.
type Runner interface {
	// Run starts name with args in dir, feeding stdin to the process.
	// It returns whether the process exited zero and its combined output.
	Run(ctx context.Context, dir, stdin, name string, args ...string) (ok bool, combined string, err error)
}

// execRunner is the default Runner backed by os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, dir, stdin, name string, args ...string) (bool, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = strings.NewReader(stdin)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	if err == nil {
		return true, out.String(), nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, out.String(), nil
	}
	return false, out.String(), err
}

// Checker invokes `git apply --check -` on patch text.
type Checker struct {
	GitBinary string // defaults to "git"
	Dir       string // directory to run from; the repository root is resolved from here
	runner    Runner
}

// New creates a Checker rooted at the repository containing dir (or dir
// itself when it is not inside a worktree).
func New(gitBinary, dir string) *Checker {
	if gitBinary == "" {
		gitBinary = "git"
	}
	return &Checker{GitBinary: gitBinary, Dir: resolveRoot(dir)}
}

// SetRunner sets the runner for testing purposes.
func (c *Checker) SetRunner(r Runner) {
	c.runner = r
}

// Check feeds patchText to `git apply --check -` and classifies purely by
// exit status. Failure to start the process is itself an error verdict,
// never a hard failure: the oracle signal only steers termination.
func (c *Checker) Check(ctx context.Context, patchText string, log *event.Log) Result {
	runner := c.runner
	if runner == nil {
		runner = execRunner{}
	}

	gitBinary := c.GitBinary
	if gitBinary == "" {
		gitBinary = "git"
	}

	ok, combined, err := runner.Run(ctx, c.Dir, patchText, gitBinary, "apply", "--check", "-")
	combined = strings.TrimSpace(combined)
	if err != nil {
		debug.Logf("oracle: %s apply --check failed to run: %v", gitBinary, err)
		log.Append("GIT_VALIDATE_ERROR", phaseValidate, "git apply --check reports patch issues", event.Data{
			"stderr": strings.TrimSpace(combined + "\n" + err.Error()),
		})
		return Result{OK: false, Diagnostics: err.Error()}
	}

	if ok {
		log.Append("GIT_VALIDATE_OK", phaseValidate, "git apply --check reports patch is structurally valid", nil)
		return Result{OK: true}
	}

	log.Append("GIT_VALIDATE_ERROR", phaseValidate, "git apply --check reports patch issues", event.Data{
		"stderr": combined,
	})
	return Result{OK: false, Diagnostics: combined}
}
