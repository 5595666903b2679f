// Package engine drives the clean→parse→validate/repair→render pipeline
// in the three operating modes: scan-only, single-pass repair, and the
// bounded iterative convergence loop.
package engine

import (
	"context"
	"fmt"

	"github.com/worksonmyai/patchdoctor/internal/debug"
	"github.com/worksonmyai/patchdoctor/internal/event"
	"github.com/worksonmyai/patchdoctor/internal/oracle"
	"github.com/worksonmyai/patchdoctor/internal/patch"
	"github.com/worksonmyai/patchdoctor/internal/render"
	"github.com/worksonmyai/patchdoctor/internal/validate"
)

const phaseMeta = "meta"

// DefaultMaxIterations bounds the iterative loop when no cap is configured.
const DefaultMaxIterations = 5

// Mode selects how the pipeline is driven. Modes are mutually exclusive.
type Mode string

const (
	ModeScan      Mode = "scan-only"
	ModeRepair    Mode = "apply-repairs"
	ModeIterative Mode = "iterative"
)

// Status is the controller's terminal state. Scan and single-pass runs
// always finish in StatusDone; the iterative loop finishes in exactly one
// of the three convergence states.
type Status int

const (
	// StatusRunning is the non-terminal state between rounds.
	StatusRunning Status = iota
	// StatusDone is the terminal state of non-iterative modes.
	StatusDone
	// StatusConvergedByOracle means git accepted the rendered patch.
	StatusConvergedByOracle
	// StatusConvergedByNoProgress means a round rendered byte-identical
	// text to the previous round: a fixed point further rounds cannot move.
	StatusConvergedByNoProgress
	// StatusExhaustedIterations means the round cap was reached; the last
	// rendered text is kept best-effort.
	StatusExhaustedIterations
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusDone:
		return "done"
	case StatusConvergedByOracle:
		return "converged_by_oracle"
	case StatusConvergedByNoProgress:
		return "converged_by_no_progress"
	case StatusExhaustedIterations:
		return "exhausted_iterations"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Oracle is the external patch-checker consumed for its ok/error signal.
type Oracle interface {
	Check(ctx context.Context, patchText string, log *event.Log) oracle.Result
}

// Config holds the controller settings for one run.
type Config struct {
	MaxIterations int  // iterative round cap; <=0 falls back to DefaultMaxIterations
	Validate      bool // invoke the oracle each pass
}

// Engine orchestrates pipeline passes. It owns no I/O besides the oracle
// invocation; file loading/saving belongs to the caller.
type Engine struct {
	Cfg    Config
	Oracle Oracle
	Log    *event.Log
}

// Result summarizes one engine run.
type Result struct {
	Mode          Mode
	Status        Status
	Output        string // rendered text; empty in scan mode
	ValidFiles    int    // files surviving validation (repair mode)
	Iterations    int    // rounds executed (iterative mode)
	GitValidation string // "ok", "error", or "" when the oracle was not consulted
}

// pass runs one Clean→Parse→Validate/Repair→Render cycle over text.
func (e *Engine) pass(text string, allowRepairs bool) (string, int) {
	lines := patch.Clean(text, e.Log)
	doc := patch.Parse(lines, e.Log)
	filtered := validate.FilterFiles(doc, allowRepairs, e.Log)
	return render.Render(filtered, e.Log), len(filtered.Files)
}

// checkOracle consults the oracle when enabled, returning "ok" or "error".
func (e *Engine) checkOracle(ctx context.Context, text string) string {
	if !e.Cfg.Validate || e.Oracle == nil {
		return ""
	}
	if e.Oracle.Check(ctx, text, e.Log).OK {
		return "ok"
	}
	return "error"
}

// Scan analyses the input without mutating anything and produces no
// output text. The oracle, when enabled, judges the original input.
func (e *Engine) Scan(ctx context.Context, input string) Result {
	e.pass(input, false)
	gitResult := e.checkOracle(ctx, input)

	e.Log.Append("PLAN_SUMMARY", phaseMeta, "Scan-only patch analysis completed", event.Data{
		"valid_files":    nil,
		"git_validation": gitResult,
	})

	return Result{Mode: ModeScan, Status: StatusDone, GitValidation: gitResult}
}

// RepairOnce runs a single conservative repair pass and returns the
// rendered text. The oracle, when enabled, judges the rendered output.
func (e *Engine) RepairOnce(ctx context.Context, input string) Result {
	output, validFiles := e.pass(input, true)
	gitResult := e.checkOracle(ctx, output)

	e.Log.Append("PLAN_SUMMARY", phaseMeta, "Single-pass repair completed", event.Data{
		"valid_files":    validFiles,
		"git_validation": gitResult,
	})

	return Result{
		Mode:          ModeRepair,
		Status:        StatusDone,
		Output:        output,
		ValidFiles:    validFiles,
		GitValidation: gitResult,
	}
}

// Iterate feeds each round's rendered output back in as the next round's
// input until the text stops changing, the oracle accepts it, or the
// round cap is hit. Exactly one terminal status is reached: the round
// counter is strictly bounded.
func (e *Engine) Iterate(ctx context.Context, input string) Result {
	maxIterations := e.Cfg.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	text := input
	lastText := ""
	haveLast := false
	gitResult := ""
	status := StatusRunning
	rounds := 0

	for iteration := 0; iteration < maxIterations; iteration++ {
		rounds = iteration + 1
		e.Log.SetIteration(iteration)
		e.Log.Append("ITERATION_START", phaseMeta, "Starting repair iteration", event.Data{
			"iteration": iteration,
		})

		newText, _ := e.pass(text, true)
		gitResult = e.checkOracle(ctx, newText)

		if haveLast && newText == lastText {
			e.Log.Append("ITERATION_NO_PROGRESS", phaseMeta, "Iteration made no textual changes; stopping loop", event.Data{
				"iteration": iteration,
			})
			text = newText
			status = StatusConvergedByNoProgress
			break
		}

		if gitResult == "ok" {
			e.Log.Append("ITERATION_GIT_OK", phaseMeta, "git apply --check succeeded; stopping loop", event.Data{
				"iteration": iteration,
			})
			text = newText
			status = StatusConvergedByOracle
			break
		}

		text = newText
		lastText = newText
		haveLast = true

		e.Log.Append("ITERATION_END", phaseMeta, "Completed repair iteration", event.Data{
			"iteration":      iteration,
			"git_validation": gitResult,
		})
	}

	if status == StatusRunning {
		status = StatusExhaustedIterations
	}
	debug.Logf("engine: iterative run finished after %d round(s): %s", rounds, status)

	e.Log.Append("PLAN_SUMMARY", phaseMeta, "Iterative repair completed", event.Data{
		"iterations_run": rounds,
		"git_validation": gitResult,
	})

	return Result{
		Mode:          ModeIterative,
		Status:        status,
		Output:        text,
		Iterations:    rounds,
		GitValidation: gitResult,
	}
}
