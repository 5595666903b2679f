package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/worksonmyai/patchdoctor/internal/config"
	"github.com/worksonmyai/patchdoctor/internal/engine"
	"github.com/worksonmyai/patchdoctor/internal/event"
	"github.com/worksonmyai/patchdoctor/internal/oracle"
	"github.com/worksonmyai/patchdoctor/internal/plan"
)

// runSetup is everything a mode command needs before driving the engine.
type runSetup struct {
	cfg   *config.Config
	log   *event.Log
	eng   *engine.Engine
	input string // patch text
}

// setupRun loads config, reads the input patch, and wires an engine with
// an oracle rooted at the input file's directory. validateChanged marks
// an explicit --validate flag overriding the configured default.
func setupRun(inputPath string, validateFlag, validateChanged bool, maxIterations int) (*runSetup, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Check(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("read patch file: %w", err)
	}

	validate := cfg.Validate
	if validateChanged {
		validate = validateFlag
	}
	if maxIterations <= 0 {
		maxIterations = cfg.MaxIterations
	}

	log := event.NewLog()
	log.SetPreviewMaxLen(cfg.PreviewMaxLen)

	eng := &engine.Engine{
		Cfg: engine.Config{
			MaxIterations: maxIterations,
			Validate:      validate,
		},
		Oracle: oracle.New(cfg.GitBinary, filepath.Dir(inputPath)),
		Log:    log,
	}

	return &runSetup{cfg: cfg, log: log, eng: eng, input: string(data)}, nil
}

// logPlanStart records the run-opening event, mirroring the plan format.
func logPlanStart(log *event.Log, message, inputFile, outputFile string) {
	data := event.Data{
		"input_file":  inputFile,
		"output_file": nil,
	}
	if outputFile != "" {
		data["output_file"] = outputFile
	}
	log.Append("PLAN_START", "meta", message, data)
}

// writeOutput saves rendered patch text.
func writeOutput(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write output patch: %w", err)
	}
	return nil
}

// finishPlan optionally writes the plan artifact.
func finishPlan(res engine.Result, inputPath, outputPath, planOut string, log *event.Log) error {
	if planOut == "" {
		return nil
	}
	p := plan.New(res, inputPath, outputPath, log)
	if err := p.WriteFile(planOut); err != nil {
		return err
	}
	return nil
}
