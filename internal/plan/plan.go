// Package plan builds the structured action-plan artifact written after a
// run: the ordered event log, the repair-method catalogue, and a summary.
// The document is an output contract for downstream tooling; nothing in
// this program reads it back except the `plan` inspection command.
package plan

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/pretty"

	"github.com/worksonmyai/patchdoctor/internal/engine"
	"github.com/worksonmyai/patchdoctor/internal/event"
)

// Version is the plan artifact format version.
const Version = 4

// Summary is the per-mode result block: repair runs report valid_files,
// iterative runs report iterations_run, scan runs report neither.
// git_validation is null when the oracle was not consulted.
type Summary struct {
	ValidFiles    *int    `json:"valid_files,omitempty"`
	IterationsRun *int    `json:"iterations_run,omitempty"`
	GitValidation *string `json:"git_validation"`
}

// Plan is the complete artifact document.
type Plan struct {
	PlanVersion   int           `json:"plan_version"`
	Mode          string        `json:"mode"`
	InputFile     string        `json:"input_file"`
	OutputFile    *string       `json:"output_file"`
	Steps         []event.Event `json:"steps"`
	RepairMethods []Method      `json:"repair_methods"`
	Summary       Summary       `json:"summary"`
}

// New assembles a plan from a finished engine run. outputFile is empty
// for scan-only mode and serialized as null, matching the format
// consumed by existing tooling.
func New(res engine.Result, inputFile, outputFile string, log *event.Log) *Plan {
	p := &Plan{
		PlanVersion:   Version,
		Mode:          string(res.Mode),
		InputFile:     inputFile,
		Steps:         log.Events(),
		RepairMethods: Methods(),
	}
	if outputFile != "" {
		p.OutputFile = &outputFile
	}
	if res.GitValidation != "" {
		v := res.GitValidation
		p.Summary.GitValidation = &v
	}

	switch res.Mode {
	case engine.ModeRepair:
		v := res.ValidFiles
		p.Summary.ValidFiles = &v
	case engine.ModeIterative:
		v := res.Iterations
		p.Summary.IterationsRun = &v
	}
	return p
}

// Encode marshals the plan as pretty-printed JSON.
func (p *Plan) Encode() ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal plan: %w", err)
	}
	return pretty.Pretty(data), nil
}

// WriteFile saves the encoded plan to path.
func (p *Plan) WriteFile(path string) error {
	data, err := p.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write plan file: %w", err)
	}
	return nil
}
