package plan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/worksonmyai/patchdoctor/internal/engine"
	"github.com/worksonmyai/patchdoctor/internal/event"
)

func TestNewScanPlan(t *testing.T) {
	log := event.NewLog()
	log.Append("PLAN_START", "meta", "Run started", nil)

	res := engine.Result{Mode: engine.ModeScan, Status: engine.StatusDone}
	p := New(res, "in.patch", "", log)

	data, err := p.Encode()
	require.NoError(t, err)

	doc := gjson.ParseBytes(data)
	assert.Equal(t, int64(4), doc.Get("plan_version").Int())
	assert.Equal(t, "scan-only", doc.Get("mode").String())
	assert.Equal(t, "in.patch", doc.Get("input_file").String())
	assert.Equal(t, gjson.Null, doc.Get("output_file").Type)
	assert.Equal(t, gjson.Null, doc.Get("summary.git_validation").Type)
	assert.False(t, doc.Get("summary.valid_files").Exists())
	assert.False(t, doc.Get("summary.iterations_run").Exists())
	assert.Equal(t, int64(1), doc.Get("steps.#").Int())
	assert.Equal(t, "PLAN_START", doc.Get("steps.0.code").String())
}

func TestNewRepairPlan(t *testing.T) {
	res := engine.Result{
		Mode:          engine.ModeRepair,
		Status:        engine.StatusDone,
		ValidFiles:    2,
		GitValidation: "ok",
	}
	p := New(res, "in.patch", "out.patch", event.NewLog())

	data, err := p.Encode()
	require.NoError(t, err)

	doc := gjson.ParseBytes(data)
	assert.Equal(t, "apply-repairs", doc.Get("mode").String())
	assert.Equal(t, "out.patch", doc.Get("output_file").String())
	assert.Equal(t, int64(2), doc.Get("summary.valid_files").Int())
	assert.Equal(t, "ok", doc.Get("summary.git_validation").String())
	assert.False(t, doc.Get("summary.iterations_run").Exists())
}

func TestNewIterativePlan(t *testing.T) {
	res := engine.Result{
		Mode:          engine.ModeIterative,
		Status:        engine.StatusConvergedByOracle,
		Iterations:    3,
		GitValidation: "ok",
	}
	p := New(res, "in.patch", "out.patch", event.NewLog())

	data, err := p.Encode()
	require.NoError(t, err)

	doc := gjson.ParseBytes(data)
	assert.Equal(t, "iterative", doc.Get("mode").String())
	assert.Equal(t, int64(3), doc.Get("summary.iterations_run").Int())
	assert.False(t, doc.Get("summary.valid_files").Exists())
}

func TestMethodsCatalogue(t *testing.T) {
	methods := Methods()
	require.Len(t, methods, 11)

	codes := map[string]bool{}
	for _, m := range methods {
		assert.NotEmpty(t, m.RepairCode)
		assert.NotEmpty(t, m.AppliesToEventCodes)
		assert.NotEmpty(t, m.Description)
		assert.False(t, codes[m.RepairCode], "duplicate repair code %s", m.RepairCode)
		codes[m.RepairCode] = true
	}
	assert.True(t, codes["REPAIR_FIX_NEW_SPAN_HEADER"])
	assert.True(t, codes["REPAIR_VERIFY_WITH_GIT_APPLY"])
}

func TestPlanEmbedsMethodCatalogue(t *testing.T) {
	p := New(engine.Result{Mode: engine.ModeScan}, "in.patch", "", event.NewLog())

	data, err := p.Encode()
	require.NoError(t, err)

	doc := gjson.ParseBytes(data)
	assert.Equal(t, int64(11), doc.Get("repair_methods.#").Int())
	assert.Equal(t, "REPAIR_FIX_NEW_SPAN_HEADER", doc.Get("repair_methods.0.repair_code").String())
}

func TestWriteFile(t *testing.T) {
	p := New(engine.Result{Mode: engine.ModeScan}, "in.patch", "", event.NewLog())
	path := filepath.Join(t.TempDir(), "plan.json")

	require.NoError(t, p.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, gjson.ValidBytes(data))
	assert.Equal(t, int64(4), gjson.GetBytes(data, "plan_version").Int())
}
