package control_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/momentics/hioload-kit/control"
)

func TestDebugProbes(t *testing.T) {
	dp := control.NewDebugProbes()
	dp.RegisterProbe("b", func() any { return 2 })
	dp.RegisterProbe("a", func() any { return 1 })
	dp.RegisterProbe("a", func() any { return "replaced" })

	assert.Equal(t, []string{"a", "b"}, dp.Names())
	assert.Equal(t, map[string]any{"a": "replaced", "b": 2}, dp.DumpState())

	assert.True(t, dp.Unregister("b"))
	assert.False(t, dp.Unregister("b"))
	assert.Equal(t, []string{"a"}, dp.Names())
}

func TestDebugProbes_PanicIsReported(t *testing.T) {
	dp := control.NewDebugProbes()
	dp.RegisterProbe("bad", func() any { panic("boom") })
	state := dp.DumpState()
	assert.Equal(t, "probe panic: boom", state["bad"])
}

func TestRegisterRuntimeProbes(t *testing.T) {
	dp := control.NewDebugProbes()
	control.RegisterRuntimeProbes(dp)
	state := dp.DumpState()
	assert.Positive(t, state["runtime.cpus"])
	assert.Positive(t, state["runtime.goroutines"])
	assert.NotEmpty(t, state["runtime.platform"])
}
