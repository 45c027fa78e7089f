package facade_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-kit/api"
	"github.com/momentics/hioload-kit/control"
	"github.com/momentics/hioload-kit/facade"
	"github.com/momentics/hioload-kit/pool"
)

func newKit(t *testing.T, cfg *control.Config) (*facade.Kit, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	k, err := facade.New(cfg, facade.WithLogOutput(&logs))
	require.NoError(t, err)
	t.Cleanup(func() { _ = k.Close() })
	return k, &logs
}

func TestKit_PrewarmFromConfig(t *testing.T) {
	cfg := control.DefaultConfig()
	cfg.Prewarm = []control.PrewarmSpec{{Length: 32, Count: 3}, {Length: 128, Count: 1}}
	k, _ := newKit(t, cfg)

	st := k.Stats()["array[uint8]"]
	assert.EqualValues(t, 4, st.Free)
	assert.Equal(t, api.LengthStats{Free: 3}, st.ByLength[32])
	assert.Equal(t, api.LengthStats{Free: 1}, st.ByLength[128])

	a, err := pool.NewManagedArray[byte](k.Manager(), 32)
	require.NoError(t, err)
	defer a.Close()
	assert.EqualValues(t, 4, k.Stats()["array[uint8]"].TotalAlloc, "leases reuse prewarmed buffers")
}

func TestKit_InvalidConfig(t *testing.T) {
	cfg := control.DefaultConfig()
	cfg.Log.Level = "chatty"
	_, err := facade.New(cfg)
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
}

func TestKit_IndependentInstances(t *testing.T) {
	k1, _ := newKit(t, nil)
	k2, _ := newKit(t, nil)
	assert.NotEqual(t, k1.ID(), k2.ID())
	assert.NotEqual(t, uuid.Nil, k1.ID())

	a, err := pool.NewManagedArray[int](k1.Manager(), 4)
	require.NoError(t, err)
	require.NoError(t, a.Close())

	assert.Contains(t, k1.Stats(), "array[int]")
	assert.NotContains(t, k2.Stats(), "array[int]")
}

func TestKit_SetConfigReloadsComponents(t *testing.T) {
	k, logs := newKit(t, nil)
	require.False(t, k.Manager().ClearOnFree())

	called := 0
	k.OnReload(func() { called++ })
	require.NoError(t, k.SetConfig(map[string]any{
		control.KeyClearOnFree: true,
		control.KeyLogLevel:    "debug",
	}))
	assert.Equal(t, 1, called)
	assert.True(t, k.Manager().ClearOnFree())
	assert.Equal(t, true, k.GetConfig()[control.KeyClearOnFree])

	k.Logger().Debug("now visible")
	assert.Contains(t, logs.String(), "now visible")

	next := k.Config()
	next.Log.Level = "error"
	require.NoError(t, k.Reload(next))
	k.Logger().Info("hidden")
	assert.NotContains(t, logs.String(), "hidden")
}

func TestKit_DebugProbes(t *testing.T) {
	k, _ := newKit(t, nil)
	k.RegisterDebugProbe("custom", func() any { return "ok" })

	state := k.DumpState()
	assert.Equal(t, "ok", state["custom"])
	assert.Equal(t, k.ID().String(), state["kit.id"])
	assert.Contains(t, state, "runtime.goroutines")
	assert.IsType(t, map[string]api.PoolStats{}, state["pool.stats"])
}

func TestKit_Metrics(t *testing.T) {
	cfg := control.DefaultConfig()
	cfg.Metrics.Namespace = "unit"
	cfg.Prewarm = []control.PrewarmSpec{{Length: 8, Count: 2}}
	k, _ := newKit(t, cfg)
	require.NotNil(t, k.Metrics())

	var out strings.Builder
	require.NoError(t, k.Metrics().WriteText(&out))
	assert.Contains(t, out.String(), `unit_pool_free_buffers{length="8",registry="array[uint8]"} 2`)

	cfg.Metrics.Enabled = false
	k2, _ := newKit(t, cfg)
	assert.Nil(t, k2.Metrics())
}

func TestKit_JSONLogsCarryID(t *testing.T) {
	var logs bytes.Buffer
	k, err := facade.New(nil, facade.WithLogOutput(&logs), facade.WithJSONLogs())
	require.NoError(t, err)
	require.NoError(t, k.Close())
	require.NoError(t, k.Close())

	line, _, _ := strings.Cut(logs.String(), "\n")
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &rec))
	assert.Equal(t, "kit started", rec["msg"])
	assert.Equal(t, k.ID().String(), rec["kit"])
}
