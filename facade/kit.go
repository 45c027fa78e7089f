// File: facade/kit.go
// Unified facade for the hioload-kit library.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Kit aggregates a pool Manager, the configuration store, Prometheus metrics
// and debug probes behind one object. Several Kits can live in one process;
// nothing here is global.

package facade

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/momentics/hioload-kit/adapters"
	"github.com/momentics/hioload-kit/api"
	"github.com/momentics/hioload-kit/control"
	"github.com/momentics/hioload-kit/pool"
)

// Kit is the main facade type. It implements api.Control.
type Kit struct {
	id      uuid.UUID
	level   *slog.LevelVar
	logger  *slog.Logger
	manager *pool.Manager
	store   *control.ConfigStore
	probes  *control.DebugProbes
	metrics *control.Metrics // nil when metrics are disabled
	control *adapters.ControlAdapter
	closed  atomic.Bool
}

var _ api.Control = (*Kit)(nil)

type options struct {
	out  io.Writer
	json bool
}

// Option customises how New builds the Kit's logger.
type Option func(*options)

// WithLogOutput sends logs to w instead of stderr.
func WithLogOutput(w io.Writer) Option { return func(o *options) { o.out = w } }

// WithJSONLogs switches the log handler from text to JSON.
func WithJSONLogs() Option { return func(o *options) { o.json = true } }

// New builds a Kit from cfg, or from control.DefaultConfig when cfg is nil.
// Configured prewarm entries are allocated before New returns.
func New(cfg *control.Config, opts ...Option) (*Kit, error) {
	if cfg == nil {
		cfg = control.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{out: os.Stderr}
	for _, fn := range opts {
		fn(&o)
	}

	k := &Kit{id: uuid.New(), level: new(slog.LevelVar)}
	lvl, _ := control.ParseLevel(cfg.Log.Level)
	k.level.Set(lvl)
	hopts := &slog.HandlerOptions{Level: k.level}
	var h slog.Handler = slog.NewTextHandler(o.out, hopts)
	if o.json {
		h = slog.NewJSONHandler(o.out, hopts)
	}
	k.logger = slog.New(h).With(slog.String("kit", k.id.String()))

	k.manager = pool.NewManager(pool.WithLogger(k.logger), pool.WithClearOnFree(cfg.ClearOnFree))
	k.store = control.NewConfigStore(cfg)
	k.probes = control.NewDebugProbes()
	k.control = adapters.NewControlAdapter(k.store, k.manager, k.probes)
	if cfg.Metrics.Enabled {
		k.metrics = control.NewMetrics(cfg.Metrics.Namespace, k.manager)
	}

	control.RegisterRuntimeProbes(k.probes)
	k.probes.RegisterProbe("kit.id", func() any { return k.id.String() })
	k.probes.RegisterProbe("pool.stats", func() any { return k.manager.Stats() })

	bufs := pool.ArraysOf[byte](k.manager)
	for _, p := range cfg.Prewarm {
		if err := bufs.Prewarm(p.Length, p.Count); err != nil {
			return nil, err
		}
	}
	k.store.OnReload(k.reload)

	k.logger.Info("kit started",
		slog.Int("prewarm_classes", len(cfg.Prewarm)),
		slog.Bool("metrics", cfg.Metrics.Enabled))
	return k, nil
}

// reload pushes runtime-adjustable settings into the live components.
// Metrics settings take effect only for new Kits.
func (k *Kit) reload() {
	cfg := k.store.Current()
	if lvl, err := control.ParseLevel(cfg.Log.Level); err == nil {
		k.level.Set(lvl)
	}
	k.manager.SetClearOnFree(cfg.ClearOnFree)
	k.logger.Debug("config applied",
		slog.String("log_level", cfg.Log.Level),
		slog.Bool("clear_on_free", cfg.ClearOnFree))
}

func (k *Kit) ID() uuid.UUID {
	return k.id
}

func (k *Kit) Logger() *slog.Logger {
	return k.logger
}

func (k *Kit) Manager() *pool.Manager {
	return k.manager
}

func (k *Kit) ConfigStore() *control.ConfigStore {
	return k.store
}

// Metrics returns nil when metrics were disabled at construction.
func (k *Kit) Metrics() *control.Metrics {
	return k.metrics
}

// Config returns a copy of the effective typed config.
func (k *Kit) Config() *control.Config {
	return k.store.Current()
}

func (k *Kit) GetConfig() map[string]any {
	return k.control.GetConfig()
}

func (k *Kit) SetConfig(cfg map[string]any) error {
	return k.control.SetConfig(cfg)
}

func (k *Kit) Stats() map[string]api.PoolStats {
	return k.control.Stats()
}

func (k *Kit) OnReload(fn func()) {
	k.control.OnReload(fn)
}

func (k *Kit) RegisterDebugProbe(name string, fn func() any) {
	k.control.RegisterDebugProbe(name, fn)
}

func (k *Kit) DumpState() map[string]any {
	return k.control.DumpState()
}

// Reload applies a full config, running listeners before it returns.
func (k *Kit) Reload(cfg *control.Config) error {
	return k.store.ApplySync(cfg)
}

// WatchConfig reloads the Kit whenever the file at path changes. It blocks
// until ctx is done.
func (k *Kit) WatchConfig(ctx context.Context, path string) error {
	fw, err := control.NewFileWatcher(path, k.store, k.logger)
	if err != nil {
		return err
	}
	defer fw.Stop()
	return fw.Start(ctx)
}

// Close logs a summary of every registry. Leased values stay valid and the
// Kit remains usable. Calling Close again is a no-op.
func (k *Kit) Close() error {
	if !k.closed.CompareAndSwap(false, true) {
		return nil
	}
	for name, st := range k.manager.Stats() {
		k.logger.Info("pool summary",
			slog.String("registry", name),
			slog.Int64("allocations", st.TotalAlloc),
			slog.Int64("in_use", st.InUse),
			slog.Int64("rejected_releases", st.RejectedReleases))
	}
	return nil
}
