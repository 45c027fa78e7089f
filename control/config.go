// control/config.go
// Author: momentics <momentics@gmail.com>
//
// YAML configuration and a thread-safe store with hot-reload propagation.

package control

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"regexp"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/momentics/hioload-kit/api"
)

// Config is the file form of a Kit's settings.
type Config struct {
	ClearOnFree bool          `yaml:"clear_on_free"`
	Prewarm     []PrewarmSpec `yaml:"prewarm"`
	Metrics     MetricsConfig `yaml:"metrics"`
	Log         LogConfig     `yaml:"log"`
}

// PrewarmSpec asks for Count free byte buffers of Length elements at startup.
type PrewarmSpec struct {
	Length int `yaml:"length"`
	Count  int `yaml:"count"`
}

type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Flat keys accepted by ConfigStore.SetConfig.
const (
	KeyClearOnFree      = "clear_on_free"
	KeyLogLevel         = "log.level"
	KeyMetricsEnabled   = "metrics.enabled"
	KeyMetricsNamespace = "metrics.namespace"
	KeyPrewarm          = "prewarm"
)

var namespaceRE = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Metrics: MetricsConfig{Enabled: true, Namespace: "hioload"},
		Log:     LogConfig{Level: "info"},
	}
}

// ParseConfig decodes YAML over the defaults. Unknown fields are rejected.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "parse config").
			WithContext("cause", err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the YAML file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges. The returned error wraps api.ErrInvalidArgument.
func (c *Config) Validate() error {
	for i, p := range c.Prewarm {
		if p.Length < 0 || p.Count < 0 {
			return api.NewError(api.ErrCodeInvalidArgument, "prewarm entries must be non-negative").
				WithContext("index", i).WithContext("length", p.Length).WithContext("count", p.Count)
		}
	}
	if c.Metrics.Enabled && !namespaceRE.MatchString(c.Metrics.Namespace) {
		return api.NewError(api.ErrCodeInvalidArgument, "invalid metrics namespace").
			WithContext("namespace", c.Metrics.Namespace)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Prewarm = slices.Clone(c.Prewarm)
	return &out
}

// ToMap flattens the config into the keys used by ConfigStore.
func (c *Config) ToMap() map[string]any {
	return map[string]any{
		KeyClearOnFree:      c.ClearOnFree,
		KeyLogLevel:         c.Log.Level,
		KeyMetricsEnabled:   c.Metrics.Enabled,
		KeyMetricsNamespace: c.Metrics.Namespace,
		KeyPrewarm:          slices.Clone(c.Prewarm),
	}
}

// ParseLevel maps debug, info, warn and error to slog levels. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return 0, api.NewError(api.ErrCodeInvalidArgument, "invalid log level").
			WithContext("level", s)
	}
	return lvl, nil
}

// set applies one flat key. Unknown keys report false.
func (c *Config) set(key string, v any) (bool, error) {
	typeErr := func() error {
		return api.NewError(api.ErrCodeInvalidArgument, "wrong value type").
			WithContext("key", key).WithContext("type", fmt.Sprintf("%T", v))
	}
	switch key {
	case KeyClearOnFree:
		b, ok := v.(bool)
		if !ok {
			return true, typeErr()
		}
		c.ClearOnFree = b
	case KeyMetricsEnabled:
		b, ok := v.(bool)
		if !ok {
			return true, typeErr()
		}
		c.Metrics.Enabled = b
	case KeyLogLevel:
		s, ok := v.(string)
		if !ok {
			return true, typeErr()
		}
		c.Log.Level = s
	case KeyMetricsNamespace:
		s, ok := v.(string)
		if !ok {
			return true, typeErr()
		}
		c.Metrics.Namespace = s
	case KeyPrewarm:
		p, ok := v.([]PrewarmSpec)
		if !ok {
			return true, typeErr()
		}
		c.Prewarm = slices.Clone(p)
	default:
		return false, nil
	}
	return true, nil
}

// ConfigStore holds the effective Config plus free-form extra keys, and
// notifies listeners after every change.
type ConfigStore struct {
	mu        sync.RWMutex
	current   *Config
	extra     map[string]any
	listeners []func()
}

// NewConfigStore starts from cfg, or from DefaultConfig when cfg is nil.
func NewConfigStore(cfg *Config) *ConfigStore {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &ConfigStore{
		current: cfg.Clone(),
		extra:   make(map[string]any),
	}
}

// GetSnapshot returns a copy of all config values as flat keys.
func (cs *ConfigStore) GetSnapshot() map[string]any {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	out := cs.current.ToMap()
	maps.Copy(out, cs.extra)
	return out
}

// Current returns a copy of the typed config.
func (cs *ConfigStore) Current() *Config {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.current.Clone()
}

// SetConfig merges flat values. Known keys are type-checked and the result is
// validated as a whole; on error nothing changes. Unknown keys are kept verbatim.
// Listeners run asynchronously.
func (cs *ConfigStore) SetConfig(values map[string]any) error { return cs.merge(values, false) }

// SetConfigSync is SetConfig with listeners run before it returns.
func (cs *ConfigStore) SetConfigSync(values map[string]any) error { return cs.merge(values, true) }

func (cs *ConfigStore) merge(values map[string]any, wait bool) error {
	cs.mu.Lock()
	next := cs.current.Clone()
	extra := make(map[string]any)
	for k, v := range values {
		known, err := next.set(k, v)
		if err != nil {
			cs.mu.Unlock()
			return err
		}
		if !known {
			extra[k] = v
		}
	}
	if err := next.Validate(); err != nil {
		cs.mu.Unlock()
		return err
	}
	cs.current = next
	maps.Copy(cs.extra, extra)
	listeners := slices.Clone(cs.listeners)
	cs.mu.Unlock()

	dispatchReload(listeners, wait)
	return nil
}

// Apply replaces the typed config and notifies listeners asynchronously.
func (cs *ConfigStore) Apply(cfg *Config) error { return cs.apply(cfg, false) }

// ApplySync is Apply with listeners run before it returns.
func (cs *ConfigStore) ApplySync(cfg *Config) error { return cs.apply(cfg, true) }

func (cs *ConfigStore) apply(cfg *Config, wait bool) error {
	if cfg == nil {
		return api.NewError(api.ErrCodeInvalidArgument, "nil config")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cs.mu.Lock()
	cs.current = cfg.Clone()
	listeners := slices.Clone(cs.listeners)
	cs.mu.Unlock()

	dispatchReload(listeners, wait)
	return nil
}

// OnReload registers a listener hook called on config changes.
func (cs *ConfigStore) OnReload(fn func()) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}

func dispatchReload(listeners []func(), wait bool) {
	for _, fn := range listeners {
		if wait {
			fn()
		} else {
			go fn()
		}
	}
}
