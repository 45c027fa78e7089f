// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, hot-reload, metrics export and debug introspection for a Kit.
//
// Provides:
//   - Config, a YAML file format with validation and flat-key access
//   - ConfigStore, a snapshot store that notifies listeners on change
//   - FileWatcher, which feeds edits of a config file into a ConfigStore
//   - Metrics, a Prometheus collector over pool statistics
//   - DebugProbes, named probes dumped on demand
package control
