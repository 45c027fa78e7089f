// File: pool/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import "log/slog"

type options struct {
	name        string
	logger      *slog.Logger
	clearOnFree bool
}

// Option configures registries and managers.
type Option func(*options)

// WithName sets the registry name reported in stats and logs.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClearOnFree sets the default clear-on-free flag used by Manager.NewArray.
func WithClearOnFree(clear bool) Option {
	return func(o *options) { o.clearOnFree = clear }
}

func buildOptions(defaultName string, opts []Option) options {
	o := options{name: defaultName}
	for _, fn := range opts {
		fn(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}
