// Package config defines the decoder's tunable limits.
//
// Config is built through the same functional-options shape used
// elsewhere in this module's lineage (a small Option func type applied
// in order at construction time) rather than a bare struct literal, so
// new knobs can be added without breaking existing call sites.
package config

import "github.com/frpsgo/frps/errs"

const (
	// DefaultMaxStackDepth bounds nested array/struct depth.
	DefaultMaxStackDepth uint32 = 64
	// DefaultMaxBulkLength bounds string/binary/array/struct lengths.
	DefaultMaxBulkLength uint32 = 1<<31 - 1
)

// Config holds the decoder's resource limits.
type Config struct {
	// MaxStackDepth bounds the explicit parse stack's depth. Exceeding it
	// raises errs.ErrRecursionLimit.
	MaxStackDepth uint32
	// MaxBulkLength bounds string, binary, array and struct lengths read
	// from length-of-length fields. Exceeding it raises one of
	// errs.ErrTooLargeString / ErrTooLargeBinary / ErrTooLargeArray.
	MaxBulkLength uint32
}

// Option configures a Config at construction time.
type Option func(*Config)

// WithMaxStackDepth overrides the default parse stack depth limit.
func WithMaxStackDepth(n uint32) Option {
	return func(c *Config) { c.MaxStackDepth = n }
}

// WithMaxBulkLength overrides the default string/binary/array length limit.
func WithMaxBulkLength(n uint32) Option {
	return func(c *Config) { c.MaxBulkLength = n }
}

// New builds a Config from defaults plus the given options, applied in order.
func New(opts ...Option) Config {
	c := Config{
		MaxStackDepth: DefaultMaxStackDepth,
		MaxBulkLength: DefaultMaxBulkLength,
	}

	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// Validate rejects structurally unusable limits before the decoder starts,
// rather than failing deep inside the parse loop.
func (c Config) Validate() error {
	if c.MaxStackDepth == 0 {
		return errs.At(0, errs.ErrRecursionLimit)
	}

	if c.MaxBulkLength == 0 || c.MaxBulkLength > 1<<31-1 {
		return errs.At(0, errs.ErrTooLargeArray)
	}

	return nil
}
