// Copyright (c) 2024-2026 The random123 authors.
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package pooled

import (
	"errors"
	"runtime"

	"github.com/ctrprf/random123/word"
)

// ErrInvalidShards is returned when WithShards is given a non-positive
// value.
var ErrInvalidShards = errors.New("pooled: shards must be positive")

// ErrInvalidCounterBits is returned when WithCounterBits is given zero.
var ErrInvalidCounterBits = errors.New("pooled: counter bits must be positive")

// config holds the tunable parameters for a pooled Reader.
type config[W word.Word] struct {
	shards      int
	counterBits uint
}

// Option customizes a Reader constructed by NewReader.
type Option[W word.Word] func(*config[W])

// WithShards sets the number of independent engine pools the Reader
// distributes load across. Defaults to runtime.GOMAXPROCS(0).
func WithShards[W word.Word](n int) Option[W] {
	return func(c *config[W]) { c.shards = n }
}

// WithCounterBits sets the number of high domain bits reserved for each
// pooled engine's own sequence counter. Defaults to 32.
func WithCounterBits[W word.Word](bits uint) Option[W] {
	return func(c *config[W]) { c.counterBits = bits }
}

func defaultConfig[W word.Word]() config[W] {
	return config[W]{
		shards:      runtime.GOMAXPROCS(0),
		counterBits: 32,
	}
}

func resolve[W word.Word](opts []Option[W]) (*config[W], error) {
	c := defaultConfig[W]()
	for _, opt := range opts {
		opt(&c)
	}
	if c.shards <= 0 {
		return nil, ErrInvalidShards
	}
	if c.counterBits == 0 {
		return nil, ErrInvalidCounterBits
	}
	return &c, nil
}
