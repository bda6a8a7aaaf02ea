package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheDisabled is reported by Noop.Ping so health checks show the cache as off.
var ErrCacheDisabled = errors.New("cache disabled")

// Noop is used when Redis is unreachable at startup. Every lookup misses.
type Noop struct{}

var _ Cache = Noop{}

func (Noop) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (Noop) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (Noop) Ping(context.Context) error { return ErrCacheDisabled }
