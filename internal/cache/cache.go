// Package cache is the key-value capability used for short-lived session
// and profile state.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type Store interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Delete(key string)
}

// Memory is an in-process Store with a fixed time-to-live per entry.
type Memory struct {
	c *gocache.Cache
}

func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Memory{c: gocache.New(ttl, 2*ttl)}
}

func (m *Memory) Get(key string) (any, bool) { return m.c.Get(key) }

func (m *Memory) Set(key string, value any) { m.c.SetDefault(key, value) }

func (m *Memory) Delete(key string) { m.c.Delete(key) }

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(string) (any, bool) { return nil, false }
func (Nop) Set(string, any)        {}
func (Nop) Delete(string)          {}
