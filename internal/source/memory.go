package source

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

type memObj struct {
	data    []byte
	updated time.Time
}

// Memory is an in-memory source suitable for tests and embedding.
type Memory struct {
	mu   sync.RWMutex
	objs map[string]memObj
}

func NewMemory() *Memory { return &Memory{objs: map[string]memObj{}} }

func (m *Memory) Driver() Driver { return DriverMemory }

// Put stores a copy of data under key, replacing any previous capture.
func (m *Memory) Put(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objs[key] = memObj{data: append([]byte(nil), data...), updated: time.Now().UTC()}
}

func (m *Memory) Fetch(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.objs[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return append([]byte(nil), o.data...), nil
}

func (m *Memory) List(_ context.Context, prefix string) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	infos := make([]Info, 0, len(m.objs))
	for k, o := range m.objs {
		if prefix == "" || strings.HasPrefix(k, prefix) {
			infos = append(infos, Info{Key: k, Size: int64(len(o.data)), LastModified: o.updated})
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}
