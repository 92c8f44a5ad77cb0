// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package registry

import (
	"sync"

	"github.com/poiesic/filedrop/core"
)

// Registry is an ordered collection of entries keyed by id.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries []core.Entry
	index   map[string]int
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		index: make(map[string]int),
	}
}

// Admit appends a batch of entries atomically, preserving their order
// relative to each other and to existing entries. Observers never see a
// state where only part of the batch is present.
func (r *Registry) Admit(entries []core.Entry) {
	if len(entries) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range entries {
		r.index[entry.ID] = len(r.entries)
		r.entries = append(r.entries, entry)
	}
}

// UpdateByID replaces the entry matching id with the result of transform,
// applied under the lock. Unknown ids are a no-op, which makes the
// operation safe when an entry is removed while its load is in flight.
func (r *Registry) UpdateByID(id string, transform func(core.Entry) core.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return
	}
	r.entries[i] = transform(r.entries[i])
}

// RemoveByID removes the entry matching id. Unknown ids are a no-op.
func (r *Registry) RemoveByID(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return
	}

	r.entries = append(r.entries[:i], r.entries[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.entries); j++ {
		r.index[r.entries[j].ID] = j
	}
}

// Clear empties the collection.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	r.index = make(map[string]int)
}

// Snapshot returns a point-in-time copy of the collection in admission
// order. The copy is independent of later mutations.
func (r *Registry) Snapshot() []core.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]core.Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len reports the current number of entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// HasFiles reports whether the collection is non-empty.
func (r *Registry) HasFiles() bool {
	return r.Len() > 0
}

// CompletedFiles returns the completed entries in admission order.
func (r *Registry) CompletedFiles() []core.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []core.Entry
	for _, entry := range r.entries {
		if entry.Status == core.StatusCompleted {
			out = append(out, entry)
		}
	}
	return out
}
