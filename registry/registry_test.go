package registry

import (
	"fmt"
	"testing"

	"github.com/poiesic/filedrop/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingEntry(name string) core.Entry {
	return core.NewEntry(core.FileDescriptor{Name: name, Size: 100})
}

func TestRegistry_Admit(t *testing.T) {
	t.Run("preserves submission order", func(t *testing.T) {
		reg := New()
		first := []core.Entry{pendingEntry("a.go"), pendingEntry("b.go")}
		second := []core.Entry{pendingEntry("c.go")}

		reg.Admit(first)
		reg.Admit(second)

		snapshot := reg.Snapshot()
		require.Len(t, snapshot, 3)
		assert.Equal(t, "a.go", snapshot[0].Name)
		assert.Equal(t, "b.go", snapshot[1].Name)
		assert.Equal(t, "c.go", snapshot[2].Name)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		reg := New()
		reg.Admit(nil)
		assert.False(t, reg.HasFiles())
	})
}

func TestRegistry_UpdateByID(t *testing.T) {
	reg := New()
	entry := pendingEntry("a.go")
	reg.Admit([]core.Entry{entry})

	t.Run("applies transform to matching entry", func(t *testing.T) {
		reg.UpdateByID(entry.ID, func(e core.Entry) core.Entry {
			e.Status = core.StatusCompleted
			e.Content = "package main"
			return e
		})

		snapshot := reg.Snapshot()
		require.Len(t, snapshot, 1)
		assert.Equal(t, core.StatusCompleted, snapshot[0].Status)
		assert.Equal(t, "package main", snapshot[0].Content)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		before := reg.Snapshot()
		reg.UpdateByID("missing", func(e core.Entry) core.Entry {
			e.Status = core.StatusError
			return e
		})
		assert.Equal(t, before, reg.Snapshot())
	})
}

func TestRegistry_RemoveByID(t *testing.T) {
	reg := New()
	a, b, c := pendingEntry("a.go"), pendingEntry("b.go"), pendingEntry("c.go")
	reg.Admit([]core.Entry{a, b, c})

	t.Run("removes matching entry, order intact", func(t *testing.T) {
		reg.RemoveByID(b.ID)

		snapshot := reg.Snapshot()
		require.Len(t, snapshot, 2)
		assert.Equal(t, "a.go", snapshot[0].Name)
		assert.Equal(t, "c.go", snapshot[1].Name)
	})

	t.Run("later entries remain addressable", func(t *testing.T) {
		reg.UpdateByID(c.ID, func(e core.Entry) core.Entry {
			e.Status = core.StatusCompleted
			return e
		})
		assert.Len(t, reg.CompletedFiles(), 1)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		before := reg.Snapshot()
		reg.RemoveByID("missing")
		assert.Equal(t, before, reg.Snapshot())
	})
}

func TestRegistry_Clear(t *testing.T) {
	reg := New()
	entry := pendingEntry("a.go")
	reg.Admit([]core.Entry{entry, pendingEntry("b.go")})
	reg.UpdateByID(entry.ID, func(e core.Entry) core.Entry {
		e.Status = core.StatusError
		e.Error = "boom"
		return e
	})

	reg.Clear()

	assert.False(t, reg.HasFiles())
	assert.Empty(t, reg.Snapshot())

	// Cleared ids stay gone.
	reg.UpdateByID(entry.ID, func(e core.Entry) core.Entry { return e })
	assert.Empty(t, reg.Snapshot())
}

func TestRegistry_Snapshot_Immutable(t *testing.T) {
	reg := New()
	entry := pendingEntry("a.go")
	reg.Admit([]core.Entry{entry})

	snapshot := reg.Snapshot()
	reg.UpdateByID(entry.ID, func(e core.Entry) core.Entry {
		e.Status = core.StatusCompleted
		return e
	})
	reg.Admit([]core.Entry{pendingEntry("b.go")})

	require.Len(t, snapshot, 1)
	assert.Equal(t, core.StatusPending, snapshot[0].Status)
}

func TestRegistry_CompletedFiles_Order(t *testing.T) {
	reg := New()
	entries := make([]core.Entry, 5)
	for i := range entries {
		entries[i] = pendingEntry(fmt.Sprintf("f%d.go", i))
	}
	reg.Admit(entries)

	// Complete them out of order.
	for _, i := range []int{3, 0, 4, 2} {
		reg.UpdateByID(entries[i].ID, func(e core.Entry) core.Entry {
			e.Status = core.StatusCompleted
			return e
		})
	}

	completed := reg.CompletedFiles()
	require.Len(t, completed, 4)
	assert.Equal(t, "f0.go", completed[0].Name)
	assert.Equal(t, "f2.go", completed[1].Name)
	assert.Equal(t, "f3.go", completed[2].Name)
	assert.Equal(t, "f4.go", completed[3].Name)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	reg := New()
	entries := make([]core.Entry, 50)
	for i := range entries {
		entries[i] = pendingEntry(fmt.Sprintf("f%d.go", i))
	}
	reg.Admit(entries)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, e := range entries {
			reg.UpdateByID(e.ID, func(e core.Entry) core.Entry {
				e.Status = core.StatusCompleted
				return e
			})
		}
	}()
	for i := 0; i < 100; i++ {
		reg.Snapshot()
		reg.CompletedFiles()
	}
	<-done

	assert.Len(t, reg.CompletedFiles(), 50)
}
