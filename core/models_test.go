package core

import (
	"testing"
)

func TestNewEntry(t *testing.T) {
	t.Run("text file", func(t *testing.T) {
		entry := NewEntry(FileDescriptor{Name: "notes.md", Size: 500, MIMEType: "text/markdown"})

		if entry.ID == "" {
			t.Error("NewEntry() should assign an id")
		}
		if entry.Status != StatusPending {
			t.Errorf("Status = %q, want %q", entry.Status, StatusPending)
		}
		if entry.Kind != KindText {
			t.Errorf("Kind = %q, want %q", entry.Kind, KindText)
		}
		if entry.Language != "Markdown" {
			t.Errorf("Language = %q, want Markdown", entry.Language)
		}
		if entry.MIMEType != "text/markdown" {
			t.Errorf("MIMEType = %q, want text/markdown", entry.MIMEType)
		}
		if entry.Content != "" || entry.Error != "" {
			t.Error("pending entry must carry neither content nor error")
		}
	})

	t.Run("binary file", func(t *testing.T) {
		entry := NewEntry(FileDescriptor{Name: "report.pdf", Size: 2048})

		if entry.Kind != KindBinary {
			t.Errorf("Kind = %q, want %q", entry.Kind, KindBinary)
		}
		if entry.MIMEType != DefaultMIMEType {
			t.Errorf("MIMEType = %q, want default %q", entry.MIMEType, DefaultMIMEType)
		}
	})

	t.Run("same name yields distinct ids", func(t *testing.T) {
		a := NewEntry(FileDescriptor{Name: "notes.md"})
		b := NewEntry(FileDescriptor{Name: "notes.md"})

		if a.ID == b.ID {
			t.Errorf("two entries share id %q", a.ID)
		}
	})
}

func TestNewEntryID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewEntryID()
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
