package core

import (
	"io"

	"github.com/google/uuid"
)

// Status tracks where an Entry is in its ingestion lifecycle.
// An entry starts pending and transitions exactly once, to either
// completed or error. Both are terminal.
type Status string

const (
	// StatusPending means the entry has been admitted but its content
	// has not been loaded yet.
	StatusPending Status = "pending"
	// StatusCompleted means the content load finished successfully.
	StatusCompleted Status = "completed"
	// StatusError means the content load failed.
	StatusError Status = "error"
)

// Kind classifies a file as text-like or binary-like. It is decided once
// at admission from the filename's extension and never recomputed.
type Kind string

const (
	// KindText files have their contents read verbatim as a string.
	KindText Kind = "text"
	// KindBinary files have their contents carried as a base64 encoding
	// of the raw bytes.
	KindBinary Kind = "binary"
)

// DefaultMIMEType is assigned when a descriptor carries no MIME type.
const DefaultMIMEType = "application/octet-stream"

// FileDescriptor describes a raw file handed to the ingestion pipeline
// before any validation or admission has happened.
type FileDescriptor struct {
	Name     string
	Size     int64
	MIMEType string

	// Open yields the file's content stream. It is invoked at most once,
	// by the content loader, after the descriptor has been admitted.
	Open func() (io.ReadCloser, error)
}

// Entry is one file's ingestion record.
//
// Content is populated only on completed entries; for binary kind it is a
// base64 encoding of the raw bytes, never the bytes themselves. Error is
// populated only on error entries. Checksum is the lowercase hex
// BLAKE2b-256 of the raw loaded bytes, set alongside Content.
type Entry struct {
	ID       string
	Name     string
	Size     int64
	MIMEType string
	Kind     Kind
	Language string
	Status   Status
	Content  string
	Checksum string
	Error    string
}

// NewEntryID returns a fresh identifier for an admitted entry. IDs are
// random UUIDs, so two admissions of the same filename in the same batch
// still get distinct identities.
func NewEntryID() string {
	return uuid.NewString()
}

// NewEntry builds a pending Entry from a raw descriptor. Kind and Language
// are fixed here and never re-derived.
func NewEntry(fd FileDescriptor) Entry {
	mimeType := fd.MIMEType
	if mimeType == "" {
		mimeType = DefaultMIMEType
	}

	return Entry{
		ID:       NewEntryID(),
		Name:     fd.Name,
		Size:     fd.Size,
		MIMEType: mimeType,
		Kind:     ClassifyKind(ExtensionOf(fd.Name)),
		Language: ClassifyLanguage(fd.Name),
		Status:   StatusPending,
	}
}
