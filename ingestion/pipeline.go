package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/filedrop/core"
	"github.com/poiesic/filedrop/registry"
)

// Default policy limits.
const (
	// DefaultMaxFileSize is the per-file size limit in bytes (10 MiB).
	DefaultMaxFileSize int64 = 10 * 1024 * 1024
	// DefaultMaxFiles is the maximum number of entries the registry holds.
	DefaultMaxFiles = 10
)

// ErrorSink receives one human-readable message per rejected file or
// failed load. It may be called from pool workers and must be safe for
// concurrent use.
type ErrorSink func(message string)

// Pipeline coordinates validation, admission and asynchronous content
// loading of files headed for a chat message.
type Pipeline struct {
	registry      *registry.Registry
	pool          *ants.Pool
	maxFileSize   int64
	maxFiles      int
	acceptedTypes []string
	sink          ErrorSink
	logger        *slog.Logger
	loads         sync.WaitGroup
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithMaxFileSize sets the per-file size limit in bytes.
// Default is DefaultMaxFileSize.
func WithMaxFileSize(size int64) Option {
	return func(p *Pipeline) error {
		if size > 0 {
			p.maxFileSize = size
		}
		return nil
	}
}

// WithMaxFiles sets the maximum number of entries held at once.
// Default is DefaultMaxFiles.
func WithMaxFiles(count int) Option {
	return func(p *Pipeline) error {
		if count > 0 {
			p.maxFiles = count
		}
		return nil
	}
}

// WithAcceptedTypes sets the accepted extension list. Items may carry a
// leading dot; matching is exact-extension and case-insensitive. An empty
// list accepts every type.
func WithAcceptedTypes(types ...string) Option {
	return func(p *Pipeline) error {
		p.acceptedTypes = types
		return nil
	}
}

// WithErrorSink sets the sink for rejection and load-failure messages.
// A nil sink falls back to the default, which logs at warn level.
func WithErrorSink(sink ErrorSink) Option {
	return func(p *Pipeline) error {
		if sink != nil {
			p.sink = sink
		}
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent content loads.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithRegistry makes the pipeline operate on an externally owned registry
// instead of creating its own.
func WithRegistry(reg *registry.Registry) Option {
	return func(p *Pipeline) error {
		if reg == nil {
			return ErrRegistryRequired
		}
		p.registry = reg
		return nil
	}
}

// NewPipeline creates an ingestion pipeline with default policy limits,
// applying any options.
func NewPipeline(opts ...Option) (*Pipeline, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		registry:    registry.New(),
		pool:        pool,
		maxFileSize: DefaultMaxFileSize,
		maxFiles:    DefaultMaxFiles,
		logger:      slog.Default(),
	}
	p.sink = func(message string) {
		p.logger.Warn("file rejected", "reason", message)
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// AddFiles validates and admits a batch of raw files, then loads their
// content asynchronously. Observable effects arrive via registry
// mutations over time.
//
// The whole batch is rejected, registry untouched, when it would exceed
// the file-count limit. Files failing size or type checks are dropped
// individually with one sink message each. Survivors are admitted as a
// single atomic batch in submission order, then loaded on the worker
// pool; a failed load marks only its own entry.
func (p *Pipeline) AddFiles(ctx context.Context, batch []core.FileDescriptor) {
	if len(batch) == 0 {
		return
	}

	if err := core.ValidateBatch(p.registry.Len(), len(batch), p.maxFiles); err != nil {
		p.report(err.Error())
		return
	}

	type admitted struct {
		entry core.Entry
		fd    core.FileDescriptor
	}

	var survivors []admitted
	var entries []core.Entry
	for _, fd := range batch {
		if err := core.ValidateSize(fd.Name, fd.Size, p.maxFileSize); err != nil {
			p.report(err.Error())
			continue
		}
		if err := core.ValidateType(fd.Name, p.acceptedTypes); err != nil {
			p.report(err.Error())
			continue
		}

		entry := core.NewEntry(fd)
		survivors = append(survivors, admitted{entry: entry, fd: fd})
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return
	}
	p.registry.Admit(entries)
	p.logger.Debug("admitted batch", "count", len(entries))

	for _, a := range survivors {
		a := a
		p.loads.Add(1)
		if err := p.pool.Submit(func() {
			defer p.loads.Done()
			p.load(ctx, a.entry, a.fd)
		}); err != nil {
			p.loads.Done()
			p.fail(a.entry.ID, fmt.Sprintf("%s: %v", a.entry.Name, err))
		}
	}
}

// load runs one content load and folds the result back into the registry.
func (p *Pipeline) load(ctx context.Context, entry core.Entry, fd core.FileDescriptor) {
	result := loadContent(ctx, fd, entry.Kind)
	if result.err != nil {
		p.logger.Error("content load failed", "name", entry.Name, "err", result.err)
		p.fail(entry.ID, result.err.Error())
		return
	}

	p.registry.UpdateByID(entry.ID, func(e core.Entry) core.Entry {
		e.Status = core.StatusCompleted
		e.Content = result.content
		e.Checksum = result.checksum
		return e
	})
}

// fail transitions an entry to the error state and reports the message.
// A no-op on the registry side when the entry was removed mid-flight.
func (p *Pipeline) fail(id, message string) {
	p.registry.UpdateByID(id, func(e core.Entry) core.Entry {
		e.Status = core.StatusError
		e.Error = message
		return e
	})
	p.report(message)
}

func (p *Pipeline) report(message string) {
	if p.sink != nil {
		p.sink(message)
	}
}

// RemoveFile removes the entry matching id. Unknown ids are a no-op, so
// removing an entry whose load is still in flight is safe.
func (p *Pipeline) RemoveFile(id string) {
	p.registry.RemoveByID(id)
}

// ClearFiles empties the registry regardless of entry statuses.
func (p *Pipeline) ClearFiles() {
	p.registry.Clear()
}

// Snapshot returns the current entries in admission order.
func (p *Pipeline) Snapshot() []core.Entry {
	return p.registry.Snapshot()
}

// HasFiles reports whether any entries are present.
func (p *Pipeline) HasFiles() bool {
	return p.registry.HasFiles()
}

// CompletedFiles returns the completed entries in admission order.
func (p *Pipeline) CompletedFiles() []core.Entry {
	return p.registry.CompletedFiles()
}

// Registry exposes the underlying registry for observers.
func (p *Pipeline) Registry() *registry.Registry {
	return p.registry
}

// AcceptFilter renders the accepted-type list in the format consumed by
// native file-picker controls: comma-separated, each item prefixed with
// a dot.
func (p *Pipeline) AcceptFilter() string {
	if len(p.acceptedTypes) == 0 {
		return ""
	}

	items := make([]string, 0, len(p.acceptedTypes))
	for _, t := range p.acceptedTypes {
		items = append(items, "."+strings.TrimPrefix(t, "."))
	}
	return strings.Join(items, ",")
}

// Wait blocks until every load submitted so far has folded its result
// into the registry.
func (p *Pipeline) Wait() {
	p.loads.Wait()
}

// Release frees the worker pool. The pipeline should not be used after
// calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
