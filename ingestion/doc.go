// Package ingestion provides pipeline orchestration for attaching files to
// an outgoing chat message.
//
// The Pipeline type manages the ingestion workflow for a batch of raw
// files, including:
//   - Validating the batch size and each file's size and type
//   - Admitting survivors into the registry as pending entries
//   - Loading content asynchronously and folding results back by id
//
// Content loads run concurrently on a worker pool. A failed load marks
// only its own entry; the rest of the batch is unaffected. Validation and
// load failures are reported through a configurable error sink, so
// AddFiles never fails loudly to its caller.
package ingestion
