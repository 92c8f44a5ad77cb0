// Package registry holds the ordered, id-keyed collection of ingestion
// entries and its atomic mutation operations.
//
// The Registry is the single piece of shared mutable state in the system.
// All writes go through Admit, UpdateByID, RemoveByID and Clear, which are
// atomic with respect to Snapshot: a reader never observes a partially
// admitted batch or a partially updated entry. Snapshots are value copies,
// so a consumer holding one is unaffected by later mutations.
//
// Iteration order is admission order, never load-completion order.
package registry
