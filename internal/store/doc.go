// Package store owns the mutable document for one curation session and
// exposes the structured mutation operations the pipeline and CLI apply to
// it.
//
// The document lives in an in-memory SQLite database. A single connection
// (MaxOpenConns 1) serializes every mutation, so concurrent stage
// completions appending to the same section cannot lose updates. Nothing
// survives the process; the export artifacts are the only durable output.
//
// Candidates are soft-deleted only; removed rows drop out of aggregate
// views but stay addressable for the session.
package store
