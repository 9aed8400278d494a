// Package services defines shared utilities consumed by the discovery
// pipeline and the external provider clients.
//
// Key responsibilities:
//   - Context helpers that stamp section IDs, stage names, and correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper so the pipeline can
//     classify provider failures (transport/parse vs transcript-missing)
//     and apply the right degraded outcome.
//
// Use these helpers when wiring new provider clients so error handling and
// observability stay uniform across the pipeline.
package services
