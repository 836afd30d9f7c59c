// Package diag defines the diagnostic model shared by the loader and the CLI.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for findings produced while
//     loading tile-init documents (errored lines, unreadable files, manifest
//     problems).
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// Package diag does no IO and no formatting beyond the single-line short form.
// Rendering lives in internal/diagfmt; conversion of deser errors into
// diagnostics lives in internal/driver.
//
// # Data model
//
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Code – numeric identifier with a stable ID such as DES1004. Ranges:
//     DES document lines, SUB subfolders, IO files and cache, PRJ manifest,
//     OBS observability.
//   - Primary – path and 1-based line of the offending document line.
//   - Text – the offending line as read.
//   - Notes – optional secondary locations.
//
// Keep the data model deterministic: the CLI serialises diagnostics as JSON
// and YAML and tests compare the short form verbatim.
package diag
