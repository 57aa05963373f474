// Package tasks runs long operations over every stored list with real-time progress reporting.
//
// # Bulk Export
//
// [Exporter.BulkExport] writes each list of a kind to its own file:
//
//  1. Loads every stored list of the kind from a [ListSource]
//  2. Fans the lists out to a bounded worker pool
//  3. Writes each list with the formatter under {kind}_{owner}.{ext}
//  4. Writes export_manifest.json summarizing successes and failures
//
// # Progress Reporting
//
// Operations accept an optional progress channel. The [ProgressUpdate] struct contains
// phase, step counters and a message. Updates use select with default to prevent blocking.
package tasks
