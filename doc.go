// Package faresolver exposes the fare resolution engine over HTTP: build
// summary, per-leg resolution with miss diagnostics, and wholesale reload of
// the active table. The engine itself lives in the fare package; ingestion in
// the ingest package.
package faresolver
