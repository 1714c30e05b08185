// Package distill reduces captured web documents to clean main content.
// It runs a quality-gated stage pipeline (site-specific shortcut
// extraction, a general-purpose extractor, and a heuristic scoring
// fallback) with two-pass boilerplate filtering and prioritized fault
// recovery. The pipeline degrades gracefully: a weak candidate moves it
// to the next stage, an unexpected fault goes to recovery, and the
// caller always gets a usable result instead of an escaped error.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., xhtml/,
// readability/, sqlite/).
package distill
