// Package cpl models Composition Playlist metadata and extracts it from raw
// CPL document text.
//
// Extraction is deliberately permissive: it pattern-matches tag content
// instead of parsing the document structurally, and missing fields degrade to
// documented defaults (file name for the title, "24 1" for the edit rate,
// Flat for the aspect). Downstream compatibility checks operate on the
// extracted metadata, never on the raw document, so a stricter parse here
// would change which documents the pipeline accepts.
package cpl
