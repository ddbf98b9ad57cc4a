// Package buffer implements the pure, grapheme-accurate document model that
// backs an editor model.
//
// Coordinates are 0-based (Row, Col) where Col counts grapheme clusters.
// Ranges are half-open selections in document coordinates: [Start, End).
//
// Undo history is organized in elements. An edit opens an element and later
// edits merge into it until PushUndoStop closes it.
package buffer
