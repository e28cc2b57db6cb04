// Package ingest turns raw channel messages and material files into
// stored, indexed sermons.
//
// The Pipeline runs a cheap keyword prefilter, a model-backed teaching
// classifier, link-based deduplication, and metadata extraction, then
// stores the sermon and schedules embedding on a worker pool. Model
// failures degrade to keyword heuristics so ingestion keeps working
// without a reachable model.
//
// The MaterialsLoader feeds the same pipeline from plain-text files
// whose filenames carry bracketed link and image metadata.
package ingest
