// Package importer turns source image paths into library entries.
//
// For each path the pipeline checks the source, extracts metadata, allocates
// an identifier, renders a thumbnail and stores it. Paths are processed by a
// bounded worker pool and fail independently: a bad file becomes a Failure in
// the Result while the rest of the batch continues. A file that cannot be
// rendered is still imported, without a thumbnail.
//
// The pipeline does not write to the library. The caller commits
// Result.Imported to the store.
package importer
