// Package extractors provides implementations of the Extractor
// interface for the upload formats the service accepts. Each extractor
// knows how to decode one class of file into plain UTF-8 text.
//
// Extractors are registered with the Registry at startup; uploads are
// dispatched by filename extension with plain text as the fallback.
package extractors
