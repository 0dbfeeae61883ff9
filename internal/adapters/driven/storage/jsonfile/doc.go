// Package jsonfile implements the pattern, correction and ledger stores
// as versioned JSON documents on disk. Each store owns a single file with
// a small envelope (version, last_updated, entities under a named key) so
// the files remain human-readable and diffable. A missing or corrupt file
// degrades to an empty store rather than failing the run.
package jsonfile
