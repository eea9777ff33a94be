// Package repository defines the data access interface for Atelier.
//
// The Repository interface covers entity CRUD, search, the dashboard
// aggregate, and full-dataset export. The SQLite implementation lives in
// the sqlite subpackage; it is the only code in the repository that talks
// to the physical store.
//
// # Error model
//
// Write operations surface failures (including foreign-key violations) to
// the caller. Single-row lookups represent absence as a nil result, never
// as an error. The boundary layer additionally degrades failed reads to
// empty results; that policy lives there, not here.
package repository
