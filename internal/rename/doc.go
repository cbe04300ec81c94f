// Package rename applies a validated rename plan to the filesystem.
//
// Every entry is moved in two phases: first to a uniquely named temporary
// file in the same directory, then to its final name. Routing each move
// through an unused intermediate name makes case-only renames work on
// case-insensitive filesystems and removes ordering dependencies between
// entries.
//
// Execution is sequential and fail-fast. When an entry fails, the run
// stops; entries renamed before it stay renamed and later entries are not
// attempted. There is no rollback of completed entries.
package rename
