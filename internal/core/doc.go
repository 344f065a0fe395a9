// Package core implements the roster domain: CSV student import with
// per-row validation, filtered and paginated student queries, and
// atomic class-enrollment mutations.
//
// The package is persistence-agnostic. All storage flows through the
// Gateway interface; the pgx implementation lives in internal/store.
// Every operation is scoped to the owning teacher, so one teacher can
// never read or mutate another teacher's students or classes.
package core
