// Package load reads table metadata from a database catalog.
//
// The generator never talks to a database itself: it asks an [Inspector] for
// the tables named in the configuration and receives one [Table] per match,
// with the table prefix already stripped from the entity name and every
// column marked as common or not for the configured base entity kind.
//
// [SQLInspector] is the catalog-backed implementation for MySQL, Postgres and
// SQLite. Tests and callers that already hold metadata can implement
// Inspector directly, or use [Static].
package load
