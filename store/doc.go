// Package store persists vector points in a SQLite database using the
// pure-Go modernc.org/sqlite driver. Load returns the stored records;
// BuildTree indexes such records into a fresh M-Tree.
package store
