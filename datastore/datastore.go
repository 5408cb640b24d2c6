// Copyright (c) 2026 Kyradjis
// released under the MIT license

// Package datastore is the library's embedded persistence layer: tables of
// string-keyed values with enumeration, backed by buntdb.
package datastore

type Table uint16

// XXX these are persisted and must remain stable;
// do not reorder, when deleting use _ to ensure that the deleted value is skipped
const (
	TableMetadata Table = iota
	TableEntityState
)

type KV struct {
	Key   string
	Value []byte
}

// A Datastore provides the following abstraction:
// 1. Tables, each keyed on a string id (the implementation is free to merge
// the table name and the id into a single key as long as the rest of the
// contract can be satisfied)
// 2. The ability to efficiently enumerate all key-value pairs in a table
// 3. Gets, sets, and deletes for individual (table, id) keys
type Datastore interface {
	GetAll(table Table) ([]KV, error)

	Get(table Table, key string) (value []byte, err error)

	Set(table Table, key string, value []byte) error

	// Note that deleting a nonexistent key is not considered an error
	Delete(table Table, key string) error

	Close() error
}
