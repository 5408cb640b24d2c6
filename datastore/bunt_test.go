// Copyright (c) 2026 Kyradjis
// released under the MIT license

package datastore

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/kyradjis/bluelib/logger"
)

func openTestStore(t *testing.T, path string) Datastore {
	t.Helper()
	ds, err := Open(path, logger.NewDefault(logger.LogError))
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

func TestSetGetDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ds := openTestStore(t, path)
	defer ds.Close()

	if err := ds.Set(TableEntityState, "dragon-1", []byte(`{"flying":true}`)); err != nil {
		t.Fatal(err)
	}
	value, err := ds.Get(TableEntityState, "dragon-1")
	if err != nil {
		t.Fatal(err)
	}
	if string(value) != `{"flying":true}` {
		t.Errorf("unexpected value %s", value)
	}

	if err := ds.Delete(TableEntityState, "dragon-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := ds.Get(TableEntityState, "dragon-1"); err == nil {
		t.Errorf("expected an error getting a deleted key")
	}
	// deleting a nonexistent key is not an error
	if err := ds.Delete(TableEntityState, "dragon-1"); err != nil {
		t.Errorf("deleting a nonexistent key errored: %v", err)
	}
}

func TestGetAllIsScopedToTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ds := openTestStore(t, path)
	defer ds.Close()

	pairs := map[string]string{"a": "1", "b": "2", "c": "3"}
	for key, value := range pairs {
		if err := ds.Set(TableEntityState, key, []byte(value)); err != nil {
			t.Fatal(err)
		}
	}
	if err := ds.Set(TableMetadata, "version", []byte("1")); err != nil {
		t.Fatal(err)
	}

	kvs, err := ds.GetAll(TableEntityState)
	if err != nil {
		t.Fatal(err)
	}
	found := make(map[string]string)
	for _, kv := range kvs {
		found[kv.Key] = string(kv.Value)
	}
	if !reflect.DeepEqual(found, pairs) {
		t.Errorf("unexpected table contents: %v", found)
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ds := openTestStore(t, path)
	if err := ds.Set(TableEntityState, "dragon-1", []byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := ds.Close(); err != nil {
		t.Fatal(err)
	}

	reopened := openTestStore(t, path)
	defer reopened.Close()
	value, err := reopened.Get(TableEntityState, "dragon-1")
	if err != nil {
		t.Fatal(err)
	}
	if string(value) != "x" {
		t.Errorf("unexpected value %s", value)
	}
}

func TestLockPreventsSecondOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ds := openTestStore(t, path)
	defer ds.Close()

	if _, err := Open(path, logger.NewDefault(logger.LogError)); err == nil {
		t.Errorf("expected the second open to fail while the lock is held")
	}
}
