// Copyright (c) 2026 Kyradjis
// released under the MIT license

package datastore

import (
	"fmt"
	"strings"

	"github.com/gofrs/flock"
	"github.com/tidwall/buntdb"

	"github.com/kyradjis/bluelib/logger"
)

const logType = "bluelib.datastore"

// buntKey yields the string key corresponding to a (table, id) pair.
func buntKey(table Table, key string) string {
	return fmt.Sprintf("%x %s", table, key)
}

// buntdbDatastore implements Datastore using a buntdb.
type buntdbDatastore struct {
	db     *buntdb.DB
	lock   *flock.Flock
	logger *logger.Manager
}

// Open opens (creating if necessary) the buntdb file at path and takes the
// accompanying file lock, so two processes can't share one database.
func Open(path string, lm *logger.Manager) (Datastore, error) {
	if lm == nil {
		lm = logger.NewDefault(logger.LogInfo)
	}
	lock := flock.New(path + ".lock")
	held, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !held {
		return nil, fmt.Errorf("couldn't acquire lock on %s (is another instance running?)", path)
	}
	db, err := buntdb.Open(path)
	if err != nil {
		lock.Unlock()
		return nil, err
	}
	return &buntdbDatastore{db: db, lock: lock, logger: lm}, nil
}

func (b *buntdbDatastore) GetAll(table Table) (result []KV, err error) {
	tablePrefix := fmt.Sprintf("%x ", table)
	err = b.db.View(func(tx *buntdb.Tx) error {
		return tx.AscendGreaterOrEqual("", tablePrefix, func(key, value string) bool {
			id, ok := strings.CutPrefix(key, tablePrefix)
			if !ok {
				return false
			}
			result = append(result, KV{Key: id, Value: []byte(value)})
			return true
		})
	})
	return
}

func (b *buntdbDatastore) Get(table Table, key string) (value []byte, err error) {
	var result string
	err = b.db.View(func(tx *buntdb.Tx) error {
		result, err = tx.Get(buntKey(table, key))
		return err
	})
	return []byte(result), err
}

func (b *buntdbDatastore) Set(table Table, key string, value []byte) (err error) {
	err = b.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(buntKey(table, key), string(value), nil)
		return err
	})
	return
}

func (b *buntdbDatastore) Delete(table Table, key string) (err error) {
	err = b.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(buntKey(table, key))
		return err
	})
	// deleting a nonexistent key is not an error
	if err == buntdb.ErrNotFound {
		err = nil
	}
	return
}

func (b *buntdbDatastore) Close() error {
	err := b.db.Close()
	if unlockErr := b.lock.Unlock(); err == nil {
		err = unlockErr
	}
	if err != nil {
		b.logger.Error(logType, "error closing datastore", err.Error())
	}
	return err
}
