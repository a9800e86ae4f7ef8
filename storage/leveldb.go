// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_errors "github.com/syndtr/goleveldb/leveldb/errors"
)

// LevelDBStore - persistent Store over a goleveldb database
type LevelDBStore struct {
	db *leveldb.DB
}

// NewLevelDBStore - open or create the database directory
func NewLevelDBStore(path string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if ldb_errors.IsCorrupted(err) {
		db, err = leveldb.RecoverFile(path, nil)
	}
	if nil != err {
		return nil, err
	}
	return &LevelDBStore{db: db}, nil
}

// Get - fetch a value, nil if absent
func (store *LevelDBStore) Get(key []byte) ([]byte, error) {
	value, err := store.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	if nil != err {
		return nil, err
	}
	return value, nil
}

// Put - store a value
func (store *LevelDBStore) Put(key []byte, value []byte) error {
	return store.db.Put(key, value, nil)
}

// Delete - remove a key
func (store *LevelDBStore) Delete(key []byte) error {
	return store.db.Delete(key, nil)
}

// WriteBatch - apply a prepared batch atomically
func (store *LevelDBStore) WriteBatch(batch *leveldb.Batch) error {
	return store.db.Write(batch, nil)
}

// Close - release the database
func (store *LevelDBStore) Close() error {
	return store.db.Close()
}
