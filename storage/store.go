// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"
)

// Store - minimal key-value access the ledger is built on
//
// Get returns nil for a missing key; all errors are storage engine
// failures, not missing data
type Store interface {
	Get(key []byte) ([]byte, error)
	Put(key []byte, value []byte) error
	Delete(key []byte) error
}

// MemoryStore - map backed store for tests and host supplied snapshots
type MemoryStore struct {
	sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore - create an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]byte),
	}
}

// Get - fetch a value, nil if absent
func (store *MemoryStore) Get(key []byte) ([]byte, error) {
	store.RLock()
	defer store.RUnlock()

	value, ok := store.data[string(key)]
	if !ok {
		return nil, nil
	}
	result := make([]byte, len(value))
	copy(result, value)
	return result, nil
}

// Put - store a copy of the value
func (store *MemoryStore) Put(key []byte, value []byte) error {
	store.Lock()
	defer store.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	store.data[string(key)] = stored
	return nil
}

// Delete - remove a key
func (store *MemoryStore) Delete(key []byte) error {
	store.Lock()
	defer store.Unlock()

	delete(store.data, string(key))
	return nil
}
