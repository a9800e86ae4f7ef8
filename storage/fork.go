// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/logger"
)

// one reversible write
type undoRecord struct {
	key        string
	value      []byte
	hadOverlay bool
}

// Fork - copy-on-write view over a base store
//
// all transaction execution inside a block happens on one fork; the
// base store is never touched until Flush
type Fork struct {
	log     *logger.L
	base    Store
	overlay map[string][]byte // nil value marks a delete
	undo    []undoRecord
	marks   []int
}

// NewFork - create an empty fork over a base store
func NewFork(base Store) *Fork {
	return &Fork{
		log:     logger.New("storage"),
		base:    base,
		overlay: make(map[string][]byte),
	}
}

// Get - fetch the effective value of a key, nil if absent
//
// a base store failure is a fatal invariant violation and aborts the
// whole block
func (fork *Fork) Get(key []byte) []byte {
	if value, ok := fork.overlay[string(key)]; ok {
		if nil == value {
			return nil
		}
		result := make([]byte, len(value))
		copy(result, value)
		return result
	}

	value, err := fork.base.Get(key)
	if nil != err {
		fork.log.Criticalf("base store get failed: key: %x  error: %s", key, err)
		logger.Panicf("storage: base store get failed: %s", err)
	}
	return value
}

// Has - true if the key currently has a value
func (fork *Fork) Has(key []byte) bool {
	return nil != fork.Get(key)
}

// Put - set a value inside the fork
func (fork *Fork) Put(key []byte, value []byte) {
	stored := make([]byte, len(value))
	copy(stored, value)
	fork.record(key)
	fork.overlay[string(key)] = stored
}

// Delete - remove a key inside the fork
func (fork *Fork) Delete(key []byte) {
	fork.record(key)
	fork.overlay[string(key)] = nil
}

// save the previous overlay state for rollback
func (fork *Fork) record(key []byte) {
	if 0 == len(fork.marks) {
		return
	}
	previous, hadOverlay := fork.overlay[string(key)]
	fork.undo = append(fork.undo, undoRecord{
		key:        string(key),
		value:      previous,
		hadOverlay: hadOverlay,
	})
}

// Begin - mark a restore point
func (fork *Fork) Begin() {
	fork.marks = append(fork.marks, len(fork.undo))
}

// Rollback - discard every write since the most recent restore point
func (fork *Fork) Rollback() {
	if 0 == len(fork.marks) {
		logger.Panic("storage: rollback without begin")
	}

	mark := fork.marks[len(fork.marks)-1]
	fork.marks = fork.marks[:len(fork.marks)-1]

	// replay the undo log in reverse
	for i := len(fork.undo) - 1; i >= mark; i -= 1 {
		record := fork.undo[i]
		if record.hadOverlay {
			fork.overlay[record.key] = record.value
		} else {
			delete(fork.overlay, record.key)
		}
	}
	fork.undo = fork.undo[:mark]
}

// Commit - keep every write since the most recent restore point
func (fork *Fork) Commit() {
	if 0 == len(fork.marks) {
		logger.Panic("storage: commit without begin")
	}

	fork.marks = fork.marks[:len(fork.marks)-1]

	// committed writes still belong to any enclosing restore point;
	// outside all of them the undo log is not needed
	if 0 == len(fork.marks) {
		fork.undo = fork.undo[:0]
	}
}

// Flush - persist the surviving writes to the base store
//
// must only be called with no restore point outstanding
func (fork *Fork) Flush() error {
	if 0 != len(fork.marks) {
		logger.Panic("storage: flush inside begin")
	}

	for key, value := range fork.overlay {
		var err error
		if nil == value {
			err = fork.base.Delete([]byte(key))
		} else {
			err = fork.base.Put([]byte(key), value)
		}
		if nil != err {
			return err
		}
	}
	fork.overlay = make(map[string][]byte)
	return nil
}
