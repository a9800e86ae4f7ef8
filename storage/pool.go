// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// key prefixes, one per pool
const (
	prefixAccounts = 'W'
	prefixAssets   = 'I'
	prefixOffers   = 'O'
	prefixStatus   = 'S'
)

// PoolHandle - one key space partition of a fork
type PoolHandle struct {
	prefix byte
	fork   *Fork
}

// prefix a key for this pool
func (pool PoolHandle) poolKey(key []byte) []byte {
	prefixed := make([]byte, 0, 1+len(key))
	prefixed = append(prefixed, pool.prefix)
	return append(prefixed, key...)
}

// Get - fetch a value from the pool, nil if absent
func (pool PoolHandle) Get(key []byte) []byte {
	return pool.fork.Get(pool.poolKey(key))
}

// Has - true if the key currently has a value
func (pool PoolHandle) Has(key []byte) bool {
	return pool.fork.Has(pool.poolKey(key))
}

// Put - set a value in the pool
func (pool PoolHandle) Put(key []byte, value []byte) {
	pool.fork.Put(pool.poolKey(key), value)
}

// Delete - remove a key from the pool
func (pool PoolHandle) Delete(key []byte) {
	pool.fork.Delete(pool.poolKey(key))
}

// Pool - the named pools of one fork
type Pool struct {
	Accounts PoolHandle
	Assets   PoolHandle
	Offers   PoolHandle
	Status   PoolHandle
}

// NewPool - partition a fork into the named pools
func NewPool(fork *Fork) *Pool {
	return &Pool{
		Accounts: PoolHandle{prefix: prefixAccounts, fork: fork},
		Assets:   PoolHandle{prefix: prefixAssets, fork: fork},
		Offers:   PoolHandle{prefix: prefixOffers, fork: fork},
		Status:   PoolHandle{prefix: prefixStatus, fork: fork},
	}
}
