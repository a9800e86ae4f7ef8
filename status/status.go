// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package status

import (
	"github.com/bitmark-inc/logger"

	"github.com/openmarket/openmarketd/digest"
	"github.com/openmarket/openmarketd/fault"
	"github.com/openmarket/openmarketd/storage"
)

// Status - the recorded outcome of one transaction
type Status uint8

// possible transaction outcomes
const (
	Ok Status = iota
	AssetNotFound
	TransactionNotFound
	InvalidAssetInfo
	InsufficientFunds
	InsufficientAssets
	InvalidTransaction
)

// FromError - the status describing an execution error
//
// errors outside the execution vocabulary map to InvalidTransaction
func FromError(err error) Status {
	switch err {
	case nil:
		return Ok
	case fault.ErrAssetNotFound:
		return AssetNotFound
	case fault.ErrTransactionNotFound:
		return TransactionNotFound
	case fault.ErrInvalidAssetInfo:
		return InvalidAssetInfo
	case fault.ErrInsufficientFunds:
		return InsufficientFunds
	case fault.ErrInsufficientAssets:
		return InsufficientAssets
	default:
		return InvalidTransaction
	}
}

// IsOk - true only for successful execution
func (status Status) IsOk() bool {
	return Ok == status
}

func (status Status) String() string {
	switch status {
	case Ok:
		return "ok"
	case AssetNotFound:
		return "asset not found"
	case TransactionNotFound:
		return "transaction not found"
	case InvalidAssetInfo:
		return "invalid asset info"
	case InsufficientFunds:
		return "insufficient funds"
	case InsufficientAssets:
		return "insufficient assets"
	case InvalidTransaction:
		return "invalid transaction"
	default:
		return "unknown"
	}
}

// Store - status access over the status pool
type Store struct {
	pool *storage.Pool
}

// NewStore - create a status store over a pool set
func NewStore(pool *storage.Pool) *Store {
	return &Store{pool: pool}
}

// Fetch - the recorded status for a transaction digest
func (store *Store) Fetch(txId digest.Digest) (Status, bool) {
	buffer := store.pool.Status.Get(txId[:])
	if nil == buffer {
		return Ok, false
	}
	if 1 != len(buffer) {
		logger.Panicf("status: corrupt status record for %s", txId)
	}
	return Status(buffer[0]), true
}

// Record - write the status for a transaction digest
//
// a digest can be recorded exactly once; replays fail
func (store *Store) Record(txId digest.Digest, result Status) error {
	if store.pool.Status.Has(txId[:]) {
		return fault.ErrStatusAlreadyRecorded
	}
	store.pool.Status.Put(txId[:], []byte{byte(result)})
	return nil
}
