// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/logger"

	"github.com/openmarket/openmarketd/account"
	"github.com/openmarket/openmarketd/asset"
	"github.com/openmarket/openmarketd/fault"
	"github.com/openmarket/openmarketd/storage"
)

// Ledger - account and issuance access over the storage pools
type Ledger struct {
	pool *storage.Pool
}

// New - create a ledger over a pool set
func New(pool *storage.Pool) *Ledger {
	return &Ledger{pool: pool}
}

// Fetch - the account record for a key, a zero record if absent
func (l *Ledger) Fetch(key account.PublicKey) Account {
	buffer := l.pool.Accounts.Get(key[:])
	if nil == buffer {
		return Account{}
	}
	record, err := unpackAccount(buffer)
	if nil != err {
		logger.Panicf("ledger: corrupt account record for %s: %s", key, err)
	}
	return record
}

// Store - write back an account record, removing empty records
func (l *Ledger) Store(key account.PublicKey, record Account) {
	if record.IsEmpty() {
		l.pool.Accounts.Delete(key[:])
		return
	}
	l.pool.Accounts.Put(key[:], packAccount(record))
}

// MoveCoins - transfer amount from one balance to another
//
// fails with InsufficientFunds leaving both accounts untouched
func (l *Ledger) MoveCoins(from account.PublicKey, to account.PublicKey, amount uint64) error {
	debtor := l.Fetch(from)
	if debtor.Balance < amount {
		return fault.ErrInsufficientFunds
	}
	if from == to || 0 == amount {
		return nil
	}

	creditor := l.Fetch(to)
	debtor.Balance -= amount
	creditor.Balance += amount

	l.Store(from, debtor)
	l.Store(to, creditor)
	return nil
}

// MoveAssets - transfer asset bundles from one account to another
//
// every bundle moves or none do; fails with InsufficientAssets
func (l *Ledger) MoveAssets(from account.PublicKey, to account.PublicKey, bundles []asset.Bundle) error {
	if 0 == len(bundles) {
		return nil
	}

	debtor := l.Fetch(from)
	if err := debtor.RemoveAssets(bundles); nil != err {
		return err
	}
	if from == to {
		return nil
	}

	creditor := l.Fetch(to)
	creditor.AddAssets(bundles)

	l.Store(from, debtor)
	l.Store(to, creditor)
	return nil
}

// FetchAssetInfo - the issuance record for an asset id
func (l *Ledger) FetchAssetInfo(id asset.AssetId) (asset.Info, bool) {
	buffer := l.pool.Assets.Get(id[:])
	if nil == buffer {
		return asset.Info{}, false
	}
	info, _, err := asset.UnpackInfo(buffer)
	if nil != err {
		logger.Panicf("ledger: corrupt asset info for %s: %s", id, err)
	}
	return info, true
}

// StoreAssetInfo - write back an issuance record, removing it when the
// issued amount reaches zero
func (l *Ledger) StoreAssetInfo(id asset.AssetId, info asset.Info) {
	if 0 == info.Amount {
		l.RemoveAssetInfo(id)
		return
	}
	l.pool.Assets.Put(id[:], asset.PackInfo(nil, info))
}

// RemoveAssetInfo - delete an issuance record
func (l *Ledger) RemoveAssetInfo(id asset.AssetId) {
	l.pool.Assets.Delete(id[:])
}
