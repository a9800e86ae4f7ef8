// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/openmarket/openmarketd/asset"
	"github.com/openmarket/openmarketd/fault"
)

// Account - the ledger state of one account
//
// Assets is ordered by first acquisition and holds at most one bundle
// per asset id; a bundle amount is always positive
type Account struct {
	Balance uint64         `json:"balance,string"`
	Assets  []asset.Bundle `json:"assets"`
}

// IsEmpty - true if the record carries nothing and need not be stored
func (account Account) IsEmpty() bool {
	return 0 == account.Balance && 0 == len(account.Assets)
}

// AssetAmount - the held amount of one asset id, zero if absent
func (account Account) AssetAmount(id asset.AssetId) uint64 {
	for _, bundle := range account.Assets {
		if bundle.Id == id {
			return bundle.Amount
		}
	}
	return 0
}

// AddAssets - credit bundles, merging with existing holdings
func (account *Account) AddAssets(bundles []asset.Bundle) {
add_loop:
	for _, bundle := range bundles {
		if 0 == bundle.Amount {
			continue add_loop
		}
		for i, held := range account.Assets {
			if held.Id == bundle.Id {
				account.Assets[i].Amount += bundle.Amount
				continue add_loop
			}
		}
		account.Assets = append(account.Assets, bundle)
	}
}

// RemoveAssets - debit bundles
//
// fails with InsufficientAssets unless every bundle is fully covered;
// on failure the account is left unchanged; bundles that reach zero
// are removed from the list
func (account *Account) RemoveAssets(bundles []asset.Bundle) error {
	// debit a copy so repeated ids in bundles cannot overdraw
	work := Account{
		Balance: account.Balance,
		Assets:  append([]asset.Bundle{}, account.Assets...),
	}

debit_loop:
	for _, bundle := range bundles {
		if 0 == bundle.Amount {
			continue debit_loop
		}
		for i, held := range work.Assets {
			if held.Id == bundle.Id {
				if held.Amount < bundle.Amount {
					return fault.ErrInsufficientAssets
				}
				work.Assets[i].Amount -= bundle.Amount
				if 0 == work.Assets[i].Amount {
					work.Assets = append(work.Assets[:i], work.Assets[i+1:]...)
				}
				continue debit_loop
			}
		}
		return fault.ErrInsufficientAssets
	}

	*account = work
	return nil
}
