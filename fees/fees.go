// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fees

import (
	"bytes"
	"sort"

	"github.com/openmarket/openmarketd/account"
	"github.com/openmarket/openmarketd/asset"
	"github.com/openmarket/openmarketd/fault"
	"github.com/openmarket/openmarketd/ledger"
)

// Fees - the computed fees of one transaction
type Fees struct {
	ToGenesis    uint64
	ToThirdParty map[account.PublicKey]uint64
}

// ForAddAssets - genesis fee plus the per unit issuance fee over the
// total issued amount
func ForAddAssets(genesisFee uint64, perUnitFee uint64, metas []asset.MetaAsset) Fees {
	units := uint64(0)
	for _, meta := range metas {
		units += meta.Amount
	}
	return Fees{
		ToGenesis:    genesisFee + perUnitFee*units,
		ToThirdParty: map[account.PublicKey]uint64{},
	}
}

// ForDeleteAssets - fixed genesis fee only
func ForDeleteAssets(genesisFee uint64) Fees {
	return Fees{
		ToGenesis:    genesisFee,
		ToThirdParty: map[account.PublicKey]uint64{},
	}
}

// ForTrade - third party trade fees over the total traded notional
//
// the basis for every referenced asset is the sum of amount×price over
// the whole transaction; fails with AssetNotFound for an unknown id
func ForTrade(l *ledger.Ledger, genesisFee uint64, trades []asset.TradeAsset) (Fees, error) {
	basis := uint64(0)
	for _, trade := range trades {
		basis += trade.TotalPrice()
	}

	fees := Fees{
		ToGenesis:    genesisFee,
		ToThirdParty: map[account.PublicKey]uint64{},
	}
	for _, trade := range trades {
		info, ok := l.FetchAssetInfo(trade.Id)
		if !ok {
			return Fees{}, fault.ErrAssetNotFound
		}
		fees.AddFee(info.Creator, info.Fees.Trade.ForPrice(basis))
	}
	return fees, nil
}

// ForExchange - fixed third party exchange fees per referenced asset
func ForExchange(l *ledger.Ledger, genesisFee uint64, bundles []asset.Bundle) (Fees, error) {
	return forBundles(l, genesisFee, bundles, func(schedule asset.Fees) uint64 {
		return schedule.Exchange.ForPrice(0)
	})
}

// ForTransfer - fixed third party transfer fees per referenced asset
func ForTransfer(l *ledger.Ledger, genesisFee uint64, bundles []asset.Bundle) (Fees, error) {
	return forBundles(l, genesisFee, bundles, func(schedule asset.Fees) uint64 {
		return schedule.Transfer.ForPrice(0)
	})
}

func forBundles(l *ledger.Ledger, genesisFee uint64, bundles []asset.Bundle, forSchedule func(asset.Fees) uint64) (Fees, error) {
	fees := Fees{
		ToGenesis:    genesisFee,
		ToThirdParty: map[account.PublicKey]uint64{},
	}
	for _, bundle := range bundles {
		info, ok := l.FetchAssetInfo(bundle.Id)
		if !ok {
			return Fees{}, fault.ErrAssetNotFound
		}
		fees.AddFee(info.Creator, forSchedule(info.Fees))
	}
	return fees, nil
}

// AddFee - accumulate a third party fee, one entry per creator
func (fees *Fees) AddFee(creator account.PublicKey, fee uint64) {
	fees.ToThirdParty[creator] += fee
}

// ThirdPartyTotal - sum over all creators
func (fees Fees) ThirdPartyTotal() uint64 {
	total := uint64(0)
	for _, fee := range fees.ToThirdParty {
		total += fee
	}
	return total
}

// Total - everything the transaction will charge
func (fees Fees) Total() uint64 {
	return fees.ToGenesis + fees.ThirdPartyTotal()
}

// CollectToGenesis - move the genesis fee from the payer
func (fees Fees) CollectToGenesis(l *ledger.Ledger, payer account.PublicKey, genesis account.PublicKey) error {
	return l.MoveCoins(payer, genesis, fees.ToGenesis)
}

// CollectToGenesis2 - split the genesis fee between two payers, the
// ceiling half charged to the first
func (fees Fees) CollectToGenesis2(l *ledger.Ledger, payer1 account.PublicKey, payer2 account.PublicKey, genesis account.PublicKey) error {
	half := fees.ToGenesis / 2
	if err := l.MoveCoins(payer1, genesis, fees.ToGenesis-half); nil != err {
		return err
	}
	return l.MoveCoins(payer2, genesis, half)
}

// CollectToThirdParty - move every third party fee from the payer to
// the asset creator; a creator entry matching the payer stays in the
// map but no self transfer happens
func (fees Fees) CollectToThirdParty(l *ledger.Ledger, payer account.PublicKey) error {
	for _, creator := range fees.sortedCreators() {
		if creator == payer {
			continue
		}
		if err := l.MoveCoins(payer, creator, fees.ToThirdParty[creator]); nil != err {
			return err
		}
	}
	return nil
}

// CollectToThirdParty2 - split every third party fee between two
// payers, the ceiling half charged to the first; a payer matching the
// creator is skipped for its half
func (fees Fees) CollectToThirdParty2(l *ledger.Ledger, payer1 account.PublicKey, payer2 account.PublicKey) error {
	for _, creator := range fees.sortedCreators() {
		fee := fees.ToThirdParty[creator]
		half := fee / 2
		if creator != payer1 {
			if err := l.MoveCoins(payer1, creator, fee-half); nil != err {
				return err
			}
		}
		if creator != payer2 {
			if err := l.MoveCoins(payer2, creator, half); nil != err {
				return err
			}
		}
	}
	return nil
}

// execution must be deterministic so map iteration order cannot leak
// into the ledger
func (fees Fees) sortedCreators() []account.PublicKey {
	creators := make([]account.PublicKey, 0, len(fees.ToThirdParty))
	for creator := range fees.ToThirdParty {
		creators = append(creators, creator)
	}
	sort.Slice(creators, func(i, j int) bool {
		return bytes.Compare(creators[i][:], creators[j][:]) < 0
	})
	return creators
}
