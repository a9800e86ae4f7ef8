// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"github.com/openmarket/openmarketd/account"
	"github.com/openmarket/openmarketd/digest"
	"github.com/openmarket/openmarketd/fault"
)

// DataMaxLength - upper bound on the free form data attached to an
// issued asset
const DataMaxLength = 10240

// Bundle - a quantity of one asset class held or moved as a unit
type Bundle struct {
	Id     AssetId `json:"id"`
	Amount uint64  `json:"amount,string"`
}

// TradeAsset - a bundle with a per unit price, as referenced by trade
// and offer transactions
type TradeAsset struct {
	Id     AssetId `json:"id"`
	Amount uint64  `json:"amount,string"`
	Price  uint64  `json:"price,string"`
}

// TotalPrice - amount times per unit price
func (trade TradeAsset) TotalPrice() uint64 {
	return trade.Amount * trade.Price
}

// ToBundle - drop the price
func (trade TradeAsset) ToBundle() Bundle {
	return Bundle{
		Id:     trade.Id,
		Amount: trade.Amount,
	}
}

// MetaAsset - issuance request for one asset inside an add assets
// transaction
type MetaAsset struct {
	Receiver account.PublicKey `json:"receiver"`
	Data     string            `json:"data"`
	Amount   uint64            `json:"amount,string"`
	Fees     Fees              `json:"fees"`
}

// IsValid - bounded data and a usable fee schedule
func (meta MetaAsset) IsValid() bool {
	return len(meta.Data) <= DataMaxLength && !meta.Fees.IsDegenerate()
}

// ToInfo - the global issuance record this meta asset creates
func (meta MetaAsset) ToInfo(creator account.PublicKey, origin digest.Digest) Info {
	return Info{
		Creator: creator,
		Origin:  origin,
		Amount:  meta.Amount,
		Fees:    meta.Fees,
		Data:    meta.Data,
	}
}

// ToBundle - the holding credited to the receiver
func (meta MetaAsset) ToBundle(id AssetId) Bundle {
	return Bundle{
		Id:     id,
		Amount: meta.Amount,
	}
}

// Info - global issuance record for one asset id
//
// invariant: Amount equals the sum of this asset held by all accounts
// plus any amount locked in resting ask offers
type Info struct {
	Creator account.PublicKey `json:"creator"`
	Origin  digest.Digest     `json:"origin"`
	Amount  uint64            `json:"amount,string"`
	Fees    Fees              `json:"fees"`
	Data    string            `json:"data"`
}

// Merge - combine a further issuance into this record
//
// only the amounts add; the creator and fee schedule must match
// exactly, the origin of the first issuance is retained
func (info Info) Merge(other Info) (Info, error) {
	if info.Creator != other.Creator || info.Fees != other.Fees {
		return Info{}, fault.ErrInvalidAssetInfo
	}
	info.Amount += other.Amount
	return info, nil
}

// Decrease - remove deleted units from the record
func (info Info) Decrease(amount uint64) (Info, error) {
	if info.Amount < amount {
		return Info{}, fault.ErrInsufficientAssets
	}
	info.Amount -= amount
	return info, nil
}
