// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/openmarket/openmarketd/account"
	"github.com/openmarket/openmarketd/asset"
	"github.com/openmarket/openmarketd/chain"
	"github.com/openmarket/openmarketd/fault"
)

// BidOffer - buy up to Asset.Amount units at limit price Asset.Price
//
// the coin notional is locked up front; any unmatched remainder rests
// in the book at the limit price
type BidOffer struct {
	Wallet   account.PublicKey `json:"wallet"`
	Asset    asset.TradeAsset  `json:"asset"`
	Seed     uint64            `json:"seed,string"`
	DataInfo string            `json:"data_info"`

	Signature account.Signature `json:"signature"`
}

// Tag - wire discriminator
func (bid *BidOffer) Tag() Tag {
	return BidOfferTag
}

func (bid *BidOffer) packPayload() []byte {
	buffer := appendTag(nil, BidOfferTag)
	buffer = append(buffer, bid.Wallet[:]...)
	buffer = asset.PackTradeAsset(buffer, bid.Asset)
	buffer = appendUint64(buffer, bid.Seed)
	return appendString(buffer, bid.DataInfo)
}

// Pack - wire form
func (bid *BidOffer) Pack() Packed {
	return append(bid.packPayload(), bid.Signature[:]...)
}

// Sign - fill in the signature over the payload
func (bid *BidOffer) Sign(sign func([]byte) account.Signature) {
	bid.Signature = sign(bid.packPayload())
}

// Verify - stateless admissibility including the bid permission
func (bid *BidOffer) Verify(ctx *chain.Context) error {
	if 0 == bid.Asset.Amount || 0 == bid.Asset.Price {
		return fault.ErrInvalidTransaction
	}
	if _, err := mulNoOverflow(bid.Asset.Amount, bid.Asset.Price); nil != err {
		return err
	}
	if len(bid.DataInfo) > DataInfoMaxLength {
		return fault.ErrDataTooLong
	}
	if !ctx.Permissions.Allows(bid.Wallet, chain.PermitBid) {
		return fault.ErrInvalidTransaction
	}
	return bid.Wallet.CheckSignature(bid.packPayload(), bid.Signature)
}

func unpackBidOffer(buffer []byte) (*BidOffer, []byte, error) {
	bid := &BidOffer{}
	var err error
	if bid.Wallet, buffer, err = readPublicKey(buffer); nil != err {
		return nil, nil, err
	}
	if bid.Asset, buffer, err = asset.UnpackTradeAsset(buffer); nil != err {
		return nil, nil, err
	}
	if bid.Seed, buffer, err = readUint64(buffer); nil != err {
		return nil, nil, err
	}
	if bid.DataInfo, buffer, err = readString(buffer); nil != err {
		return nil, nil, err
	}
	if bid.Signature, buffer, err = readSignature(buffer); nil != err {
		return nil, nil, err
	}
	return bid, buffer, nil
}

// AskOffer - sell up to Asset.Amount units at limit price Asset.Price
//
// the asset units are locked up front; any unmatched remainder rests
// in the book at the limit price
type AskOffer struct {
	Wallet   account.PublicKey `json:"wallet"`
	Asset    asset.TradeAsset  `json:"asset"`
	Seed     uint64            `json:"seed,string"`
	DataInfo string            `json:"data_info"`

	Signature account.Signature `json:"signature"`
}

// Tag - wire discriminator
func (ask *AskOffer) Tag() Tag {
	return AskOfferTag
}

func (ask *AskOffer) packPayload() []byte {
	buffer := appendTag(nil, AskOfferTag)
	buffer = append(buffer, ask.Wallet[:]...)
	buffer = asset.PackTradeAsset(buffer, ask.Asset)
	buffer = appendUint64(buffer, ask.Seed)
	return appendString(buffer, ask.DataInfo)
}

// Pack - wire form
func (ask *AskOffer) Pack() Packed {
	return append(ask.packPayload(), ask.Signature[:]...)
}

// Sign - fill in the signature over the payload
func (ask *AskOffer) Sign(sign func([]byte) account.Signature) {
	ask.Signature = sign(ask.packPayload())
}

// Verify - stateless admissibility
func (ask *AskOffer) Verify(ctx *chain.Context) error {
	if 0 == ask.Asset.Amount || 0 == ask.Asset.Price {
		return fault.ErrInvalidTransaction
	}
	if _, err := mulNoOverflow(ask.Asset.Amount, ask.Asset.Price); nil != err {
		return err
	}
	if len(ask.DataInfo) > DataInfoMaxLength {
		return fault.ErrDataTooLong
	}
	return ask.Wallet.CheckSignature(ask.packPayload(), ask.Signature)
}

func unpackAskOffer(buffer []byte) (*AskOffer, []byte, error) {
	ask := &AskOffer{}
	var err error
	if ask.Wallet, buffer, err = readPublicKey(buffer); nil != err {
		return nil, nil, err
	}
	if ask.Asset, buffer, err = asset.UnpackTradeAsset(buffer); nil != err {
		return nil, nil, err
	}
	if ask.Seed, buffer, err = readUint64(buffer); nil != err {
		return nil, nil, err
	}
	if ask.DataInfo, buffer, err = readString(buffer); nil != err {
		return nil, nil, err
	}
	if ask.Signature, buffer, err = readSignature(buffer); nil != err {
		return nil, nil, err
	}
	return ask, buffer, nil
}
