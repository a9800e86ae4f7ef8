// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"math/bits"

	"github.com/openmarket/openmarketd/account"
	"github.com/openmarket/openmarketd/asset"
	"github.com/openmarket/openmarketd/chain"
	"github.com/openmarket/openmarketd/fault"
	"github.com/openmarket/openmarketd/fees"
)

// Intermediary - a broker wallet and its flat commission
type Intermediary struct {
	Wallet     account.PublicKey `json:"wallet"`
	Commission uint64            `json:"commission,string"`
}

func (intermediary Intermediary) pack(buffer []byte) []byte {
	buffer = append(buffer, intermediary.Wallet[:]...)
	return appendUint64(buffer, intermediary.Commission)
}

func unpackIntermediary(buffer []byte) (Intermediary, []byte, error) {
	intermediary := Intermediary{}
	var err error
	if intermediary.Wallet, buffer, err = readPublicKey(buffer); nil != err {
		return Intermediary{}, nil, err
	}
	if intermediary.Commission, buffer, err = readUint64(buffer); nil != err {
		return Intermediary{}, nil, err
	}
	return intermediary, buffer, nil
}

// TradeOffer - the countersigned inner message of a trade
//
// the seller offers priced assets; the buyer wraps the offer into the
// transaction and signs the whole record
type TradeOffer struct {
	Buyer       account.PublicKey  `json:"buyer"`
	Seller      account.PublicKey  `json:"seller"`
	Assets      []asset.TradeAsset `json:"assets"`
	FeeStrategy fees.Strategy      `json:"fee_strategy"`
	Seed        uint64             `json:"seed,string"`
	DataInfo    string             `json:"data_info"`
}

// Pack - the exact bytes the seller countersigns
func (offer TradeOffer) Pack() []byte {
	buffer := append([]byte(nil), offer.Buyer[:]...)
	buffer = append(buffer, offer.Seller[:]...)
	buffer = appendTradeAssets(buffer, offer.Assets)
	buffer = append(buffer, byte(offer.FeeStrategy))
	buffer = appendUint64(buffer, offer.Seed)
	return appendString(buffer, offer.DataInfo)
}

// TotalPrice - the coin notional of the whole offer, overflow checked
func (offer TradeOffer) TotalPrice() (uint64, error) {
	total := uint64(0)
	for _, trade := range offer.Assets {
		notional, err := mulNoOverflow(trade.Amount, trade.Price)
		if nil != err {
			return 0, err
		}
		var carry uint64
		total, carry = bits.Add64(total, notional, 0)
		if 0 != carry {
			return 0, fault.ErrInvalidTransaction
		}
	}
	return total, nil
}

func (offer TradeOffer) verifyCommon() error {
	if offer.Buyer == offer.Seller {
		return fault.ErrInvalidTransaction
	}
	if 0 == len(offer.Assets) {
		return fault.ErrInvalidTransaction
	}
	for _, trade := range offer.Assets {
		if 0 == trade.Amount {
			return fault.ErrInvalidTransaction
		}
	}
	if _, err := offer.TotalPrice(); nil != err {
		return err
	}
	if len(offer.DataInfo) > DataInfoMaxLength {
		return fault.ErrDataTooLong
	}
	return nil
}

func unpackTradeOffer(buffer []byte) (TradeOffer, []byte, error) {
	offer := TradeOffer{}
	var err error
	if offer.Buyer, buffer, err = readPublicKey(buffer); nil != err {
		return TradeOffer{}, nil, err
	}
	if offer.Seller, buffer, err = readPublicKey(buffer); nil != err {
		return TradeOffer{}, nil, err
	}
	if offer.Assets, buffer, err = readTradeAssets(buffer); nil != err {
		return TradeOffer{}, nil, err
	}
	if 0 == len(buffer) {
		return TradeOffer{}, nil, fault.ErrInvalidLength
	}
	if offer.FeeStrategy, err = fees.StrategyFromByte(buffer[0]); nil != err {
		return TradeOffer{}, nil, err
	}
	buffer = buffer[1:]
	if offer.Seed, buffer, err = readUint64(buffer); nil != err {
		return TradeOffer{}, nil, err
	}
	if offer.DataInfo, buffer, err = readString(buffer); nil != err {
		return TradeOffer{}, nil, err
	}
	return offer, buffer, nil
}

// Trade - settle a seller's priced offer against the buyer's coins
type Trade struct {
	Offer TradeOffer `json:"offer"`

	SellerSignature account.Signature `json:"seller_signature"`
	Signature       account.Signature `json:"signature"`
}

// Tag - wire discriminator
func (trade *Trade) Tag() Tag {
	return TradeTag
}

func (trade *Trade) packPayload() []byte {
	buffer := appendTag(nil, TradeTag)
	buffer = appendSegment(buffer, trade.Offer.Pack())
	return append(buffer, trade.SellerSignature[:]...)
}

// Pack - wire form
func (trade *Trade) Pack() Packed {
	return append(trade.packPayload(), trade.Signature[:]...)
}

// Sign - fill in the buyer signature over the payload
func (trade *Trade) Sign(sign func([]byte) account.Signature) {
	trade.Signature = sign(trade.packPayload())
}

// Verify - stateless admissibility
//
// the intermediary strategy needs an intermediary record and is not
// admissible here
func (trade *Trade) Verify(ctx *chain.Context) error {
	if err := trade.Offer.verifyCommon(); nil != err {
		return err
	}
	if fees.Intermediary == trade.Offer.FeeStrategy {
		return fault.ErrInvalidFeeStrategy
	}
	if err := trade.Offer.Seller.CheckSignature(trade.Offer.Pack(), trade.SellerSignature); nil != err {
		return err
	}
	return trade.Offer.Buyer.CheckSignature(trade.packPayload(), trade.Signature)
}

func unpackTrade(buffer []byte) (*Trade, []byte, error) {
	trade := &Trade{}
	segment, buffer, err := readSegment(buffer)
	if nil != err {
		return nil, nil, err
	}
	offer, rest, err := unpackTradeOffer(segment)
	if nil != err {
		return nil, nil, err
	}
	if 0 != len(rest) {
		return nil, nil, fault.ErrInvalidLength
	}
	trade.Offer = offer
	if trade.SellerSignature, buffer, err = readSignature(buffer); nil != err {
		return nil, nil, err
	}
	if trade.Signature, buffer, err = readSignature(buffer); nil != err {
		return nil, nil, err
	}
	return trade, buffer, nil
}

// TradeIntermediaryOffer - a trade offer brokered by an intermediary
//
// both the intermediary and the seller countersign these bytes
type TradeIntermediaryOffer struct {
	Trade        TradeOffer   `json:"trade"`
	Intermediary Intermediary `json:"intermediary"`
}

// Pack - the exact bytes both counterparties sign
func (offer TradeIntermediaryOffer) Pack() []byte {
	return offer.Intermediary.pack(offer.Trade.Pack())
}

func unpackTradeIntermediaryOffer(buffer []byte) (TradeIntermediaryOffer, error) {
	offer := TradeIntermediaryOffer{}
	trade, buffer, err := unpackTradeOffer(buffer)
	if nil != err {
		return TradeIntermediaryOffer{}, err
	}
	offer.Trade = trade
	if offer.Intermediary, buffer, err = unpackIntermediary(buffer); nil != err {
		return TradeIntermediaryOffer{}, err
	}
	if 0 != len(buffer) {
		return TradeIntermediaryOffer{}, fault.ErrInvalidLength
	}
	return offer, nil
}

// TradeIntermediary - a trade brokered and fee-fronted by a third wallet
type TradeIntermediary struct {
	Offer TradeIntermediaryOffer `json:"offer"`

	IntermediarySignature account.Signature `json:"intermediary_signature"`
	SellerSignature       account.Signature `json:"seller_signature"`
	Signature             account.Signature `json:"signature"`
}

// Tag - wire discriminator
func (trade *TradeIntermediary) Tag() Tag {
	return TradeIntermediaryTag
}

func (trade *TradeIntermediary) packPayload() []byte {
	buffer := appendTag(nil, TradeIntermediaryTag)
	buffer = appendSegment(buffer, trade.Offer.Pack())
	buffer = append(buffer, trade.IntermediarySignature[:]...)
	return append(buffer, trade.SellerSignature[:]...)
}

// Pack - wire form
func (trade *TradeIntermediary) Pack() Packed {
	return append(trade.packPayload(), trade.Signature[:]...)
}

// Sign - fill in the buyer signature over the payload
func (trade *TradeIntermediary) Sign(sign func([]byte) account.Signature) {
	trade.Signature = sign(trade.packPayload())
}

// Verify - stateless admissibility
func (trade *TradeIntermediary) Verify(ctx *chain.Context) error {
	offer := trade.Offer
	if err := offer.Trade.verifyCommon(); nil != err {
		return err
	}
	if offer.Intermediary.Wallet == offer.Trade.Buyer ||
		offer.Intermediary.Wallet == offer.Trade.Seller {
		return fault.ErrInvalidTransaction
	}
	segment := offer.Pack()
	if err := offer.Intermediary.Wallet.CheckSignature(segment, trade.IntermediarySignature); nil != err {
		return err
	}
	if err := offer.Trade.Seller.CheckSignature(segment, trade.SellerSignature); nil != err {
		return err
	}
	return offer.Trade.Buyer.CheckSignature(trade.packPayload(), trade.Signature)
}

func unpackTradeIntermediary(buffer []byte) (*TradeIntermediary, []byte, error) {
	trade := &TradeIntermediary{}
	segment, buffer, err := readSegment(buffer)
	if nil != err {
		return nil, nil, err
	}
	if trade.Offer, err = unpackTradeIntermediaryOffer(segment); nil != err {
		return nil, nil, err
	}
	if trade.IntermediarySignature, buffer, err = readSignature(buffer); nil != err {
		return nil, nil, err
	}
	if trade.SellerSignature, buffer, err = readSignature(buffer); nil != err {
		return nil, nil, err
	}
	if trade.Signature, buffer, err = readSignature(buffer); nil != err {
		return nil, nil, err
	}
	return trade, buffer, nil
}

// amount times price with overflow detection
func mulNoOverflow(amount uint64, price uint64) (uint64, error) {
	hi, lo := bits.Mul64(amount, price)
	if 0 != hi {
		return 0, fault.ErrInvalidTransaction
	}
	return lo, nil
}
