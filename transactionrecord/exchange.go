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
	"github.com/openmarket/openmarketd/fees"
)

// ExchangeOffer - the countersigned inner message of an exchange
//
// the sender offers coins and assets against the recipient's assets;
// the recipient wraps the offer into the transaction and signs the
// whole record
type ExchangeOffer struct {
	Sender          account.PublicKey `json:"sender"`
	SenderAssets    []asset.Bundle    `json:"sender_assets"`
	SenderValue     uint64            `json:"sender_value,string"`
	Recipient       account.PublicKey `json:"recipient"`
	RecipientAssets []asset.Bundle    `json:"recipient_assets"`
	FeeStrategy     fees.Strategy     `json:"fee_strategy"`
	Seed            uint64            `json:"seed,string"`
	DataInfo        string            `json:"data_info"`
}

// Pack - the exact bytes the sender countersigns
func (offer ExchangeOffer) Pack() []byte {
	buffer := append([]byte(nil), offer.Sender[:]...)
	buffer = appendBundles(buffer, offer.SenderAssets)
	buffer = appendUint64(buffer, offer.SenderValue)
	buffer = append(buffer, offer.Recipient[:]...)
	buffer = appendBundles(buffer, offer.RecipientAssets)
	buffer = append(buffer, byte(offer.FeeStrategy))
	buffer = appendUint64(buffer, offer.Seed)
	return appendString(buffer, offer.DataInfo)
}

func (offer ExchangeOffer) verifyCommon() error {
	if offer.Sender == offer.Recipient {
		return fault.ErrInvalidTransaction
	}
	if 0 == offer.SenderValue &&
		0 == len(offer.SenderAssets) &&
		0 == len(offer.RecipientAssets) {
		return fault.ErrInvalidTransaction
	}
	if !validBundleAmounts(offer.SenderAssets) ||
		!validBundleAmounts(offer.RecipientAssets) {
		return fault.ErrInvalidTransaction
	}
	if len(offer.DataInfo) > DataInfoMaxLength {
		return fault.ErrDataTooLong
	}
	return nil
}

// AllAssets - both asset sets, the basis for exchange fees
func (offer ExchangeOffer) AllAssets() []asset.Bundle {
	all := append([]asset.Bundle(nil), offer.SenderAssets...)
	return append(all, offer.RecipientAssets...)
}

func unpackExchangeOffer(buffer []byte) (ExchangeOffer, []byte, error) {
	offer := ExchangeOffer{}
	var err error
	if offer.Sender, buffer, err = readPublicKey(buffer); nil != err {
		return ExchangeOffer{}, nil, err
	}
	if offer.SenderAssets, buffer, err = readBundles(buffer); nil != err {
		return ExchangeOffer{}, nil, err
	}
	if offer.SenderValue, buffer, err = readUint64(buffer); nil != err {
		return ExchangeOffer{}, nil, err
	}
	if offer.Recipient, buffer, err = readPublicKey(buffer); nil != err {
		return ExchangeOffer{}, nil, err
	}
	if offer.RecipientAssets, buffer, err = readBundles(buffer); nil != err {
		return ExchangeOffer{}, nil, err
	}
	if 0 == len(buffer) {
		return ExchangeOffer{}, nil, fault.ErrInvalidLength
	}
	if offer.FeeStrategy, err = fees.StrategyFromByte(buffer[0]); nil != err {
		return ExchangeOffer{}, nil, err
	}
	buffer = buffer[1:]
	if offer.Seed, buffer, err = readUint64(buffer); nil != err {
		return ExchangeOffer{}, nil, err
	}
	if offer.DataInfo, buffer, err = readString(buffer); nil != err {
		return ExchangeOffer{}, nil, err
	}
	return offer, buffer, nil
}

// Exchange - swap coins and asset sets between two accounts
type Exchange struct {
	Offer ExchangeOffer `json:"offer"`

	SenderSignature account.Signature `json:"sender_signature"`
	Signature       account.Signature `json:"signature"`
}

// Tag - wire discriminator
func (exchange *Exchange) Tag() Tag {
	return ExchangeTag
}

func (exchange *Exchange) packPayload() []byte {
	buffer := appendTag(nil, ExchangeTag)
	buffer = appendSegment(buffer, exchange.Offer.Pack())
	return append(buffer, exchange.SenderSignature[:]...)
}

// Pack - wire form
func (exchange *Exchange) Pack() Packed {
	return append(exchange.packPayload(), exchange.Signature[:]...)
}

// Sign - fill in the recipient signature over the payload
func (exchange *Exchange) Sign(sign func([]byte) account.Signature) {
	exchange.Signature = sign(exchange.packPayload())
}

// Verify - stateless admissibility
func (exchange *Exchange) Verify(ctx *chain.Context) error {
	if err := exchange.Offer.verifyCommon(); nil != err {
		return err
	}
	if fees.Intermediary == exchange.Offer.FeeStrategy {
		return fault.ErrInvalidFeeStrategy
	}
	if err := exchange.Offer.Sender.CheckSignature(exchange.Offer.Pack(), exchange.SenderSignature); nil != err {
		return err
	}
	return exchange.Offer.Recipient.CheckSignature(exchange.packPayload(), exchange.Signature)
}

func unpackExchange(buffer []byte) (*Exchange, []byte, error) {
	exchange := &Exchange{}
	segment, buffer, err := readSegment(buffer)
	if nil != err {
		return nil, nil, err
	}
	offer, rest, err := unpackExchangeOffer(segment)
	if nil != err {
		return nil, nil, err
	}
	if 0 != len(rest) {
		return nil, nil, fault.ErrInvalidLength
	}
	exchange.Offer = offer
	if exchange.SenderSignature, buffer, err = readSignature(buffer); nil != err {
		return nil, nil, err
	}
	if exchange.Signature, buffer, err = readSignature(buffer); nil != err {
		return nil, nil, err
	}
	return exchange, buffer, nil
}

// ExchangeIntermediaryOffer - an exchange brokered by an intermediary
//
// both the intermediary and the sender countersign these bytes
type ExchangeIntermediaryOffer struct {
	Exchange     ExchangeOffer `json:"exchange"`
	Intermediary Intermediary  `json:"intermediary"`
}

// Pack - the exact bytes both counterparties sign
func (offer ExchangeIntermediaryOffer) Pack() []byte {
	return offer.Intermediary.pack(offer.Exchange.Pack())
}

func unpackExchangeIntermediaryOffer(buffer []byte) (ExchangeIntermediaryOffer, error) {
	offer := ExchangeIntermediaryOffer{}
	exchange, buffer, err := unpackExchangeOffer(buffer)
	if nil != err {
		return ExchangeIntermediaryOffer{}, err
	}
	offer.Exchange = exchange
	if offer.Intermediary, buffer, err = unpackIntermediary(buffer); nil != err {
		return ExchangeIntermediaryOffer{}, err
	}
	if 0 != len(buffer) {
		return ExchangeIntermediaryOffer{}, fault.ErrInvalidLength
	}
	return offer, nil
}

// ExchangeIntermediary - an exchange brokered and fee-fronted by a
// third wallet
type ExchangeIntermediary struct {
	Offer ExchangeIntermediaryOffer `json:"offer"`

	IntermediarySignature account.Signature `json:"intermediary_signature"`
	SenderSignature       account.Signature `json:"sender_signature"`
	Signature             account.Signature `json:"signature"`
}

// Tag - wire discriminator
func (exchange *ExchangeIntermediary) Tag() Tag {
	return ExchangeIntermediaryTag
}

func (exchange *ExchangeIntermediary) packPayload() []byte {
	buffer := appendTag(nil, ExchangeIntermediaryTag)
	buffer = appendSegment(buffer, exchange.Offer.Pack())
	buffer = append(buffer, exchange.IntermediarySignature[:]...)
	return append(buffer, exchange.SenderSignature[:]...)
}

// Pack - wire form
func (exchange *ExchangeIntermediary) Pack() Packed {
	return append(exchange.packPayload(), exchange.Signature[:]...)
}

// Sign - fill in the recipient signature over the payload
func (exchange *ExchangeIntermediary) Sign(sign func([]byte) account.Signature) {
	exchange.Signature = sign(exchange.packPayload())
}

// Verify - stateless admissibility
func (exchange *ExchangeIntermediary) Verify(ctx *chain.Context) error {
	offer := exchange.Offer
	if err := offer.Exchange.verifyCommon(); nil != err {
		return err
	}
	if offer.Intermediary.Wallet == offer.Exchange.Sender ||
		offer.Intermediary.Wallet == offer.Exchange.Recipient {
		return fault.ErrInvalidTransaction
	}
	segment := offer.Pack()
	if err := offer.Intermediary.Wallet.CheckSignature(segment, exchange.IntermediarySignature); nil != err {
		return err
	}
	if err := offer.Exchange.Sender.CheckSignature(segment, exchange.SenderSignature); nil != err {
		return err
	}
	return offer.Exchange.Recipient.CheckSignature(exchange.packPayload(), exchange.Signature)
}

func unpackExchangeIntermediary(buffer []byte) (*ExchangeIntermediary, []byte, error) {
	exchange := &ExchangeIntermediary{}
	segment, buffer, err := readSegment(buffer)
	if nil != err {
		return nil, nil, err
	}
	if exchange.Offer, err = unpackExchangeIntermediaryOffer(segment); nil != err {
		return nil, nil, err
	}
	if exchange.IntermediarySignature, buffer, err = readSignature(buffer); nil != err {
		return nil, nil, err
	}
	if exchange.SenderSignature, buffer, err = readSignature(buffer); nil != err {
		return nil, nil, err
	}
	if exchange.Signature, buffer, err = readSignature(buffer); nil != err {
		return nil, nil, err
	}
	return exchange, buffer, nil
}
