// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"encoding/binary"

	"github.com/openmarket/openmarketd/chain"
	"github.com/openmarket/openmarketd/digest"
	"github.com/openmarket/openmarketd/fault"
)

// Tag - 16 bit transaction kind discriminator, first field on the wire
type Tag uint16

// the closed set of transaction kinds
const (
	TransferTag              Tag = 200
	TransferWithFeesPayerTag Tag = 201
	AddAssetsTag             Tag = 300
	DeleteAssetsTag          Tag = 400
	TradeTag                 Tag = 501
	TradeIntermediaryTag     Tag = 502
	ExchangeTag              Tag = 601
	ExchangeIntermediaryTag  Tag = 602
	BidOfferTag              Tag = 700
	AskOfferTag              Tag = 701
)

// Packed - a transaction in wire form
type Packed []byte

// Transaction - one of the ten concrete record types
//
// the union is closed: execution dispatches over the concrete types
// with an exhaustive type switch and never registers new kinds
type Transaction interface {
	// Tag - the wire discriminator of this kind
	Tag() Tag

	// Pack - the complete wire form including signatures
	Pack() Packed

	// Verify - stateless admissibility against a chain context:
	// signatures, bounded lengths, overflow and permission checks
	Verify(ctx *chain.Context) error
}

// TxId - the identity of a transaction is the digest of its wire form
func (record Packed) TxId() digest.Digest {
	return digest.NewDigest(record)
}

// Unpack - decode a packed transaction, dispatching on the tag
//
// trailing bytes after the record are a decode error
func Unpack(record Packed) (Transaction, error) {
	if len(record) < 2 {
		return nil, fault.ErrInvalidLength
	}
	tag := Tag(binary.LittleEndian.Uint16(record))
	buffer := []byte(record[2:])

	var tx Transaction
	var err error
	switch tag {
	case TransferTag:
		tx, buffer, err = unpackTransfer(buffer)
	case TransferWithFeesPayerTag:
		tx, buffer, err = unpackTransferWithFeesPayer(buffer)
	case AddAssetsTag:
		tx, buffer, err = unpackAddAssets(buffer)
	case DeleteAssetsTag:
		tx, buffer, err = unpackDeleteAssets(buffer)
	case TradeTag:
		tx, buffer, err = unpackTrade(buffer)
	case TradeIntermediaryTag:
		tx, buffer, err = unpackTradeIntermediary(buffer)
	case ExchangeTag:
		tx, buffer, err = unpackExchange(buffer)
	case ExchangeIntermediaryTag:
		tx, buffer, err = unpackExchangeIntermediary(buffer)
	case BidOfferTag:
		tx, buffer, err = unpackBidOffer(buffer)
	case AskOfferTag:
		tx, buffer, err = unpackAskOffer(buffer)
	default:
		return nil, fault.ErrNotTransactionRecord
	}
	if nil != err {
		return nil, err
	}
	if 0 != len(buffer) {
		return nil, fault.ErrInvalidLength
	}
	return tx, nil
}
