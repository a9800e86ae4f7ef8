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

// Transfer - move coins and asset bundles between two accounts
//
// signed by From over every preceding byte
type Transfer struct {
	From     account.PublicKey `json:"from"`
	To       account.PublicKey `json:"to"`
	Amount   uint64            `json:"amount,string"`
	Assets   []asset.Bundle    `json:"assets"`
	Seed     uint64            `json:"seed,string"`
	DataInfo string            `json:"data_info"`

	Signature account.Signature `json:"signature"`
}

// Tag - wire discriminator
func (transfer *Transfer) Tag() Tag {
	return TransferTag
}

func (transfer *Transfer) packPayload() []byte {
	buffer := appendTag(nil, TransferTag)
	buffer = append(buffer, transfer.From[:]...)
	buffer = append(buffer, transfer.To[:]...)
	buffer = appendUint64(buffer, transfer.Amount)
	buffer = appendBundles(buffer, transfer.Assets)
	buffer = appendUint64(buffer, transfer.Seed)
	return appendString(buffer, transfer.DataInfo)
}

// Pack - wire form
func (transfer *Transfer) Pack() Packed {
	return append(transfer.packPayload(), transfer.Signature[:]...)
}

// Sign - fill in the signature over the payload
func (transfer *Transfer) Sign(sign func([]byte) account.Signature) {
	transfer.Signature = sign(transfer.packPayload())
}

// Verify - stateless admissibility
func (transfer *Transfer) Verify(ctx *chain.Context) error {
	if transfer.From == transfer.To {
		return fault.ErrInvalidTransaction
	}
	if 0 == transfer.Amount && 0 == len(transfer.Assets) {
		return fault.ErrInvalidTransaction
	}
	if !validBundleAmounts(transfer.Assets) {
		return fault.ErrInvalidTransaction
	}
	if len(transfer.DataInfo) > DataInfoMaxLength {
		return fault.ErrDataTooLong
	}
	return transfer.From.CheckSignature(transfer.packPayload(), transfer.Signature)
}

func unpackTransfer(buffer []byte) (*Transfer, []byte, error) {
	transfer := &Transfer{}
	var err error
	if transfer.From, buffer, err = readPublicKey(buffer); nil != err {
		return nil, nil, err
	}
	if transfer.To, buffer, err = readPublicKey(buffer); nil != err {
		return nil, nil, err
	}
	if transfer.Amount, buffer, err = readUint64(buffer); nil != err {
		return nil, nil, err
	}
	if transfer.Assets, buffer, err = readBundles(buffer); nil != err {
		return nil, nil, err
	}
	if transfer.Seed, buffer, err = readUint64(buffer); nil != err {
		return nil, nil, err
	}
	if transfer.DataInfo, buffer, err = readString(buffer); nil != err {
		return nil, nil, err
	}
	if transfer.Signature, buffer, err = readSignature(buffer); nil != err {
		return nil, nil, err
	}
	return transfer, buffer, nil
}

// TransferOffer - the countersigned inner message of a transfer with a
// separate fees payer
type TransferOffer struct {
	From      account.PublicKey `json:"from"`
	To        account.PublicKey `json:"to"`
	FeesPayer account.PublicKey `json:"fees_payer"`
	Amount    uint64            `json:"amount,string"`
	Assets    []asset.Bundle    `json:"assets"`
	Seed      uint64            `json:"seed,string"`
	DataInfo  string            `json:"data_info"`
}

// Pack - the exact bytes the fees payer countersigns
func (offer TransferOffer) Pack() []byte {
	buffer := append([]byte(nil), offer.From[:]...)
	buffer = append(buffer, offer.To[:]...)
	buffer = append(buffer, offer.FeesPayer[:]...)
	buffer = appendUint64(buffer, offer.Amount)
	buffer = appendBundles(buffer, offer.Assets)
	buffer = appendUint64(buffer, offer.Seed)
	return appendString(buffer, offer.DataInfo)
}

func unpackTransferOffer(buffer []byte) (TransferOffer, error) {
	offer := TransferOffer{}
	var err error
	if offer.From, buffer, err = readPublicKey(buffer); nil != err {
		return TransferOffer{}, err
	}
	if offer.To, buffer, err = readPublicKey(buffer); nil != err {
		return TransferOffer{}, err
	}
	if offer.FeesPayer, buffer, err = readPublicKey(buffer); nil != err {
		return TransferOffer{}, err
	}
	if offer.Amount, buffer, err = readUint64(buffer); nil != err {
		return TransferOffer{}, err
	}
	if offer.Assets, buffer, err = readBundles(buffer); nil != err {
		return TransferOffer{}, err
	}
	if offer.Seed, buffer, err = readUint64(buffer); nil != err {
		return TransferOffer{}, err
	}
	if offer.DataInfo, buffer, err = readString(buffer); nil != err {
		return TransferOffer{}, err
	}
	if 0 != len(buffer) {
		return TransferOffer{}, fault.ErrInvalidLength
	}
	return offer, nil
}

// TransferWithFeesPayer - a transfer whose fees are charged to a third
// account that countersigned the offer
//
// the fees payer signs the offer segment, From signs the whole record
type TransferWithFeesPayer struct {
	Offer TransferOffer `json:"offer"`

	FeesPayerSignature account.Signature `json:"fees_payer_signature"`
	Signature          account.Signature `json:"signature"`
}

// Tag - wire discriminator
func (transfer *TransferWithFeesPayer) Tag() Tag {
	return TransferWithFeesPayerTag
}

func (transfer *TransferWithFeesPayer) packPayload() []byte {
	buffer := appendTag(nil, TransferWithFeesPayerTag)
	buffer = appendSegment(buffer, transfer.Offer.Pack())
	return append(buffer, transfer.FeesPayerSignature[:]...)
}

// Pack - wire form
func (transfer *TransferWithFeesPayer) Pack() Packed {
	return append(transfer.packPayload(), transfer.Signature[:]...)
}

// Sign - fill in the outer signature over the payload
func (transfer *TransferWithFeesPayer) Sign(sign func([]byte) account.Signature) {
	transfer.Signature = sign(transfer.packPayload())
}

// Verify - stateless admissibility
//
// requires both signatures, three distinct parties on the paying side
// and the transfer-with-fees-payer permission for all three accounts
func (transfer *TransferWithFeesPayer) Verify(ctx *chain.Context) error {
	offer := transfer.Offer
	if offer.From == offer.To || offer.From == offer.FeesPayer {
		return fault.ErrInvalidTransaction
	}
	if 0 == offer.Amount && 0 == len(offer.Assets) {
		return fault.ErrInvalidTransaction
	}
	if !validBundleAmounts(offer.Assets) {
		return fault.ErrInvalidTransaction
	}
	if len(offer.DataInfo) > DataInfoMaxLength {
		return fault.ErrDataTooLong
	}
	for _, wallet := range []account.PublicKey{offer.From, offer.To, offer.FeesPayer} {
		if !ctx.Permissions.Allows(wallet, chain.PermitTransferWithFeesPayer) {
			return fault.ErrInvalidTransaction
		}
	}
	if err := offer.FeesPayer.CheckSignature(offer.Pack(), transfer.FeesPayerSignature); nil != err {
		return err
	}
	return offer.From.CheckSignature(transfer.packPayload(), transfer.Signature)
}

func unpackTransferWithFeesPayer(buffer []byte) (*TransferWithFeesPayer, []byte, error) {
	transfer := &TransferWithFeesPayer{}
	segment, buffer, err := readSegment(buffer)
	if nil != err {
		return nil, nil, err
	}
	if transfer.Offer, err = unpackTransferOffer(segment); nil != err {
		return nil, nil, err
	}
	if transfer.FeesPayerSignature, buffer, err = readSignature(buffer); nil != err {
		return nil, nil, err
	}
	if transfer.Signature, buffer, err = readSignature(buffer); nil != err {
		return nil, nil, err
	}
	return transfer, buffer, nil
}

// every bundle must carry a nonzero amount
func validBundleAmounts(bundles []asset.Bundle) bool {
	for _, bundle := range bundles {
		if 0 == bundle.Amount {
			return false
		}
	}
	return true
}
