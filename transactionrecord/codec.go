// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"encoding/binary"

	"github.com/openmarket/openmarketd/account"
	"github.com/openmarket/openmarketd/asset"
	"github.com/openmarket/openmarketd/fault"
)

// DataInfoMaxLength - upper bound on the free form note carried by
// transfer, trade, exchange and offer transactions
const DataInfoMaxLength = 1024

func appendTag(buffer []byte, tag Tag) []byte {
	return appendUint16(buffer, uint16(tag))
}

func appendUint16(buffer []byte, value uint16) []byte {
	var scratch [2]byte
	binary.LittleEndian.PutUint16(scratch[:], value)
	return append(buffer, scratch[:]...)
}

func appendUint64(buffer []byte, value uint64) []byte {
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], value)
	return append(buffer, scratch[:]...)
}

// u16 length prefixed string
func appendString(buffer []byte, s string) []byte {
	buffer = appendUint16(buffer, uint16(len(s)))
	return append(buffer, s...)
}

// u16 length prefixed byte segment, used for countersigned offers
func appendSegment(buffer []byte, segment []byte) []byte {
	buffer = appendUint16(buffer, uint16(len(segment)))
	return append(buffer, segment...)
}

// u16 count prefixed bundle vector
func appendBundles(buffer []byte, bundles []asset.Bundle) []byte {
	buffer = appendUint16(buffer, uint16(len(bundles)))
	for _, bundle := range bundles {
		buffer = asset.PackBundle(buffer, bundle)
	}
	return buffer
}

// u16 count prefixed trade asset vector
func appendTradeAssets(buffer []byte, trades []asset.TradeAsset) []byte {
	buffer = appendUint16(buffer, uint16(len(trades)))
	for _, trade := range trades {
		buffer = asset.PackTradeAsset(buffer, trade)
	}
	return buffer
}

func readUint64(buffer []byte) (uint64, []byte, error) {
	if len(buffer) < 8 {
		return 0, nil, fault.ErrInvalidLength
	}
	return binary.LittleEndian.Uint64(buffer), buffer[8:], nil
}

func readString(buffer []byte) (string, []byte, error) {
	segment, buffer, err := readSegment(buffer)
	if nil != err {
		return "", nil, err
	}
	return string(segment), buffer, nil
}

func readSegment(buffer []byte) ([]byte, []byte, error) {
	if len(buffer) < 2 {
		return nil, nil, fault.ErrInvalidLength
	}
	n := int(binary.LittleEndian.Uint16(buffer))
	buffer = buffer[2:]
	if len(buffer) < n {
		return nil, nil, fault.ErrInvalidLength
	}
	return buffer[:n], buffer[n:], nil
}

func readPublicKey(buffer []byte) (account.PublicKey, []byte, error) {
	var key account.PublicKey
	if len(buffer) < account.PublicKeySize {
		return key, nil, fault.ErrInvalidLength
	}
	copy(key[:], buffer[:account.PublicKeySize])
	return key, buffer[account.PublicKeySize:], nil
}

func readSignature(buffer []byte) (account.Signature, []byte, error) {
	var signature account.Signature
	if len(buffer) < account.SignatureSize {
		return signature, nil, fault.ErrInvalidLength
	}
	copy(signature[:], buffer[:account.SignatureSize])
	return signature, buffer[account.SignatureSize:], nil
}

func readBundles(buffer []byte) ([]asset.Bundle, []byte, error) {
	if len(buffer) < 2 {
		return nil, nil, fault.ErrInvalidLength
	}
	count := int(binary.LittleEndian.Uint16(buffer))
	buffer = buffer[2:]
	bundles := []asset.Bundle(nil)
	for i := 0; i < count; i += 1 {
		bundle, rest, err := asset.UnpackBundle(buffer)
		if nil != err {
			return nil, nil, err
		}
		bundles = append(bundles, bundle)
		buffer = rest
	}
	return bundles, buffer, nil
}

func readTradeAssets(buffer []byte) ([]asset.TradeAsset, []byte, error) {
	if len(buffer) < 2 {
		return nil, nil, fault.ErrInvalidLength
	}
	count := int(binary.LittleEndian.Uint16(buffer))
	buffer = buffer[2:]
	trades := []asset.TradeAsset(nil)
	for i := 0; i < count; i += 1 {
		trade, rest, err := asset.UnpackTradeAsset(buffer)
		if nil != err {
			return nil, nil, err
		}
		trades = append(trades, trade)
		buffer = rest
	}
	return trades, buffer, nil
}
