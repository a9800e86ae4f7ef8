// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"encoding/binary"

	"github.com/openmarket/openmarketd/account"
	"github.com/openmarket/openmarketd/digest"
	"github.com/openmarket/openmarketd/fault"
	"github.com/openmarket/openmarketd/fract"
)

// fixed record sizes
const (
	FeeSize    = 16
	FeesSize   = 48
	BundleSize = IdLength + 8
	TradeSize  = IdLength + 16
)

// PackFee - fixed ‖ fraction, little endian
func PackFee(buffer []byte, fee Fee) []byte {
	buffer = appendUint64(buffer, fee.Fixed)
	return appendUint64(buffer, uint64(fee.Fraction))
}

// UnpackFee - reverse of PackFee
func UnpackFee(buffer []byte) (Fee, []byte, error) {
	if len(buffer) < FeeSize {
		return Fee{}, nil, fault.ErrInvalidLength
	}
	fee := Fee{
		Fixed:    binary.LittleEndian.Uint64(buffer[0:8]),
		Fraction: fract.UFract64(binary.LittleEndian.Uint64(buffer[8:16])),
	}
	if !fee.Fraction.IsValid() {
		return Fee{}, nil, fault.ErrFractionOutOfRange
	}
	return fee, buffer[FeeSize:], nil
}

// PackFees - trade ‖ exchange ‖ transfer
func PackFees(buffer []byte, fees Fees) []byte {
	buffer = PackFee(buffer, fees.Trade)
	buffer = PackFee(buffer, fees.Exchange)
	return PackFee(buffer, fees.Transfer)
}

// UnpackFees - reverse of PackFees
func UnpackFees(buffer []byte) (Fees, []byte, error) {
	var fees Fees
	var err error
	if fees.Trade, buffer, err = UnpackFee(buffer); nil != err {
		return Fees{}, nil, err
	}
	if fees.Exchange, buffer, err = UnpackFee(buffer); nil != err {
		return Fees{}, nil, err
	}
	if fees.Transfer, buffer, err = UnpackFee(buffer); nil != err {
		return Fees{}, nil, err
	}
	return fees, buffer, nil
}

// PackBundle - id ‖ amount
func PackBundle(buffer []byte, bundle Bundle) []byte {
	buffer = append(buffer, bundle.Id[:]...)
	return appendUint64(buffer, bundle.Amount)
}

// UnpackBundle - reverse of PackBundle
func UnpackBundle(buffer []byte) (Bundle, []byte, error) {
	if len(buffer) < BundleSize {
		return Bundle{}, nil, fault.ErrInvalidLength
	}
	var bundle Bundle
	copy(bundle.Id[:], buffer[0:IdLength])
	bundle.Amount = binary.LittleEndian.Uint64(buffer[IdLength : IdLength+8])
	return bundle, buffer[BundleSize:], nil
}

// PackTradeAsset - id ‖ amount ‖ price
func PackTradeAsset(buffer []byte, trade TradeAsset) []byte {
	buffer = append(buffer, trade.Id[:]...)
	buffer = appendUint64(buffer, trade.Amount)
	return appendUint64(buffer, trade.Price)
}

// UnpackTradeAsset - reverse of PackTradeAsset
func UnpackTradeAsset(buffer []byte) (TradeAsset, []byte, error) {
	if len(buffer) < TradeSize {
		return TradeAsset{}, nil, fault.ErrInvalidLength
	}
	var trade TradeAsset
	copy(trade.Id[:], buffer[0:IdLength])
	trade.Amount = binary.LittleEndian.Uint64(buffer[IdLength : IdLength+8])
	trade.Price = binary.LittleEndian.Uint64(buffer[IdLength+8 : IdLength+16])
	return trade, buffer[TradeSize:], nil
}

// PackMetaAsset - receiver ‖ amount ‖ fees ‖ data
func PackMetaAsset(buffer []byte, meta MetaAsset) []byte {
	buffer = append(buffer, meta.Receiver[:]...)
	buffer = appendUint64(buffer, meta.Amount)
	buffer = PackFees(buffer, meta.Fees)
	return appendString(buffer, meta.Data)
}

// UnpackMetaAsset - reverse of PackMetaAsset
func UnpackMetaAsset(buffer []byte) (MetaAsset, []byte, error) {
	if len(buffer) < account.PublicKeySize+8+FeesSize {
		return MetaAsset{}, nil, fault.ErrInvalidLength
	}
	var meta MetaAsset
	var err error
	copy(meta.Receiver[:], buffer[0:account.PublicKeySize])
	buffer = buffer[account.PublicKeySize:]
	meta.Amount = binary.LittleEndian.Uint64(buffer[0:8])
	buffer = buffer[8:]
	if meta.Fees, buffer, err = UnpackFees(buffer); nil != err {
		return MetaAsset{}, nil, err
	}
	if meta.Data, buffer, err = readString(buffer); nil != err {
		return MetaAsset{}, nil, err
	}
	return meta, buffer, nil
}

// PackInfo - creator ‖ origin ‖ amount ‖ fees ‖ data
func PackInfo(buffer []byte, info Info) []byte {
	buffer = append(buffer, info.Creator[:]...)
	buffer = append(buffer, info.Origin[:]...)
	buffer = appendUint64(buffer, info.Amount)
	buffer = PackFees(buffer, info.Fees)
	return appendString(buffer, info.Data)
}

// UnpackInfo - reverse of PackInfo
func UnpackInfo(buffer []byte) (Info, []byte, error) {
	if len(buffer) < account.PublicKeySize+digest.Length+8+FeesSize {
		return Info{}, nil, fault.ErrInvalidLength
	}
	var info Info
	var err error
	copy(info.Creator[:], buffer[0:account.PublicKeySize])
	buffer = buffer[account.PublicKeySize:]
	copy(info.Origin[:], buffer[0:digest.Length])
	buffer = buffer[digest.Length:]
	info.Amount = binary.LittleEndian.Uint64(buffer[0:8])
	buffer = buffer[8:]
	if info.Fees, buffer, err = UnpackFees(buffer); nil != err {
		return Info{}, nil, err
	}
	if info.Data, buffer, err = readString(buffer); nil != err {
		return Info{}, nil, err
	}
	return info, buffer, nil
}

// little endian uint64 append
func appendUint64(buffer []byte, value uint64) []byte {
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], value)
	return append(buffer, scratch[:]...)
}

// u16 length prefixed string append
func appendString(buffer []byte, s string) []byte {
	var scratch [2]byte
	binary.LittleEndian.PutUint16(scratch[:], uint16(len(s)))
	buffer = append(buffer, scratch[:]...)
	return append(buffer, s...)
}

// reverse of appendString, validating the length prefix
func readString(buffer []byte) (string, []byte, error) {
	if len(buffer) < 2 {
		return "", nil, fault.ErrInvalidLength
	}
	n := int(binary.LittleEndian.Uint16(buffer[0:2]))
	buffer = buffer[2:]
	if len(buffer) < n {
		return "", nil, fault.ErrInvalidLength
	}
	return string(buffer[:n]), buffer[n:], nil
}
