// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"

	"github.com/openmarket/openmarketd/asset"
	"github.com/openmarket/openmarketd/fault"
)

// packAccount - balance ‖ u16 bundle count ‖ bundles
func packAccount(record Account) []byte {
	buffer := make([]byte, 0, 8+2+len(record.Assets)*asset.BundleSize)

	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], record.Balance)
	buffer = append(buffer, scratch[:]...)

	binary.LittleEndian.PutUint16(scratch[:2], uint16(len(record.Assets)))
	buffer = append(buffer, scratch[:2]...)

	for _, bundle := range record.Assets {
		buffer = asset.PackBundle(buffer, bundle)
	}
	return buffer
}

// unpackAccount - reverse of packAccount
func unpackAccount(buffer []byte) (Account, error) {
	if len(buffer) < 10 {
		return Account{}, fault.ErrInvalidLength
	}

	var record Account
	record.Balance = binary.LittleEndian.Uint64(buffer[0:8])
	count := int(binary.LittleEndian.Uint16(buffer[8:10]))
	buffer = buffer[10:]

	if len(buffer) != count*asset.BundleSize {
		return Account{}, fault.ErrInvalidLength
	}

	var err error
	for i := 0; i < count; i += 1 {
		var bundle asset.Bundle
		if bundle, buffer, err = asset.UnpackBundle(buffer); nil != err {
			return Account{}, err
		}
		record.Assets = append(record.Assets, bundle)
	}
	return record, nil
}
