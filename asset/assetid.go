// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"encoding/hex"

	"github.com/google/uuid"

	"github.com/openmarket/openmarketd/account"
	"github.com/openmarket/openmarketd/fault"
)

// IdLength - number of bytes in an asset id
const IdLength = 16

// AssetId - deterministic identifier for one asset class
//
// UUIDv5 over the DNS namespace of hex(creator public key) followed by
// the free form data string, so the same creator and data always map
// to the same id
type AssetId [IdLength]byte

// NewAssetId - derive the asset id for data issued by creator
func NewAssetId(data string, creator account.PublicKey) AssetId {
	u := uuid.NewSHA1(uuid.NameSpaceDNS, []byte(creator.HexString()+data))
	return AssetId(u)
}

// AssetIdFromBytes - convert and validate a byte slice
func AssetIdFromBytes(buffer []byte) (AssetId, error) {
	var id AssetId
	if IdLength != len(buffer) {
		return id, fault.ErrInvalidAssetId
	}
	copy(id[:], buffer)
	return id, nil
}

// AssetIdFromString - convert and validate a 32 character hex string
func AssetIdFromString(s string) (AssetId, error) {
	var id AssetId
	if hex.EncodedLen(IdLength) != len(s) {
		return id, fault.ErrInvalidAssetId
	}
	if _, err := hex.Decode(id[:], []byte(s)); nil != err {
		return id, fault.ErrInvalidAssetId
	}
	return id, nil
}

// String - render as 32 lowercase hex characters
func (id AssetId) String() string {
	return hex.EncodeToString(id[:])
}

// MarshalText - for JSON encoding
func (id AssetId) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - for JSON decoding
func (id *AssetId) UnmarshalText(s []byte) error {
	assetId, err := AssetIdFromString(string(s))
	if nil != err {
		return err
	}
	*id = assetId
	return nil
}
