// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"encoding/binary"

	"github.com/openmarket/openmarketd/account"
	"github.com/openmarket/openmarketd/asset"
	"github.com/openmarket/openmarketd/chain"
	"github.com/openmarket/openmarketd/fault"
)

// AddAssets - issue new units of one or more assets
//
// asset ids derive from the creator key and the asset data, so repeat
// issuance of the same data by the same creator tops up the existing
// asset
type AddAssets struct {
	Creator    account.PublicKey `json:"creator"`
	MetaAssets []asset.MetaAsset `json:"meta_assets"`
	Seed       uint64            `json:"seed,string"`

	Signature account.Signature `json:"signature"`
}

// Tag - wire discriminator
func (add *AddAssets) Tag() Tag {
	return AddAssetsTag
}

func (add *AddAssets) packPayload() []byte {
	buffer := appendTag(nil, AddAssetsTag)
	buffer = append(buffer, add.Creator[:]...)
	buffer = appendUint16(buffer, uint16(len(add.MetaAssets)))
	for _, meta := range add.MetaAssets {
		buffer = asset.PackMetaAsset(buffer, meta)
	}
	return appendUint64(buffer, add.Seed)
}

// Pack - wire form
func (add *AddAssets) Pack() Packed {
	return append(add.packPayload(), add.Signature[:]...)
}

// Sign - fill in the signature over the payload
func (add *AddAssets) Sign(sign func([]byte) account.Signature) {
	add.Signature = sign(add.packPayload())
}

// Verify - stateless admissibility
//
// every meta asset needs a nonzero amount, bounded data and a fee
// schedule with no zero fractions
func (add *AddAssets) Verify(ctx *chain.Context) error {
	if 0 == len(add.MetaAssets) {
		return fault.ErrInvalidTransaction
	}
	for _, meta := range add.MetaAssets {
		if 0 == meta.Amount {
			return fault.ErrInvalidTransaction
		}
		if len(meta.Data) > asset.DataMaxLength {
			return fault.ErrAssetDataTooLong
		}
		if !meta.IsValid() {
			return fault.ErrInvalidTransaction
		}
	}
	return add.Creator.CheckSignature(add.packPayload(), add.Signature)
}

func unpackAddAssets(buffer []byte) (*AddAssets, []byte, error) {
	add := &AddAssets{}
	var err error
	if add.Creator, buffer, err = readPublicKey(buffer); nil != err {
		return nil, nil, err
	}
	if len(buffer) < 2 {
		return nil, nil, fault.ErrInvalidLength
	}
	count := int(binary.LittleEndian.Uint16(buffer))
	buffer = buffer[2:]
	for i := 0; i < count; i += 1 {
		meta, rest, err := asset.UnpackMetaAsset(buffer)
		if nil != err {
			return nil, nil, err
		}
		add.MetaAssets = append(add.MetaAssets, meta)
		buffer = rest
	}
	if add.Seed, buffer, err = readUint64(buffer); nil != err {
		return nil, nil, err
	}
	if add.Signature, buffer, err = readSignature(buffer); nil != err {
		return nil, nil, err
	}
	return add, buffer, nil
}

// DeleteAssets - burn units of assets the signer created and holds
type DeleteAssets struct {
	Creator account.PublicKey `json:"creator"`
	Assets  []asset.Bundle    `json:"assets"`
	Seed    uint64            `json:"seed,string"`

	Signature account.Signature `json:"signature"`
}

// Tag - wire discriminator
func (del *DeleteAssets) Tag() Tag {
	return DeleteAssetsTag
}

func (del *DeleteAssets) packPayload() []byte {
	buffer := appendTag(nil, DeleteAssetsTag)
	buffer = append(buffer, del.Creator[:]...)
	buffer = appendBundles(buffer, del.Assets)
	return appendUint64(buffer, del.Seed)
}

// Pack - wire form
func (del *DeleteAssets) Pack() Packed {
	return append(del.packPayload(), del.Signature[:]...)
}

// Sign - fill in the signature over the payload
func (del *DeleteAssets) Sign(sign func([]byte) account.Signature) {
	del.Signature = sign(del.packPayload())
}

// Verify - stateless admissibility
func (del *DeleteAssets) Verify(ctx *chain.Context) error {
	if 0 == len(del.Assets) || !validBundleAmounts(del.Assets) {
		return fault.ErrInvalidTransaction
	}
	return del.Creator.CheckSignature(del.packPayload(), del.Signature)
}

func unpackDeleteAssets(buffer []byte) (*DeleteAssets, []byte, error) {
	del := &DeleteAssets{}
	var err error
	if del.Creator, buffer, err = readPublicKey(buffer); nil != err {
		return nil, nil, err
	}
	if del.Assets, buffer, err = readBundles(buffer); nil != err {
		return nil, nil, err
	}
	if del.Seed, buffer, err = readUint64(buffer); nil != err {
		return nil, nil, err
	}
	if del.Signature, buffer, err = readSignature(buffer); nil != err {
		return nil, nil, err
	}
	return del, buffer, nil
}
