// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package offers

import (
	"github.com/bitmark-inc/logger"

	"github.com/openmarket/openmarketd/asset"
	"github.com/openmarket/openmarketd/storage"
)

// Book - open offer access over the offers pool, one record per asset
type Book struct {
	pool *storage.Pool
}

// NewBook - create a book over a pool set
func NewBook(pool *storage.Pool) *Book {
	return &Book{pool: pool}
}

// Fetch - the open offers for an asset, an empty book if none rest
func (book *Book) Fetch(id asset.AssetId) OpenOffers {
	buffer := book.pool.Offers.Get(id[:])
	if nil == buffer {
		return OpenOffers{}
	}
	open, err := UnpackOpenOffers(buffer)
	if nil != err {
		logger.Panicf("offers: corrupt open offers record for %s: %s", id, err)
	}
	return open
}

// Store - write back the open offers for an asset
//
// a record with neither bids nor asks is removed entirely
func (book *Book) Store(id asset.AssetId, open OpenOffers) {
	if open.IsEmpty() {
		book.pool.Offers.Delete(id[:])
		return
	}
	book.pool.Offers.Put(id[:], open.Pack())
}
