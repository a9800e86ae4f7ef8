// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor

import (
	"github.com/openmarket/openmarketd/asset"
	"github.com/openmarket/openmarketd/digest"
	"github.com/openmarket/openmarketd/fault"
	"github.com/openmarket/openmarketd/fees"
	"github.com/openmarket/openmarketd/transactionrecord"
)

func (p *Processor) executeAddAssets(txId digest.Digest, tx *transactionrecord.AddAssets) error {
	f := fees.ForAddAssets(p.ctx.Fees.AddAsset, p.ctx.Fees.PerAddAsset, tx.MetaAssets)
	return p.run(
		func() error {
			return f.CollectToGenesis(p.ledger, tx.Creator, p.ctx.Genesis)
		},
		func() error {
			for _, meta := range tx.MetaAssets {
				id := asset.NewAssetId(meta.Data, tx.Creator)
				info := meta.ToInfo(tx.Creator, txId)
				if existing, ok := p.ledger.FetchAssetInfo(id); ok {
					merged, err := existing.Merge(info)
					if nil != err {
						return err
					}
					info = merged
				}
				p.ledger.StoreAssetInfo(id, info)

				receiver := p.ledger.Fetch(meta.Receiver)
				receiver.AddAssets([]asset.Bundle{meta.ToBundle(id)})
				p.ledger.Store(meta.Receiver, receiver)
			}
			return nil
		})
}

func (p *Processor) executeDeleteAssets(tx *transactionrecord.DeleteAssets) error {
	f := fees.ForDeleteAssets(p.ctx.Fees.DeleteAsset)
	return p.run(
		func() error {
			return f.CollectToGenesis(p.ledger, tx.Creator, p.ctx.Genesis)
		},
		func() error {
			for _, bundle := range tx.Assets {
				info, ok := p.ledger.FetchAssetInfo(bundle.Id)
				if !ok {
					return fault.ErrAssetNotFound
				}
				if info.Creator != tx.Creator {
					return fault.ErrInvalidTransaction
				}
				decreased, err := info.Decrease(bundle.Amount)
				if nil != err {
					return err
				}
				p.ledger.StoreAssetInfo(bundle.Id, decreased)
			}

			holder := p.ledger.Fetch(tx.Creator)
			if err := holder.RemoveAssets(tx.Assets); nil != err {
				return err
			}
			p.ledger.Store(tx.Creator, holder)
			return nil
		})
}
