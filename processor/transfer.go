// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor

import (
	"github.com/openmarket/openmarketd/account"
	"github.com/openmarket/openmarketd/asset"
	"github.com/openmarket/openmarketd/fees"
	"github.com/openmarket/openmarketd/transactionrecord"
)

func (p *Processor) executeTransfer(tx *transactionrecord.Transfer) error {
	return p.transfer(tx.From, tx.To, tx.From, tx.Amount, tx.Assets)
}

func (p *Processor) executeTransferWithFeesPayer(tx *transactionrecord.TransferWithFeesPayer) error {
	offer := tx.Offer
	return p.transfer(offer.From, offer.To, offer.FeesPayer, offer.Amount, offer.Assets)
}

func (p *Processor) transfer(from account.PublicKey, to account.PublicKey, feesPayer account.PublicKey, amount uint64, bundles []asset.Bundle) error {
	f, err := fees.ForTransfer(p.ledger, p.ctx.Fees.Transfer, bundles)
	if nil != err {
		return err
	}
	return p.run(
		func() error {
			return f.CollectToGenesis(p.ledger, feesPayer, p.ctx.Genesis)
		},
		func() error {
			if err := f.CollectToThirdParty(p.ledger, feesPayer); nil != err {
				return err
			}
			if err := p.ledger.MoveCoins(from, to, amount); nil != err {
				return err
			}
			return p.ledger.MoveAssets(from, to, bundles)
		})
}
