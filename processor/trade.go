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

func (p *Processor) executeTrade(offer transactionrecord.TradeOffer, intermediary *transactionrecord.Intermediary) error {
	f, err := fees.ForTrade(p.ledger, p.ctx.Fees.Trade, offer.Assets)
	if nil != err {
		return err
	}
	total, err := offer.TotalPrice()
	if nil != err {
		return err
	}

	// recipient of the assets is the buyer, sender is the seller
	buyer := offer.Buyer
	seller := offer.Seller
	broker := account.PublicKey{}
	if nil != intermediary {
		broker = intermediary.Wallet
	}

	return p.run(
		func() error {
			return p.payGenesis(f, offer.FeeStrategy, buyer, seller, broker)
		},
		func() error {
			if nil != intermediary {
				if err := p.payCommission(offer.FeeStrategy, buyer, seller, *intermediary); nil != err {
					return err
				}
			}
			if err := p.payThirdParty(f, offer.FeeStrategy, buyer, seller, broker); nil != err {
				return err
			}
			if err := p.ledger.MoveCoins(buyer, seller, total); nil != err {
				return err
			}

			bundles := make([]asset.Bundle, len(offer.Assets))
			for i, trade := range offer.Assets {
				bundles[i] = trade.ToBundle()
			}
			return p.ledger.MoveAssets(seller, buyer, bundles)
		})
}

func (p *Processor) executeExchange(offer transactionrecord.ExchangeOffer, intermediary *transactionrecord.Intermediary) error {
	f, err := fees.ForExchange(p.ledger, p.ctx.Fees.Exchange, offer.AllAssets())
	if nil != err {
		return err
	}

	sender := offer.Sender
	recipient := offer.Recipient
	broker := account.PublicKey{}
	if nil != intermediary {
		broker = intermediary.Wallet
	}

	return p.run(
		func() error {
			return p.payGenesis(f, offer.FeeStrategy, recipient, sender, broker)
		},
		func() error {
			if nil != intermediary {
				if err := p.payCommission(offer.FeeStrategy, recipient, sender, *intermediary); nil != err {
					return err
				}
			}
			if err := p.payThirdParty(f, offer.FeeStrategy, recipient, sender, broker); nil != err {
				return err
			}
			if err := p.ledger.MoveCoins(sender, recipient, offer.SenderValue); nil != err {
				return err
			}
			if err := p.ledger.MoveAssets(sender, recipient, offer.SenderAssets); nil != err {
				return err
			}
			return p.ledger.MoveAssets(recipient, sender, offer.RecipientAssets)
		})
}
