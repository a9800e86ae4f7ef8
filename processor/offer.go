// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor

import (
	"github.com/openmarket/openmarketd/account"
	"github.com/openmarket/openmarketd/asset"
	"github.com/openmarket/openmarketd/digest"
	"github.com/openmarket/openmarketd/fault"
	"github.com/openmarket/openmarketd/fees"
	"github.com/openmarket/openmarketd/offers"
	"github.com/openmarket/openmarketd/transactionrecord"
)

func (p *Processor) executeBidOffer(txId digest.Digest, tx *transactionrecord.BidOffer) error {
	f := fees.Fees{
		ToGenesis:    p.ctx.Fees.Trade,
		ToThirdParty: map[account.PublicKey]uint64{},
	}
	return p.run(
		func() error {
			return f.CollectToGenesis(p.ledger, tx.Wallet, p.ctx.Genesis)
		},
		func() error {
			info, ok := p.ledger.FetchAssetInfo(tx.Asset.Id)
			if !ok {
				return fault.ErrAssetNotFound
			}

			limit := tx.Asset.Price
			amount := tx.Asset.Amount
			lock := limit * amount // no overflow, checked in Verify

			// lock the full notional up front
			taker := p.ledger.Fetch(tx.Wallet)
			if taker.Balance < lock {
				return fault.ErrInsufficientFunds
			}
			taker.Balance -= lock
			p.ledger.Store(tx.Wallet, taker)

			open := p.book.Fetch(tx.Asset.Id)
			closed, remaining := open.CloseAsk(limit, amount)

			matched := uint64(0)
			for _, fragment := range closed {
				paid := fragment.Amount * fragment.Price

				// the resting seller's units were locked at ask time,
				// so the taker is credited from the book, the seller
				// from the taker's lock
				seller := p.ledger.Fetch(fragment.Wallet)
				seller.Balance += paid
				p.ledger.Store(fragment.Wallet, seller)

				taker := p.ledger.Fetch(tx.Wallet)
				taker.AddAssets([]asset.Bundle{{Id: tx.Asset.Id, Amount: fragment.Amount}})
				// refund the spread between the limit and the resting price
				taker.Balance += (limit - fragment.Price) * fragment.Amount
				p.ledger.Store(tx.Wallet, taker)

				matched += paid
			}

			if remaining > 0 {
				open.AddBid(limit, offers.Offer{
					Wallet: tx.Wallet,
					Amount: remaining,
					TxId:   txId,
				})
			}
			p.book.Store(tx.Asset.Id, open)

			return p.payMatchedTradeFee(info, matched, tx.Wallet)
		})
}

func (p *Processor) executeAskOffer(txId digest.Digest, tx *transactionrecord.AskOffer) error {
	f := fees.Fees{
		ToGenesis:    p.ctx.Fees.Trade,
		ToThirdParty: map[account.PublicKey]uint64{},
	}
	return p.run(
		func() error {
			return f.CollectToGenesis(p.ledger, tx.Wallet, p.ctx.Genesis)
		},
		func() error {
			info, ok := p.ledger.FetchAssetInfo(tx.Asset.Id)
			if !ok {
				return fault.ErrAssetNotFound
			}

			limit := tx.Asset.Price
			amount := tx.Asset.Amount

			// lock the offered units up front
			taker := p.ledger.Fetch(tx.Wallet)
			if err := taker.RemoveAssets([]asset.Bundle{{Id: tx.Asset.Id, Amount: amount}}); nil != err {
				return err
			}
			p.ledger.Store(tx.Wallet, taker)

			open := p.book.Fetch(tx.Asset.Id)
			closed, remaining := open.CloseBid(limit, amount)

			matched := uint64(0)
			for _, fragment := range closed {
				paid := fragment.Amount * fragment.Price

				// the resting bidder's coins were locked at bid time,
				// so only the bidder's asset credit and the taker's
				// coin credit touch balances here
				bidder := p.ledger.Fetch(fragment.Wallet)
				bidder.AddAssets([]asset.Bundle{{Id: tx.Asset.Id, Amount: fragment.Amount}})
				p.ledger.Store(fragment.Wallet, bidder)

				taker := p.ledger.Fetch(tx.Wallet)
				taker.Balance += paid
				p.ledger.Store(tx.Wallet, taker)

				matched += paid
			}

			if remaining > 0 {
				open.AddAsk(limit, offers.Offer{
					Wallet: tx.Wallet,
					Amount: remaining,
					TxId:   txId,
				})
			}
			p.book.Store(tx.Asset.Id, open)

			return p.payMatchedTradeFee(info, matched, tx.Wallet)
		})
}

// third party trade fee on the matched notional, charged once per
// transaction to the aggressing wallet
func (p *Processor) payMatchedTradeFee(info asset.Info, matched uint64, payer account.PublicKey) error {
	if 0 == matched {
		return nil
	}
	f := fees.Fees{
		ToThirdParty: map[account.PublicKey]uint64{},
	}
	f.AddFee(info.Creator, info.Fees.Trade.ForPrice(matched))
	return f.CollectToThirdParty(p.ledger, payer)
}
