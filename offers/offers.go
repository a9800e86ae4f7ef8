// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package offers

import (
	"github.com/openmarket/openmarketd/account"
	"github.com/openmarket/openmarketd/digest"
)

// Offer - one resting order fragment
type Offer struct {
	Wallet account.PublicKey `json:"wallet"`
	Amount uint64            `json:"amount,string"`
	TxId   digest.Digest     `json:"txId"`
}

// CloseOffer - one fragment consumed from the book
//
// Price is the resting order's quoted price, not the incoming one
type CloseOffer struct {
	Wallet account.PublicKey
	Price  uint64
	Amount uint64
	TxId   digest.Digest
}

// Offers - all resting offers at one price level, insertion order
type Offers struct {
	Price  uint64  `json:"price,string"`
	Offers []Offer `json:"offers"`
}

// Insert - append an offer to the level
//
// a repeated submission from the same wallet and transaction merges
// into the tail entry instead of queueing again
func (level *Offers) Insert(offer Offer) {
	if n := len(level.Offers); n > 0 {
		tail := &level.Offers[n-1]
		if tail.Wallet == offer.Wallet && tail.TxId == offer.TxId {
			tail.Amount += offer.Amount
			return
		}
	}
	level.Offers = append(level.Offers, offer)
}

// Close - consume up to amount from the level in insertion order
//
// consumed offers shrink in place and empty ones are pruned; returns
// the closed fragments at this level's price
func (level *Offers) Close(amount uint64) []CloseOffer {
	closed := []CloseOffer(nil)
	remaining := amount

	for i := 0; i < len(level.Offers) && remaining > 0; i += 1 {
		offer := &level.Offers[i]
		take := offer.Amount
		if take > remaining {
			take = remaining
		}
		offer.Amount -= take
		remaining -= take
		closed = append(closed, CloseOffer{
			Wallet: offer.Wallet,
			Price:  level.Price,
			Amount: take,
			TxId:   offer.TxId,
		})
	}

	survivors := level.Offers[:0]
	for _, offer := range level.Offers {
		if offer.Amount > 0 {
			survivors = append(survivors, offer)
		}
	}
	level.Offers = survivors

	return closed
}
