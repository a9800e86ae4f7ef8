// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package offers

// OpenOffers - both sides of the book for one asset
//
// Bids is sorted by descending price, Asks by ascending price, so
// index zero is always the best price on either side
type OpenOffers struct {
	Bids []Offers `json:"bids"`
	Asks []Offers `json:"asks"`
}

// IsEmpty - true when both sides are empty and the record can go
func (open OpenOffers) IsEmpty() bool {
	return 0 == len(open.Bids) && 0 == len(open.Asks)
}

// AddBid - rest an offer at a price on the bid side
func (open *OpenOffers) AddBid(price uint64, offer Offer) {
	open.Bids = insertLevel(open.Bids, price, offer, func(existing uint64) bool {
		return existing < price
	})
}

// AddAsk - rest an offer at a price on the ask side
func (open *OpenOffers) AddAsk(price uint64, offer Offer) {
	open.Asks = insertLevel(open.Asks, price, offer, func(existing uint64) bool {
		return existing > price
	})
}

// place an offer in its price level, inserting a new level before the
// first one the order predicate rejects
func insertLevel(levels []Offers, price uint64, offer Offer, after func(uint64) bool) []Offers {
	position := len(levels)
scan_loop:
	for i, level := range levels {
		if level.Price == price {
			levels[i].Insert(offer)
			return levels
		}
		if after(level.Price) {
			position = i
			break scan_loop
		}
	}

	levels = append(levels, Offers{})
	copy(levels[position+1:], levels[position:])
	levels[position] = Offers{
		Price:  price,
		Offers: []Offer{offer},
	}
	return levels
}

// CloseBid - consume resting bids priced at or above the limit
//
// called when an incoming ask crosses the book; walks the bid side
// best price first and stops when the amount is exhausted, the side
// is empty or the price drops below the limit; returns the matched
// fragments and the unmatched remainder of the incoming amount
func (open *OpenOffers) CloseBid(limit uint64, amount uint64) ([]CloseOffer, uint64) {
	return closeSide(&open.Bids, amount, func(price uint64) bool {
		return price >= limit
	})
}

// CloseAsk - consume resting asks priced at or below the limit
//
// the mirror of CloseBid for an incoming bid
func (open *OpenOffers) CloseAsk(limit uint64, amount uint64) ([]CloseOffer, uint64) {
	return closeSide(&open.Asks, amount, func(price uint64) bool {
		return price <= limit
	})
}

func closeSide(levels *[]Offers, amount uint64, eligible func(uint64) bool) ([]CloseOffer, uint64) {
	closed := []CloseOffer(nil)
	remaining := amount

	for remaining > 0 && 0 != len(*levels) && eligible((*levels)[0].Price) {
		fragments := (*levels)[0].Close(remaining)
		for _, fragment := range fragments {
			remaining -= fragment.Amount
		}
		closed = append(closed, fragments...)

		if 0 == len((*levels)[0].Offers) {
			*levels = (*levels)[1:]
		}
	}
	return closed, remaining
}
