// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package offers

import (
	"encoding/binary"

	"github.com/openmarket/openmarketd/account"
	"github.com/openmarket/openmarketd/digest"
	"github.com/openmarket/openmarketd/fault"
)

// byte sizes of the stored records
const (
	OfferSize = account.PublicKeySize + 8 + digest.Length
)

// Pack - serialise one resting offer
func (offer Offer) Pack() []byte {
	buffer := make([]byte, 0, OfferSize)
	buffer = append(buffer, offer.Wallet[:]...)
	buffer = appendUint64(buffer, offer.Amount)
	buffer = append(buffer, offer.TxId[:]...)
	return buffer
}

// UnpackOffer - deserialise one resting offer
func UnpackOffer(buffer []byte) (Offer, []byte, error) {
	offer := Offer{}
	if len(buffer) < OfferSize {
		return offer, nil, fault.ErrInvalidLength
	}
	copy(offer.Wallet[:], buffer[:account.PublicKeySize])
	buffer = buffer[account.PublicKeySize:]
	offer.Amount = binary.LittleEndian.Uint64(buffer)
	buffer = buffer[8:]
	copy(offer.TxId[:], buffer[:digest.Length])
	return offer, buffer[digest.Length:], nil
}

// Pack - serialise a price level: price ‖ count ‖ offers
func (level Offers) Pack() []byte {
	buffer := make([]byte, 0, 8+2+len(level.Offers)*OfferSize)
	buffer = appendUint64(buffer, level.Price)
	buffer = appendUint16(buffer, uint16(len(level.Offers)))
	for _, offer := range level.Offers {
		buffer = append(buffer, offer.Pack()...)
	}
	return buffer
}

// UnpackOffers - deserialise a price level
func UnpackOffers(buffer []byte) (Offers, []byte, error) {
	level := Offers{}
	if len(buffer) < 8+2 {
		return level, nil, fault.ErrInvalidLength
	}
	level.Price = binary.LittleEndian.Uint64(buffer)
	buffer = buffer[8:]
	count := int(binary.LittleEndian.Uint16(buffer))
	buffer = buffer[2:]

	level.Offers = make([]Offer, count)
	for i := 0; i < count; i += 1 {
		offer, rest, err := UnpackOffer(buffer)
		if nil != err {
			return Offers{}, nil, err
		}
		level.Offers[i] = offer
		buffer = rest
	}
	return level, buffer, nil
}

// Pack - serialise both sides of the book
func (open OpenOffers) Pack() []byte {
	buffer := []byte(nil)
	buffer = appendUint16(buffer, uint16(len(open.Bids)))
	for _, level := range open.Bids {
		buffer = append(buffer, level.Pack()...)
	}
	buffer = appendUint16(buffer, uint16(len(open.Asks)))
	for _, level := range open.Asks {
		buffer = append(buffer, level.Pack()...)
	}
	return buffer
}

// UnpackOpenOffers - deserialise a complete book record
func UnpackOpenOffers(buffer []byte) (OpenOffers, error) {
	open := OpenOffers{}

	bids, buffer, err := unpackSide(buffer)
	if nil != err {
		return OpenOffers{}, err
	}
	asks, buffer, err := unpackSide(buffer)
	if nil != err {
		return OpenOffers{}, err
	}
	if 0 != len(buffer) {
		return OpenOffers{}, fault.ErrInvalidLength
	}
	open.Bids = bids
	open.Asks = asks
	return open, nil
}

func unpackSide(buffer []byte) ([]Offers, []byte, error) {
	if len(buffer) < 2 {
		return nil, nil, fault.ErrInvalidLength
	}
	count := int(binary.LittleEndian.Uint16(buffer))
	buffer = buffer[2:]

	side := []Offers(nil)
	for i := 0; i < count; i += 1 {
		level, rest, err := UnpackOffers(buffer)
		if nil != err {
			return nil, nil, err
		}
		side = append(side, level)
		buffer = rest
	}
	return side, buffer, nil
}

func appendUint16(buffer []byte, value uint16) []byte {
	scratch := [2]byte{}
	binary.LittleEndian.PutUint16(scratch[:], value)
	return append(buffer, scratch[:]...)
}

func appendUint64(buffer []byte, value uint64) []byte {
	scratch := [8]byte{}
	binary.LittleEndian.PutUint64(scratch[:], value)
	return append(buffer, scratch[:]...)
}
