// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fees

import (
	"github.com/openmarket/openmarketd/fault"
)

// Strategy - which party pays the fees of a two-party transaction
type Strategy uint8

// enumerate the possible strategies
const (
	Recipient          Strategy = 1
	Sender             Strategy = 2
	RecipientAndSender Strategy = 3
	Intermediary       Strategy = 4
)

// StrategyFromByte - validate the wire representation
func StrategyFromByte(value byte) (Strategy, error) {
	switch Strategy(value) {
	case Recipient, Sender, RecipientAndSender, Intermediary:
		return Strategy(value), nil
	default:
		return 0, fault.ErrInvalidFeeStrategy
	}
}

// String - for logging
func (strategy Strategy) String() string {
	switch strategy {
	case Recipient:
		return "recipient"
	case Sender:
		return "sender"
	case RecipientAndSender:
		return "recipient+sender"
	case Intermediary:
		return "intermediary"
	default:
		return "invalid"
	}
}
