// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"github.com/openmarket/openmarketd/fract"
)

// Fee - one entry of an asset fee schedule
//
// the fee for an operation at some price is Fixed plus Fraction of the
// price, truncated towards zero
type Fee struct {
	Fixed    uint64         `json:"fixed,string"`
	Fraction fract.UFract64 `json:"fraction"`
}

// ForPrice - compute the fee value for a price
func (fee Fee) ForPrice(price uint64) uint64 {
	return fee.Fixed + fee.Fraction.MulUint64(price)
}

// Fees - the per-asset fee schedule, set once at issuance
type Fees struct {
	Trade    Fee `json:"trade"`
	Exchange Fee `json:"exchange"`
	Transfer Fee `json:"transfer"`
}

// IsDegenerate - true unless all three entries carry a nonzero fraction
//
// issuance rejects degenerate schedules
func (fees Fees) IsDegenerate() bool {
	return fees.Trade.Fraction.IsZero() ||
		fees.Exchange.Fraction.IsZero() ||
		fees.Transfer.Fraction.IsZero()
}
