// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"github.com/openmarket/openmarketd/account"
)

// Permission - a bit mask of allowed transaction kinds
type Permission uint16

// one bit per transaction kind
const (
	PermitTransfer Permission = 1 << iota
	PermitTransferWithFeesPayer
	PermitAddAssets
	PermitDeleteAssets
	PermitTrade
	PermitTradeIntermediary
	PermitExchange
	PermitExchangeIntermediary
	PermitBid
	PermitAsk
)

// PermitAll - every kind allowed, the default for unlisted accounts
const PermitAll Permission = PermitAsk<<1 - 1

// Permissions - the global mask plus per-account overrides
//
// an account not listed in Wallets is restricted only by the global
// mask; a listed account must pass both masks
type Permissions struct {
	Global  Permission
	Wallets map[account.PublicKey]Permission
}

// Allows - true when the wallet may submit a kind
func (permissions Permissions) Allows(wallet account.PublicKey, required Permission) bool {
	if required != permissions.Global&required {
		return false
	}
	mask, ok := permissions.Wallets[wallet]
	if !ok {
		return true
	}
	return required == mask&required
}
