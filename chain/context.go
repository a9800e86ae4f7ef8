// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"github.com/openmarket/openmarketd/account"
)

// TransactionFees - the fixed genesis fee schedule
//
// AddAsset and PerAddAsset combine for issuance: the per-unit fee is
// multiplied by the total issued amount
type TransactionFees struct {
	AddAsset    uint64
	PerAddAsset uint64
	DeleteAsset uint64
	Exchange    uint64
	Trade       uint64
	Transfer    uint64
}

// Context - everything execution needs beyond the transaction itself
type Context struct {
	Network     string
	Fees        TransactionFees
	Genesis     account.PublicKey
	Permissions Permissions
}
