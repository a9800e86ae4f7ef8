// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package offers - the per-asset order book
//
// resting bids and asks are grouped into price levels, bids sorted
// with the highest price first and asks with the lowest price first;
// closing walks the levels best price first and consumes the offers of
// a level in insertion order, so price priority always beats queue
// position; counter-parties fill at their own quoted price
package offers
