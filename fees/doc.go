// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fees - computing and collecting transaction fees
//
// every transaction pays a fixed genesis fee to the platform account
// and, where it references issued assets, per-creator third party fees
// from the asset fee schedules; the strategy selects which party pays
package fees
